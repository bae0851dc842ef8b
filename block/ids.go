package block

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// IDSource mints block identifiers unique within an editing session.
type IDSource interface {
	NewID() string
}

// Sequence combines monotonic counter with time ordered random UUID, so ids
// never collide inside a session and stay unique across sessions.
type Sequence struct {
	prefix  string
	counter atomic.Uint64
}

// NewSequence returns id source, empty prefix defaults to "blk".
func NewSequence(prefix string) *Sequence {
	if prefix == "" {
		prefix = "blk"
	}
	return &Sequence{prefix: prefix}
}

// NewID returns next identifier: <prefix>-<counter>-<uuid v7>.
func (s *Sequence) NewID() string {
	n := s.counter.Add(1)
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 fails only when random source is broken, keep timestamp and
		// whatever entropy we can get
		var buf [8]byte
		_, _ = rand.Read(buf[:])
		return fmt.Sprintf("%s-%d-%x-%s", s.prefix, n, time.Now().UnixNano(), hex.EncodeToString(buf[:]))
	}
	return fmt.Sprintf("%s-%d-%s", s.prefix, n, id.String())
}
