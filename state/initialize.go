package state

import (
	"time"

	"go.uber.org/zap"
)

// newLocalEnv creates a new LocalEnv instance with default values, logger is
// replaced once configuration is loaded.
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start: time.Now(),
		Log:   zap.NewNop(),
	}
}
