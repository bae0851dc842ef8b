package editor

// GuardState is a state of synchronization guard.
type GuardState int

const (
	GuardIdle GuardState = iota
	GuardEmitting
)

func (s GuardState) String() string {
	switch s {
	case GuardIdle:
		return "idle"
	case GuardEmitting:
		return "emitting"
	}
	return "unknown"
}

// SyncGuard remembers markup the session emitted last so the echo of it
// coming back as an external change is not parsed again. Changes which
// arrive while emission is in progress are held until it is over.
type SyncGuard struct {
	state       GuardState
	lastEmitted string
	emitted     bool
	pending     string
	hasPending  bool
}

// State returns current guard state.
func (g *SyncGuard) State() GuardState {
	return g.state
}

// LastEmitted returns the last markup emitted, false before first emission.
func (g *SyncGuard) LastEmitted() (string, bool) {
	return g.lastEmitted, g.emitted
}

// Begin records markup about to be emitted: Idle -> Emitting.
func (g *SyncGuard) Begin(markup string) {
	g.state = GuardEmitting
	g.lastEmitted, g.emitted = markup, true
}

// End finishes emission: Emitting -> Idle. Returns change held during
// emission if there is one which is not an echo.
func (g *SyncGuard) End() (string, bool) {
	g.state = GuardIdle
	if !g.hasPending {
		return "", false
	}
	markup := g.pending
	g.pending, g.hasPending = "", false
	if g.emitted && markup == g.lastEmitted {
		return "", false
	}
	return markup, true
}

// Accept decides whether external change has to be parsed now. Echo of the
// last emission is dropped, anything else arriving during emission is held.
func (g *SyncGuard) Accept(markup string) bool {
	if g.emitted && markup == g.lastEmitted {
		return false
	}
	if g.state == GuardEmitting {
		g.pending, g.hasPending = markup, true
		return false
	}
	return true
}

// Forget drops remembered emission. Called once document was replaced from
// outside, after that earlier emission is a real change, not an echo.
func (g *SyncGuard) Forget() {
	g.lastEmitted, g.emitted = "", false
}

// Reset forgets everything, as if nothing was ever emitted.
func (g *SyncGuard) Reset() {
	*g = SyncGuard{}
}
