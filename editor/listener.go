// Package editor holds an editing session over a block document: interaction
// state machines (reorder, resize, insertion), transient UI state and the
// guard which keeps the session from re-parsing its own output.
package editor

// Emitter receives full document markup after every committed mutation.
type Emitter interface {
	OnChange(markup string)
}

// EmitterFunc adapts function to Emitter.
type EmitterFunc func(markup string)

func (f EmitterFunc) OnChange(markup string) {
	f(markup)
}

// History is notified before structural mutations. It is expected to
// snapshot pre-mutation markup itself.
type History interface {
	BeforeMutate()
}

// HistoryFunc adapts function to History.
type HistoryFunc func()

func (f HistoryFunc) BeforeMutate() {
	f()
}

type nopListener struct{}

func (nopListener) OnChange(string) {}
func (nopListener) BeforeMutate()   {}
