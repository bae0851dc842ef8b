package store

import (
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Binding connects editing session of a single lesson to the store: every
// emitted document is saved and every structural mutation is preceded by a
// snapshot of what was saved last.
type Binding struct {
	store   *Store
	lesson  string
	current string
	err     error
}

// Bind returns persistence collaborator for lesson whose stored markup is
// current.
func (s *Store) Bind(id, current string) *Binding {
	return &Binding{store: s, lesson: id, current: current}
}

// OnChange saves document.
func (b *Binding) OnChange(markup string) {
	if err := b.store.UpdateMarkup(b.lesson, markup); err != nil {
		b.store.log.Debug("Unable to save lesson", zap.String("lesson", b.lesson), zap.Error(err))
		b.err = multierr.Append(b.err, err)
		return
	}
	b.current = markup
}

// BeforeMutate snapshots markup saved last.
func (b *Binding) BeforeMutate() {
	if err := b.store.PushSnapshot(b.lesson, b.current); err != nil {
		b.err = multierr.Append(b.err, err)
	}
}

// Current returns markup saved last.
func (b *Binding) Current() string {
	return b.current
}

// Err returns every failure collected so far. Editing session never sees
// them so they have to be checked when editing is over.
func (b *Binding) Err() error {
	return b.err
}
