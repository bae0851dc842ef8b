package editor

import (
	"go.uber.org/zap"

	"lbe/block"
	"lbe/common"
	"lbe/config"
)

// Session owns a single block document and every interaction over it. It is
// not safe for concurrent use: events are expected to be fed one at a time by
// a single caller.
type Session struct {
	log        *zap.Logger
	parser     *block.Parser
	factory    *block.Factory
	serializer *block.Serializer

	doc block.Document
	ui  *UIState

	guard   SyncGuard
	reorder Reorder
	resize  *Resize
	insert  Insertion

	emitter Emitter
	history History
}

type sessionOptions struct {
	emitter Emitter
	history History
	ids     block.IDSource
}

type Option func(*sessionOptions)

// WithEmitter sets collaborator receiving document markup after mutations.
func WithEmitter(e Emitter) Option {
	return func(o *sessionOptions) {
		o.emitter = e
	}
}

// WithHistory sets collaborator notified before structural mutations.
func WithHistory(h History) Option {
	return func(o *sessionOptions) {
		o.history = h
	}
}

// WithIDSource replaces block id generator.
func WithIDSource(ids block.IDSource) Option {
	return func(o *sessionOptions) {
		o.ids = ids
	}
}

// NewSession creates empty editing session. Nil configuration means
// defaults.
func NewSession(cfg *config.EditorConfig, log *zap.Logger, opts ...Option) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	o := sessionOptions{emitter: nopListener{}, history: nopListener{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.emitter == nil {
		o.emitter = nopListener{}
	}
	if o.history == nil {
		o.history = nopListener{}
	}

	var (
		maxDepth, previewLength int
		breakout                string
		resize                  *config.ResizeConfig
	)
	if cfg != nil {
		maxDepth, previewLength = cfg.MaxDepth, cfg.PreviewLength
		breakout = cfg.Mobile.Breakout
		resize = &cfg.Resize
	}

	factory := block.NewFactory(log, block.WithIDSource(o.ids), block.WithPreviewLength(previewLength))
	return &Session{
		log:        log.Named("session"),
		parser:     block.NewParser(factory, maxDepth, log),
		factory:    factory,
		serializer: block.NewSerializer(breakout, log),
		ui:         NewUIState(),
		resize:     NewResize(resize, log),
		emitter:    o.emitter,
		history:    o.history,
	}
}

// Document returns copy of current document.
func (s *Session) Document() block.Document {
	return s.doc.Clone()
}

// Len returns number of blocks.
func (s *Session) Len() int {
	return len(s.doc)
}

// Block returns block with given id.
func (s *Session) Block(id string) (block.Block, bool) {
	if i := s.doc.Index(id); i >= 0 {
		return s.doc[i], true
	}
	return block.Block{}, false
}

// Markup serializes current document.
func (s *Session) Markup() string {
	return s.serializer.Serialize(s.doc)
}

// UI returns transient presentation state.
func (s *Session) UI() *UIState {
	return s.ui
}

// GuardState returns state of synchronization guard.
func (s *Session) GuardState() GuardState {
	return s.guard.State()
}

// OnExternalChange accepts authoritative markup coming from outside. Echo of
// the last emission is ignored, changes arriving while session is emitting
// are applied right after. Returns true when document was replaced.
func (s *Session) OnExternalChange(markup string) bool {
	if !s.guard.Accept(markup) {
		s.log.Debug("External change ignored", zap.Stringer("guard", s.guard.State()))
		return false
	}
	s.apply(markup)
	return true
}

// OnDocumentMutated serializes document and hands it to the emitter. Every
// committed mutation ends here.
func (s *Session) OnDocumentMutated() {
	markup := s.serializer.Serialize(s.doc)
	s.guard.Begin(markup)
	s.emitter.OnChange(markup)
	if pending, ok := s.guard.End(); ok {
		s.log.Debug("Applying change received during emission")
		s.apply(pending)
	}
}

func (s *Session) apply(markup string) {
	s.cancelInteractions()
	s.guard.Forget()
	s.doc = s.parser.Parse(markup)
	if n := s.ui.Prune(s.doc.IDs()); n > 0 {
		s.log.Debug("UI state pruned", zap.Int("ids", n))
	}
	s.log.Debug("Document replaced", zap.Int("blocks", len(s.doc)))
}

func (s *Session) cancelInteractions() {
	s.reorder.EndDrag()
	s.resize.Cancel()
	s.insert.End()
}

// BeginDrag starts reordering block at index i.
func (s *Session) BeginDrag(i int) bool {
	if i < 0 || i >= len(s.doc) {
		return false
	}
	s.cancelInteractions()
	s.reorder.BeginDrag(i)
	return true
}

// HoverDrag reports pointer over block i during drag.
func (s *Session) HoverDrag(i int, pointerY float64, rect Rect) bool {
	return s.reorder.Hover(i, pointerY, rect)
}

// Drop completes drag over block "to". Drag ends whether or not anything
// moved.
func (s *Session) Drop(to int) bool {
	from, at, ok := s.reorder.Drop(to, len(s.doc))
	s.reorder.EndDrag()
	if !ok {
		return false
	}
	s.history.BeforeMutate()
	s.doc, _ = s.doc.Move(from, at)
	s.log.Debug("Block moved", zap.Int("from", from), zap.Int("to", at))
	s.OnDocumentMutated()
	return true
}

// CancelDrag abandons drag, document is not touched.
func (s *Session) CancelDrag() {
	s.reorder.EndDrag()
}

// BeginResize starts resizing block at index i, rendered is the size block
// currently has on screen.
func (s *Session) BeginResize(i int, dir common.ResizeDirection, pointer Point, rendered Dimensions) bool {
	if i < 0 || i >= len(s.doc) || !dir.IsValid() {
		return false
	}
	s.cancelInteractions()
	s.resize.Begin(i, dir, pointer, rendered, s.ui.AspectLock(s.doc[i].ID))
	return true
}

// MoveResize returns live dimensions, document is not touched.
func (s *Session) MoveResize(pointer Point) Dimensions {
	return s.resize.Move(pointer)
}

// EndResize commits dimensions into resized block.
func (s *Session) EndResize() bool {
	i, d, ok := s.resize.End()
	if !ok || i < 0 || i >= len(s.doc) {
		return false
	}
	s.history.BeforeMutate()
	s.doc[i].Width, s.doc[i].Height = block.Pixels(d.Width), block.Pixels(d.Height)
	s.log.Debug("Block resized", zap.String("id", s.doc[i].ID), zap.Int("width", d.Width), zap.Int("height", d.Height))
	s.OnDocumentMutated()
	return true
}

// CancelResize discards resize in progress.
func (s *Session) CancelResize() {
	s.resize.Cancel()
}

// BeginInsert starts dragging template markup into the document.
func (s *Session) BeginInsert(markup string) {
	s.cancelInteractions()
	s.insert.Begin(markup)
}

// HoverInsert reports pointer over block i during insertion drag.
func (s *Session) HoverInsert(i int, pointerY float64, rect Rect) bool {
	return s.insert.Hover(i, pointerY, rect)
}

// DropInsert inserts new block next to block "target" and returns its id.
func (s *Session) DropInsert(target int) (string, bool) {
	at, markup, ok := s.insert.Drop(target, len(s.doc))
	s.insert.End()
	if !ok {
		return "", false
	}
	return s.insertAt(at, markup), true
}

// CancelInsert abandons insertion drag.
func (s *Session) CancelInsert() {
	s.insert.End()
}

// AppendTemplate inserts block after the selected one, or at the end when
// nothing is selected.
func (s *Session) AppendTemplate(markup string) string {
	at := len(s.doc)
	if id, ok := s.ui.Selected(); ok {
		if i := s.doc.Index(id); i >= 0 {
			at = i + 1
		}
	}
	return s.insertAt(at, markup)
}

func (s *Session) insertAt(at int, markup string) string {
	b := s.factory.FromMarkup(markup, common.BlockKindCard)
	s.cancelInteractions()
	s.history.BeforeMutate()
	s.doc = s.doc.Insert(at, b)
	s.ui.Select(b.ID)
	s.log.Debug("Block inserted", zap.String("id", b.ID), zap.Int("at", at))
	s.OnDocumentMutated()
	return b.ID
}

// Select makes block current, empty id clears selection.
func (s *Session) Select(id string) bool {
	if id != "" && s.doc.Index(id) < 0 {
		return false
	}
	s.ui.Select(id)
	return true
}

// Delete removes block.
func (s *Session) Delete(id string) bool {
	i := s.doc.Index(id)
	if i < 0 {
		return false
	}
	s.cancelInteractions()
	s.history.BeforeMutate()
	s.doc, _ = s.doc.Remove(i)
	s.ui.Forget(id)
	s.OnDocumentMutated()
	return true
}

// Duplicate places copy of block right after it and returns id of the copy.
func (s *Session) Duplicate(id string) (string, bool) {
	i := s.doc.Index(id)
	if i < 0 {
		return "", false
	}
	s.cancelInteractions()
	b := s.factory.Duplicate(s.doc[i])
	s.history.BeforeMutate()
	s.doc = s.doc.Insert(i+1, b)
	s.OnDocumentMutated()
	return b.ID, true
}

// UpdateMarkup replaces block content keeping its identity and layout.
func (s *Session) UpdateMarkup(id, markup string) bool {
	i := s.doc.Index(id)
	if i < 0 {
		return false
	}
	s.doc[i] = s.factory.Refresh(s.doc[i], markup)
	s.OnDocumentMutated()
	return true
}

// SetMobileWidth sets block width on mobile preview in percent.
func (s *Session) SetMobileWidth(id string, percent int) bool {
	i := s.doc.Index(id)
	if i < 0 {
		return false
	}
	s.doc[i].MobileWidth = block.ClampMobileWidth(percent)
	s.OnDocumentMutated()
	return true
}

// ResetSize returns block to automatic layout removing whatever layout
// annotations its markup carries.
func (s *Session) ResetSize(id string) bool {
	i := s.doc.Index(id)
	if i < 0 {
		return false
	}
	s.history.BeforeMutate()
	b := &s.doc[i]
	b.Width, b.Height, b.MobileWidth = block.Auto(), block.Auto(), block.DefaultMobileWidth
	b.Markup = s.serializer.Strip(b.Markup)
	s.OnDocumentMutated()
	return true
}

