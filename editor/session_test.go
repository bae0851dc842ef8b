package editor_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"lbe/block"
	"lbe/common"
	"lbe/editor"
)

type counterIDs struct{ n int }

func (c *counterIDs) NewID() string {
	c.n++
	return fmt.Sprintf("b%d", c.n)
}

// recorder collects collaborator calls.
type recorder struct {
	emitted   []string
	snapshots int
}

func (r *recorder) OnChange(markup string) { r.emitted = append(r.emitted, markup) }
func (r *recorder) BeforeMutate()          { r.snapshots++ }

func (r *recorder) last(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, r.emitted, "nothing was emitted")
	return r.emitted[len(r.emitted)-1]
}

func newSession(t *testing.T, markup string) (*editor.Session, *recorder) {
	t.Helper()
	rec := &recorder{}
	s := editor.NewSession(nil, zaptest.NewLogger(t),
		editor.WithEmitter(rec), editor.WithHistory(rec), editor.WithIDSource(&counterIDs{}))
	require.True(t, s.OnExternalChange(markup))
	return s, rec
}

func markups(s *editor.Session) []string {
	return s.Document().Markups()
}

func TestSession_ReorderKeepsIdentity(t *testing.T) {
	s, rec := newSession(t, "<p>A</p><p>B</p><p>C</p>")
	before := s.Document()

	require.True(t, s.BeginDrag(0))
	require.True(t, s.HoverDrag(1, lower(1), rect(1)))
	require.True(t, s.Drop(1))

	after := s.Document()
	assert.Equal(t, []string{before[1].ID, before[0].ID, before[2].ID}, after.IDs())
	assert.Equal(t, []string{"<p>B</p>", "<p>A</p>", "<p>C</p>"}, after.Markups())
	assert.Equal(t, 1, rec.snapshots)
	assert.Equal(t, "<p>B</p>\n<p>A</p>\n<p>C</p>", rec.last(t))
}

func TestSession_DropTieBreak(t *testing.T) {
	const src = "<p>0</p><p>1</p><p>2</p><p>3</p>"

	s, _ := newSession(t, src)
	s.BeginDrag(0)
	s.HoverDrag(2, lower(2), rect(2))
	require.True(t, s.Drop(2))
	assert.Equal(t, []string{"<p>1</p>", "<p>2</p>", "<p>0</p>", "<p>3</p>"}, markups(s))

	s, _ = newSession(t, src)
	s.BeginDrag(3)
	s.HoverDrag(1, upper(1), rect(1))
	require.True(t, s.Drop(1))
	assert.Equal(t, []string{"<p>0</p>", "<p>3</p>", "<p>1</p>", "<p>2</p>"}, markups(s))
}

func TestSession_DropOnItselfEndsDrag(t *testing.T) {
	s, rec := newSession(t, "<p>A</p><p>B</p>")
	s.BeginDrag(1)
	assert.False(t, s.Drop(1))
	assert.False(t, s.Drop(0), "drag is over")
	assert.Empty(t, rec.emitted)
	assert.Zero(t, rec.snapshots)
}

func TestSession_ResizeCommitsOnEnd(t *testing.T) {
	s, rec := newSession(t, "<p>A</p><p>B</p>")
	before := s.Document()

	require.True(t, s.BeginResize(1, common.ResizeDirectionE, editor.Point{}, editor.Dimensions{Width: 200, Height: 80}))
	live := s.MoveResize(editor.Point{X: 12})
	assert.Equal(t, 215, live.Width)
	assert.Equal(t, before, s.Document(), "live dimensions do not touch document")
	assert.Empty(t, rec.emitted)

	require.True(t, s.EndResize())
	b := s.Document()[1]
	assert.Equal(t, block.Pixels(215), b.Width)
	assert.Equal(t, block.Pixels(80), b.Height)
	assert.Equal(t, before[1].ID, b.ID)
	assert.Equal(t, 1, rec.snapshots)
	assert.Contains(t, rec.last(t), `data-width="215"`)
	assert.Contains(t, rec.last(t), `data-height="80"`)
}

func TestSession_ResizeUsesAspectLock(t *testing.T) {
	s, _ := newSession(t, "<p>A</p>")
	id := s.Document()[0].ID
	s.UI().SetAspectLock(id, true)

	s.BeginResize(0, common.ResizeDirectionSe, editor.Point{}, editor.Dimensions{Width: 200, Height: 100})
	assert.Equal(t, editor.Dimensions{Width: 300, Height: 150}, s.MoveResize(editor.Point{X: 100}))
}

func TestSession_CancelLeavesDocument(t *testing.T) {
	s, rec := newSession(t, "<p>A</p><p>B</p><p>C</p>")
	before := s.Document()

	s.BeginDrag(0)
	s.HoverDrag(2, lower(2), rect(2))
	s.CancelDrag()
	assert.False(t, s.Drop(2))

	s.BeginResize(0, common.ResizeDirectionE, editor.Point{}, editor.Dimensions{Width: 100, Height: 50})
	s.MoveResize(editor.Point{X: 80})
	s.CancelResize()
	assert.False(t, s.EndResize())

	s.BeginInsert("<p>N</p>")
	s.HoverInsert(0, upper(0), rect(0))
	s.CancelInsert()
	_, ok := s.DropInsert(0)
	assert.False(t, ok)

	assert.Equal(t, before, s.Document())
	assert.Empty(t, rec.emitted)
	assert.Zero(t, rec.snapshots)
}

func TestSession_BeginCancelsOtherInteraction(t *testing.T) {
	s, _ := newSession(t, "<p>A</p><p>B</p><p>C</p>")
	before := s.Document()

	s.BeginDrag(0)
	s.HoverDrag(2, lower(2), rect(2))
	s.BeginResize(1, common.ResizeDirectionS, editor.Point{}, editor.Dimensions{Width: 100, Height: 50})
	assert.False(t, s.Drop(2), "resize cancelled the drag")

	s.MoveResize(editor.Point{Y: 40})
	s.BeginResize(2, common.ResizeDirectionS, editor.Point{}, editor.Dimensions{Width: 100, Height: 50})
	assert.False(t, s.EndResize(), "second resize never moved, first delta discarded")
	assert.Equal(t, before, s.Document())
}

func TestSession_AppendCancelsInteraction(t *testing.T) {
	t.Run("drag", func(t *testing.T) {
		s, _ := newSession(t, "<p>A</p><p>B</p><p>C</p>")
		s.BeginDrag(2)
		s.HoverDrag(0, upper(0), rect(0))
		s.AppendTemplate("<p>N</p>")

		assert.False(t, s.Drop(0), "insertion ended the drag")
		assert.Equal(t, []string{"<p>A</p>", "<p>B</p>", "<p>C</p>", "<p>N</p>"}, markups(s))
	})

	t.Run("resize", func(t *testing.T) {
		s, _ := newSession(t, "<p>A</p><p>B</p>")
		require.True(t, s.Select(s.Document()[0].ID))
		s.BeginResize(1, common.ResizeDirectionE, editor.Point{}, editor.Dimensions{Width: 200, Height: 80})
		s.MoveResize(editor.Point{X: 40})
		s.AppendTemplate("<p>N</p>")

		assert.False(t, s.EndResize(), "insertion discarded the resize")
		for _, b := range s.Document() {
			assert.False(t, b.IsSized(), b.Markup)
		}
	})
}

func TestSession_EchoIsNotParsed(t *testing.T) {
	s, rec := newSession(t, "<p>A</p><p>B</p>")

	s.OnDocumentMutated()
	ids := s.Document().IDs()

	assert.False(t, s.OnExternalChange(rec.last(t)))
	assert.Equal(t, ids, s.Document().IDs())
	assert.Equal(t, editor.GuardIdle, s.GuardState())

	assert.True(t, s.OnExternalChange("<p>A</p>"))
	assert.NotEqual(t, ids, s.Document().IDs())
}

func TestSession_RestoredEmissionIsApplied(t *testing.T) {
	s, rec := newSession(t, "<p>A</p><p>B</p>")

	s.BeginDrag(1)
	s.HoverDrag(0, upper(0), rect(0))
	require.True(t, s.Drop(0))
	emitted := rec.last(t)

	require.True(t, s.OnExternalChange("<p>C</p>"))
	assert.True(t, s.OnExternalChange(emitted), "document differs from restored markup")
	assert.Equal(t, []string{"<p>B</p>", "<p>A</p>"}, markups(s))
}

func TestSession_SynchronousEcho(t *testing.T) {
	var (
		s       *editor.Session
		applied []bool
	)
	s = editor.NewSession(nil, nil, editor.WithEmitter(editor.EmitterFunc(func(markup string) {
		assert.Equal(t, editor.GuardEmitting, s.GuardState())
		applied = append(applied, s.OnExternalChange(markup))
	})))
	s.OnExternalChange("<p>A</p><p>B</p>")
	ids := s.Document().IDs()

	s.BeginDrag(1)
	s.HoverDrag(0, upper(0), rect(0))
	require.True(t, s.Drop(0))

	assert.Equal(t, []bool{false}, applied)
	assert.Equal(t, []string{ids[1], ids[0]}, s.Document().IDs())
}

func TestSession_ChangeDuringEmissionIsDeferred(t *testing.T) {
	var s *editor.Session
	s = editor.NewSession(nil, nil, editor.WithEmitter(editor.EmitterFunc(func(string) {
		assert.False(t, s.OnExternalChange("<h1>Replaced</h1>"))
		assert.Equal(t, 2, s.Len(), "document is not replaced while emitting")
	})))
	s.OnExternalChange("<p>A</p><p>B</p>")

	s.OnDocumentMutated()
	assert.Equal(t, []string{"<h1>Replaced</h1>"}, markups(s))
}

func TestSession_InsertFromPalette(t *testing.T) {
	s, rec := newSession(t, "<p>A</p><p>B</p>")

	s.BeginInsert(`<div style="padding: 8px; border-radius: 4px">New</div>`)
	s.HoverInsert(0, lower(0), rect(0))
	id, ok := s.DropInsert(0)
	require.True(t, ok)

	doc := s.Document()
	require.Len(t, doc, 3)
	assert.Equal(t, id, doc[1].ID)
	assert.Equal(t, common.BlockKindCard, doc[1].Kind)
	assert.Equal(t, 1, rec.snapshots)

	selected, _ := s.UI().Selected()
	assert.Equal(t, id, selected)

	// appended right after selection
	next := s.AppendTemplate("<blockquote>Q</blockquote>")
	assert.Equal(t, next, s.Document()[2].ID)
	assert.Equal(t, common.BlockKindCard, s.Document()[2].Kind, "palette blocks default to card")

	require.True(t, s.Select(""))
	last := s.AppendTemplate("<p>Z</p>")
	assert.Equal(t, last, s.Document()[4].ID)
	assert.False(t, s.Select("missing"))
}

func TestSession_BlockOperations(t *testing.T) {
	s, rec := newSession(t, "<p>A</p><p>B</p>")
	doc := s.Document()
	a, b := doc[0].ID, doc[1].ID

	dup, ok := s.Duplicate(a)
	require.True(t, ok)
	assert.NotEqual(t, a, dup)
	assert.Equal(t, []string{a, dup, b}, s.Document().IDs())
	assert.Equal(t, 1, rec.snapshots)

	require.True(t, s.UpdateMarkup(dup, "<h2>Title</h2>"))
	got, _ := s.Block(dup)
	assert.Equal(t, "<h2>Title</h2>", got.Markup)
	assert.Equal(t, common.BlockKindContent, got.Kind)
	assert.Equal(t, "Title", got.PreviewText)

	require.True(t, s.SetMobileWidth(b, 10))
	got, _ = s.Block(b)
	assert.Equal(t, block.MinMobileWidth, got.MobileWidth)
	assert.Contains(t, rec.last(t), `data-mobile-width="25"`)

	s.UI().SetSettingsOpen(a, true)
	require.True(t, s.Delete(a))
	assert.False(t, s.UI().SettingsOpen(a))
	assert.Equal(t, []string{dup, b}, s.Document().IDs())
	assert.Equal(t, 2, rec.snapshots)

	assert.False(t, s.Delete(a))
	_, ok = s.Duplicate(a)
	assert.False(t, ok)
	assert.False(t, s.UpdateMarkup(a, "<p/>"))
	assert.False(t, s.SetMobileWidth(a, 50))
	assert.False(t, s.ResetSize(a))
	assert.Equal(t, 2, rec.snapshots)
	assert.Len(t, rec.emitted, 4)
}

func TestSession_ResetSizeStripsAnnotations(t *testing.T) {
	s, rec := newSession(t, `<p data-width="300" data-mobile-width="50" style="color: red; width: 50%; box-sizing: border-box;">X</p>`)
	b := s.Document()[0]
	require.Equal(t, block.Pixels(300), b.Width)
	require.Equal(t, 50, b.MobileWidth)

	require.True(t, s.ResetSize(b.ID))
	assert.Equal(t, `<p style="color: red;">X</p>`, rec.last(t))

	// survives round trip as unsized block
	assert.True(t, s.OnExternalChange(rec.last(t)+" "))
	assert.False(t, s.Document()[0].IsSized())
}

func TestSession_ExternalChangePrunesUIState(t *testing.T) {
	s, _ := newSession(t, "<p>A</p><p>B</p>")
	id := s.Document()[0].ID
	s.Select(id)
	s.UI().SetAlignment(id, common.AlignmentCenter)
	s.BeginDrag(0)

	s.OnExternalChange("<p>C</p>")
	_, ok := s.UI().Selected()
	assert.False(t, ok)
	assert.Equal(t, common.AlignmentLeft, s.UI().Alignment(id))
	assert.False(t, s.Drop(0), "drag does not survive document replacement")
}

func TestSession_MarkupMatchesEmission(t *testing.T) {
	s, rec := newSession(t, `<div class="card"><h2>T</h2><p>D</p></div>text`)
	id := s.Document()[0].ID
	require.True(t, s.SetMobileWidth(id, 60))

	assert.Equal(t, s.Markup(), rec.last(t))
	assert.True(t, strings.HasSuffix(s.Markup(), "\n<p>text</p>"))
}
