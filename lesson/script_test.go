package lesson

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"lbe/block"
	"lbe/common"
	"lbe/editor"
	"lbe/palette"
)

func TestParseScript(t *testing.T) {
	s, err := ParseScript([]byte(`
steps:
  - op: drag
    block: 0
    target: 2
    position: below
  - op: resize
    block: 1
    handle: se
    rendered: [370, 100]
    delta: [20, 10]
  - op: insert
    template: step
    text: Measure twice
`))
	require.NoError(t, err)
	require.Len(t, s.Steps, 3)

	assert.Equal(t, common.EditOpDrag, s.Steps[0].Op)
	assert.Equal(t, common.DropPositionBelow, s.Steps[0].Position)
	assert.Equal(t, common.ResizeDirectionSe, s.Steps[1].Handle)
	assert.Equal(t, [2]int{370, 100}, s.Steps[1].Rendered)
	assert.Equal(t, [2]float64{20, 10}, s.Steps[1].Delta)
	assert.Equal(t, "Measure twice", s.Steps[2].Text)
}

func TestParseScript_Errors(t *testing.T) {
	for name, src := range map[string]string{
		"unknown field": "steps:\n  - op: drag\n    colour: red\n",
		"unknown op":    "steps:\n  - op: rotate\n",
		"missing op":    "steps:\n  - block: 1\n",
		"bad handle":    "steps:\n  - op: resize\n    handle: up\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseScript([]byte(src))
			assert.Error(t, err)
		})
	}
}

func runScript(t *testing.T, markup, script string) (*editor.Session, error) {
	t.Helper()
	s, err := ParseScript([]byte(script))
	require.NoError(t, err)
	pal, err := palette.Load("")
	require.NoError(t, err)

	log := zaptest.NewLogger(t)
	sess := editor.NewSession(nil, log)
	require.True(t, sess.OnExternalChange(markup))
	return sess, s.Run(context.Background(), sess, pal, "Fractions", log)
}

func TestScript_Run(t *testing.T) {
	sess, err := runScript(t, "<p>A</p><p>B</p><p>C</p>", `
steps:
  - {op: drag, block: 0, target: 2, position: below}
  - {op: append, markup: "<p>D</p>"}
  - {op: delete, block: 0}
  - {op: duplicate, block: 0}
  - {op: edit, block: 1, markup: "<p>E</p>"}
`)
	require.NoError(t, err)
	assert.Equal(t, []string{"<p>C</p>", "<p>E</p>", "<p>A</p>", "<p>D</p>"}, sess.Document().Markups())
}

func TestScript_Resize(t *testing.T) {
	sess, err := runScript(t, "<p>A</p><p>B</p>", `
steps:
  - {op: resize, block: 1, handle: e, rendered: [370, 100], delta: [20, 10]}
  - {op: resize, block: 0, handle: e, rendered: [370, 100], delta: [20, 10], cancel: true}
  - {op: mobile-width, block: 1, percent: 10}
`)
	require.NoError(t, err)

	doc := sess.Document()
	assert.False(t, doc[0].IsSized())
	assert.Equal(t, block.Pixels(390), doc[1].Width)
	assert.Equal(t, block.Pixels(100), doc[1].Height)
	assert.Equal(t, block.MinMobileWidth, doc[1].MobileWidth)

	sess, err = runScript(t, sess.Markup(), `
steps:
  - {op: reset, block: 1}
`)
	require.NoError(t, err)
	assert.False(t, sess.Document()[1].IsSized())
}

func TestScript_Palette(t *testing.T) {
	sess, err := runScript(t, "<p>A</p>", `
steps:
  - {op: insert, template: step, text: Measure twice, target: 0}
  - {op: select, block: 1}
  - {op: append, template: hero-banner}
  - {op: align, block: 2, alignment: center}
  - {op: lock, block: 2, lock: true}
`)
	require.NoError(t, err)

	doc := sess.Document()
	require.Len(t, doc, 3)
	assert.Contains(t, doc[0].Markup, "Step 1")
	assert.Contains(t, doc[0].Markup, "Measure twice")
	assert.Equal(t, "<p>A</p>", doc[1].Markup)
	assert.Contains(t, doc[2].Markup, "<h1>Fractions</h1>")

	id, ok := sess.UI().Selected()
	require.True(t, ok)
	assert.Equal(t, doc[2].ID, id)
	assert.Equal(t, common.AlignmentCenter, sess.UI().Alignment(id))
	assert.True(t, sess.UI().AspectLock(id))
}

func TestScript_Failures(t *testing.T) {
	for name, script := range map[string]string{
		"drag out of range": "steps:\n  - {op: drag, block: 5, target: 0}\n",
		"drop on itself":    "steps:\n  - {op: drag, block: 0, target: 0}\n",
		"delete missing":    "steps:\n  - {op: delete, block: 9}\n",
		"unknown template":  "steps:\n  - {op: append, template: nope}\n",
		"select missing":    "steps:\n  - {op: select, block: -1}\n",
		"resize bad block":  "steps:\n  - {op: resize, block: 3, handle: s, rendered: [100, 100]}\n",
	} {
		t.Run(name, func(t *testing.T) {
			sess, err := runScript(t, "<p>A</p><p>B</p>", script)
			assert.Error(t, err)
			assert.Equal(t, []string{"<p>A</p>", "<p>B</p>"}, sess.Document().Markups())
		})
	}
}

func TestScript_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s, err := ParseScript([]byte("steps:\n  - {op: delete, block: 0}\n"))
	require.NoError(t, err)
	sess := editor.NewSession(nil, zaptest.NewLogger(t))
	sess.OnExternalChange("<p>A</p>")

	assert.ErrorIs(t, s.Run(ctx, sess, nil, "", zaptest.NewLogger(t)), context.Canceled)
	assert.Equal(t, 1, sess.Len())
}
