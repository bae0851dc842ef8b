package lesson

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"

	"lbe/common"
	"lbe/editor"
	"lbe/palette"
)

// Step is a single scripted editing action. Blocks are addressed by their
// position at the moment step is executed.
type Step struct {
	Op common.EditOp `yaml:"op"`

	Block  int `yaml:"block"`
	Target int `yaml:"target"`
	// drop intent relative to target, "above" when omitted
	Position common.DropPosition `yaml:"position,omitempty"`

	Handle   common.ResizeDirection `yaml:"handle,omitempty"`
	Rendered [2]int                 `yaml:"rendered,flow,omitempty"`
	Delta    [2]float64             `yaml:"delta,flow,omitempty"`

	Template  string           `yaml:"template,omitempty"`
	Text      string           `yaml:"text,omitempty"`
	Markup    string           `yaml:"markup,omitempty"`
	Percent   int              `yaml:"percent,omitempty"`
	Alignment common.Alignment `yaml:"alignment,omitempty"`
	Lock      bool             `yaml:"lock,omitempty"`

	// abandon interaction instead of committing it
	Cancel bool `yaml:"cancel,omitempty"`
}

// Script is a sequence of editing steps applied to one lesson.
type Script struct {
	Steps []Step `yaml:"steps"`
}

// LoadScript reads script from YAML file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read script: %w", err)
	}
	return ParseScript(data)
}

// ParseScript decodes script rejecting unknown fields.
func ParseScript(data []byte) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to decode script: %w", err)
	}
	for i, st := range s.Steps {
		if !st.Op.IsValid() {
			return nil, fmt.Errorf("step %d: operation is missing or unknown", i+1)
		}
	}
	return &s, nil
}

// rows of a synthetic layout pointer events are generated against
const rowHeight = 20

func rowRect(i int) editor.Rect {
	return editor.Rect{Top: float64(i * rowHeight), Height: rowHeight}
}

func pointerY(i int, pos common.DropPosition) float64 {
	if pos == common.DropPositionBelow {
		return float64(i*rowHeight) + rowHeight*3/4
	}
	return float64(i*rowHeight) + rowHeight/4
}

// Run applies every step to session, stops at the first step which could not
// be performed.
func (s *Script) Run(ctx context.Context, sess *editor.Session, pal *palette.Palette, lessonName string, log *zap.Logger) error {
	for i, st := range s.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := st.apply(sess, pal, lessonName); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, st.Op, err)
		}
		log.Debug("Step applied", zap.Int("step", i+1), zap.Stringer("op", st.Op), zap.Int("blocks", sess.Len()))
	}
	return nil
}

func (st *Step) apply(sess *editor.Session, pal *palette.Palette, lessonName string) error {
	switch st.Op {
	case common.EditOpDrag:
		if !sess.BeginDrag(st.Block) {
			return errBlock(st.Block, sess)
		}
		sess.HoverDrag(st.Target, pointerY(st.Target, st.Position), rowRect(st.Target))
		if st.Cancel {
			sess.CancelDrag()
			return nil
		}
		if !sess.Drop(st.Target) {
			return fmt.Errorf("block %d cannot be dropped on %d", st.Block, st.Target)
		}

	case common.EditOpResize:
		rendered := editor.Dimensions{Width: st.Rendered[0], Height: st.Rendered[1]}
		if !sess.BeginResize(st.Block, st.Handle, editor.Point{}, rendered) {
			return fmt.Errorf("unable to resize block %d from handle %q", st.Block, st.Handle)
		}
		sess.MoveResize(editor.Point{X: st.Delta[0], Y: st.Delta[1]})
		if st.Cancel {
			sess.CancelResize()
			return nil
		}
		if !sess.EndResize() {
			return fmt.Errorf("resize of block %d was not committed", st.Block)
		}

	case common.EditOpInsert:
		markup, err := st.render(pal, lessonName, st.Target)
		if err != nil {
			return err
		}
		sess.BeginInsert(markup)
		sess.HoverInsert(st.Target, pointerY(st.Target, st.Position), rowRect(st.Target))
		if st.Cancel {
			sess.CancelInsert()
			return nil
		}
		if _, ok := sess.DropInsert(st.Target); !ok {
			return fmt.Errorf("unable to insert at %d", st.Target)
		}

	case common.EditOpAppend:
		markup, err := st.render(pal, lessonName, sess.Len())
		if err != nil {
			return err
		}
		sess.AppendTemplate(markup)

	case common.EditOpDelete:
		if !sess.Delete(st.id(sess)) {
			return errBlock(st.Block, sess)
		}

	case common.EditOpDuplicate:
		if _, ok := sess.Duplicate(st.id(sess)); !ok {
			return errBlock(st.Block, sess)
		}

	case common.EditOpMobileWidth:
		if !sess.SetMobileWidth(st.id(sess), st.Percent) {
			return errBlock(st.Block, sess)
		}

	case common.EditOpEdit:
		if !sess.UpdateMarkup(st.id(sess), st.Markup) {
			return errBlock(st.Block, sess)
		}

	case common.EditOpSelect:
		if id := st.id(sess); id == "" || !sess.Select(id) {
			return errBlock(st.Block, sess)
		}

	case common.EditOpAlign:
		id := st.id(sess)
		if id == "" {
			return errBlock(st.Block, sess)
		}
		sess.UI().SetAlignment(id, st.Alignment)

	case common.EditOpLock:
		id := st.id(sess)
		if id == "" {
			return errBlock(st.Block, sess)
		}
		sess.UI().SetAspectLock(id, st.Lock)

	case common.EditOpReset:
		if !sess.ResetSize(st.id(sess)) {
			return errBlock(st.Block, sess)
		}

	default:
		return fmt.Errorf("unsupported operation %q", st.Op)
	}
	return nil
}

// id returns id of the addressed block, empty when out of range.
func (st *Step) id(sess *editor.Session) string {
	doc := sess.Document()
	if st.Block < 0 || st.Block >= len(doc) {
		return ""
	}
	return doc[st.Block].ID
}

// render returns step markup: inline markup wins over palette template.
func (st *Step) render(pal *palette.Palette, lessonName string, index int) (string, error) {
	if st.Markup != "" {
		return st.Markup, nil
	}
	if pal == nil {
		return "", fmt.Errorf("no palette to take template %q from", st.Template)
	}
	t, ok := pal.Get(st.Template)
	if !ok {
		return "", fmt.Errorf("unknown template %q", st.Template)
	}
	return t.Render(palette.Values{Lesson: lessonName, Index: index, Text: st.Text})
}

func errBlock(i int, sess *editor.Session) error {
	return fmt.Errorf("no block %d, lesson has %d", i, sess.Len())
}
