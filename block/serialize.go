package block

import (
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"lbe/css"
	"lbe/markup"
)

// DefaultBreakout makes block span full width of mobile preview negating its
// horizontal padding.
const DefaultBreakout = "width: calc(100% + 32px); max-width: none; margin-left: -16px; margin-right: -16px"

// managedProperties are always owned by serializer, whatever block had there
// before is replaced.
var managedProperties = []string{"width", "height", "max-width", "overflow", "box-sizing"}

// Serializer converts document back to markup. Blocks without layout are
// emitted byte for byte, the rest get their root element annotated.
type Serializer struct {
	log      *zap.Logger
	css      *css.Parser
	breakout *css.Style
}

// NewSerializer creates serializer, empty breakout means default rule.
func NewSerializer(breakout string, log *zap.Logger) *Serializer {
	if log == nil {
		log = zap.NewNop()
	}
	if strings.TrimSpace(breakout) == "" {
		breakout = DefaultBreakout
	}
	p := css.NewParser(log)
	return &Serializer{
		log:      log.Named("serializer"),
		css:      p,
		breakout: p.ParseInline(breakout),
	}
}

// Serialize joins blocks markup with new lines.
func (s *Serializer) Serialize(doc Document) string {
	var sb strings.Builder
	for i := range doc {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(s.Block(&doc[i]))
	}
	return sb.String()
}

// Block returns markup of a single block with layout applied.
func (s *Serializer) Block(b *Block) string {
	if !b.IsSized() {
		return b.Markup
	}
	out, ok := s.rewrite(b.Markup, func(root *html.Node, st *css.Style) {
		if b.Width.IsAuto() {
			markup.RemoveAttr(root, AttrWidth)
		} else {
			markup.SetAttr(root, AttrWidth, strconv.Itoa(b.Width.Px()))
		}

		// pixel width belongs to editing surface, preview gets percentage
		if !b.Width.IsAuto() || b.MobileWidth != DefaultMobileWidth {
			if b.MobileWidth == DefaultMobileWidth {
				// breakout always trails author declarations
				st.Remove(s.breakout.Properties()...)
				st.Merge(s.breakout)
			} else {
				st.Merge(s.css.ParseDeclarations(
					"width", strconv.Itoa(ClampMobileWidth(b.MobileWidth))+"%",
					"box-sizing", "border-box"))
			}
		}

		if b.Height.IsAuto() {
			markup.RemoveAttr(root, AttrHeight)
		} else {
			markup.SetAttr(root, AttrHeight, strconv.Itoa(b.Height.Px()))
			st.Merge(s.css.ParseDeclarations("height", "auto"))
		}

		markup.SetAttr(root, AttrMobileWidth, strconv.Itoa(ClampMobileWidth(b.MobileWidth)))
	})
	if !ok {
		return b.Markup
	}
	return out
}

// Strip removes layout annotations previously added to block markup, used
// when block returns to automatic layout.
func (s *Serializer) Strip(src string) string {
	out, ok := s.rewrite(src, func(root *html.Node, _ *css.Style) {
		markup.RemoveAttr(root, AttrWidth)
		markup.RemoveAttr(root, AttrHeight)
		markup.RemoveAttr(root, AttrMobileWidth)
	})
	if !ok {
		return src
	}
	return out
}

// rewrite parses root element of markup, cleans its style from layout
// declarations and lets fn annotate it. Markup without single root element
// is not touched.
func (s *Serializer) rewrite(src string, fn func(root *html.Node, st *css.Style)) (string, bool) {
	nodes, err := markup.ParseFragment(src)
	if err != nil {
		s.log.Debug("Unable to parse block markup, leaving it as is", zap.Error(err))
		return "", false
	}
	root := markup.RootElement(nodes)
	if root == nil {
		s.log.Debug("Block markup has no root element, leaving it as is")
		return "", false
	}

	style, _ := markup.Attr(root, "style")
	st := s.css.ParseInline(style)
	s.clean(st)

	fn(root, st)

	if st.Len() > 0 {
		markup.SetAttr(root, "style", st.String())
	} else {
		markup.RemoveAttr(root, "style")
	}

	out, err := markup.Render(root)
	if err != nil {
		s.log.Debug("Unable to render block markup, leaving it as is", zap.Error(err))
		return "", false
	}
	return out, true
}

// clean drops managed declarations and whatever breakout rule left before.
// Breakout declarations are matched by value so margins set by author
// survive.
func (s *Serializer) clean(st *css.Style) {
	st.Remove(managedProperties...)
	for d := range s.breakout.All() {
		if v, ok := st.Get(d.Property); ok && v.Raw == d.Value.Raw {
			st.Remove(d.Property)
		}
	}
}
