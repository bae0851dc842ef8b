package block

import (
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"lbe/common"
	"lbe/markup"
)

// Data attributes carrying block layout through markup round trips.
const (
	AttrWidth       = "data-width"
	AttrHeight      = "data-height"
	AttrMobileWidth = "data-mobile-width"
)

// DefaultPreviewLength is the number of runes kept in block preview text.
const DefaultPreviewLength = 80

// Factory creates blocks from markup elements. It never fails: anything it
// cannot make sense of becomes raw block preserving original markup.
type Factory struct {
	log           *zap.Logger
	classifier    *Classifier
	ids           IDSource
	previewLength int
}

type FactoryOption func(*Factory)

// WithIDSource replaces default id sequence.
func WithIDSource(ids IDSource) FactoryOption {
	return func(f *Factory) {
		if ids != nil {
			f.ids = ids
		}
	}
}

// WithPreviewLength sets preview text limit in runes.
func WithPreviewLength(n int) FactoryOption {
	return func(f *Factory) {
		if n > 0 {
			f.previewLength = n
		}
	}
}

// NewFactory creates block factory.
func NewFactory(log *zap.Logger, opts ...FactoryOption) *Factory {
	if log == nil {
		log = zap.NewNop()
	}
	f := &Factory{
		log:           log.Named("factory"),
		classifier:    NewClassifier(log),
		ids:           NewSequence(""),
		previewLength: DefaultPreviewLength,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Classifier returns classifier used by the factory.
func (f *Factory) Classifier() *Classifier {
	return f.classifier
}

// FromElement converts element subtree into a block. Kind is card when
// classifier says so, fallback otherwise.
func (f *Factory) FromElement(n *html.Node, fallback common.BlockKind) Block {
	out, err := markup.Render(n)
	if err != nil {
		f.log.Debug("Unable to render element, using its text", zap.Error(err))
		return f.Raw(markup.TextContent(n))
	}
	return f.fromElement(n, out, fallback)
}

// FromMarkup converts markup with single root element into a block holding
// rendered element subtree. Malformed input or input without single root
// element becomes raw block with markup unchanged.
func (f *Factory) FromMarkup(src string, fallback common.BlockKind) Block {
	root, out, ok := f.parseRoot(src)
	if !ok {
		return f.Raw(src)
	}
	return f.fromElement(root, out, fallback)
}

// parseRoot returns single root element of src with its rendered markup.
func (f *Factory) parseRoot(src string) (*html.Node, string, bool) {
	nodes, err := markup.ParseFragment(src)
	if err != nil {
		f.log.Debug("Unable to parse markup, keeping it raw", zap.Error(err))
		return nil, "", false
	}
	root := markup.RootElement(nodes)
	if root == nil {
		f.log.Debug("Markup has no single root element, keeping it raw", zap.Int("nodes", len(nodes)))
		return nil, "", false
	}
	out, err := markup.Render(root)
	if err != nil {
		f.log.Debug("Unable to render markup, keeping it raw", zap.Error(err))
		return nil, "", false
	}
	return root, out, true
}

// Text creates block for a loose text run, wrapped into paragraph.
func (f *Factory) Text(text string) Block {
	text = strings.TrimSpace(text)
	p := &html.Node{Type: html.ElementNode, Data: "p", DataAtom: atom.P}
	p.AppendChild(&html.Node{Type: html.TextNode, Data: text})

	out, err := markup.Render(p)
	if err != nil {
		out = "<p>" + html.EscapeString(text) + "</p>"
	}
	return Block{
		ID:          f.ids.NewID(),
		Kind:        common.BlockKindText,
		TagName:     "P",
		Markup:      out,
		PreviewText: markup.Truncate(text, f.previewLength),
		MobileWidth: DefaultMobileWidth,
	}
}

// Raw creates block which is never transformed: kind element, no sizes.
func (f *Factory) Raw(src string) Block {
	return Block{
		ID:          f.ids.NewID(),
		Kind:        common.BlockKindElement,
		Markup:      src,
		PreviewText: markup.Truncate(markup.CollapseSpace(stripTags(src)), f.previewLength),
		MobileWidth: DefaultMobileWidth,
	}
}

// Refresh re-derives block metadata after its content was edited. Identity
// and layout stay with the block.
func (f *Factory) Refresh(b Block, src string) Block {
	nb := f.Raw(src)
	if root, out, ok := f.parseRoot(src); ok {
		nb = f.fromElement(root, out, KindOf(root))
	}
	nb.ID, nb.Width, nb.Height, nb.MobileWidth = b.ID, b.Width, b.Height, b.MobileWidth
	return nb
}

// Duplicate copies block content and layout under a new id.
func (f *Factory) Duplicate(b Block) Block {
	b.ID = f.ids.NewID()
	return b
}

func (f *Factory) fromElement(n *html.Node, src string, fallback common.BlockKind) Block {
	return f.build(n, src, fallback, f.classifier.IsCard(n))
}

func (f *Factory) build(n *html.Node, src string, fallback common.BlockKind, card bool) Block {
	b := Block{
		ID:          f.ids.NewID(),
		Kind:        fallback,
		TagName:     markup.TagName(n),
		Markup:      src,
		PreviewText: f.preview(n),
		Width:       sizeAttr(n, AttrWidth),
		Height:      sizeAttr(n, AttrHeight),
		MobileWidth: mobileWidthAttr(n),
	}
	if card {
		b.Kind, b.IsCard = common.BlockKindCard, true
	}
	return b
}

func (f *Factory) preview(n *html.Node) string {
	text := markup.CollapseSpace(markup.TextContent(n))
	if text == "" {
		// media has nothing to show except description
		for _, key := range []string{"alt", "title", "aria-label"} {
			if v, ok := markup.Attr(n, key); ok && strings.TrimSpace(v) != "" {
				text = markup.CollapseSpace(v)
				break
			}
		}
	}
	return markup.Truncate(text, f.previewLength)
}

func sizeAttr(n *html.Node, key string) Size {
	v, ok := markup.Attr(n, key)
	if !ok {
		return Auto()
	}
	px, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return Auto()
	}
	return Pixels(px)
}

func mobileWidthAttr(n *html.Node) int {
	v, ok := markup.Attr(n, AttrMobileWidth)
	if !ok {
		return DefaultMobileWidth
	}
	pct, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return DefaultMobileWidth
	}
	return ClampMobileWidth(pct)
}

// stripTags drops everything between angle brackets, good enough for preview
// of markup the DOM parser could not structure.
func stripTags(s string) string {
	var sb strings.Builder
	depth := 0
	for _, r := range s {
		switch {
		case r == '<':
			depth++
			sb.WriteByte(' ')
		case r == '>' && depth > 0:
			depth--
		case depth == 0:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
