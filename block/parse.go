package block

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"lbe/common"
	"lbe/markup"
)

// DefaultMaxDepth limits container unwrapping on pathological input.
const DefaultMaxDepth = 10

// selfContained elements are meaningful without any content.
var selfContained = map[atom.Atom]bool{
	atom.Img: true, atom.Hr: true, atom.Iframe: true, atom.Video: true,
	atom.Audio: true, atom.Canvas: true, atom.Svg: true, atom.Embed: true,
	atom.Object: true, atom.Picture: true, atom.Input: true,
}

// KindOf maps element to block kind by tag name.
func KindOf(n *html.Node) common.BlockKind {
	switch n.DataAtom {
	case atom.Img, atom.Video, atom.Iframe, atom.Canvas, atom.Svg:
		return common.BlockKindMedia
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6, atom.P, atom.Blockquote:
		return common.BlockKindContent
	case atom.Ul, atom.Ol:
		return common.BlockKindList
	case atom.Table:
		return common.BlockKindTable
	case atom.Hr:
		return common.BlockKindDivider
	case atom.Figure:
		return common.BlockKindFigure
	}
	return common.BlockKindElement
}

// Parser converts lesson markup into a document. Every parse mints fresh
// block ids.
type Parser struct {
	log      *zap.Logger
	factory  *Factory
	maxDepth int
}

// NewParser creates parser, non positive maxDepth means default.
func NewParser(factory *Factory, maxDepth int, log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Parser{log: log.Named("parser"), factory: factory, maxDepth: maxDepth}
}

// Factory returns block factory used by the parser.
func (p *Parser) Factory() *Factory {
	return p.factory
}

// Parse walks markup depth first. Plain containers are unwrapped, cards and
// everything else become blocks, loose text becomes paragraphs.
func (p *Parser) Parse(src string) Document {
	nodes, err := markup.ParseFragment(src)
	if err != nil {
		p.log.Debug("Unable to parse document, keeping it as single block", zap.Error(err))
		return Document{p.factory.Raw(src)}
	}

	doc := make(Document, 0, len(nodes))
	for _, n := range nodes {
		doc = p.visit(n, 0, doc)
	}
	p.log.Debug("Document parsed", zap.Int("nodes", len(nodes)), zap.Int("blocks", len(doc)))
	return doc
}

func (p *Parser) visit(n *html.Node, depth int, doc Document) (result Document) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Debug("Element failed, keeping it raw", zap.String("node", n.Data), zap.Any("panic", r))
			result = append(doc, p.fallback(n))
		}
	}()

	switch n.Type {
	case html.TextNode:
		if markup.IsBlank(n) {
			return doc
		}
		return append(doc, p.factory.Text(n.Data))

	case html.ElementNode:
		if !selfContained[n.DataAtom] && !markup.HasContent(n) {
			return doc
		}
		card := p.factory.classifier.IsCard(n)
		if !card && depth < p.maxDepth && unwrappable(n) {
			for c := range n.ChildNodes() {
				doc = p.visit(c, depth+1, doc)
			}
			return doc
		}
		if depth >= p.maxDepth && unwrappable(n) {
			p.log.Debug("Depth limit reached, keeping container whole", zap.Int("depth", depth))
		}
		out, err := markup.Render(n)
		if err != nil {
			panic(fmt.Errorf("render: %w", err))
		}
		return append(doc, p.factory.build(n, out, KindOf(n), card))
	}
	// comments, doctype
	return doc
}

func (p *Parser) fallback(n *html.Node) Block {
	if out, err := markup.Render(n); err == nil {
		return p.factory.Raw(out)
	}
	return p.factory.Raw(markup.TextContent(n))
}

// unwrappable: unstyled generic container grouping other elements.
func unwrappable(n *html.Node) bool {
	if n.DataAtom != atom.Div && n.DataAtom != atom.Span {
		return false
	}
	if v, ok := markup.Attr(n, "style"); ok && strings.TrimSpace(v) != "" {
		return false
	}
	return markup.HasChildElements(n)
}
