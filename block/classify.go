package block

import (
	"strings"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"lbe/css"
	"lbe/markup"
)

// cardVocabulary lists class names which mark visual role of a container.
var cardVocabulary = map[string]struct{}{
	"card": {}, "box": {}, "panel": {}, "alert": {}, "hero": {}, "banner": {},
	"section": {}, "container": {}, "wrapper": {}, "module": {}, "widget": {},
	"callout": {}, "tile": {}, "notice": {}, "feature": {}, "highlight": {},
	"jumbotron": {},
}

var borderProperties = []string{"border", "border-top", "border-right", "border-bottom", "border-left"}

// Classifier decides whether element is a card: self contained styled unit
// which must not be decomposed into its children. The decision is permissive
// OR of independent signals, false positives only make bigger blocks.
type Classifier struct {
	log *zap.Logger
	css *css.Parser
}

// NewClassifier creates classifier.
func NewClassifier(log *zap.Logger) *Classifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &Classifier{log: log.Named("classifier"), css: css.NewParser(log)}
}

// IsCard reports whether element should be kept as a single block.
func (c *Classifier) IsCard(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}

	st := c.style(n)
	switch {
	case decoratedFill(st):
		c.log.Debug("Card by decoration", zap.String("tag", n.Data))
		return true
	case paddedFrame(st):
		c.log.Debug("Card by padded frame", zap.String("tag", n.Data))
		return true
	case roleClass(n):
		c.log.Debug("Card by class", zap.String("tag", n.Data))
		return true
	case cardStructure(n):
		c.log.Debug("Card by structure", zap.String("tag", n.Data))
		return true
	}
	return false
}

// style returns parsed inline style of the element.
func (c *Classifier) style(n *html.Node) *css.Style {
	v, _ := markup.Attr(n, "style")
	return c.css.ParseInline(v)
}

// decoratedFill: fill together with decoration, or a shadow on its own.
func decoratedFill(st *css.Style) bool {
	if hasShadow(st) {
		return true
	}
	return hasFill(st) && (hasRadius(st) || hasBorder(st))
}

// paddedFrame: non-zero padding inside a border or rounded corners.
func paddedFrame(st *css.Style) bool {
	return hasPadding(st) && (hasBorder(st) || hasRadius(st))
}

func hasFill(st *css.Style) bool {
	for d := range st.All() {
		switch d.Property {
		case "background", "background-color", "background-image":
			if d.Value.IsGradient() || !d.Value.IsTransparent() {
				return true
			}
		case "color":
			if !d.Value.IsTransparent() {
				return true
			}
		}
	}
	return false
}

func hasShadow(st *css.Style) bool {
	v, ok := st.Get("box-shadow")
	return ok && !v.IsTransparent()
}

func hasRadius(st *css.Style) bool {
	for d := range st.All() {
		if strings.HasPrefix(d.Property, "border-") && strings.HasSuffix(d.Property, "radius") && d.Value.HasNonZero() {
			return true
		}
	}
	return false
}

func hasBorder(st *css.Style) bool {
	for _, p := range borderProperties {
		if v, ok := st.Get(p); ok && v.IsVisibleLine() {
			return true
		}
	}
	if v, ok := st.Get("border-width"); ok && v.HasNonZero() {
		if s, ok := st.Get("border-style"); !ok || s.IsVisibleLine() {
			return true
		}
	}
	return false
}

func hasPadding(st *css.Style) bool {
	for d := range st.All() {
		if strings.HasPrefix(d.Property, "padding") && d.Value.HasNonZero() {
			return true
		}
	}
	return false
}

// roleClass matches whole words of class attribute against vocabulary.
func roleClass(n *html.Node) bool {
	v, ok := markup.Attr(n, "class")
	if !ok {
		return false
	}
	words := strings.FieldsFunc(strings.ToLower(v), func(r rune) bool {
		return !(r == '_' || r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)))
	})
	for _, w := range words {
		if _, ok := cardVocabulary[w]; ok {
			return true
		}
	}
	return false
}

// cardStructure: generic container holding a heading and some body.
func cardStructure(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Div, atom.Section, atom.Article:
	default:
		return false
	}
	var heading, body bool
	for e := range markup.Elements(n) {
		switch e.DataAtom {
		case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
			heading = true
		case atom.P, atom.Ul, atom.Ol, atom.Div:
			body = true
		}
		if heading && body {
			return true
		}
	}
	return false
}
