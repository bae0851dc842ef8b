// Package markup contains helpers over golang.org/x/net/html DOM used by the
// block model: fragment parsing in body context, rendering and attribute
// access.
package markup

import (
	"bytes"
	"fmt"
	"io"
	"iter"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/net/html/charset"
)

// bodyContext returns fresh context node for fragment parsing, lesson markup
// is always body content.
func bodyContext() *html.Node {
	return &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
}

// ParseFragment parses markup as content of <body>.
func ParseFragment(s string) ([]*html.Node, error) {
	nodes, err := html.ParseFragment(strings.NewReader(s), bodyContext())
	if err != nil {
		return nil, fmt.Errorf("unable to parse markup fragment: %w", err)
	}
	return nodes, nil
}

// RootElement returns the only element among top level fragment nodes. Blank
// text and comments around it are tolerated, anything else is not.
func RootElement(nodes []*html.Node) *html.Node {
	var root *html.Node
	for _, n := range nodes {
		switch n.Type {
		case html.ElementNode:
			if root != nil {
				return nil
			}
			root = n
		case html.TextNode:
			if !IsBlank(n) {
				return nil
			}
		case html.CommentNode:
		default:
			return nil
		}
	}
	return root
}

// Render returns outer markup of the node.
func Render(n *html.Node) (string, error) {
	var sb strings.Builder
	if err := html.Render(&sb, n); err != nil {
		return "", fmt.Errorf("unable to render %s: %w", describe(n), err)
	}
	return sb.String(), nil
}

// RenderChildren returns inner markup of the node.
func RenderChildren(n *html.Node) (string, error) {
	var sb strings.Builder
	for c := range n.ChildNodes() {
		if err := html.Render(&sb, c); err != nil {
			return "", fmt.Errorf("unable to render %s: %w", describe(c), err)
		}
	}
	return sb.String(), nil
}

// TextContent returns concatenated text of all descendant text nodes.
func TextContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for d := range n.Descendants() {
		if d.Type == html.TextNode {
			sb.WriteString(d.Data)
		}
	}
	return sb.String()
}

// CollapseSpace trims and replaces runs of white space with a single space.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Truncate cuts s to at most limit runes.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}

// IsBlank reports white space only text node.
func IsBlank(n *html.Node) bool {
	return n.Type == html.TextNode && strings.TrimSpace(n.Data) == ""
}

// HasContent reports whether element has any child element or non blank
// text.
func HasContent(n *html.Node) bool {
	for c := range n.ChildNodes() {
		switch c.Type {
		case html.ElementNode:
			return true
		case html.TextNode:
			if !IsBlank(c) {
				return true
			}
		}
	}
	return false
}

// HasChildElements reports whether node has element children.
func HasChildElements(n *html.Node) bool {
	for c := range n.ChildNodes() {
		if c.Type == html.ElementNode {
			return true
		}
	}
	return false
}

// TagName returns element name in upper case.
func TagName(n *html.Node) string {
	return strings.ToUpper(n.Data)
}

// Attr returns value of the attribute.
func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr replaces attribute value in place or appends new attribute.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr deletes attribute, returns true if it was present.
func RemoveAttr(n *html.Node, key string) bool {
	for i, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return true
		}
	}
	return false
}

// Classes returns element class list.
func Classes(n *html.Node) []string {
	v, _ := Attr(n, "class")
	return strings.Fields(v)
}

// Elements iterates over element descendants of n in document order.
func Elements(n *html.Node) iter.Seq[*html.Node] {
	return func(yield func(*html.Node) bool) {
		for d := range n.Descendants() {
			if d.Type == html.ElementNode && !yield(d) {
				return
			}
		}
	}
}

// NewReader returns UTF-8 reader for HTML source, encoding is detected from
// BOM, content type or <meta> declarations.
func NewReader(r io.Reader, contentType string) (io.Reader, error) {
	cr, err := charset.NewReader(r, contentType)
	if err != nil {
		return nil, fmt.Errorf("unable to detect markup encoding: %w", err)
	}
	return cr, nil
}

// IsDocument reports whether source looks like complete HTML document rather
// than body fragment.
func IsDocument(data []byte) bool {
	head := data[:min(len(data), 1024)]
	head = bytes.ToLower(head)
	return bytes.Contains(head, []byte("<!doctype")) ||
		bytes.Contains(head, []byte("<html")) ||
		bytes.Contains(head, []byte("<body"))
}

// Body returns inner markup of <body> of a complete document. Fragments are
// returned as is.
func Body(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("unable to read markup: %w", err)
	}
	if !IsDocument(data) {
		return string(data), nil
	}
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("unable to parse document: %w", err)
	}
	for n := range doc.Descendants() {
		if n.Type == html.ElementNode && n.DataAtom == atom.Body {
			return RenderChildren(n)
		}
	}
	return "", nil
}

func describe(n *html.Node) string {
	switch n.Type {
	case html.ElementNode:
		return "<" + n.Data + ">"
	case html.TextNode:
		return "text node"
	case html.CommentNode:
		return "comment"
	}
	return "node"
}
