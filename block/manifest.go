package block

import (
	"fmt"
	"io"
	"strconv"

	"github.com/beevik/etree"

	"lbe/common"
)

// Manifest is XML description of a document: block metadata together with
// markup. It is used for debug dumps and reports, document could be restored
// from it with all ids intact.
func Manifest(doc Document) *etree.Document {
	x := etree.NewDocument()
	x.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := x.CreateElement("blocks")
	root.CreateAttr("count", strconv.Itoa(len(doc)))

	for i := range doc {
		b := &doc[i]
		el := root.CreateElement("block")
		el.CreateAttr("id", b.ID)
		el.CreateAttr("kind", b.Kind.String())
		if b.TagName != "" {
			el.CreateAttr("tag", b.TagName)
		}
		if b.IsCard {
			el.CreateAttr("card", "true")
		}
		el.CreateAttr("width", b.Width.String())
		el.CreateAttr("height", b.Height.String())
		el.CreateAttr("mobile-width", strconv.Itoa(b.MobileWidth))
		if b.PreviewText != "" {
			el.CreateElement("preview").SetText(b.PreviewText)
		}
		el.CreateElement("markup").SetText(b.Markup)
	}
	x.Indent(2)
	return x
}

// WriteManifest writes XML manifest of the document.
func WriteManifest(w io.Writer, doc Document) error {
	if _, err := Manifest(doc).WriteTo(w); err != nil {
		return fmt.Errorf("unable to write block manifest: %w", err)
	}
	return nil
}

// ReadManifest restores document from XML manifest.
func ReadManifest(r io.Reader) (Document, error) {
	x := etree.NewDocument()
	if _, err := x.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("unable to read block manifest: %w", err)
	}
	root := x.Root()
	if root == nil || root.Tag != "blocks" {
		return nil, fmt.Errorf("unexpected block manifest root element")
	}

	var doc Document
	for i, el := range root.SelectElements("block") {
		b := Block{
			ID:      el.SelectAttrValue("id", ""),
			TagName: el.SelectAttrValue("tag", ""),
			IsCard:  el.SelectAttrValue("card", "") == "true",
		}
		if b.ID == "" {
			return nil, fmt.Errorf("block %d: missing id", i)
		}
		if doc.Index(b.ID) >= 0 {
			return nil, fmt.Errorf("block %d: duplicate id %q", i, b.ID)
		}
		kind, err := common.ParseBlockKind(el.SelectAttrValue("kind", ""))
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		b.Kind = kind
		if b.Width, err = parseManifestSize(el.SelectAttrValue("width", "auto")); err != nil {
			return nil, fmt.Errorf("block %d: width: %w", i, err)
		}
		if b.Height, err = parseManifestSize(el.SelectAttrValue("height", "auto")); err != nil {
			return nil, fmt.Errorf("block %d: height: %w", i, err)
		}
		b.MobileWidth = DefaultMobileWidth
		if v := el.SelectAttrValue("mobile-width", ""); v != "" {
			pct, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("block %d: mobile width: %w", i, err)
			}
			b.MobileWidth = ClampMobileWidth(pct)
		}
		if p := el.SelectElement("preview"); p != nil {
			b.PreviewText = p.Text()
		}
		if m := el.SelectElement("markup"); m != nil {
			b.Markup = m.Text()
		}
		doc = append(doc, b)
	}
	return doc, nil
}

func parseManifestSize(v string) (Size, error) {
	if v == "auto" || v == "" {
		return Auto(), nil
	}
	px, err := strconv.Atoi(v)
	if err != nil {
		return Auto(), err
	}
	return Pixels(px), nil
}
