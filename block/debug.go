package block

import (
	"lbe/utils/debug"
)

// long markup is clipped in dumps, manifest keeps it whole
const markupDumpLimit = 400

// String returns human readable dump of the document for logs and reports.
func (d Document) String() string {
	tw := debug.NewTreeWriter(debug.WithTextLimit(markupDumpLimit))
	tw.Line(0, "Document (%d blocks)", len(d))
	for i := range d {
		b := &d[i]
		tw.Line(1, "[%d] %s kind=%s tag=%s card=%t", i, b.ID, b.Kind, b.TagName, b.IsCard)
		tw.Line(2, "size=%sx%s mobile=%d%%", b.Width, b.Height, b.MobileWidth)
		tw.TextBlock(2, "preview", b.PreviewText)
		tw.TextBlock(2, "markup", b.Markup)
	}
	return tw.String()
}
