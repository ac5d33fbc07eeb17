// Package viewer models the dual-pane sample viewer: which tabs exist, which
// payload each needs, and the per-sample load state of those payloads.
package viewer

import (
	"github.com/opendataloader-project/odlsite/internal/foundation/normalization"
	"github.com/opendataloader-project/odlsite/internal/samples"
)

// Tab is one view of a sample.
type Tab string

const (
	TabPDF     Tab = "pdf"
	TabAnnot   Tab = "annot"
	TabPreview Tab = "preview"
	TabHTML    Tab = "html"
	TabMD      Tab = "md"
	TabJSON    Tab = "json"
)

// Tabs lists every tab in display order.
var Tabs = []Tab{TabPDF, TabAnnot, TabPreview, TabHTML, TabMD, TabJSON}

const (
	DefaultPrimary   = TabAnnot
	DefaultSecondary = TabPreview
)

var tabLabels = map[Tab]string{
	TabPDF:     "PDF",
	TabAnnot:   "Annot",
	TabPreview: "Preview",
	TabHTML:    "HTML",
	TabMD:      "MD",
	TabJSON:    "JSON",
}

var tabNormalizer = normalization.NewNormalizer(map[string]Tab{
	"pdf":     TabPDF,
	"annot":   TabAnnot,
	"preview": TabPreview,
	"html":    TabHTML,
	"md":      TabMD,
	"json":    TabJSON,
}, "", normalization.Exact())

// Label is the tab's display name.
func (t Tab) Label() string { return tabLabels[t] }

// DataType is the payload the tab renders. PDF tabs embed the document itself
// and need none.
func (t Tab) DataType() (samples.DataType, bool) {
	switch t {
	case TabMD:
		return samples.DataMarkdown, true
	case TabJSON:
		return samples.DataJSON, true
	case TabHTML, TabPreview:
		return samples.DataHTML, true
	}
	return "", false
}

// ParseTab returns the tab named by raw, or fallback when raw is not a tab.
func ParseTab(raw string, fallback Tab) Tab {
	if t, ok := tabNormalizer.Lookup(raw); ok {
		return t
	}
	return fallback
}

// ResolveViews maps the view1/view2 query values onto the two panes.
func ResolveViews(view1, view2 string) (primary, secondary Tab) {
	return ParseTab(view1, DefaultPrimary), ParseTab(view2, DefaultSecondary)
}

// dataLabel is the label used in load error messages.
func dataLabel(dt samples.DataType) string {
	switch dt {
	case samples.DataMarkdown:
		return TabMD.Label()
	case samples.DataJSON:
		return TabJSON.Label()
	case samples.DataHTML:
		return TabHTML.Label()
	}
	return string(dt)
}
