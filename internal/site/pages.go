package site

import (
	"github.com/opendataloader-project/odlsite/internal/docs"
	"github.com/opendataloader-project/odlsite/internal/samples"
	"github.com/opendataloader-project/odlsite/internal/stats"
	"github.com/opendataloader-project/odlsite/internal/viewer"
)

// HomePage is the landing page.
type HomePage struct {
	Sections Sections
	Stats    stats.FormattedStats
}

// DemoPage is the demo landing page.
type DemoPage struct {
	Featured []samples.Doc
	Total    int
}

// Sample list layouts.
const (
	LayoutGrid = "grid"
	LayoutList = "list"
)

// SamplesPage lists the catalog.
type SamplesPage struct {
	Docs   []samples.Doc
	Query  string
	Layout string
	Total  int
}

// TabLink is one viewer tab button.
type TabLink struct {
	Tab    viewer.Tab
	Label  string
	Href   string
	Active bool
}

// Pane is one side of the sample viewer.
type Pane struct {
	Name   string // view1 or view2
	Active viewer.Tab
	Tabs   []TabLink
	State  viewer.DataState
	// Document is set for the pdf and annot tabs.
	Document string
	Preview  bool
}

// SamplePage is the two-pane viewer.
type SamplePage struct {
	Doc     samples.Doc
	Sidebar []samples.Doc
	Filter  string
	Panes   []Pane
	Views   [2]viewer.Tab
}

// DocsPage renders one documentation page.
type DocsPage struct {
	Page       *docs.Page
	Tree       *docs.Node
	Prev, Next *docs.Page
}

// ContactPage is the contact form.
type ContactPage struct {
	Configured bool
}

// ShowcasePage wraps the showcase copy.
type ShowcasePage struct {
	Showcase Showcase
}

// NotFoundPage is shown for unknown routes and samples.
type NotFoundPage struct {
	Message string
}
