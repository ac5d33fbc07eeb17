package docs

import (
	"html/template"
	"strings"
	"time"

	"github.com/opendataloader-project/odlsite/internal/frontmatter"
)

// URLPrefix is where the collection is mounted.
const URLPrefix = "/docs"

// Page is one rendered documentation page.
type Page struct {
	Slugs        []string
	URL          string
	Meta         frontmatter.Meta
	HTML         template.HTML
	TOC          []Heading
	LastModified time.Time
	Fingerprint  string
	SourcePath   string // relative to the content directory, slash separated
	Markdown     []byte // body with MDX module lines removed
}

// Title is the frontmatter title.
func (p *Page) Title() string { return p.Meta.Title }

// Description is the frontmatter description.
func (p *Page) Description() string { return p.Meta.Description }

// ETag is the quoted fingerprint.
func (p *Page) ETag() string {
	if p.Fingerprint == "" {
		return ""
	}
	return `"` + p.Fingerprint + `"`
}

// Heading is a table-of-contents entry.
type Heading struct {
	ID    string
	Text  string
	Level int
}

// slugsFor maps a content-relative path to page slugs. index files take the
// slug of their folder.
func slugsFor(rel string) []string {
	rel = strings.TrimSuffix(strings.TrimSuffix(rel, ".mdx"), ".md")
	parts := strings.Split(rel, "/")
	if parts[len(parts)-1] == "index" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

func urlFor(slugs []string) string {
	if len(slugs) == 0 {
		return URLPrefix
	}
	return URLPrefix + "/" + strings.Join(slugs, "/")
}

func slugKey(slugs []string) string {
	return strings.Join(slugs, "/")
}
