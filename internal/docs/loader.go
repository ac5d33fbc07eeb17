package docs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	derrors "github.com/opendataloader-project/odlsite/internal/foundation/errors"
	"github.com/opendataloader-project/odlsite/internal/frontmatter"
	"github.com/opendataloader-project/odlsite/internal/logfields"
)

// Options configures loading.
type Options struct {
	Dir             string
	GitLastModified bool
}

// Collection is a loaded documentation tree.
type Collection struct {
	Root     *Node
	LoadedAt time.Time
	pages    []*Page
	bySlug   map[string]*Page
}

// Pages returns every page in sidebar order.
func (c *Collection) Pages() []*Page {
	out := make([]*Page, len(c.pages))
	copy(out, c.pages)
	return out
}

// Lookup finds the page for slugs; an empty slice is the root index.
func (c *Collection) Lookup(slugs []string) (*Page, bool) {
	p, ok := c.bySlug[slugKey(slugs)]
	return p, ok
}

// Neighbours returns the pages before and after p in sidebar order.
func (c *Collection) Neighbours(p *Page) (prev, next *Page) {
	for i, q := range c.pages {
		if q != p {
			continue
		}
		if i > 0 {
			prev = c.pages[i-1]
		}
		if i+1 < len(c.pages) {
			next = c.pages[i+1]
		}
		return prev, next
	}
	return nil, nil
}

// Load reads and renders every .md/.mdx file under opts.Dir.
func Load(ctx context.Context, opts Options, renderer *Renderer) (*Collection, error) {
	if renderer == nil {
		renderer = NewRenderer()
	}
	info, err := os.Stat(opts.Dir)
	if err != nil || !info.IsDir() {
		return nil, derrors.DocsError("docs content directory not found").
			WithCause(err).
			WithContext("dir", opts.Dir).
			Fatal().
			Build()
	}

	byRel := make(map[string]*Page)
	var sources []string
	err = filepath.WalkDir(opts.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			if path != opts.Dir && (strings.HasPrefix(d.Name(), ".") || strings.HasPrefix(d.Name(), "_")) {
				return filepath.SkipDir
			}
			return nil
		}
		ext := filepath.Ext(path)
		if ext != ".md" && ext != ".mdx" {
			return nil
		}
		rel, err := filepath.Rel(opts.Dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		page, err := loadPage(path, rel, renderer)
		if err != nil {
			return err
		}
		key := strings.TrimSuffix(rel, ext)
		if _, dup := byRel[key]; dup {
			return derrors.DocsError("both .md and .mdx exist for the same page").
				WithContext("doc_path", rel).
				Build()
		}
		byRel[key] = page
		sources = append(sources, path)
		return nil
	})
	if err != nil {
		if _, ok := derrors.AsClassified(err); ok || errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, derrors.WrapError(err, derrors.CategoryDocs, "failed to load docs").
			WithContext("dir", opts.Dir).
			Build()
	}

	resolveLastModified(opts, sources, byRel)

	root, err := buildTree(opts.Dir, "", byRel)
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryDocs, "failed to build docs tree").Build()
	}
	if root == nil {
		root = &Node{Folder: true, Title: "Documentation"}
	}
	root.URL = URLPrefix

	c := &Collection{Root: root, LoadedAt: time.Now().UTC(), bySlug: make(map[string]*Page, len(byRel))}
	root.Walk(func(n *Node) {
		if n.Page == nil {
			return
		}
		if _, seen := c.bySlug[slugKey(n.Page.Slugs)]; seen {
			return
		}
		c.bySlug[slugKey(n.Page.Slugs)] = n.Page
		c.pages = append(c.pages, n.Page)
	})

	slog.Info("Loaded docs", slog.Int("pages", len(c.pages)), slog.String("dir", opts.Dir))
	return c, nil
}

func loadPage(path, rel string, renderer *Renderer) (*Page, error) {
	// #nosec G304 -- path comes from walking the configured content directory
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := frontmatter.Split(content)
	if err != nil {
		return nil, pageError(rel, err)
	}
	meta, err := doc.Decode()
	if err != nil {
		return nil, pageError(rel, err)
	}
	fp, err := doc.Fingerprint()
	if err != nil {
		return nil, pageError(rel, err)
	}

	body := stripModuleLines(doc.Body)
	rendered, toc, err := renderer.Render(body)
	if err != nil {
		return nil, pageError(rel, err)
	}

	slugs := slugsFor(rel)
	return &Page{
		Slugs:       slugs,
		URL:         urlFor(slugs),
		Meta:        meta,
		HTML:        rendered,
		TOC:         toc,
		Fingerprint: fp,
		SourcePath:  rel,
		Markdown:    body,
	}, nil
}

func pageError(rel string, err error) error {
	return derrors.WrapError(err, derrors.CategoryDocs, fmt.Sprintf("invalid docs page %s", rel)).
		WithContext("doc_path", rel).
		Build()
}

func resolveLastModified(opts Options, sources []string, byRel map[string]*Page) {
	var times map[string]time.Time
	if opts.GitLastModified {
		var err error
		times, err = gitLastModified(opts.Dir, sources)
		if err != nil {
			slog.Debug("Git history unavailable for docs, using file times", logfields.Error(err))
		}
	}
	for _, path := range sources {
		rel, err := filepath.Rel(opts.Dir, path)
		if err != nil {
			continue
		}
		rel = filepath.ToSlash(rel)
		p := byRel[strings.TrimSuffix(rel, filepath.Ext(rel))]
		if p == nil {
			continue
		}
		if t, ok := times[path]; ok {
			p.LastModified = t.UTC()
			continue
		}
		p.LastModified = fileModTime(path).UTC()
	}
}
