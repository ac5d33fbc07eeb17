package docs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derrors "github.com/opendataloader-project/odlsite/internal/foundation/errors"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newContentTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "index.mdx", "---\ntitle: Introduction\ndescription: What it is\n---\nimport { Card } from 'fumadocs-ui/components/card';\n\n# Welcome\n\n## Why\n\nFast.\n")
	writeFile(t, dir, "quick-start.mdx", "---\ntitle: Quick Start\n---\n## Install\n\n```bash\npip install -U opendataloader-pdf\n```\n\n### Python\n\nProse mentioning import stays.\n")
	writeFile(t, dir, "meta.json", `{"title":"Docs","pages":["index","quick-start","---Guides---","..."]}`)
	writeFile(t, dir, "guides/python.md", "---\ntitle: Python\n---\nbody\n")
	writeFile(t, dir, "guides/advanced-usage.md", "---\ntitle: Advanced Usage\n---\nbody\n")
	writeFile(t, dir, "_drafts/wip.md", "---\ntitle: WIP\n---\n")
	return dir
}

func TestLoad_BuildsOrderedTree(t *testing.T) {
	dir := newContentTree(t)
	c, err := Load(context.Background(), Options{Dir: dir}, nil)
	require.NoError(t, err)

	assert.Equal(t, "Docs", c.Root.Title)
	require.NotNil(t, c.Root.Page)
	assert.Equal(t, "/docs", c.Root.Page.URL)

	var titles []string
	for _, n := range c.Root.Children {
		titles = append(titles, n.Title)
	}
	assert.Equal(t, []string{"Quick Start", "Guides", "Guides"}, titles)
	assert.True(t, c.Root.Children[1].Separator)
	assert.True(t, c.Root.Children[2].Folder)

	var urls []string
	for _, p := range c.Pages() {
		urls = append(urls, p.URL)
	}
	assert.Equal(t, []string{"/docs", "/docs/quick-start", "/docs/guides/advanced-usage", "/docs/guides/python"}, urls)

	_, ok := c.Lookup([]string{"_drafts", "wip"})
	assert.False(t, ok)
}

func TestLoad_RendersPages(t *testing.T) {
	c, err := Load(context.Background(), Options{Dir: newContentTree(t)}, nil)
	require.NoError(t, err)

	root, ok := c.Lookup(nil)
	require.True(t, ok)
	assert.NotContains(t, string(root.Markdown), "import {")
	assert.Contains(t, string(root.HTML), `<h2 id="why">Why</h2>`)
	assert.NotEmpty(t, root.ETag())

	qs, ok := c.Lookup([]string{"quick-start"})
	require.True(t, ok)
	assert.Equal(t, []Heading{{ID: "install", Text: "Install", Level: 2}, {ID: "python", Text: "Python", Level: 3}}, qs.TOC)
	assert.Contains(t, string(qs.HTML), "Prose mentioning import stays.")
	assert.False(t, qs.LastModified.IsZero())

	prev, next := c.Neighbours(qs)
	assert.Equal(t, root, prev)
	assert.Equal(t, "/docs/guides/advanced-usage", next.URL)
}

func TestLoad_FolderTitleWithoutMeta(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "getting-started/first_steps.md", "---\ntitle: First\n---\n")
	c, err := Load(context.Background(), Options{Dir: dir}, nil)
	require.NoError(t, err)
	require.Len(t, c.Root.Children, 1)
	assert.Equal(t, "Getting Started", c.Root.Children[0].Title)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(context.Background(), Options{Dir: filepath.Join(t.TempDir(), "missing")}, nil)
	require.Error(t, err)
	assert.True(t, derrors.HasCategory(err, derrors.CategoryDocs))

	dir := t.TempDir()
	writeFile(t, dir, "bad.md", "---\ndescription: no title\n---\n")
	_, err = Load(context.Background(), Options{Dir: dir}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.md")

	dir = t.TempDir()
	writeFile(t, dir, "a.md", "---\ntitle: A\n---\n")
	writeFile(t, dir, "meta.json", "{")
	_, err = Load(context.Background(), Options{Dir: dir}, nil)
	require.Error(t, err)
}

func TestLoad_GitLastModified(t *testing.T) {
	dir := newContentTree(t)
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	first := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	_, err = wt.Add(".")
	require.NoError(t, err)
	_, err = wt.Commit("initial", &git.CommitOptions{Author: &object.Signature{Name: "a", Email: "a@x", When: first}})
	require.NoError(t, err)

	second := first.Add(48 * time.Hour)
	writeFile(t, dir, "quick-start.mdx", "---\ntitle: Quick Start\n---\nupdated\n")
	_, err = wt.Add("quick-start.mdx")
	require.NoError(t, err)
	_, err = wt.Commit("update", &git.CommitOptions{Author: &object.Signature{Name: "a", Email: "a@x", When: second}})
	require.NoError(t, err)

	c, err := Load(context.Background(), Options{Dir: dir, GitLastModified: true}, nil)
	require.NoError(t, err)

	root, _ := c.Lookup(nil)
	qs, _ := c.Lookup([]string{"quick-start"})
	assert.True(t, first.Equal(root.LastModified), root.LastModified)
	assert.True(t, second.Equal(qs.LastModified), qs.LastModified)
}

func TestStripModuleLines(t *testing.T) {
	in := strings.Join([]string{
		"import { A,",
		"  B } from 'x';",
		"export const meta = {",
		"  a: 1,",
		"};",
		"",
		"Text",
		"```js",
		"import fs from 'fs';",
		"```",
	}, "\n")
	out := string(stripModuleLines([]byte(in)))
	assert.Equal(t, "Text\n```js\nimport fs from 'fs';\n```", out)
}

func TestStripModuleLines_MultiLineStatements(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "object without trailing comma",
			in:   "export const metadata = {\n  title: 'Foo',\n  description: 'bar'\n};\n\n# Hello\n",
			want: "# Hello\n",
		},
		{
			name: "function body",
			in:   "export default function Layout({ children }) {\n  return children\n}\n\nBody",
			want: "Body",
		},
		{
			name: "brace inside string",
			in:   "export const open = '{'\nBody",
			want: "Body",
		},
		{
			name: "multi-line named import",
			in:   "import {\n  Tab,\n  Tabs\n} from 'fumadocs-ui/components/tabs'\nBody",
			want: "Body",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(stripModuleLines([]byte(tt.in))))
		})
	}
}

func TestSlugsFor(t *testing.T) {
	assert.Empty(t, slugsFor("index.mdx"))
	assert.Equal(t, []string{"guides"}, slugsFor("guides/index.md"))
	assert.Equal(t, []string{"guides", "python"}, slugsFor("guides/python.mdx"))
	assert.Equal(t, "/docs", urlFor(nil))
}

func TestStore_KeepsPreviousOnFailure(t *testing.T) {
	dir := newContentTree(t)
	s := NewStore(Options{Dir: dir}, nil)
	assert.Empty(t, s.Current().Pages())

	require.NoError(t, s.Reload(context.Background()))
	before := s.Current()
	require.Len(t, before.Pages(), 4)

	writeFile(t, dir, "broken.md", "---\nnope: 1\n---\n")
	require.Error(t, s.Reload(context.Background()))
	assert.Same(t, before, s.Current())
}
