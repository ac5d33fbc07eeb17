package docs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// metaFile orders a folder. Entries name files (without extension) or
// subfolders; "..." places the remaining entries alphabetically and
// "---Label---" inserts a separator.
type metaFile struct {
	Title string   `json:"title"`
	Pages []string `json:"pages"`
	Icon  string   `json:"icon"`
}

const metaFileName = "meta.json"

// Node is a sidebar entry: a page, a folder or a separator.
type Node struct {
	Name      string
	Title     string
	URL       string
	Icon      string
	Page      *Page // folder index page, or the page itself
	Children  []*Node
	Folder    bool
	Separator bool
}

// Walk visits n and its descendants depth first.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

var titleCaser = cases.Title(language.English)

// folderTitle derives a display title from a directory name.
func folderTitle(name string) string {
	return titleCaser.String(strings.NewReplacer("-", " ", "_", " ").Replace(name))
}

// buildTree assembles the folder at dir. pages is keyed by content-relative
// path without extension.
func buildTree(root, rel string, pages map[string]*Page) (*Node, error) {
	dir := filepath.Join(root, filepath.FromSlash(rel))
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	name := filepath.Base(dir)
	node := &Node{Name: name, Folder: true, Title: folderTitle(name)}
	if rel == "" {
		node.Title = "Documentation"
	}

	var meta metaFile
	if data, err := os.ReadFile(filepath.Join(dir, metaFileName)); err == nil {
		if err := json.Unmarshal(data, &meta); err != nil {
			return nil, &metaError{path: filepath.Join(rel, metaFileName), err: err}
		}
		if meta.Title != "" {
			node.Title = meta.Title
		}
		node.Icon = meta.Icon
	}

	children := make(map[string]*Node)
	for _, e := range entries {
		childRel := joinRel(rel, e.Name())
		switch {
		case e.IsDir():
			if strings.HasPrefix(e.Name(), ".") || strings.HasPrefix(e.Name(), "_") {
				continue
			}
			child, err := buildTree(root, childRel, pages)
			if err != nil {
				return nil, err
			}
			if child != nil {
				children[e.Name()] = child
			}
		default:
			key := strings.TrimSuffix(strings.TrimSuffix(childRel, ".mdx"), ".md")
			p, ok := pages[key]
			if !ok {
				continue
			}
			base := strings.TrimSuffix(strings.TrimSuffix(e.Name(), ".mdx"), ".md")
			if base == "index" {
				node.Page = p
				node.URL = p.URL
				continue
			}
			children[base] = &Node{Name: base, Title: p.Meta.Title, URL: p.URL, Icon: p.Meta.Icon, Page: p}
		}
	}

	if len(children) == 0 && node.Page == nil {
		return nil, nil
	}
	node.Children = orderChildren(meta.Pages, children)
	return node, nil
}

func orderChildren(order []string, children map[string]*Node) []*Node {
	used := make(map[string]bool, len(children))
	var out []*Node
	restAt := -1

	for _, entry := range order {
		switch {
		case entry == "...":
			restAt = len(out)
		case strings.HasPrefix(entry, "---") && strings.HasSuffix(entry, "---") && len(entry) > 6:
			out = append(out, &Node{Title: strings.Trim(entry, "-"), Separator: true})
		default:
			if c, ok := children[entry]; ok && !used[entry] {
				out = append(out, c)
				used[entry] = true
			}
		}
	}

	var rest []string
	for name := range children {
		if !used[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	restNodes := make([]*Node, 0, len(rest))
	for _, name := range rest {
		restNodes = append(restNodes, children[name])
	}

	if restAt < 0 {
		return append(out, restNodes...)
	}
	return append(out[:restAt], append(restNodes, out[restAt:]...)...)
}

func joinRel(dir, name string) string {
	if dir == "" {
		return name
	}
	return dir + "/" + name
}

type metaError struct {
	path string
	err  error
}

func (e *metaError) Error() string { return "invalid " + e.path + ": " + e.err.Error() }
func (e *metaError) Unwrap() error { return e.err }
