// Package frontmatter splits YAML frontmatter from Markdown/MDX documents and
// decodes the docs page schema.
package frontmatter

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Document is a source file split into its parts. Line endings are normalized
// to LF.
type Document struct {
	Frontmatter []byte
	Body        []byte
	Had         bool
}

// Split separates `---` delimited YAML frontmatter from the body. A document
// without a leading delimiter is all body.
func Split(content []byte) (Document, error) {
	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	content = bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))

	const delim = "---\n"
	if !bytes.HasPrefix(content, []byte(delim)) {
		return Document{Body: content}, nil
	}
	rest := content[len(delim):]
	if bytes.HasPrefix(rest, []byte(delim)) {
		return Document{Frontmatter: []byte{}, Body: rest[len(delim):], Had: true}, nil
	}

	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		// Allow a closing delimiter at EOF without trailing newline.
		if bytes.HasSuffix(rest, []byte("\n---")) {
			return Document{Frontmatter: rest[:len(rest)-3], Body: []byte{}, Had: true}, nil
		}
		return Document{}, ErrMissingClosingDelimiter
	}
	return Document{
		Frontmatter: rest[:idx+1],
		Body:        rest[idx+1+len(delim):],
		Had:         true,
	}, nil
}

// Fields parses the frontmatter into a generic map.
func (d Document) Fields() (map[string]any, error) {
	if len(d.Frontmatter) == 0 {
		return map[string]any{}, nil
	}
	var fields map[string]any
	if err := yaml.Unmarshal(d.Frontmatter, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}
