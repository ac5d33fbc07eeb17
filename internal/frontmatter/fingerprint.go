package frontmatter

import (
	"strings"

	"github.com/inful/mdfp"
	"gopkg.in/yaml.v3"
)

// Fingerprint hashes a document's frontmatter and body. Fields that do not
// change the rendered page (an existing fingerprint and lastmod) are excluded,
// so the value is stable enough to serve as an ETag.
func (d Document) Fingerprint() (string, error) {
	fields, err := d.Fields()
	if err != nil {
		return "", err
	}
	delete(fields, mdfp.FingerprintField)
	delete(fields, "lastmod")

	fm := ""
	if len(fields) > 0 {
		// yaml.v3 emits map keys in sorted order.
		out, err := yaml.Marshal(fields)
		if err != nil {
			return "", err
		}
		fm = strings.TrimSuffix(string(out), "\n")
	}
	return mdfp.CalculateFingerprintFromParts(fm, string(d.Body)), nil
}
