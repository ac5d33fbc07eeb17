package frontmatter

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Meta is the frontmatter schema of a docs page.
type Meta struct {
	Title       string `yaml:"title" validate:"required"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
	Full        bool   `yaml:"full"`
}

var validate = validator.New()

// Decode reads and validates the page schema. Unknown keys are ignored.
func (d Document) Decode() (Meta, error) {
	var m Meta
	if len(d.Frontmatter) > 0 {
		if err := yaml.Unmarshal(d.Frontmatter, &m); err != nil {
			return Meta{}, fmt.Errorf("parse frontmatter: %w", err)
		}
	}
	if err := validate.Struct(m); err != nil {
		return Meta{}, fmt.Errorf("invalid frontmatter: %w", err)
	}
	return m, nil
}
