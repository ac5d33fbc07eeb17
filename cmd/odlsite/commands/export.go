package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/opendataloader-project/odlsite/internal/docs"
	"github.com/opendataloader-project/odlsite/internal/seo"
)

// ExportCmd writes the generated text outputs for static hosting.
type ExportCmd struct {
	Output string `short:"o" default:"./public" help:"Output directory."`
}

func (e *ExportCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	col, err := docs.Load(context.Background(),
		docs.Options{Dir: cfg.Docs.ContentDir, GitLastModified: cfg.Docs.GitLastModified}, docs.NewRenderer())
	if err != nil {
		return fmt.Errorf("load docs: %w", err)
	}
	catalog, err := newCatalog(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(e.Output, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	pages := col.Pages()
	outputs := map[string]func(io.Writer) error{
		"sitemap.xml": func(w io.Writer) error {
			return seo.WriteSitemap(w, seo.Sitemap(cfg.Site.BaseURL, pages, time.Now()))
		},
		"llms.txt": func(w io.Writer) error {
			_, err := io.WriteString(w, seo.LLMsText)
			return err
		},
		"llms-full.txt": func(w io.Writer) error {
			return seo.WriteLLMsFull(w, cfg.Site.BaseURL, pages)
		},
		"samples.json": func(w io.Writer) error {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(catalog.All())
		},
	}
	for name, write := range outputs {
		var buf bytes.Buffer
		if err := write(&buf); err != nil {
			return fmt.Errorf("generate %s: %w", name, err)
		}
		path := filepath.Join(e.Output, name)
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Println("wrote", path)
	}
	return nil
}
