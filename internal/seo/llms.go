package seo

import (
	"fmt"
	"io"
	"strings"

	"github.com/opendataloader-project/odlsite/internal/docs"
)

// LLMsText is the product summary served at /llms.txt.
const LLMsText = "# OpenDataLoader PDF\n" +
	"\n" +
	"> Fast, accurate PDF parsing for RAG and LLM pipelines. 100% local, no GPU required.\n" +
	"\n" +
	"## What is OpenDataLoader PDF?\n" +
	"\n" +
	"OpenDataLoader PDF is an open-source PDF parser designed specifically for RAG (Retrieval-Augmented Generation) pipelines. It converts PDFs to LLM-ready Markdown and JSON with:\n" +
	"\n" +
	"- 91% reading order accuracy (XY-Cut++ algorithm)\n" +
	"- 0.05s per page processing speed\n" +
	"- Bounding boxes for every element (for citations)\n" +
	"- 100% local processing (no network calls)\n" +
	"- Deterministic output (same input = same output)\n" +
	"\n" +
	"## Quick Start\n" +
	"\n" +
	"```bash\n" +
	"pip install -U opendataloader-pdf\n" +
	"```\n" +
	"\n" +
	"```python\n" +
	"import opendataloader_pdf\n" +
	"\n" +
	"opendataloader_pdf.convert(\n" +
	"    input_path=[\"document.pdf\"],\n" +
	"    output_dir=\"output/\",\n" +
	"    format=\"json,markdown\"\n" +
	")\n" +
	"```\n" +
	"\n" +
	"## Documentation\n" +
	"\n" +
	"For complete documentation, see: https://opendataloader.org/docs\n" +
	"\n" +
	"For full documentation in LLM-readable format, see: https://opendataloader.org/llms-full.txt\n" +
	"\n" +
	"## Links\n" +
	"\n" +
	"- Website: https://opendataloader.org\n" +
	"- Documentation: https://opendataloader.org/docs\n" +
	"- GitHub: https://github.com/opendataloader-project/opendataloader-pdf\n" +
	"- PyPI: https://pypi.org/project/opendataloader-pdf/\n" +
	"- npm: https://www.npmjs.com/package/@opendataloader/pdf\n"

// WriteLLMsFull concatenates every docs page as Markdown, each introduced by
// its title and absolute URL.
func WriteLLMsFull(w io.Writer, baseURL string, pages []*docs.Page) error {
	base := strings.TrimRight(baseURL, "/")
	for i, p := range pages {
		if i > 0 {
			if _, err := io.WriteString(w, "\n\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "# %s (%s%s)\n\n", p.Title(), base, p.URL); err != nil {
			return err
		}
		if d := p.Description(); d != "" {
			if _, err := fmt.Fprintf(w, "%s\n\n", d); err != nil {
				return err
			}
		}
		if _, err := w.Write([]byte(strings.TrimSpace(string(p.Markdown)))); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}
