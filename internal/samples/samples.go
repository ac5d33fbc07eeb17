// Package samples holds the deterministic catalog of demo PDFs and the URL
// layout of their assets in the blob store.
package samples

import (
	"fmt"
	"strconv"
	"strings"

	derrors "github.com/opendataloader-project/odlsite/internal/foundation/errors"
	"github.com/opendataloader-project/odlsite/internal/foundation/normalization"
)

// IDDigits is the fixed width of every sample id.
const IDDigits = 14

// Doc describes one sample PDF.
type Doc struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	ThumbnailURL    string `json:"thumbnailUrl"`
	PDFURL          string `json:"pdfUrl"`
	AnnotatedPDFURL string `json:"annotatedPdfUrl"`
}

// DataType names an extracted payload format.
type DataType string

const (
	DataMarkdown DataType = "md"
	DataHTML     DataType = "html"
	DataJSON     DataType = "json"
)

// DataTypes lists payload formats in display order.
var DataTypes = []DataType{DataMarkdown, DataHTML, DataJSON}

var dataTypeNormalizer = normalization.NewNormalizer(map[string]DataType{
	"md":   DataMarkdown,
	"html": DataHTML,
	"json": DataJSON,
}, "")

// ParseDataType accepts md, html or json.
func ParseDataType(raw string) (DataType, error) {
	dt, err := dataTypeNormalizer.NormalizeWithError(raw)
	if err != nil {
		return "", derrors.ValidationError("unknown data type").
			WithCause(err).
			WithContext("data_type", raw).
			Build()
	}
	return dt, nil
}

// folder and extension of a payload under the prediction prefix.
func (t DataType) location() (folder, ext string) {
	switch t {
	case DataMarkdown:
		return "markdown", "md"
	case DataHTML:
		return "html", "html"
	case DataJSON:
		return "json", "json"
	}
	return "", ""
}

// Options configures a Catalog.
type Options struct {
	Start            string
	Total            int
	BlobBaseURL      string
	ThumbnailBaseURL string
}

// Catalog is the immutable list of samples. Safe for concurrent use.
type Catalog struct {
	docs      []Doc
	index     map[string]int
	blobBase  string
	thumbBase string
}

// NewCatalog generates Total sequential ids starting at Start.
func NewCatalog(opts Options) (*Catalog, error) {
	if len(opts.Start) != IDDigits {
		return nil, derrors.ConfigError(fmt.Sprintf("sample start id must have %d digits", IDDigits)).
			WithContext("start", opts.Start).
			Build()
	}
	start, err := strconv.ParseUint(opts.Start, 10, 64)
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryConfig, "sample start id is not numeric").Build()
	}
	if opts.Total <= 0 {
		return nil, derrors.ConfigError("sample total must be positive").Build()
	}

	c := &Catalog{
		docs:      make([]Doc, 0, opts.Total),
		index:     make(map[string]int, opts.Total),
		blobBase:  strings.TrimRight(opts.BlobBaseURL, "/"),
		thumbBase: strings.TrimRight(opts.ThumbnailBaseURL, "/"),
	}
	for i := 0; i < opts.Total; i++ {
		id := fmt.Sprintf("%0*d", IDDigits, start+uint64(i))
		if len(id) != IDDigits {
			return nil, derrors.ConfigError("sample id range overflows the id width").
				WithContext("id", id).
				Build()
		}
		c.index[id] = len(c.docs)
		c.docs = append(c.docs, Doc{
			ID:              id,
			Name:            id + ".pdf",
			ThumbnailURL:    c.thumbBase + "/" + id + ".webp",
			PDFURL:          c.blobBase + "/" + PDFKey(id),
			AnnotatedPDFURL: c.blobBase + "/" + AnnotatedPDFKey(id),
		})
	}
	return c, nil
}

// All returns a copy of every sample in id order.
func (c *Catalog) All() []Doc {
	out := make([]Doc, len(c.docs))
	copy(out, c.docs)
	return out
}

// Len is the number of samples.
func (c *Catalog) Len() int { return len(c.docs) }

// Get looks a sample up by id.
func (c *Catalog) Get(id string) (Doc, error) {
	if i, ok := c.index[id]; ok && id != "" {
		return c.docs[i], nil
	}
	return Doc{}, derrors.NotFoundError("sample not found").
		WithContext("sample_id", id).
		Build()
}

// FilterByID keeps samples whose id contains query, case-insensitively.
func (c *Catalog) FilterByID(query string) []Doc {
	return c.filter(query, func(d Doc) string { return d.ID })
}

// FilterByName keeps samples whose file name contains query, case-insensitively.
func (c *Catalog) FilterByName(query string) []Doc {
	return c.filter(query, func(d Doc) string { return d.Name })
}

func (c *Catalog) filter(query string, field func(Doc) string) []Doc {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.All()
	}
	var out []Doc
	for _, d := range c.docs {
		if strings.Contains(strings.ToLower(field(d)), q) {
			out = append(out, d)
		}
	}
	return out
}

// DataURL is the absolute URL of a sample payload.
func (c *Catalog) DataURL(id string, t DataType) string {
	return c.blobBase + "/" + DataKey(id, t)
}

// BlobBaseURL is the origin every key is relative to.
func (c *Catalog) BlobBaseURL() string { return c.blobBase }

// PDFKey is the object key of the original PDF.
func PDFKey(id string) string {
	return "samples/pdfs/" + id + ".pdf"
}

// AnnotatedPDFKey is the object key of the PDF with layout annotations.
func AnnotatedPDFKey(id string) string {
	return "samples/prediction/opendataloader/pdf/" + id + "_annotated.pdf"
}

// DataKey is the object key of an extracted payload.
func DataKey(id string, t DataType) string {
	folder, ext := t.location()
	return "samples/prediction/opendataloader/" + folder + "/" + id + "." + ext
}
