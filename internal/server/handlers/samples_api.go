package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/opendataloader-project/odlsite/internal/blob"
	derrors "github.com/opendataloader-project/odlsite/internal/foundation/errors"
	"github.com/opendataloader-project/odlsite/internal/samples"
	"github.com/opendataloader-project/odlsite/internal/server/responses"
)

// Fetcher reads blob objects by key.
type Fetcher interface {
	Fetch(ctx context.Context, key string) ([]byte, error)
}

// SamplesAPI serves the catalog and sample payloads as JSON.
type SamplesAPI struct {
	catalog *samples.Catalog
	blobs   Fetcher
	errors  *derrors.HTTPErrorAdapter
}

func NewSamplesAPI(catalog *samples.Catalog, blobs Fetcher, adapter *derrors.HTTPErrorAdapter) *SamplesAPI {
	return &SamplesAPI{catalog: catalog, blobs: blobs, errors: adapter}
}

// HandleList serves GET /api/samples?q=, filtering by file name.
func (a *SamplesAPI) HandleList(w http.ResponseWriter, r *http.Request) {
	docs := a.catalog.FilterByName(r.URL.Query().Get("q"))
	if docs == nil {
		docs = []samples.Doc{}
	}
	if err := writeJSONPretty(w, r, http.StatusOK, responses.SampleList[samples.Doc]{Total: len(docs), Samples: docs}); err != nil {
		a.errors.WriteErrorResponse(w, r, derrors.WrapError(err, derrors.CategoryInternal, "failed to write samples").Build())
	}
}

// HandleGet serves GET /api/samples/{id}.
func (a *SamplesAPI) HandleGet(w http.ResponseWriter, r *http.Request) {
	doc, err := a.catalog.Get(r.PathValue("id"))
	if err != nil {
		a.errors.WriteErrorResponse(w, r, err)
		return
	}
	if err := writeJSONPretty(w, r, http.StatusOK, doc); err != nil {
		a.errors.WriteErrorResponse(w, r, derrors.WrapError(err, derrors.CategoryInternal, "failed to write sample").Build())
	}
}

var payloadContentTypes = map[samples.DataType]string{
	samples.DataMarkdown: "text/markdown; charset=utf-8",
	samples.DataHTML:     "text/html; charset=utf-8",
	samples.DataJSON:     "application/json; charset=utf-8",
}

// HandleData serves GET /api/samples/{id}/data/{type} from the blob store.
func (a *SamplesAPI) HandleData(w http.ResponseWriter, r *http.Request) {
	dt, err := samples.ParseDataType(strings.ToLower(r.PathValue("type")))
	if err != nil {
		a.errors.WriteErrorResponse(w, r, err)
		return
	}
	doc, err := a.catalog.Get(r.PathValue("id"))
	if err != nil {
		a.errors.WriteErrorResponse(w, r, err)
		return
	}
	data, err := a.blobs.Fetch(r.Context(), samples.DataKey(doc.ID, dt))
	if err != nil {
		if r.Context().Err() != nil {
			return
		}
		a.errors.WriteErrorResponse(w, r, derrors.UpstreamError("failed to load sample data").
			WithCause(err).
			WithContext("sample_id", doc.ID).
			WithContext("data_type", string(dt)).
			WithContext("upstream_status", upstreamStatus(err)).
			Build())
		return
	}
	w.Header().Set("Content-Type", payloadContentTypes[dt])
	w.Header().Set("Cache-Control", "public, max-age=3600")
	// Payloads are rendered by the client; keep a raw HTML payload inert when opened directly.
	w.Header().Set("Content-Security-Policy", "sandbox")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func upstreamStatus(err error) int {
	var se *blob.StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}
