package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derrors "github.com/opendataloader-project/odlsite/internal/foundation/errors"
	"github.com/opendataloader-project/odlsite/internal/metrics"
)

type routeRecorder struct {
	metrics.NoopRecorder
	route  string
	status int
}

func (r *routeRecorder) ObserveHTTPRequest(route string, status int, _ time.Duration) {
	r.route, r.status = route, status
}

func TestChainAssignsRequestID(t *testing.T) {
	var seen string
	h := Chain(discardLogger(), derrors.NewHTTPErrorAdapter(discardLogger()), nil)(
		http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) { seen = RequestID(r.Context()) }))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	_, err := uuid.Parse(seen)
	require.NoError(t, err)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
}

func TestChainKeepsValidIncomingRequestID(t *testing.T) {
	id := uuid.NewString()
	h := Chain(discardLogger(), derrors.NewHTTPErrorAdapter(discardLogger()), nil)(
		http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, id)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, id, rec.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "not a uuid\r\n")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.NotEqual(t, "not a uuid\r\n", rec.Header().Get(RequestIDHeader))
}

func TestChainRecoversPanics(t *testing.T) {
	h := Chain(discardLogger(), derrors.NewHTTPErrorAdapter(discardLogger()), nil)(
		http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/contact", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}

func TestChainRecordsMatchedRoute(t *testing.T) {
	rr := &routeRecorder{}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/samples/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	h := Chain(discardLogger(), derrors.NewHTTPErrorAdapter(discardLogger()), rr)(mux)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/samples/123", nil))
	assert.Equal(t, "GET /api/samples/{id}", rr.route)
	assert.Equal(t, http.StatusNotFound, rr.status)
}
