package tracking

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/opendataloader-project/odlsite/internal/consent"
	derrors "github.com/opendataloader-project/odlsite/internal/foundation/errors"
)

// Handler serves POST /api/track. Accepted events answer 202 whether or not
// they were forwarded.
type Handler struct {
	tracker *Tracker
	errors  *derrors.HTTPErrorAdapter
}

func NewHandler(t *Tracker, adapter *derrors.HTTPErrorAdapter) *Handler {
	return &Handler{tracker: t, errors: adapter}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var e Event
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 16<<10)).Decode(&e); err != nil {
		h.errors.WriteErrorResponse(w, r, derrors.ValidationError("invalid event payload").WithCause(err).Build())
		return
	}
	if err := e.Validate(); err != nil {
		h.errors.WriteErrorResponse(w, r, derrors.ValidationError("invalid event").WithCause(err).Build())
		return
	}
	// Server-assigned.
	e.ID = ""
	e.Timestamp = time.Time{}

	h.tracker.Track(r.Context(), consent.FromRequest(r), e)
	w.WriteHeader(http.StatusAccepted)
}
