package consent

import (
	"encoding/json"
	"net/http"

	derrors "github.com/opendataloader-project/odlsite/internal/foundation/errors"
)

type request struct {
	Status string `json:"status"`
}

type response struct {
	Status        Status `json:"status"`
	CanUseCookies bool   `json:"canUseCookies"`
}

// Handler serves GET and POST /api/consent.
type Handler struct {
	errors *derrors.HTTPErrorAdapter
	secure bool
}

// NewHandler marks cookies Secure when secure is set (HTTPS deployments).
func NewHandler(adapter *derrors.HTTPErrorAdapter, secure bool) *Handler {
	return &Handler{errors: adapter, secure: secure}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		writeState(w, FromRequest(r))
	case http.MethodPost:
		var req request
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1024)).Decode(&req); err != nil {
			h.errors.WriteErrorResponse(w, r, derrors.ValidationError("invalid consent payload").WithCause(err).Build())
			return
		}
		status := Parse(req.Status)
		if !status.Decided() {
			h.errors.WriteErrorResponse(w, r, derrors.ValidationError("status must be accepted or rejected").
				WithContext("status", req.Status).
				Build())
			return
		}
		Write(w, status, h.secure)
		writeState(w, State{Status: status, Ready: true})
	default:
		w.Header().Set("Allow", "GET, HEAD, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func writeState(w http.ResponseWriter, s State) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_ = json.NewEncoder(w).Encode(response{Status: s.Status, CanUseCookies: s.CanUseCookies()})
}
