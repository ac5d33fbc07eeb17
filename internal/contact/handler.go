package contact

import (
	"encoding/json"
	"io"
	"net/http"

	derrors "github.com/opendataloader-project/odlsite/internal/foundation/errors"
)

const maxBodyBytes = 64 << 10

// Handler serves POST /api/contact.
type Handler struct {
	svc    *Service
	errors *derrors.HTTPErrorAdapter
}

func NewHandler(svc *Service, adapter *derrors.HTTPErrorAdapter) *Handler {
	return &Handler{svc: svc, errors: adapter}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var sub Submission
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&sub); err != nil {
		h.errors.WriteErrorResponse(w, r, derrors.InternalError(MsgUnexpected).WithCause(err).Build())
		return
	}

	if _, err := h.svc.Submit(r.Context(), sub); err != nil {
		if _, ok := derrors.AsClassified(err); !ok {
			err = derrors.InternalError(MsgUnexpected).WithCause(err).Build()
		}
		h.errors.WriteErrorResponse(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, _ = w.Write([]byte(`{"success":true}`))
}
