// Package consent implements the tri-state cookie consent gate that decides
// whether analytics scripts may load.
package consent

import (
	"net/http"
	"time"

	"github.com/opendataloader-project/odlsite/internal/foundation/normalization"
)

// CookieName is the cookie and localStorage key holding the decision.
const CookieName = "cookie-consent"

// MaxAge is how long a decision is remembered.
const MaxAge = 365 * 24 * time.Hour

// Status is the visitor's decision.
type Status string

const (
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
	StatusUnknown  Status = "unknown"
)

var statusNormalizer = normalization.NewNormalizer(map[string]Status{
	"accepted": StatusAccepted,
	"rejected": StatusRejected,
	"unknown":  StatusUnknown,
}, StatusUnknown, normalization.Exact())

// Parse maps a stored value to a Status; anything unrecognized is unknown.
func Parse(raw string) Status {
	return statusNormalizer.Normalize(raw)
}

// Decided reports whether the visitor has answered the banner.
func (s Status) Decided() bool {
	return s == StatusAccepted || s == StatusRejected
}

// State is the consent as seen while rendering a page. Ready is false until
// the stored value has been read, and nothing loads before that.
type State struct {
	Status Status `json:"status"`
	Ready  bool   `json:"ready"`
}

// CanUseCookies reports whether analytics may load.
func (s State) CanUseCookies() bool {
	return s.Ready && s.Status == StatusAccepted
}

// ShowBanner reports whether the consent banner is needed.
func (s State) ShowBanner() bool {
	return s.Ready && s.Status == StatusUnknown
}

// FromRequest reads the consent cookie.
func FromRequest(r *http.Request) State {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return State{Status: StatusUnknown, Ready: true}
	}
	return State{Status: Parse(c.Value), Ready: true}
}

// Write persists a decision for a year.
func Write(w http.ResponseWriter, status Status, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    string(status),
		Path:     "/",
		MaxAge:   int(MaxAge / time.Second),
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
	})
}
