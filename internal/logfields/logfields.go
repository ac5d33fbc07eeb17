package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRequestID  = "request_id"
	KeyMethod     = "method"
	KeyPath       = "path"
	KeyStatus     = "status"
	KeyDuration   = "duration"
	KeyUserAgent  = "user_agent"
	KeyRemoteAddr = "remote_addr"
	KeySampleID   = "sample_id"
	KeyDataType   = "data_type"
	KeyURL        = "url"
	KeyObject     = "object"
	KeyDocPath    = "doc_path"
	KeySlug       = "slug"
	KeyProvider   = "provider"
	KeyReference  = "reference"
	KeyEvent      = "event"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RequestID(id string) slog.Attr        { return slog.String(KeyRequestID, id) }
func Method(m string) slog.Attr            { return slog.String(KeyMethod, m) }
func Path(p string) slog.Attr              { return slog.String(KeyPath, p) }
func Status(code int) slog.Attr            { return slog.Int(KeyStatus, code) }
func Duration(d time.Duration) slog.Attr   { return slog.Duration(KeyDuration, d) }
func UserAgent(ua string) slog.Attr        { return slog.String(KeyUserAgent, ua) }
func RemoteAddr(addr string) slog.Attr     { return slog.String(KeyRemoteAddr, addr) }
func SampleID(id string) slog.Attr         { return slog.String(KeySampleID, id) }
func DataType(t string) slog.Attr          { return slog.String(KeyDataType, t) }
func URL(u string) slog.Attr               { return slog.String(KeyURL, u) }
func Object(key string) slog.Attr          { return slog.String(KeyObject, key) }
func DocPath(p string) slog.Attr           { return slog.String(KeyDocPath, p) }
func Slug(s string) slog.Attr              { return slog.String(KeySlug, s) }
func Provider(name string) slog.Attr       { return slog.String(KeyProvider, name) }
func Reference(ref string) slog.Attr       { return slog.String(KeyReference, ref) }
func Event(name string) slog.Attr          { return slog.String(KeyEvent, name) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
