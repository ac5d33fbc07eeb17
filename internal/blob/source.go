// Package blob fetches sample payloads from the public blob store or a GCS
// bucket mirroring it.
package blob

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// MaxObjectSize bounds how much of an object is read into memory.
const MaxObjectSize = 32 << 20

// Source fetches an object by key relative to the store root.
type Source interface {
	Fetch(ctx context.Context, key string) ([]byte, error)
}

// StatusError reports that the store answered but not with the object.
type StatusError struct {
	Key  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: status %d %s", e.Key, e.Code, http.StatusText(e.Code))
}

// IsStatus reports whether err is a non-OK store response.
func IsStatus(err error) bool {
	var se *StatusError
	return errors.As(err, &se)
}

// ErrTooLarge is returned for objects over MaxObjectSize.
var ErrTooLarge = errors.New("object exceeds maximum size")
