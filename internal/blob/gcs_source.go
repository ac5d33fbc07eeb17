package blob

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"cloud.google.com/go/storage"
)

// GCSSource reads objects from a Cloud Storage bucket holding the same key layout
// as the public store.
type GCSSource struct {
	bucket *storage.BucketHandle
	name   string
}

// NewGCSSource wraps an existing client.
func NewGCSSource(client *storage.Client, bucket string) *GCSSource {
	return &GCSSource{bucket: client.Bucket(bucket), name: bucket}
}

func (s *GCSSource) Fetch(ctx context.Context, key string) ([]byte, error) {
	r, err := s.bucket.Object(key).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, &StatusError{Key: key, Code: http.StatusNotFound}
	}
	if err != nil {
		return nil, fmt.Errorf("open gs://%s/%s: %w", s.name, key, err)
	}
	defer func() { _ = r.Close() }()
	return readLimited(r)
}
