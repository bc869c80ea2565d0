// Package storage uploads image files to object storage and returns their public URLs.
package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// Uploader stores an object and returns the URL clients can fetch it from.
type Uploader interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

// ObjectKey builds a unique key of the form {uuid}-{unixMillis}-{filename}.
func ObjectKey(filename string, now time.Time) string {
	return fmt.Sprintf("%s-%d-%s", uuid.New().String(), now.UnixMilli(), filename)
}
