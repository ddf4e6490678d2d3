// Package objstore is the object-storage port of the application: given
// a logical path, return bytes and a content type, or store bytes under
// a path. Receipt uploads and finished reports live behind it.
package objstore

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("object not found")

// Object is the result of a read. ContentType is the transport-reported
// type and may be empty for backends that do not track one.
type Object struct {
	Bytes       []byte
	ContentType string
}

type Store interface {
	Get(ctx context.Context, path string) (*Object, error)
	Put(ctx context.Context, path string, data []byte, contentType string) error
}
