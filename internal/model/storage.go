package model

import (
	"context"
	"io"
)

// Storage stores binary objects such as salon pictures.
type Storage interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	// Download returns ErrNotFound when no object is stored under key.
	Download(ctx context.Context, key string) (Object, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// Object is a downloaded binary object. The caller closes Body.
type Object struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

// Validator checks a raw JSON request body against the schema of dst and
// decodes it into dst.
type Validator interface {
	Decode(body []byte, dst any) error
}
