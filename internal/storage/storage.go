package storage

import (
	"context"
	"errors"
	"io"
	"regexp"
)

var (
	ErrNotFound    = errors.New("image not found")
	ErrInvalidName = errors.New("invalid image name")
)

// Object is an opened stored image. Callers must close Body.
type Object struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

// ImageStore keeps uploaded images under flat, generated names.
type ImageStore interface {
	Save(ctx context.Context, name, contentType string, data []byte) error
	Open(ctx context.Context, name string) (*Object, error)
}

// Names are "<uuid><ext>" as produced by the upload handler.
var namePattern = regexp.MustCompile(`^[0-9a-fA-F-]{36}(\.[A-Za-z0-9]{1,10})?$`)

func ValidName(name string) error {
	if !namePattern.MatchString(name) {
		return ErrInvalidName
	}
	return nil
}
