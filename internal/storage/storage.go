package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Storage holds attachment bytes keyed by an opaque storage key. The
// attachment store owns the metadata; this owns the bytes.
type Storage interface {
	Save(ctx context.Context, key string, contents io.Reader, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// NewKey derives a collision-free storage key for an uploaded file,
// preserving the original extension so downloads keep a sensible name.
func NewKey(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return fmt.Sprintf("%s%s", uuid.NewString(), ext)
}
