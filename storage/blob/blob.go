// Package blob defines the blob-store collaborator contract used for resume
// uploads.
package blob

import (
	"context"
	"errors"
	"io"
)

var ErrNotFound = errors.New("blob not found")

// Store is the external file-storage collaborator: upload bytes under a path,
// get back a download URL; delete by that URL.
type Store interface {
	Upload(ctx context.Context, path string, r io.Reader) (url string, err error)
	Delete(ctx context.Context, url string) error
}
