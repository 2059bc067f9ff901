// Package blob defines the blob-store collaborator: it accepts uploaded
// media and returns a retrievable reference.
package blob

import (
	"context"
	"io"
)

// Store accepts a file under a subfolder hint and returns the URL
// clients use to retrieve it.
type Store interface {
	Upload(ctx context.Context, subfolder, filename string, reader io.Reader, size int64, contentType string) (string, error)
}
