package ports

import (
	"context"
	"io"
)

// ObjectStorage stores review media. Implementations are bound to a single
// bucket and return the URL the object can be fetched from.
type ObjectStorage interface {
	Upload(ctx context.Context, objectName, contentType string, reader io.Reader, size int64) (string, error)
}
