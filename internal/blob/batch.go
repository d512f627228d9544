package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ErrBatchTimeout means the upload batch did not settle within its bound.
var ErrBatchTimeout = errors.New("blob: upload batch timed out")

// DefaultBatchTimeout bounds how long a whole upload batch may take before
// the caller is offered the chance to proceed without images.
const DefaultBatchTimeout = 30 * time.Second

// File is one member of an upload batch.
type File struct {
	Name        string
	ContentType string
	Data        io.Reader
}

// UploadBatch uploads every file or fails the whole batch: either all URLs
// come back, in input order, or an error does. A batch that does not settle
// within the timeout fails with ErrBatchTimeout rather than hanging; there
// are no automatic retries.
func UploadBatch(ctx context.Context, store Store, files []File, timeout time.Duration) ([]string, error) {
	if len(files) == 0 {
		return nil, nil
	}
	if timeout <= 0 {
		timeout = DefaultBatchTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	urls := make([]string, len(files))
	errc := make(chan error, len(files))

	for i, f := range files {
		go func(i int, f File) {
			url, err := store.Put(ctx, f.Name, f.ContentType, f.Data)
			if err == nil {
				urls[i] = url
			}
			errc <- err
		}(i, f)
	}

	for range files {
		select {
		case err := <-errc:
			if err != nil {
				if errors.Is(err, context.DeadlineExceeded) {
					return nil, ErrBatchTimeout
				}
				return nil, fmt.Errorf("upload batch: %w", err)
			}
		case <-ctx.Done():
			return nil, ErrBatchTimeout
		}
	}
	return urls, nil
}
