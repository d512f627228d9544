// Package blob stores uploaded binaries and hands back retrievable URLs.
package blob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nfnt/resize"
)

var (
	// ErrTooLarge means the payload exceeded the per-file size cap.
	ErrTooLarge = errors.New("blob: file too large")
	// ErrUnsupported means the declared content type cannot be handled.
	ErrUnsupported = errors.New("blob: unsupported content type")
)

// DefaultMaxBytes caps a single upload at 5 MB.
const DefaultMaxBytes = 5 << 20

// Store accepts a binary payload plus its declared content type and returns
// a stable retrieval URL.
type Store interface {
	Put(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
}

// FileStore keeps blobs on the local filesystem under a directory served as
// static files.
type FileStore struct {
	Dir      string
	BaseURL  string
	MaxBytes int64
}

func NewFileStore(dir, baseURL string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &FileStore{
		Dir:      dir,
		BaseURL:  strings.TrimRight(baseURL, "/"),
		MaxBytes: DefaultMaxBytes,
	}, nil
}

// Put decodes the image, bounds it to 800px wide, re-encodes as JPEG and
// writes it under a collision-resistant key. Only JPEG and PNG payloads are
// accepted.
func (s *FileStore) Put(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := io.ReadAll(io.LimitReader(r, s.MaxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.MaxBytes {
		return "", ErrTooLarge
	}

	var img image.Image
	switch contentType {
	case "image/png":
		img, err = png.Decode(bytes.NewReader(data))
	case "image/jpeg", "image/jpg":
		img, err = jpeg.Decode(bytes.NewReader(data))
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupported, contentType)
	}
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	if img.Bounds().Dx() > 800 {
		img = resize.Resize(800, 0, img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 80}); err != nil {
		return "", fmt.Errorf("encode image: %w", err)
	}

	key := ObjectKey(filename)
	if err := os.WriteFile(filepath.Join(s.Dir, key), buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write blob: %w", err)
	}

	return s.BaseURL + "/" + key, nil
}

// ObjectKey builds a collision-resistant key from the original filename:
// unix-millis, a random suffix, then the sanitized name with a .jpg
// extension (everything is re-encoded as JPEG on the way in).
func ObjectKey(filename string) string {
	name := filepath.Base(filename)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, name)
	if name == "" {
		name = "upload"
	}
	suffix := uuid.New().String()[:8]
	return fmt.Sprintf("%d-%s_%s.jpg", time.Now().UnixMilli(), suffix, name)
}
