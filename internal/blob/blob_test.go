package blob

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestFileStorePut(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir, "/static/uploads/")
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}

	url, err := fs.Put(context.Background(), "ref photo.png", "image/png", bytes.NewReader(pngBytes(t, 10, 10)))
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if !strings.HasPrefix(url, "/static/uploads/") {
		t.Fatalf("url %q missing base prefix", url)
	}
	if !strings.HasSuffix(url, ".jpg") {
		t.Fatalf("url %q not re-encoded as jpg", url)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 stored blob, got %d", len(entries))
	}
	if got := filepath.Base(url); got != entries[0].Name() {
		t.Fatalf("url key %q != stored file %q", got, entries[0].Name())
	}
}

func TestFileStorePutRejectsTooLarge(t *testing.T) {
	fs, err := NewFileStore(t.TempDir(), "/u")
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	fs.MaxBytes = 16

	_, err = fs.Put(context.Background(), "big.png", "image/png", bytes.NewReader(pngBytes(t, 200, 200)))
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("err = %v, want ErrTooLarge", err)
	}
}

func TestFileStorePutRejectsUnknownType(t *testing.T) {
	fs, err := NewFileStore(t.TempDir(), "/u")
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	_, err = fs.Put(context.Background(), "notes.txt", "text/plain", strings.NewReader("hi"))
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("err = %v, want ErrUnsupported", err)
	}
}

func TestObjectKeyUnique(t *testing.T) {
	a := ObjectKey("cat.png")
	b := ObjectKey("cat.png")
	if a == b {
		t.Fatalf("keys collided: %q", a)
	}
	if !strings.Contains(a, "cat") {
		t.Fatalf("key %q lost original name", a)
	}
}

// slowStore blocks until its delay elapses or the context ends.
type slowStore struct {
	delay time.Duration
}

func (s *slowStore) Put(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	select {
	case <-time.After(s.delay):
		return "/u/" + filename, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func TestUploadBatchTimesOutWithinBound(t *testing.T) {
	files := []File{
		{Name: "a.png", ContentType: "image/png", Data: strings.NewReader("x")},
		{Name: "b.png", ContentType: "image/png", Data: strings.NewReader("y")},
	}

	start := time.Now()
	_, err := UploadBatch(context.Background(), &slowStore{delay: 5 * time.Second}, files, 50*time.Millisecond)
	elapsed := time.Since(start)

	if !errors.Is(err, ErrBatchTimeout) {
		t.Fatalf("err = %v, want ErrBatchTimeout", err)
	}
	if elapsed > time.Second {
		t.Fatalf("batch failed after %v, expected failure near the 50ms bound", elapsed)
	}
}

func TestUploadBatchPreservesOrder(t *testing.T) {
	files := []File{
		{Name: "first.png", ContentType: "image/png", Data: strings.NewReader("x")},
		{Name: "second.png", ContentType: "image/png", Data: strings.NewReader("y")},
		{Name: "third.png", ContentType: "image/png", Data: strings.NewReader("z")},
	}

	urls, err := UploadBatch(context.Background(), &slowStore{delay: time.Millisecond}, files, time.Second)
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	want := []string{"/u/first.png", "/u/second.png", "/u/third.png"}
	for i, u := range want {
		if urls[i] != u {
			t.Fatalf("urls[%d] = %q, want %q", i, urls[i], u)
		}
	}
}

func TestUploadBatchEmpty(t *testing.T) {
	urls, err := UploadBatch(context.Background(), &slowStore{}, nil, time.Second)
	if err != nil || urls != nil {
		t.Fatalf("empty batch: urls=%v err=%v", urls, err)
	}
}
