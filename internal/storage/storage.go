package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"showroom/internal/domain"
)

// UploadProgress reports bytes moved for one in-flight upload
type UploadProgress struct {
	Loaded     int64 `json:"loaded"`
	Total      int64 `json:"total"`
	Percentage int   `json:"percentage"`
}

// ProgressFunc receives progress callbacks while an upload streams
type ProgressFunc func(UploadProgress)

// BlobStore is the blob storage collaborator: uploads return a public URL,
// deletes are keyed by the object path embedded in that URL.
type BlobStore interface {
	// Upload stores the GLB payload under a caller-chosen object key and
	// returns its public URL. onProgress may be nil.
	Upload(ctx context.Context, key string, payload io.Reader, size int64, onProgress ProgressFunc) (string, error)

	// Delete removes one stored object
	Delete(ctx context.Context, key string) error

	// KeyFromURL recovers the object key from a public URL produced by
	// Upload, or "" when the URL was not produced by this store.
	KeyFromURL(url string) string
}

// glbMagic is the binary-glTF container signature ("glTF" little-endian)
var glbMagic = []byte{0x67, 0x6c, 0x54, 0x46}

// ValidateGLB rejects payloads that are not binary glTF before any network
// call: the filename must end in .glb and the payload must start with the
// glTF container magic.
func ValidateGLB(filename string, header []byte) error {
	if !strings.HasSuffix(strings.ToLower(filename), ".glb") {
		return fmt.Errorf("%w: file must be a .glb model", domain.ErrValidation)
	}
	if len(header) < len(glbMagic) || !bytes.Equal(header[:len(glbMagic)], glbMagic) {
		return fmt.Errorf("%w: file is not a binary glTF container", domain.ErrValidation)
	}
	return nil
}

// progressReader wraps an upload body and fires the progress callback as the
// SDK consumes it.
type progressReader struct {
	r          io.Reader
	total      int64
	loaded     int64
	onProgress ProgressFunc
}

// NewProgressReader wraps r so that onProgress fires as bytes are read.
// Returns r unchanged when onProgress is nil.
func NewProgressReader(r io.Reader, total int64, onProgress ProgressFunc) io.Reader {
	if onProgress == nil {
		return r
	}
	return &progressReader{r: r, total: total, onProgress: onProgress}
}

func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.r.Read(buf)
	if n > 0 {
		p.loaded += int64(n)
		percentage := 0
		if p.total > 0 {
			percentage = int(p.loaded * 100 / p.total)
		}
		p.onProgress(UploadProgress{
			Loaded:     p.loaded,
			Total:      p.total,
			Percentage: percentage,
		})
	}
	return n, err
}
