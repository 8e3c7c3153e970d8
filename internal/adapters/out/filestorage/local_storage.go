// Package filestorage keeps parcel photos on the local disk. References have
// the form "uploads/<name>" and are served statically under the same path.
package filestorage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"parcels/internal/pkg/errs"

	"github.com/google/uuid"
)

// ReferencePrefix is the URL path segment photos are served under.
const ReferencePrefix = "uploads"

// allowedExtensions maps accepted image extensions to their content types.
var allowedExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
}

// IsAllowedContentType reports whether a declared content type is an accepted image.
func IsAllowedContentType(contentType string) bool {
	contentType = strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	for _, allowed := range allowedExtensions {
		if contentType == allowed {
			return true
		}
	}
	return false
}

// LocalStorage implements ports.PhotoStorage in a single directory.
type LocalStorage struct {
	dir      string
	maxBytes int64
}

// NewLocalStorage creates dir if needed. maxBytes <= 0 disables the size limit.
func NewLocalStorage(dir string, maxBytes int64) (*LocalStorage, error) {
	if dir == "" {
		return nil, errors.New("upload directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &LocalStorage{dir: dir, maxBytes: maxBytes}, nil
}

// Dir is the directory served as ReferencePrefix.
func (s *LocalStorage) Dir() string {
	return s.dir
}

// Save stores content under a fresh unique name that keeps the original extension.
func (s *LocalStorage) Save(ctx context.Context, originalName string, content io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", errs.NewValueIsInvalidErrorWithCause("photo",
			fmt.Errorf("only jpg, png and gif images are accepted, got %q", ext))
	}

	name := uuid.NewString() + ext
	target := filepath.Join(s.dir, name)

	file, err := os.OpenFile(target, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("create photo file: %w", err)
	}

	reader := content
	if s.maxBytes > 0 {
		reader = io.LimitReader(content, s.maxBytes+1)
	}
	written, copyErr := io.Copy(file, contextReader{ctx: ctx, r: reader})
	closeErr := file.Close()

	if copyErr == nil && s.maxBytes > 0 && written > s.maxBytes {
		copyErr = errs.NewValueIsOutOfRangeError("photo", written, 1, s.maxBytes)
	}
	if err = errors.Join(copyErr, closeErr); err != nil {
		_ = os.Remove(target)
		return "", err
	}

	return path.Join(ReferencePrefix, name), nil
}

// Delete removes a stored photo. Missing files and empty references are ignored.
func (s *LocalStorage) Delete(_ context.Context, reference string) error {
	if reference == "" {
		return nil
	}

	name := strings.TrimPrefix(reference, ReferencePrefix+"/")
	if name == reference || name == "" || strings.ContainsAny(name, `/\`) || name == ".." {
		return errs.NewValueIsInvalidError("photoReference")
	}

	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove photo: %w", err)
	}
	return nil
}

type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
