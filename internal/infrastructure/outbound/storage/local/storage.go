package local

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"blogicum/internal/custom_errors"
	model "blogicum/internal/domain/models"
	ports "blogicum/internal/domain/ports/output"
)

const imagesDir = "posts_images"

var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Storage writes uploaded images below root. Stored paths are slash separated
// and relative to root so they can be joined to the public media prefix.
type Storage struct {
	root    string
	maxSize int64
	log     ports.Logger
}

func NewStorage(root string, maxSize int64, log ports.Logger) (*Storage, error) {
	if err := os.MkdirAll(filepath.Join(root, imagesDir), 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &Storage{root: root, maxSize: maxSize, log: log}, nil
}

func (s *Storage) Save(ctx context.Context, upload *model.ImageUpload) (string, error) {
	if upload == nil || upload.Content == nil {
		return "", custom_errors.ErrInvalidInput
	}
	if s.maxSize > 0 && upload.Size > s.maxSize {
		return "", custom_errors.ErrImageTooLarge
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(upload.Content, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		s.log.Error("Failed to read upload", slog.String("error", err.Error()))
		return "", custom_errors.ErrImageStoreFailed
	}
	head = head[:n]

	ext, ok := allowedTypes[http.DetectContentType(head)]
	if !ok {
		s.log.Debug("Rejected upload", slog.String("filename", upload.Filename), slog.String("content_type", http.DetectContentType(head)))
		return "", custom_errors.ErrImageInvalidType
	}

	rel := path.Join(imagesDir, uuid.NewString()+ext)
	full := filepath.Join(s.root, filepath.FromSlash(rel))

	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		s.log.Error("Failed to create image file", slog.String("path", full), slog.String("error", err.Error()))
		return "", custom_errors.ErrImageStoreFailed
	}

	src := io.MultiReader(bytes.NewReader(head), upload.Content)
	if s.maxSize > 0 {
		src = io.LimitReader(src, s.maxSize+1)
	}
	written, err := io.Copy(f, src)
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && s.maxSize > 0 && written > s.maxSize {
		err = custom_errors.ErrImageTooLarge
	}
	if err != nil {
		_ = os.Remove(full)
		if errors.Is(err, custom_errors.ErrImageTooLarge) {
			return "", err
		}
		s.log.Error("Failed to write image", slog.String("path", full), slog.String("error", err.Error()))
		return "", custom_errors.ErrImageStoreFailed
	}

	s.log.Debug("Stored image", slog.String("path", rel), slog.Int64("bytes", written))
	return rel, nil
}

func (s *Storage) Delete(ctx context.Context, rel string) error {
	clean := path.Clean("/" + rel)
	if !strings.HasPrefix(clean, "/"+imagesDir+"/") {
		return custom_errors.ErrInvalidInput
	}
	full := filepath.Join(s.root, filepath.FromSlash(strings.TrimPrefix(clean, "/")))
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.log.Warn("Failed to delete image", slog.String("path", full), slog.String("error", err.Error()))
		return err
	}
	return nil
}
