package media

import (
	"context"

	model "blogicum/internal/domain/models"
)

//go:generate mockery --name Storage --dir . --output ../../../../../mocks/media --outpkg mocks --filename MediaStorage.go
type Storage interface {
	// Save stores the upload and returns its path relative to the media root.
	Save(ctx context.Context, upload *model.ImageUpload) (string, error)
	Delete(ctx context.Context, path string) error
}
