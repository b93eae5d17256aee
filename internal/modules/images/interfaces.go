package images

import (
	"context"

	"photoshare/internal/domain"
)

// ImageRepositoryInterface — persistence the lifecycle manager needs
type ImageRepositoryInterface interface {
	Create(ctx context.Context, img *domain.Image) error
	GetByID(ctx context.Context, id int64) (*domain.Image, error)
	Update(ctx context.Context, img *domain.Image) error
	DeleteCascade(ctx context.Context, id int64) error
	GetByUserID(ctx context.Context, userID int64) ([]domain.Image, error)
	Search(ctx context.Context, query string) ([]domain.Image, error)
	CreateTransformed(ctx context.Context, ti *domain.TransformedImage) error
	LatestTransformed(ctx context.Context, imageID int64) (*domain.TransformedImage, error)
	AverageRatings(ctx context.Context, imageIDs []int64) (map[int64]float64, error)
}

// UserReaderInterface — actor lookup (the public id embeds the email)
type UserReaderInterface interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// TransformEngine — the external transformation/storage collaborator.
// Upload stores raw bytes; Transform derives a new asset from a source URL.
// Both return a durable URL.
type TransformEngine interface {
	Upload(ctx context.Context, file []byte, publicID string) (string, error)
	Transform(ctx context.Context, sourceURL, publicID, transformation string) (string, error)
}
