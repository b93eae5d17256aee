package ratings

import (
	"context"

	"photoshare/internal/domain"
)

type RatingRepositoryInterface interface {
	Upsert(ctx context.Context, rating *domain.Rating) error
	GetByUserAndImage(ctx context.Context, userID, imageID int64) (*domain.Rating, error)
	Average(ctx context.Context, imageID int64) (float64, int64, error)
}

// ImageGate confirms the rated image exists before a vote is recorded.
type ImageGate interface {
	GetByID(ctx context.Context, id int64) (*domain.Image, error)
}
