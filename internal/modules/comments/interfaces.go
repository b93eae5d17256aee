package comments

import (
	"context"

	"photoshare/internal/domain"
)

type CommentRepositoryInterface interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id int64) (*domain.Comment, error)
	GetByImageID(ctx context.Context, imageID int64) ([]domain.Comment, error)
	Update(ctx context.Context, comment *domain.Comment) error
	Delete(ctx context.Context, id int64) error
}

type ImageGate interface {
	GetByID(ctx context.Context, id int64) (*domain.Image, error)
}
