package ratings

import (
	"context"
	"errors"

	"photoshare/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	ratings RatingRepositoryInterface
	images  ImageGate
}

func NewService(ratings RatingRepositoryInterface, images ImageGate) *Service {
	return &Service{ratings: ratings, images: images}
}

// Set records the user's score for an image. A second vote by the same
// user replaces the first one, it never accumulates.
func (s *Service) Set(ctx context.Context, userID, imageID int64, score int) (*domain.Rating, error) {
	if score < 1 || score > 5 {
		return nil, ErrInvalidScore
	}

	if _, err := s.images.GetByID(ctx, imageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	rating := &domain.Rating{
		UserID:  userID,
		ImageID: imageID,
		Score:   score,
	}
	if err := s.ratings.Upsert(ctx, rating); err != nil {
		return nil, err
	}
	return rating, nil
}

// Average returns the mean score and vote count for an image. An image
// with no votes reports an average of zero.
func (s *Service) Average(ctx context.Context, imageID int64) (float64, int64, error) {
	if _, err := s.images.GetByID(ctx, imageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, 0, ErrNotFound
		}
		return 0, 0, err
	}
	return s.ratings.Average(ctx, imageID)
}
