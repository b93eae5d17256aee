package repository

import (
	"context"

	"photoshare/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// Upsert inserts the rating or replaces the score of the existing
// (user, image) row. At most one row per pair survives.
func (r *RatingRepository) Upsert(ctx context.Context, rating *domain.Rating) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "image_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"score", "updated_at"}),
	}).Create(rating).Error
}

func (r *RatingRepository) GetByUserAndImage(ctx context.Context, userID, imageID int64) (*domain.Rating, error) {
	var rating domain.Rating
	tx := r.db.WithContext(ctx).
		Where("user_id = ? AND image_id = ?", userID, imageID).
		First(&rating)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &rating, nil
}

// Average returns the mean score and the number of ratings for the image.
func (r *RatingRepository) Average(ctx context.Context, imageID int64) (float64, int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Rating{}).
		Where("image_id = ?", imageID).
		Count(&count).Error; err != nil {
		return 0, 0, err
	}
	if count == 0 {
		return 0, 0, nil
	}

	var avg float64
	if err := r.db.WithContext(ctx).Model(&domain.Rating{}).
		Select("AVG(score)").
		Where("image_id = ?", imageID).
		Scan(&avg).Error; err != nil {
		return 0, 0, err
	}
	return avg, count, nil
}
