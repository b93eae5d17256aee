package repository

import (
	"context"
	"strings"

	"photoshare/internal/domain"

	"gorm.io/gorm"
)

type ImageRepository struct {
	db *gorm.DB
}

func NewImageRepository(db *gorm.DB) *ImageRepository {
	return &ImageRepository{db: db}
}

// Create inserts the image and resolves its tag names to tag rows,
// creating missing tags on the way.
func (r *ImageRepository) Create(ctx context.Context, img *domain.Image) error {
	for i := range img.Tags {
		name := strings.ToLower(strings.TrimSpace(img.Tags[i].Name))
		img.Tags[i].Name = name
		if err := r.db.WithContext(ctx).
			Where("name = ?", name).
			FirstOrCreate(&img.Tags[i], domain.Tag{Name: name}).Error; err != nil {
			return err
		}
	}
	return r.db.WithContext(ctx).Create(img).Error
}

func (r *ImageRepository) GetByID(ctx context.Context, id int64) (*domain.Image, error) {
	var img domain.Image
	tx := r.db.WithContext(ctx).Preload("Tags").First(&img, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &img, nil
}

func (r *ImageRepository) Update(ctx context.Context, img *domain.Image) error {
	return r.db.WithContext(ctx).Model(&domain.Image{}).
		Where("id = ?", img.ID).
		Updates(map[string]any{"description": img.Description}).Error
}

func (r *ImageRepository) GetByUserID(ctx context.Context, userID int64) ([]domain.Image, error) {
	var images []domain.Image
	tx := r.db.WithContext(ctx).
		Preload("Tags").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&images)
	return images, tx.Error
}

// Search matches the query case-insensitively against description text and
// tag names. Results come back in insertion order; the caller sorts.
func (r *ImageRepository) Search(ctx context.Context, query string) ([]domain.Image, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"

	var ids []int64
	if err := r.db.WithContext(ctx).Model(&domain.Image{}).
		Distinct("images.id").
		Joins("LEFT JOIN image_tags ON image_tags.image_id = images.id").
		Joins("LEFT JOIN tags ON tags.id = image_tags.tag_id").
		Where("LOWER(images.description) LIKE ? OR LOWER(tags.name) LIKE ?", pattern, pattern).
		Pluck("images.id", &ids).Error; err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []domain.Image{}, nil
	}

	var images []domain.Image
	tx := r.db.WithContext(ctx).
		Preload("Tags").
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&images)
	return images, tx.Error
}

// DeleteCascade removes the image together with its transformed images,
// ratings, comments and tag links in one transaction. Idempotent: a second
// call reports gorm.ErrRecordNotFound and changes nothing.
func (r *ImageRepository) DeleteCascade(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("image_id = ?", id).Delete(&domain.TransformedImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("image_id = ?", id).Delete(&domain.Rating{}).Error; err != nil {
			return err
		}
		if err := tx.Where("image_id = ?", id).Delete(&domain.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM image_tags WHERE image_id = ?", id).Error; err != nil {
			return err
		}

		res := tx.Delete(&domain.Image{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *ImageRepository) CreateTransformed(ctx context.Context, ti *domain.TransformedImage) error {
	return r.db.WithContext(ctx).Create(ti).Error
}

// LatestTransformed returns the newest derived asset of the image.
func (r *ImageRepository) LatestTransformed(ctx context.Context, imageID int64) (*domain.TransformedImage, error) {
	var ti domain.TransformedImage
	tx := r.db.WithContext(ctx).
		Where("image_id = ?", imageID).
		Order("created_at DESC, id DESC").
		First(&ti)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &ti, nil
}

func (r *ImageRepository) CountTransformed(ctx context.Context, imageID int64) (int64, error) {
	var count int64
	tx := r.db.WithContext(ctx).Model(&domain.TransformedImage{}).
		Where("image_id = ?", imageID).
		Count(&count)
	return count, tx.Error
}

// AverageRatings returns image_id -> average score for the given images.
// Images without ratings are absent from the map.
func (r *ImageRepository) AverageRatings(ctx context.Context, imageIDs []int64) (map[int64]float64, error) {
	if len(imageIDs) == 0 {
		return map[int64]float64{}, nil
	}

	type row struct {
		ImageID int64
		Avg     float64
	}
	var rows []row
	if err := r.db.WithContext(ctx).Model(&domain.Rating{}).
		Select("image_id AS image_id, AVG(score) AS avg").
		Where("image_id IN ?", imageIDs).
		Group("image_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	averages := make(map[int64]float64, len(rows))
	for _, r := range rows {
		averages[r.ImageID] = r.Avg
	}
	return averages, nil
}
