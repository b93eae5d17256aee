package repository

import (
	"context"

	"photoshare/internal/domain"

	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	var comment domain.Comment
	tx := r.db.WithContext(ctx).First(&comment, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &comment, nil
}

func (r *CommentRepository) GetByImageID(ctx context.Context, imageID int64) ([]domain.Comment, error) {
	var comments []domain.Comment
	tx := r.db.WithContext(ctx).
		Where("image_id = ?", imageID).
		Order("created_at ASC").
		Find(&comments)
	return comments, tx.Error
}

func (r *CommentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	return r.db.WithContext(ctx).Model(&domain.Comment{}).
		Where("id = ?", comment.ID).
		Updates(map[string]any{"text": comment.Text}).Error
}

func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&domain.Comment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
