package comments

import (
	"context"
	"errors"

	"photoshare/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	comments CommentRepositoryInterface
	images   ImageGate
}

func NewService(comments CommentRepositoryInterface, images ImageGate) *Service {
	return &Service{comments: comments, images: images}
}

func (s *Service) Create(ctx context.Context, userID, imageID int64, text string) (*domain.Comment, error) {
	if _, err := s.images.GetByID(ctx, imageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	comment := &domain.Comment{
		UserID:  userID,
		ImageID: imageID,
		Text:    text,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *Service) ListByImage(ctx context.Context, imageID int64) ([]domain.Comment, error) {
	if _, err := s.images.GetByID(ctx, imageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.comments.GetByImageID(ctx, imageID)
}

// Update rewrites the comment text. Only the author may edit.
func (s *Service) Update(ctx context.Context, userID, commentID int64, text string) (*domain.Comment, error) {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if comment.UserID != userID {
		return nil, ErrForbidden
	}

	comment.Text = text
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete removes the comment. The author may delete their own;
// moderators and admins may delete anyone's.
func (s *Service) Delete(ctx context.Context, userID int64, role domain.UserRole, commentID int64) error {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if comment.UserID != userID && role != domain.RoleModerator && role != domain.RoleAdmin {
		return ErrForbidden
	}

	if err := s.comments.Delete(ctx, commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
