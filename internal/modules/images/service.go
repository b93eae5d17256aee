package images

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"

	"photoshare/internal/domain"
	"photoshare/internal/pkg/publicid"
	"photoshare/internal/pkg/qr"

	"gorm.io/gorm"
)

// Uploads over this size are rejected before the engine is ever called.
const maxUploadBytes = 5 << 20

type SortBy string

const (
	SortByRating SortBy = "rating"
	SortByDate   SortBy = "date"
)

// Service orchestrates the image lifecycle: upload, mutation, deletion and
// the transformation pipeline. Every operation runs the access policy
// before any side-effecting call.
type Service struct {
	repo   ImageRepositoryInterface
	users  UserReaderInterface
	engine TransformEngine
	ids    publicid.Generator
	emitQR func(url string) ([]byte, error)
	policy AccessPolicy
}

func NewService(repo ImageRepositoryInterface, users UserReaderInterface, engine TransformEngine, ids publicid.Generator) *Service {
	return &Service{
		repo:   repo,
		users:  users,
		engine: engine,
		ids:    ids,
		emitQR: qr.Emit,
	}
}

// Upload stores the file in the external engine and persists the new
// image under the actor. The size check runs first so an oversize payload
// never reaches the engine.
func (s *Service) Upload(ctx context.Context, actor Actor, file []byte, description string, tags []string) (*domain.Image, error) {
	if len(file) > maxUploadBytes {
		return nil, ErrFileTooLarge
	}

	user, err := s.users.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	pid := s.ids.New(publicid.UploadNamespace, user.Email)
	url, err := s.engine.Upload(ctx, file, pid)
	if err != nil {
		log.Printf("engine upload failed: public_id=%s error=%v", pid, err)
		return nil, ErrUpstream
	}

	img := &domain.Image{
		UserID:      actor.ID,
		URL:         url,
		Description: description,
		Tags:        toTags(tags),
	}
	if err := s.repo.Create(ctx, img); err != nil {
		// The remote asset now exists with no local record; report it so it
		// can be reconciled instead of leaking silently.
		log.Printf("orphaned remote asset: public_id=%s url=%s error=%v", pid, url, err)
		return nil, err
	}
	return img, nil
}

// Get resolves the image for the actor. Absent and inaccessible are
// deliberately indistinguishable here so existence does not leak.
func (s *Service) Get(ctx context.Context, actor Actor, imageID int64) (*domain.Image, error) {
	img, err := s.repo.GetByID(ctx, imageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !s.policy.CanAct(actor, img, OpRead) {
		return nil, ErrNotFound
	}
	return img, nil
}

func (s *Service) UpdateDescription(ctx context.Context, actor Actor, imageID int64, description string) (*domain.Image, error) {
	img, err := s.repo.GetByID(ctx, imageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !s.policy.CanAct(actor, img, OpUpdate) {
		return nil, ErrForbidden
	}

	img.Description = description
	if err := s.repo.Update(ctx, img); err != nil {
		return nil, err
	}
	return img, nil
}

// Delete removes the image and everything hanging off it: transformed
// images, ratings, comments. The cascade is one transaction.
func (s *Service) Delete(ctx context.Context, actor Actor, imageID int64) error {
	img, err := s.repo.GetByID(ctx, imageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !s.policy.CanAct(actor, img, OpDelete) {
		return ErrForbidden
	}

	if err := s.repo.DeleteCascade(ctx, imageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *Service) Crop(ctx context.Context, actor Actor, imageID int64, width, height int, mode string) (*domain.TransformedImage, error) {
	desc, err := BuildCrop(width, height, mode)
	if err != nil {
		return nil, err
	}
	return s.transform(ctx, actor, imageID, desc)
}

func (s *Service) ApplyEffect(ctx context.Context, actor Actor, imageID int64, effect string) (*domain.TransformedImage, error) {
	desc, err := BuildEffect(effect)
	if err != nil {
		return nil, err
	}
	return s.transform(ctx, actor, imageID, desc)
}

// transform sends the image's current source URL plus the descriptor to
// the engine and appends the derived asset to the version history. The
// parent image's own URL is never touched.
func (s *Service) transform(ctx context.Context, actor Actor, imageID int64, desc TransformDescriptor) (*domain.TransformedImage, error) {
	img, err := s.repo.GetByID(ctx, imageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !s.policy.CanAct(actor, img, OpTransform) {
		return nil, ErrForbidden
	}

	user, err := s.users.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	pid := s.ids.New(publicid.TransformedNamespace, user.Email)
	transformation := desc.Transformation()
	url, err := s.engine.Transform(ctx, img.URL, pid, transformation)
	if err != nil {
		log.Printf("engine transform failed: public_id=%s transformation=%s error=%v", pid, transformation, err)
		return nil, ErrUpstream
	}

	ti := &domain.TransformedImage{
		ImageID: img.ID,
		URL:     url,
		Kind:    desc.Kind,
		Params:  transformation,
	}
	if err := s.repo.CreateTransformed(ctx, ti); err != nil {
		log.Printf("orphaned remote asset: public_id=%s url=%s error=%v", pid, url, err)
		return nil, err
	}
	return ti, nil
}

// GenerateQR encodes the durable URL of the image's newest derived asset.
func (s *Service) GenerateQR(ctx context.Context, actor Actor, imageID int64) ([]byte, error) {
	img, err := s.repo.GetByID(ctx, imageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !s.policy.CanAct(actor, img, OpRead) {
		return nil, ErrNotFound
	}

	ti, err := s.repo.LatestTransformed(ctx, imageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.emitQR(ti.URL)
}

// ListForUser returns all images owned by the target user. Restricted to
// admins and moderators via the same policy gate as everything else.
func (s *Service) ListForUser(ctx context.Context, actor Actor, targetUserID int64) ([]domain.Image, error) {
	if !s.policy.CanAct(actor, nil, OpListUserImages) {
		return nil, ErrForbidden
	}
	return s.repo.GetByUserID(ctx, targetUserID)
}

// Search matches the query (case-insensitive, min 2 characters) against
// descriptions and tags, then sorts the hits stably by the chosen key.
// An empty result set is surfaced as ErrNotFound on purpose: the API
// contract reports "no images for this query" as 404.
func (s *Service) Search(ctx context.Context, query string, key SortBy, descending bool) ([]domain.Image, error) {
	if len(strings.TrimSpace(query)) < 2 {
		return nil, ErrQueryTooShort
	}
	if key != SortByRating && key != SortByDate {
		return nil, ErrInvalidSortKey
	}

	found, err := s.repo.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, ErrNotFound
	}

	if err := s.sortImages(ctx, found, key, descending); err != nil {
		return nil, err
	}
	return found, nil
}

func (s *Service) sortImages(ctx context.Context, imgs []domain.Image, key SortBy, descending bool) error {
	var less func(i, j int) bool

	switch key {
	case SortByDate:
		less = func(i, j int) bool {
			return imgs[i].CreatedAt.Before(imgs[j].CreatedAt)
		}
	case SortByRating:
		ids := make([]int64, len(imgs))
		for i, img := range imgs {
			ids[i] = img.ID
		}
		averages, err := s.repo.AverageRatings(ctx, ids)
		if err != nil {
			return err
		}
		// unrated images sort as zero
		less = func(i, j int) bool {
			return averages[imgs[i].ID] < averages[imgs[j].ID]
		}
	}

	if descending {
		asc := less
		less = func(i, j int) bool { return asc(j, i) }
	}

	// stable: equal keys keep their relative order
	sort.SliceStable(imgs, less)
	return nil
}

func toTags(names []string) []domain.Tag {
	tags := make([]domain.Tag, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		tags = append(tags, domain.Tag{Name: name})
	}
	return tags
}
