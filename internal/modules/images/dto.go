package images

import (
	"time"

	"photoshare/internal/domain"
)

// UploadForm holds the non-file multipart fields. Multipart forms bypass
// gin's JSON binding, so these are validated explicitly.
type UploadForm struct {
	Description string `validate:"max=250"`
}

type UpdateDescriptionRequest struct {
	Description string `json:"description" binding:"required,max=250"`
}

type CropRequest struct {
	Width  int    `json:"width" binding:"required,gt=0"`
	Height int    `json:"height" binding:"required,gt=0"`
	Mode   string `json:"mode" binding:"required"`
}

type EffectRequest struct {
	Effect string `json:"effect" binding:"required"`
}

type TransformedImageResponse struct {
	ID        int64  `json:"id"`
	ImageID   int64  `json:"image_id"`
	URL       string `json:"url"`
	Kind      string `json:"kind"`
	Params    string `json:"params"`
	CreatedAt string `json:"created_at"`
}

func newTransformedImageResponse(ti *domain.TransformedImage) TransformedImageResponse {
	return TransformedImageResponse{
		ID:        ti.ID,
		ImageID:   ti.ImageID,
		URL:       ti.URL,
		Kind:      string(ti.Kind),
		Params:    ti.Params,
		CreatedAt: ti.CreatedAt.Format(time.RFC3339),
	}
}
