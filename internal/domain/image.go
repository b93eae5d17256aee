package domain

import "time"

// Image is the canonical uploaded asset. UserID is set on upload and never
// changes afterwards; transformations hang off the image as separate rows.
type Image struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	Tags        []Tag     `json:"tags,omitempty" gorm:"many2many:image_tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name" gorm:"uniqueIndex"`
}

type TransformKind string

const (
	TransformCrop   TransformKind = "crop"
	TransformEffect TransformKind = "effect"
)

// TransformedImage is one entry of an image's version history. Rows are
// append-only: there is no update or standalone delete path, only the
// parent image's cascade removes them.
type TransformedImage struct {
	ID        int64         `json:"id"`
	ImageID   int64         `json:"image_id"`
	URL       string        `json:"url"`
	Kind      TransformKind `json:"kind"`
	Params    string        `json:"params"`
	CreatedAt time.Time     `json:"created_at"`
}

type Rating struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id" gorm:"uniqueIndex:idx_ratings_user_image"`
	ImageID   int64     `json:"image_id" gorm:"uniqueIndex:idx_ratings_user_image"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Comment struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ImageID   int64     `json:"image_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
