package ratings

import "errors"

var (
	ErrInvalidScore = errors.New("score must be between 1 and 5")
	ErrNotFound     = errors.New("image not found")
)
