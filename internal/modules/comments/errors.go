package comments

import "errors"

var (
	ErrNotFound  = errors.New("comment or image not found")
	ErrForbidden = errors.New("not allowed to modify this comment")
)
