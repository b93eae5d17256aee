package images

import "errors"

var (
	ErrNotFound         = errors.New("not_found")
	ErrForbidden        = errors.New("forbidden")
	ErrFileTooLarge     = errors.New("file_too_large")
	ErrInvalidTransform = errors.New("invalid_transform")
	ErrQueryTooShort    = errors.New("query_too_short")
	ErrInvalidSortKey   = errors.New("invalid_sort_key")
	ErrUpstream         = errors.New("upstream_failure")
)
