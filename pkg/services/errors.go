package services

import "errors"

// Not-found conditions surfaced to the HTTP layer as 404.
var (
	ErrTabNotFound     = errors.New("tab not found")
	ErrArticleNotFound = errors.New("article not found")
	ErrMediaNotFound   = errors.New("media not found")
)

// IsNotFound reports whether err is one of the not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrTabNotFound) ||
		errors.Is(err, ErrArticleNotFound) ||
		errors.Is(err, ErrMediaNotFound)
}
