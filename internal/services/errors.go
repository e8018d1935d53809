package services

import "errors"

var (
	// ErrSpecNotFound means no cached entry exists for the sanitized name.
	ErrSpecNotFound = errors.New("category spec not found")

	// ErrSpecConflict means a different detail name already owns this
	// sanitized cache key. Colliding names are rejected, not merged.
	ErrSpecConflict = errors.New("category spec cache key conflict")

	// ErrEmptySanitizedName means the detail name sanitized to nothing and
	// cannot be used as a cache identity.
	ErrEmptySanitizedName = errors.New("detail name sanitizes to empty string")

	// ErrEmptyCrawl means the crawl collaborator returned no usable options.
	ErrEmptyCrawl = errors.New("crawl returned no option data")
)
