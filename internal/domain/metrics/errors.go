package metrics

import "errors"

var (
	// ErrStoreUnavailable indicates the entity snapshot could not be read.
	ErrStoreUnavailable = errors.New("entity store unavailable")
	// ErrCompletedStatusUnknown indicates no status carries the configured completed name.
	ErrCompletedStatusUnknown = errors.New("completed status not found")
	// ErrInvalidLocale indicates the configured collation locale cannot be parsed.
	ErrInvalidLocale = errors.New("invalid collation locale")
)
