package circulation

import "errors"

var (
	// ErrNotFound is returned by Borrow when the person or media item id does not resolve.
	ErrNotFound = errors.New("not found")
	// ErrUnavailable is returned by Borrow when the media item already has an open loan.
	ErrUnavailable = errors.New("media item unavailable")
)
