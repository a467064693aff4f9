package port

import "errors"

// Sentinel errors used across ports.
var (
	ErrUnsupportedFileType = errors.New("file type not allowed")
	ErrEmptyFilename       = errors.New("no file selected")
	ErrReviewNotFound      = errors.New("review not found")
)
