package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrDuplicateFile       = errors.New("file with identical checksum already tracked")
	ErrInvalidPartNumber   = errors.New("part number is not an active part")
	ErrPartsDBUnavailable  = errors.New("parts database unavailable")
	ErrNotAwaitingReview   = errors.New("file is not awaiting review")
)
