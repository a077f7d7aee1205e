package domain

import "errors"

// Configuration errors are fatal, surfaced immediately, and never retried.
var (
	ErrUnsupportedModel = errors.New("model identity has no registered parameter mapping")
	ErrMissingConfig    = errors.New("required configuration is missing")
)

// Validation errors are fatal for the current request only.
var (
	ErrNoPages             = errors.New("no page images found in the file")
	ErrMissingPlaceholder  = errors.New("missing value for required prompt placeholder")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrEmptyDocument       = errors.New("document is empty")
	ErrMissingStorageKey   = errors.New("neither inline document nor storage key provided")
	ErrFileTooLarge        = errors.New("file exceeds the maximum allowed size")
	ErrUploadFailed        = errors.New("file upload to storage failed")
)
