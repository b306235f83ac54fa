package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrMalformedSentence = errors.New("malformed sentence")
	ErrInvalidTerm       = errors.New("invalid term")
	ErrNotFound          = errors.New("not found")
	ErrStoreUnavailable  = errors.New("store unavailable")
	ErrInvalidConfig     = errors.New("invalid configuration")
)
