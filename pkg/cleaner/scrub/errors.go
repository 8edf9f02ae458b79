package scrub

import "errors"

var (
	// ErrInvalidInput is returned for empty or missing input and for an
	// invalid configuration. Nothing is parsed.
	ErrInvalidInput = errors.New("invalid input")

	// ErrParse is returned when the markup cannot be parsed.
	ErrParse = errors.New("parse failure")

	// ErrInternal is returned when stripping, optimizing, serializing or
	// beautifying fails unexpectedly.
	ErrInternal = errors.New("internal fault")
)

// Error kinds reported by KindOf.
const (
	KindNone         = "none"
	KindInvalidInput = "invalid_input"
	KindParse        = "parse"
	KindInternal     = "internal"
)

// KindOf classifies err by the sentinel it wraps.
func KindOf(err error) string {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, ErrParse):
		return KindParse
	default:
		return KindInternal
	}
}
