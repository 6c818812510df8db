package domain

import "errors"

// Domain-specific errors for quote validation and computation.
var (
	// Client input errors
	ErrUnsupportedLanguage   = errors.New("unsupported language")
	ErrInvalidCharacterCount = errors.New("unacceptable amount of symbols")
	ErrInvalidSchedule       = errors.New("invalid work schedule")

	// ErrInternal marks an unexpected failure during quote computation.
	ErrInternal = errors.New("internal computation failure")
)
