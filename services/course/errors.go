package courseService

import "errors"

// Sentinel errors surfaced by the course services. Controllers map these to
// HTTP statuses; anything else is treated as an internal failure.
var (
	ErrValidation         = errors.New("validation failed")
	ErrQuizNotFound       = errors.New("quiz not found")
	ErrQuestionNotFound   = errors.New("question not found in this quiz")
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrCreationFailed     = errors.New("failed to create quiz")
	ErrGradingFailed      = errors.New("failed to grade submission")
)
