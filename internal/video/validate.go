package video

import (
	"strings"
	"unicode/utf8"
)

const maxPromptLength = 200

var allowedDurations = []int{10, 20, 30}

// ValidationError marks malformed input; its message is shown to the caller
// verbatim and the request is never retried.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func newValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

// ValidateRequest checks a generation request before any state is touched.
func ValidateRequest(req *GenerationRequest) error {
	if strings.TrimSpace(req.Prompt) == "" {
		return newValidationError("Prompt is required")
	}
	if utf8.RuneCountInString(req.Prompt) > maxPromptLength {
		return newValidationError("Prompt must be 200 characters or less")
	}
	validDuration := false
	for _, d := range allowedDurations {
		if req.Duration == d {
			validDuration = true
			break
		}
	}
	if !validDuration {
		return newValidationError("Duration must be 10, 20, or 30 seconds")
	}
	return nil
}
