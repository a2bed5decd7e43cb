package apperrors

import "errors"

// Common errors
var (
	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")

	// Storage errors
	ErrStorage = errors.New("storage operation failed")
)

// Course catalog errors
var (
	ErrCourseNotFound = errors.New("course not found")
)

// Model (LLM) errors
var (
	ErrModelUnavailable = errors.New("model service unavailable")
	ErrModelParse       = errors.New("model returned unparseable output")
)

// Advising session errors
var (
	ErrSessionNotFound = errors.New("advising session not found")
	ErrSessionExpired  = errors.New("advising session expired")
)

// NewValidationError creates a new custom error for invalid request data with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewModelUnavailableError creates a new custom error for a failed model round trip
func NewModelUnavailableError(message string) error {
	return &CustomError{
		Err:     ErrModelUnavailable,
		Message: message,
	}
}

// NewModelParseError creates a new custom error for uninterpretable model output
func NewModelParseError(message string) error {
	return &CustomError{
		Err:     ErrModelParse,
		Message: message,
	}
}

// NewStorageError creates a new custom error for a failed query or mutation.
// The message must not contain query text; it is returned to clients as-is.
func NewStorageError(message string) error {
	return &CustomError{
		Err:     ErrStorage,
		Message: message,
	}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}
