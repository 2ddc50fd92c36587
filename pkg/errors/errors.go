package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Selection and directory errors
	ErrInvalidSelection ErrorCode = "INVALID_SELECTION"
	ErrInvalidDirectory ErrorCode = "INVALID_DIRECTORY"

	// Sequence errors
	ErrNoRecognizedExtension ErrorCode = "NO_RECOGNIZED_EXTENSION"
	ErrAmbiguousExtension    ErrorCode = "AMBIGUOUS_EXTENSION"
	ErrNoMatchingFrames      ErrorCode = "NO_MATCHING_FRAMES"
	ErrEmptyFrameList        ErrorCode = "EMPTY_FRAME_LIST"

	// Rename errors
	ErrNameCollision ErrorCode = "NAME_COLLISION"
	ErrRenameFailed  ErrorCode = "RENAME_FAILED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Binding errors
	ErrBindingLoad ErrorCode = "BINDING_LOAD"
	ErrBindingSave ErrorCode = "BINDING_SAVE"

	// Watch errors
	ErrWatch ErrorCode = "WATCH"
)

// FrameseqError represents a structured error with code and details
type FrameseqError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *FrameseqError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *FrameseqError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *FrameseqError) Is(target error) bool {
	var targetErr *FrameseqError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new FrameseqError with the given code and message
func New(code ErrorCode, message string) *FrameseqError {
	return &FrameseqError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new FrameseqError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *FrameseqError {
	return &FrameseqError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a FrameseqError
func Wrap(err error, code ErrorCode, message string) *FrameseqError {
	if err == nil {
		return nil
	}
	return &FrameseqError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *FrameseqError {
	if err == nil {
		return nil
	}
	return &FrameseqError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *FrameseqError) WithDetail(key string, value interface{}) *FrameseqError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *FrameseqError) WithDetails(details map[string]interface{}) *FrameseqError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var fsErr *FrameseqError
	if errors.As(err, &fsErr) {
		return fsErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a FrameseqError
func GetErrorCode(err error) ErrorCode {
	var fsErr *FrameseqError
	if errors.As(err, &fsErr) {
		return fsErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a FrameseqError
func GetErrorDetails(err error) map[string]interface{} {
	var fsErr *FrameseqError
	if errors.As(err, &fsErr) {
		return fsErr.Details
	}
	return nil
}

// IsRecoverable reports whether the error leaves the caller's state usable:
// the host may keep going (for example on the next refresh tick).
func IsRecoverable(err error) bool {
	switch GetErrorCode(err) {
	case ErrEmptyFrameList, ErrNoMatchingFrames, ErrNoRecognizedExtension:
		return true
	}
	return false
}
