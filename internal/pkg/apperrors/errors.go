package apperrors

import "errors"

// Common errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrValidationFailed   = errors.New("validation failed")
)

// Identity & group errors
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrGroupNotFound = errors.New("group not found")
)

// Attendance errors
var (
	ErrAttendanceNotFound  = errors.New("attendance record not found")
	ErrDuplicateAttendance = errors.New("attendance for this group has already been recorded today")
	ErrInvalidMembers      = errors.New("one or more users are invalid or not part of the group")
	ErrMemberNotInRecord   = errors.New("user not found in attendance record")
	ErrInvalidStatus       = errors.New("invalid attendance status")
)

// Certificate errors
var (
	ErrCertificateNotFound     = errors.New("certificate not found")
	ErrTemplateMissing         = errors.New("certificate template not found")
	ErrCertificateRenderFailed = errors.New("certificate rendering failed")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
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

// NewValidationError creates a CustomError wrapping ErrValidationFailed
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewInvalidMembersError creates a CustomError carrying the offending user ids
func NewInvalidMembersError(userIDs []string) error {
	return &CustomError{
		Err:     ErrInvalidMembers,
		Message: "one or more users are invalid or not part of the group",
		Details: map[string]interface{}{"userIds": userIDs},
	}
}
