package types

import "errors"

var (
	ErrGrievanceNotFound  = errors.New("grievance not found")
	ErrAttachmentNotFound = errors.New("attachment not found")
	ErrInvalidStatus      = errors.New("invalid grievance status")
)

// ErrorCode is the machine-readable code carried by every API error body.
type ErrorCode string

const (
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeFileTooLarge     ErrorCode = "FILE_TOO_LARGE"
	CodeTooManyFiles     ErrorCode = "TOO_MANY_FILES"
	CodeInvalidFileType  ErrorCode = "INVALID_FILE_TYPE"
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeInternalError    ErrorCode = "INTERNAL_ERROR"
)

// APIError is the uniform error envelope returned by every failing endpoint.
type APIError struct {
	Message string    `json:"error"`
	Code    ErrorCode `json:"code"`
	Details []string  `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}
