// Package errors provides standardized error handling for the campaign pipeline.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidEmail     ErrorCode = "INVALID_EMAIL"

	ErrCodeGenerationFailed    ErrorCode = "GENERATION_FAILED"
	ErrCodeResponseParseFailed ErrorCode = "RESPONSE_PARSE_FAILED"

	ErrCodeTemplateNotFound   ErrorCode = "TEMPLATE_NOT_FOUND"
	ErrCodeTemplateLoadFailed ErrorCode = "TEMPLATE_LOAD_FAILED"

	ErrCodeEmailSendFailed ErrorCode = "EMAIL_SEND_FAILED"

	ErrCodeBusinessLoadFailed ErrorCode = "BUSINESS_LOAD_FAILED"
	ErrCodeBusinessSaveFailed ErrorCode = "BUSINESS_SAVE_FAILED"
	ErrCodeReportSaveFailed   ErrorCode = "REPORT_SAVE_FAILED"
	ErrCodeReportNotFound     ErrorCode = "REPORT_NOT_FOUND"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Error categories, one per failure class of a campaign run.
const (
	CategoryValidation  = "validation"
	CategoryGeneration  = "generation"
	CategoryTemplate    = "template"
	CategoryTransport   = "transport"
	CategoryPersistence = "persistence"
	CategoryInternal    = "internal"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause to errors.Is / errors.As.
func (e *StandardError) Unwrap() error {
	return e.cause
}

// WithMetadata attaches a key/value pair and returns the same error.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

func newError(code ErrorCode, message string, cause error, retryable bool) *StandardError {
	details := ""
	if cause != nil {
		details = cause.Error()
	}
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// ==========================
// 2. Error Constructors
// ==========================

// NewValidationError creates a non-retryable validation error.
func NewValidationError(details string) *StandardError {
	e := newError(ErrCodeValidationFailed, "Validation failed", nil, false)
	e.Details = details
	return e
}

// NewInvalidEmailError creates a non-retryable email syntax error.
func NewInvalidEmailError(address string) *StandardError {
	e := newError(ErrCodeInvalidEmail, "Invalid email address detected", nil, false)
	e.Details = fmt.Sprintf("address: %q", address)
	return e
}

// NewGenerationFailedError wraps a generation capability failure.
func NewGenerationFailedError(err error) *StandardError {
	return newError(ErrCodeGenerationFailed, "Text generation failed", err, true)
}

// NewResponseParseFailedError wraps a failure to decode or validate a generated response.
func NewResponseParseFailedError(err error) *StandardError {
	return newError(ErrCodeResponseParseFailed, "Failed to parse AI response as JSON", err, false)
}

// NewTemplateNotFoundError creates a non-retryable template error.
func NewTemplateNotFoundError(templateName string, err error) *StandardError {
	e := newError(ErrCodeTemplateNotFound, "Template not found", err, false)
	return e.WithMetadata("templateName", templateName)
}

// NewTemplateLoadFailedError wraps an unexpected template read failure.
func NewTemplateLoadFailedError(templateName string, err error) *StandardError {
	e := newError(ErrCodeTemplateLoadFailed, "Template could not be loaded", err, true)
	return e.WithMetadata("templateName", templateName)
}

// NewEmailSendFailedError wraps a mail transport failure.
func NewEmailSendFailedError(err error) *StandardError {
	return newError(ErrCodeEmailSendFailed, "Failed to send email", err, true)
}

// NewBusinessLoadFailedError wraps a directory read failure.
func NewBusinessLoadFailedError(err error) *StandardError {
	return newError(ErrCodeBusinessLoadFailed, "Failed to load businesses", err, true)
}

// NewBusinessSaveFailedError wraps a directory write failure.
func NewBusinessSaveFailedError(err error) *StandardError {
	return newError(ErrCodeBusinessSaveFailed, "Failed to save business", err, true)
}

// NewReportSaveFailedError wraps a report write failure.
func NewReportSaveFailedError(err error) *StandardError {
	return newError(ErrCodeReportSaveFailed, "Failed to save campaign results", err, true)
}

// NewReportNotFoundError signals that no campaign has been recorded yet.
func NewReportNotFoundError(err error) *StandardError {
	return newError(ErrCodeReportNotFound, "No campaign results found", err, false)
}

// ==========================
// 3. Classification
// ==========================

// GetErrorCategory maps an error code to its failure class.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeValidationFailed, ErrCodeInvalidEmail:
		return CategoryValidation
	case ErrCodeGenerationFailed, ErrCodeResponseParseFailed:
		return CategoryGeneration
	case ErrCodeTemplateNotFound, ErrCodeTemplateLoadFailed:
		return CategoryTemplate
	case ErrCodeEmailSendFailed:
		return CategoryTransport
	case ErrCodeBusinessLoadFailed, ErrCodeBusinessSaveFailed, ErrCodeReportSaveFailed, ErrCodeReportNotFound:
		return CategoryPersistence
	}
	return CategoryInternal
}

// IsRetryableErrorCode reports whether an operation failing with code may succeed on a later run.
func IsRetryableErrorCode(code ErrorCode) bool {
	switch code {
	case ErrCodeGenerationFailed, ErrCodeTemplateLoadFailed, ErrCodeEmailSendFailed,
		ErrCodeBusinessLoadFailed, ErrCodeBusinessSaveFailed, ErrCodeReportSaveFailed:
		return true
	}
	return false
}

// Normalize ensures we always have a StandardError.
func Normalize(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return newError(ErrCodeInternal, "Unexpected error", err, false)
}

// CodeOf returns the error code carried by err, or ErrCodeInternal.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	return Normalize(err).Code
}
