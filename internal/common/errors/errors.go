// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeParseError               ErrorCode = "PARSE_ERROR"
	ErrCodeInputSchemaInvalid       ErrorCode = "INPUT_SCHEMA_INVALID"
	ErrCodeMatchingValidationFailed ErrorCode = "MATCHING_VALIDATION_FAILED"
	ErrCodeMatchingFailed           ErrorCode = "MATCHING_FAILED"
	ErrCodePricingFailed            ErrorCode = "PRICING_FAILED"

	ErrCodeSnapshotLoadFailed ErrorCode = "SNAPSHOT_LOAD_FAILED"
	ErrCodeSnapshotTimeout    ErrorCode = "SNAPSHOT_TIMEOUT"

	ErrCodeDatabaseConnectionFailed      ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeElasticsearchConnectionFailed ErrorCode = "ELASTICSEARCH_CONNECTION_FAILED"

	ErrCodeExternalService ErrorCode = "EXTERNAL_SERVICE_ERROR"
	ErrCodeTimeout         ErrorCode = "TIMEOUT_ERROR"
	ErrCodeNotFound        ErrorCode = "RESOURCE_NOT_FOUND"
	ErrCodeInternal        ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// WithMetadata attaches a key to the error's metadata and returns the error.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

func newError(code ErrorCode, message string, cause error, retryable bool) *StandardError {
	e := &StandardError{
		Code:      code,
		Message:   message,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
	if cause != nil {
		e.Details = cause.Error()
	}
	return e
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

// NewParseError reports job variables that are not valid JSON.
func NewParseError(err error) *StandardError {
	return newError(ErrCodeParseError, "Job variables could not be parsed", err, false)
}

// NewInputSchemaError reports job variables rejected by the task's JSON schema.
func NewInputSchemaError(details string) *StandardError {
	e := newError(ErrCodeInputSchemaInvalid, "Job variables failed schema validation", nil, false)
	e.Details = details
	return e
}

// NewMatchingValidationError reports a request or professional the engine refused.
func NewMatchingValidationError(err error) *StandardError {
	return newError(ErrCodeMatchingValidationFailed, "Matching input is invalid", err, false)
}

func NewMatchingFailedError(err error) *StandardError {
	return newError(ErrCodeMatchingFailed, "Matching failed", err, false)
}

func NewPricingFailedError(err error) *StandardError {
	return newError(ErrCodePricingFailed, "Price estimation failed", err, false)
}

// NewSnapshotLoadFailedError creates a retryable error for professional snapshot reads.
func NewSnapshotLoadFailedError(source string, err error) *StandardError {
	e := newError(ErrCodeSnapshotLoadFailed, "Failed to load professional snapshot", err, true)
	return e.WithMetadata("source", source)
}

func NewSnapshotTimeoutError(source string, err error) *StandardError {
	e := newError(ErrCodeSnapshotTimeout, "Professional snapshot load timed out", err, true)
	return e.WithMetadata("source", source)
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseConnectionFailed, "Database connection error", err, true)
}

// NewElasticsearchConnectionFailedError creates a retryable search cluster error.
func NewElasticsearchConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeElasticsearchConnectionFailed, "Elasticsearch connection error", err, true)
}

func NewExternalServiceError(service string, err error) *StandardError {
	return newError(ErrCodeExternalService, fmt.Sprintf("External service '%s' error", service), err, true)
}

func NewTimeoutError(service string, err error) *StandardError {
	return newError(ErrCodeTimeout, fmt.Sprintf("Service '%s' timeout", service), err, true)
}

func NewResourceNotFoundError(service, details string) *StandardError {
	e := newError(ErrCodeNotFound, fmt.Sprintf("Resource not found in %s", service), nil, false)
	e.Details = details
	return e
}

func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternal, "Unexpected error", err, false)
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to BPMN error codes. Codes not
// listed are passed through unchanged.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeParseError:               "INPUT_INVALID",
	ErrCodeInputSchemaInvalid:       "INPUT_INVALID",
	ErrCodeMatchingValidationFailed: "MATCHING_VALIDATION_FAILED",
	ErrCodeMatchingFailed:           "MATCHING_FAILED",
	ErrCodePricingFailed:            "PRICING_FAILED",
	ErrCodeSnapshotLoadFailed:       "SNAPSHOT_UNAVAILABLE",
	ErrCodeSnapshotTimeout:          "SNAPSHOT_UNAVAILABLE",
}

// GetRetryCount returns the recommended retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeSnapshotLoadFailed,
		ErrCodeDatabaseConnectionFailed,
		ErrCodeElasticsearchConnectionFailed,
		ErrCodeExternalService:
		return 3 // Retryable technical errors

	case ErrCodeSnapshotTimeout,
		ErrCodeTimeout:
		return 2 // Partial retry for timeouts

	default:
		return 0 // Business errors: no retry
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "SNAPSHOT"):
		return "SNAPSHOT"
	case strings.Contains(codeStr, "MATCHING") || strings.Contains(codeStr, "PRICING"):
		return "MATCHING"
	case strings.Contains(codeStr, "DATABASE"):
		return "DATABASE"
	case strings.Contains(codeStr, "ELASTICSEARCH") || strings.Contains(codeStr, "SEARCH"):
		return "SEARCH"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "PARSE"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
