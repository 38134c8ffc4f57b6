// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	stderrors "errors"
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
	ErrCodeProfileNotFound         ErrorCode = "PROFILE_NOT_FOUND"
	ErrCodeProfileValidationFailed ErrorCode = "PROFILE_VALIDATION_FAILED"

	ErrCodeCatalogUnavailable ErrorCode = "CATALOG_UNAVAILABLE"
	ErrCodeUniversityNotFound ErrorCode = "UNIVERSITY_NOT_FOUND"
	ErrCodeTodoNotFound       ErrorCode = "TODO_NOT_FOUND"

	ErrCodeNotShortlisted      ErrorCode = "NOT_SHORTLISTED"
	ErrCodeAlreadyLocked       ErrorCode = "ALREADY_LOCKED"
	ErrCodeInvalidTaskCategory ErrorCode = "INVALID_TASK_CATEGORY"
	ErrCodeUnknownAction       ErrorCode = "UNKNOWN_ACTION"

	ErrCodeCounsellorTimeout ErrorCode = "COUNSELLOR_TIMEOUT"
	ErrCodeCounsellorFailed  ErrorCode = "COUNSELLOR_FAILED"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"

	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
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

// messages are the human-readable summaries sent alongside each code.
var messages = map[ErrorCode]string{
	ErrCodeProfileNotFound:          "Profile not found",
	ErrCodeProfileValidationFailed:  "Profile failed validation",
	ErrCodeCatalogUnavailable:       "University catalog unavailable",
	ErrCodeUniversityNotFound:       "University not found",
	ErrCodeTodoNotFound:             "Task not found",
	ErrCodeNotShortlisted:           "University must be shortlisted before it can be locked",
	ErrCodeAlreadyLocked:            "University is already locked",
	ErrCodeInvalidTaskCategory:      "Invalid task category",
	ErrCodeUnknownAction:            "Unknown counsellor action",
	ErrCodeCounsellorTimeout:        "Counsellor request timed out",
	ErrCodeCounsellorFailed:         "Counsellor request failed",
	ErrCodeDatabaseConnectionFailed: "Database connection failed",
	ErrCodeQueryExecutionFailed:     "Query execution failed",
	ErrCodeNotificationSendFailed:   "Notification send failed",
}

// New builds a StandardError for code. Retryable follows GetRetryCount.
func New(code ErrorCode, details string) *StandardError {
	msg, ok := messages[code]
	if !ok {
		msg = "Unexpected error"
	}
	return &StandardError{
		Code:      code,
		Message:   msg,
		Details:   details,
		Retryable: IsRetryableErrorCode(code),
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to the error codes caught by boundary events.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeProfileNotFound:          "PROFILE_NOT_FOUND",
	ErrCodeProfileValidationFailed:  "PROFILE_VALIDATION_FAILED",
	ErrCodeCatalogUnavailable:       "CATALOG_UNAVAILABLE",
	ErrCodeUniversityNotFound:       "UNIVERSITY_NOT_FOUND",
	ErrCodeTodoNotFound:             "TODO_NOT_FOUND",
	ErrCodeNotShortlisted:           "NOT_SHORTLISTED",
	ErrCodeAlreadyLocked:            "ALREADY_LOCKED",
	ErrCodeInvalidTaskCategory:      "INVALID_TASK_CATEGORY",
	ErrCodeUnknownAction:            "UNKNOWN_ACTION",
	ErrCodeCounsellorTimeout:        "COUNSELLOR_TIMEOUT",
	ErrCodeCounsellorFailed:         "COUNSELLOR_FAILED",
	ErrCodeDatabaseConnectionFailed: "DATABASE_CONNECTION_FAILED",
	ErrCodeQueryExecutionFailed:     "QUERY_EXECUTION_FAILED",
	ErrCodeNotificationSendFailed:   "NOTIFICATION_SEND_FAILED",
}

// GetRetryCount returns the recommended retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseConnectionFailed,
		ErrCodeQueryExecutionFailed,
		ErrCodeCatalogUnavailable,
		ErrCodeNotificationSendFailed,
		ErrCodeCounsellorFailed:
		return 3

	case ErrCodeCounsellorTimeout:
		return 1

	default:
		return 0
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

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// FromError normalizes err into a StandardError. Worker packages declare
// sentinels as errors.New("CODE") and wrap them with %w; the innermost
// sentinel's text selects the code.
func FromError(err error) *StandardError {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}

	root := err
	for {
		next := stderrors.Unwrap(root)
		if next == nil {
			break
		}
		root = next
	}
	code := ErrorCode(root.Error())
	if _, known := BPMNErrorMapping[code]; known {
		details := strings.TrimPrefix(err.Error(), root.Error())
		return New(code, strings.TrimPrefix(details, ": "))
	}

	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
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
	case strings.Contains(codeStr, "PROFILE"):
		return "PROFILE"
	case strings.Contains(codeStr, "CATALOG") || strings.Contains(codeStr, "UNIVERSITY"):
		return "CATALOG"
	case strings.Contains(codeStr, "SHORTLIST") || strings.Contains(codeStr, "LOCKED") ||
		strings.Contains(codeStr, "TASK") || strings.Contains(codeStr, "ACTION") ||
		strings.Contains(codeStr, "TODO"):
		return "STATE"
	case strings.Contains(codeStr, "COUNSELLOR"):
		return "AI"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY"):
		return "DATABASE"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	default:
		return "OTHER"
	}
}
