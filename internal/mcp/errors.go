package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/ganot/squadboard/internal/domain/metrics"
)

// APIError represents an MCP tool error.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	if e.RecoveryHint != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.RecoveryHint)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes. Unknown errors become
// INTERNAL so driver details do not reach clients.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, metrics.ErrStoreUnavailable):
		return &APIError{Code: "STORE_UNAVAILABLE", Message: "entity store unavailable", RecoveryHint: "Retry later"}
	case errors.Is(err, metrics.ErrCompletedStatusUnknown):
		return &APIError{Code: "COMPLETED_STATUS_UNKNOWN", Message: "completed status not configured in status table", RecoveryHint: "Check report.completed_status"}
	case errors.Is(err, metrics.ErrInvalidLocale):
		return &APIError{Code: "INVALID_LOCALE", Message: "invalid collation locale", RecoveryHint: "Check report.locale"}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return &APIError{Code: "CANCELED", Message: "request canceled"}
	default:
		return &APIError{Code: "INTERNAL", Message: "internal error"}
	}
}
