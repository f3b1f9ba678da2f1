package model

import (
	"errors"
	"fmt"
	"net/http"
)

type AnalyticsError struct {
	Code    string
	Message string
	Err     error
}

func (e *AnalyticsError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AnalyticsError) Unwrap() error {
	return e.Err
}

const (
	CodeTrackEvent = "TRACK_EVENT_ERROR"
	CodeSummary    = "ANALYTICS_SUMMARY_ERROR"
)

func NewTrackEventError(err error) *AnalyticsError {
	return &AnalyticsError{Code: CodeTrackEvent, Message: "Failed to track event", Err: err}
}

func NewSummaryError(err error) *AnalyticsError {
	return &AnalyticsError{Code: CodeSummary, Message: "Failed to load analytics", Err: err}
}

// MapErrorToHTTP: analytics chỉ có 200 hoặc 500
func MapErrorToHTTP(err error) (int, string, string) {
	var aErr *AnalyticsError
	if errors.As(err, &aErr) {
		return http.StatusInternalServerError, aErr.Code, aErr.Message
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error"
}
