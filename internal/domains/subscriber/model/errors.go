package model

import (
	"errors"
	"fmt"
	"net/http"
)

// SubscriberError định nghĩa base error cho subscriber domain
type SubscriberError struct {
	Code    string
	Message string
	Err     error
}

func (e *SubscriberError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *SubscriberError) Unwrap() error {
	return e.Err
}

const (
	CodeAlreadySubscribed  = "ALREADY_SUBSCRIBED"
	CodeSubscriberNotFound = "SUBSCRIBER_NOT_FOUND"
	CodeInvalidRequest     = "INVALID_SUBSCRIBE_REQUEST"
	CodeInvalidBee         = "INVALID_BEE_REFERENCE"
	CodeSubscribe          = "SUBSCRIBE_ERROR"
	CodeListSubscribers    = "LIST_SUBSCRIBERS_ERROR"
	CodeExportSubscribers  = "EXPORT_SUBSCRIBERS_ERROR"
)

func NewAlreadySubscribed(email string) *SubscriberError {
	return &SubscriberError{
		Code:    CodeAlreadySubscribed,
		Message: fmt.Sprintf("%s is already subscribed", email),
	}
}

func NewSubscriberNotFound() *SubscriberError {
	return &SubscriberError{Code: CodeSubscriberNotFound, Message: "Subscriber not found"}
}

func NewInvalidRequest(err error) *SubscriberError {
	return &SubscriberError{Code: CodeInvalidRequest, Message: "Invalid email address", Err: err}
}

func NewInvalidBee(beeID int64) *SubscriberError {
	return &SubscriberError{
		Code:    CodeInvalidBee,
		Message: fmt.Sprintf("Bee %d does not exist", beeID),
	}
}

func NewSubscribeError(err error) *SubscriberError {
	return &SubscriberError{Code: CodeSubscribe, Message: "Failed to subscribe", Err: err}
}

func NewListSubscribersError(err error) *SubscriberError {
	return &SubscriberError{Code: CodeListSubscribers, Message: "Failed to load subscribers", Err: err}
}

func NewExportSubscribersError(err error) *SubscriberError {
	return &SubscriberError{Code: CodeExportSubscribers, Message: "Failed to export subscribers", Err: err}
}

func IsAlreadySubscribed(err error) bool {
	var subErr *SubscriberError
	return errors.As(err, &subErr) && subErr.Code == CodeAlreadySubscribed
}

func IsSubscriberNotFound(err error) bool {
	var subErr *SubscriberError
	return errors.As(err, &subErr) && subErr.Code == CodeSubscriberNotFound
}

// MapErrorToHTTP chuyển SubscriberError sang (status, code, message)
func MapErrorToHTTP(err error) (int, string, string) {
	var subErr *SubscriberError
	if !errors.As(err, &subErr) {
		return http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error"
	}

	switch subErr.Code {
	case CodeAlreadySubscribed, CodeInvalidRequest, CodeInvalidBee:
		return http.StatusBadRequest, subErr.Code, subErr.Message
	case CodeSubscriberNotFound:
		return http.StatusNotFound, subErr.Code, subErr.Message
	default:
		return http.StatusInternalServerError, subErr.Code, subErr.Message
	}
}
