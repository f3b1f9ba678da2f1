package model

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// MaxMessageLength giới hạn input gửi sang LLM
const MaxMessageLength = 2000

// SystemPrompt cố định cho mọi cuộc chat
const SystemPrompt = `You are Bees Assistant, the helpful guide on the B2Bees website.
B2Bees offers a catalog of AI assistants ("Bees") that automate business work such as sales outreach, customer support, recruiting and operations.
Help visitors understand what each Bee does, which Bee fits their use case, and how pricing works.
Keep answers short, friendly and practical. If you do not know something, suggest the visitor subscribe or contact the team.`

type ChatRequest struct {
	Message string `json:"message"`
}

func (r *ChatRequest) Normalize() {
	r.Message = strings.TrimSpace(r.Message)
}

func (r ChatRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Message, validation.Required, validation.RuneLength(1, MaxMessageLength)),
	)
}

type ChatResponse struct {
	Response string `json:"response"`
}

// ==================== ERRORS ====================

type ChatError struct {
	Code    string
	Message string
	Err     error
}

func (e *ChatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *ChatError) Unwrap() error {
	return e.Err
}

const (
	CodeInvalidRequest = "INVALID_CHAT_REQUEST"
	CodeUnavailable    = "CHAT_UNAVAILABLE"
	CodeCompletion     = "CHAT_COMPLETION_ERROR"
)

func NewInvalidRequest(err error) *ChatError {
	return &ChatError{Code: CodeInvalidRequest, Message: "Message is required", Err: err}
}

func NewUnavailable() *ChatError {
	return &ChatError{Code: CodeUnavailable, Message: "Chat is not configured"}
}

func NewCompletionError(err error) *ChatError {
	return &ChatError{Code: CodeCompletion, Message: "Failed to get response", Err: err}
}

func MapErrorToHTTP(err error) (int, string, string) {
	var chatErr *ChatError
	if !errors.As(err, &chatErr) {
		return http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error"
	}
	if chatErr.Code == CodeInvalidRequest {
		return http.StatusBadRequest, chatErr.Code, chatErr.Message
	}
	return http.StatusInternalServerError, chatErr.Code, chatErr.Message
}
