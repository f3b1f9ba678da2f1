package model

import (
	"errors"
	"fmt"
	"net/http"
)

// BeeError định nghĩa base error cho bee domain
type BeeError struct {
	Code    string // VD: "BEE_NOT_FOUND"
	Message string
	Err     error
	Details []FieldError
}

func (e *BeeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *BeeError) Unwrap() error {
	return e.Err
}

// ============================================
// ERROR CODES
// ============================================

const (
	CodeBeeNotFound       = "BEE_NOT_FOUND"
	CodeSlugAlreadyExists = "BEE_SLUG_ALREADY_EXISTS"
	CodeInvalidBeeID      = "INVALID_BEE_ID"
	CodeInvalidSlug       = "INVALID_SLUG"
	CodeValidation        = "VALIDATION_ERROR"
	CodeCreateBee         = "CREATE_BEE_ERROR"
	CodeUpdateBee         = "UPDATE_BEE_ERROR"
	CodeDeleteBee         = "DELETE_BEE_ERROR"
	CodeListBee           = "LIST_BEE_ERROR"
)

// ============================================
// ERROR FACTORY FUNCTIONS
// ============================================

func NewBeeNotFound() *BeeError {
	return &BeeError{Code: CodeBeeNotFound, Message: "Bee not found"}
}

func NewSlugAlreadyExists(slug string) *BeeError {
	return &BeeError{
		Code:    CodeSlugAlreadyExists,
		Message: fmt.Sprintf("Bee with slug '%s' already exists", slug),
	}
}

func NewInvalidBeeID(raw string) *BeeError {
	return &BeeError{
		Code:    CodeInvalidBeeID,
		Message: fmt.Sprintf("Invalid bee ID: %s", raw),
	}
}

func NewInvalidSlug(slug string) *BeeError {
	return &BeeError{
		Code:    CodeInvalidSlug,
		Message: fmt.Sprintf("Bee slug is invalid: %s", slug),
	}
}

// NewValidationError giữ lại ozzo error, Details đã flatten sẵn cho response
func NewValidationError(err error) *BeeError {
	return &BeeError{
		Code:    CodeValidation,
		Message: "Validation failed",
		Err:     err,
		Details: FieldErrors(err),
	}
}

func NewCreateBeeError(err error) *BeeError {
	return &BeeError{Code: CodeCreateBee, Message: "Failed to create bee", Err: err}
}

func NewUpdateBeeError(err error) *BeeError {
	return &BeeError{Code: CodeUpdateBee, Message: "Failed to update bee", Err: err}
}

func NewDeleteBeeError(err error) *BeeError {
	return &BeeError{Code: CodeDeleteBee, Message: "Failed to delete bee", Err: err}
}

func NewListBeeError(err error) *BeeError {
	return &BeeError{Code: CodeListBee, Message: "Failed to load bees", Err: err}
}

// ============================================
// ERROR CHECKING FUNCTIONS
// ============================================

func hasCode(err error, code string) bool {
	var beeErr *BeeError
	return errors.As(err, &beeErr) && beeErr.Code == code
}

func IsBeeNotFound(err error) bool {
	return hasCode(err, CodeBeeNotFound)
}

func IsSlugAlreadyExists(err error) bool {
	return hasCode(err, CodeSlugAlreadyExists)
}

func IsValidationError(err error) bool {
	return hasCode(err, CodeValidation)
}

// MapErrorToHTTP chuyển BeeError sang (status, code, message, details).
// Lỗi 5xx chỉ trả message chung, nguyên nhân được log ở handler.
func MapErrorToHTTP(err error) (int, string, string, []FieldError) {
	var beeErr *BeeError
	if !errors.As(err, &beeErr) {
		return http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil
	}

	switch beeErr.Code {
	case CodeBeeNotFound:
		return http.StatusNotFound, beeErr.Code, beeErr.Message, nil
	case CodeSlugAlreadyExists:
		return http.StatusConflict, beeErr.Code, beeErr.Message, nil
	case CodeValidation:
		return http.StatusBadRequest, beeErr.Code, beeErr.Message, beeErr.Details
	case CodeInvalidBeeID, CodeInvalidSlug:
		return http.StatusBadRequest, beeErr.Code, beeErr.Message, nil
	default:
		return http.StatusInternalServerError, beeErr.Code, beeErr.Message, nil
	}
}
