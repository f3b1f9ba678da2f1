package model

import (
	"errors"
	"fmt"
	"net/http"
)

// File là ảnh admin gửi lên từ form multipart
type File struct {
	Filename    string
	ContentType string
	Data        []byte
	// Slug của bee, dùng để đặt tên object; rỗng thì lấy từ filename
	Slug string
}

type UploadResult struct {
	URL        string `json:"url"`
	Source     string `json:"source"`
	PreviewURL string `json:"preview_url,omitempty"`
}

// ==================== ERRORS ====================

type UploadError struct {
	Code    string
	Message string
	Err     error
}

func (e *UploadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

const (
	CodeNoFile       = "NO_FILE"
	CodeFileTooLarge = "FILE_TOO_LARGE"
	CodeInvalidFile  = "INVALID_FILE_TYPE"
	CodeUploadFailed = "UPLOAD_FAILED"
)

func NewNoFile() *UploadError {
	return &UploadError{Code: CodeNoFile, Message: "No file uploaded"}
}

func NewFileTooLarge(err error) *UploadError {
	return &UploadError{Code: CodeFileTooLarge, Message: "File too large. Maximum size is 5MB", Err: err}
}

func NewInvalidFile(err error) *UploadError {
	return &UploadError{Code: CodeInvalidFile, Message: "Invalid file type. Only JPEG, PNG, and WebP are allowed", Err: err}
}

func NewUploadFailed(err error) *UploadError {
	return &UploadError{Code: CodeUploadFailed, Message: "Failed to upload file", Err: err}
}

func MapErrorToHTTP(err error) (int, string, string) {
	var upErr *UploadError
	if !errors.As(err, &upErr) {
		return http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error"
	}

	switch upErr.Code {
	case CodeNoFile, CodeFileTooLarge, CodeInvalidFile:
		return http.StatusBadRequest, upErr.Code, upErr.Message
	default:
		return http.StatusInternalServerError, upErr.Code, upErr.Message
	}
}
