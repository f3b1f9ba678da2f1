package model

import (
	"errors"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// FieldError là một lỗi validate, Path dạng dot ("faqs.0.answer", "prices.EUR")
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// FieldErrors flatten validation.Errors lồng nhau thành list sort theo path.
// Error không phải của ozzo được trả về với path rỗng.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}

	var out []FieldError
	flattenErrors("", err, &out)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Path < out[j].Path
	})
	return out
}

func flattenErrors(prefix string, err error, out *[]FieldError) {
	var errs validation.Errors
	if errors.As(err, &errs) {
		for key, child := range errs {
			path := key
			if prefix != "" {
				path = prefix + "." + key
			}
			flattenErrors(path, child, out)
		}
		return
	}
	*out = append(*out, FieldError{Path: prefix, Message: err.Error()})
}
