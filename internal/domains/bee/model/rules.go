package model

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

const (
	MsgInvalidSlug           = "slug must contain only lowercase letters, numbers, and hyphens"
	MsgSEODescriptionTooLong = "seo description must be 160 characters or less"

	MaxSEODescriptionLength = 160

	// Khớp với cột NUMERIC(12, 2) / NUMERIC(18, 8): phần nguyên tối đa 10 chữ số
	MaxPriceDecimalPlaces     int32 = 2
	MaxUsageRateDecimalPlaces int32 = 8
)

var maxAmountExclusive = decimal.New(1, 10)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// Rule dùng chung cho API schema và form schema
var (
	slugRule           = validation.Match(slugPattern).Error(MsgInvalidSlug)
	seoDescriptionRule = validation.RuneLength(0, MaxSEODescriptionLength).Error(MsgSEODescriptionTooLong)
	statusRule         = validation.In(StatusActive, StatusInactive, StatusDraft).Error("status must be one of: active, inactive, draft")
)

// IsValidSlug dùng cho path param, không cần chạy cả schema
func IsValidSlug(slug string) bool {
	return slugPattern.MatchString(slug)
}

var errNegative = validation.NewError("validation_non_negative", "must be no less than 0")

// requiredText giống validation.Required nhưng coi chuỗi chỉ có whitespace là rỗng
var requiredText = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return validation.ErrRequired
	}
	return nil
})

// checkAmount: >= 0, không quá maxPlaces chữ số thập phân, < 10^10.
// Giá trị hợp lệ được lưu nguyên vẹn, không bị DB làm tròn.
func checkAmount(d decimal.Decimal, maxPlaces int32) error {
	if d.IsNegative() {
		return errNegative
	}
	if !d.Equal(d.Truncate(maxPlaces)) {
		return validation.NewError("validation_decimal_places",
			fmt.Sprintf("must have at most %d decimal places", maxPlaces))
	}
	if d.GreaterThanOrEqual(maxAmountExclusive) {
		return validation.NewError("validation_amount_too_large",
			fmt.Sprintf("must be less than %s", maxAmountExclusive.String()))
	}
	return nil
}

// decimalAmount dùng cho field decimal.Decimal của API schema
func decimalAmount(maxPlaces int32) validation.RuleFunc {
	return func(value interface{}) error {
		d, ok := value.(decimal.Decimal)
		if !ok {
			return nil
		}
		return checkAmount(d, maxPlaces)
	}
}

// formAmount dùng cho field số dạng string của form.
// Chuỗi không parse được bị ToPayload bỏ qua nên không báo lỗi ở đây.
func formAmount(maxPlaces int32) validation.RuleFunc {
	return func(value interface{}) error {
		raw, _ := value.(string)
		d, ok := parseDecimal(raw)
		if !ok {
			return nil
		}
		return checkAmount(d, maxPlaces)
	}
}

func formNonNegative(value interface{}) error {
	raw, _ := value.(string)
	if v, ok := parseNumber(raw); ok && v < 0 {
		return errNegative
	}
	return nil
}

// currencyKeys trả lỗi khi map có key ngoài USD/GBP/EUR
func currencyKeys[T any](m map[Currency]T) validation.RuleFunc {
	return func(interface{}) error {
		var unsupported []string
		for cur := range m {
			if !cur.IsValid() {
				unsupported = append(unsupported, string(cur))
			}
		}
		if len(unsupported) == 0 {
			return nil
		}
		sort.Strings(unsupported)
		return validation.NewError("validation_currency_unsupported",
			fmt.Sprintf("unsupported currency: %v (allowed: USD, GBP, EUR)", unsupported))
	}
}
