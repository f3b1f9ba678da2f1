package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonSlugChars   = regexp.MustCompile(`[^a-z0-9-]+`)
	repeatedHyphen = regexp.MustCompile(`-+`)
)

// GenerateSlug: "Customer Support Bée!" → "customer-support-bee"
func GenerateSlug(input string) string {
	// Bỏ dấu: tách ký tự tổ hợp (NFD) rồi xóa combining marks
	ascii := RemoveDiacritics(input)

	lower := strings.ToLower(strings.TrimSpace(ascii))
	hyphenated := strings.Join(strings.Fields(lower), "-")
	cleaned := nonSlugChars.ReplaceAllString(hyphenated, "")
	normalized := repeatedHyphen.ReplaceAllString(cleaned, "-")

	return strings.Trim(normalized, "-")
}

// RemoveDiacritics chuyển ký tự có dấu về ASCII gần nhất
func RemoveDiacritics(input string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, input)
	if err != nil {
		return input
	}
	// đ/Đ không có dạng phân tách trong Unicode
	return strings.NewReplacer("đ", "d", "Đ", "D").Replace(result)
}
