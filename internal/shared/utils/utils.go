package utils

import (
	"os"
	"strconv"
	"strings"
)

// GetEnvVariable đọc env với default, dùng ở các binary không load full config
func GetEnvVariable(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvInt: giá trị không parse được thì dùng default
func GetEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// TrimStrings trim từng phần tử và bỏ phần tử rỗng, giữ thứ tự
func TrimStrings(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// StringPtr trả về nil cho chuỗi rỗng
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// StringValue đọc *string an toàn
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
