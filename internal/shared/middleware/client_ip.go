package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"b2bees-backend/internal/shared/utils"
)

type contextKey string

const (
	ContextKeyClientIP            = "client_ip"
	clientIPCtxKey     contextKey = "client_ip"
)

// ClientIPMiddleware đưa IP thật của client vào gin context và request context
func ClientIPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := utils.ExtractClientIP(c)

		c.Set(ContextKeyClientIP, clientIP)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), clientIPCtxKey, clientIP))

		c.Next()
	}
}

// GetClientIP ưu tiên giá trị middleware đã set, fallback gin.ClientIP
func GetClientIP(c *gin.Context) string {
	if ip := c.GetString(ContextKeyClientIP); ip != "" {
		return ip
	}
	return utils.ExtractClientIP(c)
}

// GetClientIPFromContext retrieves the client IP from context
// Returns empty string if not found
func GetClientIPFromContext(ctx context.Context) string {
	if ip, ok := ctx.Value(clientIPCtxKey).(string); ok {
		return ip
	}
	return ""
}
