package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"b2bees-backend/internal/shared/response"
	"b2bees-backend/pkg/jwt"
)

const (
	ContextKeyRole    = "role"
	ContextKeySubject = "subject"
)

// AdminAuth xác thực Bearer token và yêu cầu role admin.
// Thiếu hoặc sai token → 401, đúng token nhưng sai role → 403.
func AdminAuth(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.AbortWithError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			response.AbortWithError(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid authorization header format")
			return
		}

		claims, err := manager.ValidateAccessToken(parts[1])
		if err != nil {
			response.AbortWithError(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired token")
			return
		}

		if claims.Role != jwt.RoleAdmin {
			response.AbortWithError(c, http.StatusForbidden, "FORBIDDEN", "Access denied: admin role required")
			return
		}

		c.Set(ContextKeyRole, claims.Role)
		c.Set(ContextKeySubject, claims.Subject)
		c.Next()
	}
}
