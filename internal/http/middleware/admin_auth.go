package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/markrenzo/portfolio-backend/internal/service"
)

// AdminAuthMiddleware проверяет доступ к админским эндпоинтам.
// Принимает либо заголовок x-admin-key, либо Bearer токен администратора.
func AdminAuthMiddleware(auth *service.AdminAuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key := c.GetHeader("x-admin-key"); key != "" {
			if auth.VerifyKey(key) {
				c.Next()
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "неверный админский ключ"})
			return
		}

		header := c.GetHeader("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			raw := strings.TrimPrefix(header, "Bearer ")
			if auth.VerifyToken(raw) {
				c.Next()
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "токен невалиден"})
			return
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "требуется авторизация"})
	}
}
