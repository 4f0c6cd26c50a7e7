package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	jwtsvc "foodgram/internal/pkg/jwt"
)

// RequireAuth пропускает только запросы с валидным bearer-токеном
// и кладёт user_id в контекст.
func RequireAuth(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearer(jwt, c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Authentication required",
				},
			})
			return
		}

		c.Set("user_id", claims.UserID)
		c.Next()
	}
}

// OptionalAuth пропускает и анонимные запросы: при валидном токене
// user_id попадает в контекст, иначе запрос идёт дальше без него.
// Фильтры is_favorited / is_in_shopping_cart для анонима игнорируются,
// а не падают с ошибкой.
func OptionalAuth(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := parseBearer(jwt, c.GetHeader("Authorization")); ok {
			c.Set("user_id", claims.UserID)
		}
		c.Next()
	}
}

func parseBearer(jwt *jwtsvc.Service, header string) (*jwtsvc.Claims, bool) {
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, false
	}

	tokenStr := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if tokenStr == "" {
		return nil, false
	}

	claims, err := jwt.ValidateToken(tokenStr)
	if err != nil {
		return nil, false
	}
	return claims, true
}
