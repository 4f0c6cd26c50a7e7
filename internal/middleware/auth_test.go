package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	jwtsvc "foodgram/internal/pkg/jwt"
)

func testRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(mw)
	router.GET("/probe", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetInt64("user_id")})
	})
	return router
}

func doRequest(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/probe", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequireAuth_ValidToken(t *testing.T) {
	jwtService := jwtsvc.New("test-secret-123", time.Hour)
	token, _ := jwtService.GenerateToken(42)

	w := doRequest(testRouter(RequireAuth(jwtService)), token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "42")
}

func TestRequireAuth_NoToken(t *testing.T) {
	jwtService := jwtsvc.New("test-secret-123", time.Hour)

	w := doRequest(testRouter(RequireAuth(jwtService)), "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
}

func TestRequireAuth_WrongSecret(t *testing.T) {
	other := jwtsvc.New("another-secret", time.Hour)
	token, _ := other.GenerateToken(42)

	jwtService := jwtsvc.New("test-secret-123", time.Hour)
	w := doRequest(testRouter(RequireAuth(jwtService)), token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// Аноним проходит, user_id остаётся нулевым.
func TestOptionalAuth_Anonymous(t *testing.T) {
	jwtService := jwtsvc.New("test-secret-123", time.Hour)

	w := doRequest(testRouter(OptionalAuth(jwtService)), "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":0`)
}

func TestOptionalAuth_WithToken(t *testing.T) {
	jwtService := jwtsvc.New("test-secret-123", time.Hour)
	token, _ := jwtService.GenerateToken(42)

	w := doRequest(testRouter(OptionalAuth(jwtService)), token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":42`)
}

// Битый токен в опциональной авторизации не валит запрос.
func TestOptionalAuth_InvalidToken(t *testing.T) {
	jwtService := jwtsvc.New("test-secret-123", time.Hour)

	w := doRequest(testRouter(OptionalAuth(jwtService)), "not-a-jwt")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":0`)
}
