package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ffpu-go/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(jwtManager *utils.JWTManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	r.GET("/protected", AuthRequired(jwtManager), func(c *gin.Context) {
		claims, _ := GetClaims(c)
		c.JSON(http.StatusOK, gin.H{"user": claims.Subject, "role": claims.Role})
	})
	r.GET("/optional", AuthOptional(jwtManager), func(c *gin.Context) {
		if claims, ok := GetClaims(c); ok {
			c.JSON(http.StatusOK, gin.H{"user": claims.Subject})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": "anonymous"})
	})

	return r
}

func TestAuthRequired(t *testing.T) {
	jwtManager := utils.NewJWTManager("test-secret", "HS256", 30*time.Minute)
	r := newAuthRouter(jwtManager)

	token, err := jwtManager.GenerateToken("user@example.com", "Standard User", 0)
	require.NoError(t, err)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
		wantBody   string
	}{
		{"缺少认证头", "", http.StatusUnauthorized, "Not authenticated"},
		{"非Bearer方案", "Basic abc123", http.StatusUnauthorized, "Not authenticated"},
		{"无效Token", "Bearer not-a-token", http.StatusUnauthorized, utils.ErrTokenInvalid.Error()},
		{"有效Token", "Bearer " + token, http.StatusOK, "user@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestAuthRequiredExpiredToken(t *testing.T) {
	jwtManager := utils.NewJWTManager("test-secret", "HS256", 30*time.Minute)
	r := newAuthRouter(jwtManager)

	token, err := jwtManager.GenerateToken("user@example.com", "Standard User", -time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), utils.ErrTokenExpired.Error())
}

func TestAuthOptional(t *testing.T) {
	jwtManager := utils.NewJWTManager("test-secret", "HS256", 30*time.Minute)
	r := newAuthRouter(jwtManager)

	// 匿名请求照常放行
	req := httptest.NewRequest(http.MethodGet, "/optional", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "anonymous")

	// 无效Token不阻断，按匿名处理
	req = httptest.NewRequest(http.MethodGet, "/optional", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "anonymous")

	// 有效Token解析出声明
	token, err := jwtManager.GenerateToken("user@example.com", "Standard User", 0)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/optional", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user@example.com")
}
