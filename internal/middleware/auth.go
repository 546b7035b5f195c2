package middleware

import (
	"strings"

	"ffpu-go/internal/utils"

	"github.com/gin-gonic/gin"
)

const claimsKey = "claims"

// AuthRequired JWT认证中间件，缺少或无效的Token直接拒绝
func AuthRequired(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			utils.Unauthorized(c, "Not authenticated")
			c.Abort()
			return
		}

		claims, err := jwtManager.VerifyToken(tokenString)
		if err != nil {
			utils.Unauthorized(c, err.Error())
			c.Abort()
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// AuthOptional 可选认证中间件。带有效Token时解析声明，
// 匿名请求照常放行，由handler按资源可见性裁决。
func AuthOptional(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString, ok := bearerToken(c); ok {
			if claims, err := jwtManager.VerifyToken(tokenString); err == nil {
				c.Set(claimsKey, claims)
			}
		}
		c.Next()
	}
}

// bearerToken 从Authorization头解析Bearer Token
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}

	return parts[1], true
}

// GetClaims 从上下文获取已验证的Token声明
func GetClaims(c *gin.Context) (*utils.Claims, bool) {
	value, exists := c.Get(claimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*utils.Claims)
	return claims, ok
}
