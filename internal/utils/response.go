package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 错误响应统一为 {"detail": "..."}，与历史API保持一致，
// 前端依赖该字段展示错误信息。

// ErrorDetail 错误响应体
type ErrorDetail struct {
	Detail string `json:"detail"`
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, code int, detail string) {
	c.JSON(code, ErrorDetail{Detail: detail})
}

// BadRequest 400错误
func BadRequest(c *gin.Context, detail string) {
	ErrorResponse(c, http.StatusBadRequest, detail)
}

// Unauthorized 401错误
func Unauthorized(c *gin.Context, detail string) {
	ErrorResponse(c, http.StatusUnauthorized, detail)
}

// Forbidden 403错误
func Forbidden(c *gin.Context, detail string) {
	ErrorResponse(c, http.StatusForbidden, detail)
}

// NotFound 404错误
func NotFound(c *gin.Context, detail string) {
	ErrorResponse(c, http.StatusNotFound, detail)
}

// InternalError 500错误
func InternalError(c *gin.Context, detail string) {
	ErrorResponse(c, http.StatusInternalServerError, detail)
}

// Message 成功消息响应 {"message": "..."}
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"message": message})
}
