package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"ffpu-go/internal/config"
	"ffpu-go/internal/dto"
	"ffpu-go/internal/service"
	"ffpu-go/internal/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	authService *service.AuthService
	cfg         *config.Config
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(authService *service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
	}
}

// Signup 用户注册
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	user, err := h.authService.Signup(&req)
	if err != nil {
		if errors.Is(err, service.ErrEmailRegistered) {
			utils.BadRequest(c, err.Error())
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	mobile := ""
	if user.Mobile != nil {
		mobile = *user.Mobile
	}
	c.JSON(http.StatusOK, dto.UserResponse{
		Name:   user.Name,
		Email:  user.Email,
		Mobile: mobile,
		Role:   user.Role,
	})
}

// VerifyEmail 验证邮箱后跳转到前端
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	token := c.Param("token")

	if err := h.authService.VerifyEmail(token); err != nil {
		switch {
		case errors.Is(err, utils.ErrTokenExpired):
			utils.BadRequest(c, "Verification link expired")
		case errors.Is(err, utils.ErrTokenInvalid):
			utils.BadRequest(c, "Invalid verification token")
		case errors.Is(err, service.ErrUserNotFound):
			utils.NotFound(c, err.Error())
		default:
			utils.InternalError(c, err.Error())
		}
		return
	}

	// 303 保证浏览器以GET跳转
	c.Redirect(http.StatusSeeOther, h.cfg.URLs.Frontend+"/email-verified")
}

// Login 用户登录
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			utils.BadRequest(c, err.Error())
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GoogleLogin 跳转到Google授权页
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	c.Redirect(http.StatusTemporaryRedirect, h.authService.GoogleAuthURL())
}

// GoogleCallback 处理Google回调并带Token跳回前端
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		utils.BadRequest(c, "Authorization code not provided")
		return
	}

	user, token, err := h.authService.GoogleCallback(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, service.ErrInvalidGrant) || errors.Is(err, service.ErrProviderError) {
			utils.BadRequest(c, err.Error())
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	redirect := fmt.Sprintf("%s/google/callback?email=%s&token=%s&role=%s",
		h.cfg.URLs.Frontend,
		url.QueryEscape(user.Email),
		url.QueryEscape(token),
		url.QueryEscape(string(user.Role)),
	)
	c.Redirect(http.StatusTemporaryRedirect, redirect)
}

// ForgotPassword 发送密码重置邮件
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if err := h.authService.ForgotPassword(req.Email); err != nil {
		if errors.Is(err, service.ErrEmailNotFound) {
			utils.NotFound(c, err.Error())
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.Message(c, "Password reset link sent to your email.")
}

// ResetPassword 重置密码，参数为表单编码
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	token := c.PostForm("token")
	newPassword := c.PostForm("new_password")
	if token == "" || newPassword == "" {
		utils.BadRequest(c, "token and new_password are required")
		return
	}

	if err := h.authService.ResetPassword(token, newPassword); err != nil {
		switch {
		case errors.Is(err, utils.ErrTokenExpired):
			utils.BadRequest(c, "Token expired")
		case errors.Is(err, utils.ErrTokenInvalid):
			utils.BadRequest(c, "Invalid token")
		case errors.Is(err, service.ErrUserNotFound):
			utils.NotFound(c, err.Error())
		default:
			utils.InternalError(c, err.Error())
		}
		return
	}

	utils.Message(c, "Password successfully reset.")
}

// GetUserDetail 获取用户详情。用户不存在时返回提示消息而非404，
// 与历史接口保持一致。
func (h *AuthHandler) GetUserDetail(c *gin.Context) {
	var req dto.EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	detail, err := h.authService.GetUserDetail(req.Email)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusOK, gin.H{"message": "User not found"})
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"user_details": detail})
}

// UpdateUserDetails 更新用户信息
func (h *AuthHandler) UpdateUserDetails(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if err := h.authService.UpdateUser(&req); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			utils.NotFound(c, err.Error())
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.Message(c, "User details updated successfully")
}
