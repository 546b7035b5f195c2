package dto

import "ffpu-go/internal/models"

// SignupRequest 注册请求
type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Mobile   string `json:"mobile" binding:"required,mobile"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// UserResponse 用户公开信息
type UserResponse struct {
	Name   string          `json:"name"`
	Email  string          `json:"email"`
	Mobile string          `json:"mobile"`
	Role   models.UserRole `json:"role"`
}

// EmailRequest 仅携带邮箱的请求（forgot-password、get-user-detail）
type EmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// UpdateUserRequest 更新用户信息请求，空字段不更新
type UpdateUserRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Name        string `json:"name"`
	Mobile      string `json:"mobile" binding:"omitempty,mobile"`
	NewPassword string `json:"new_password"`
}

// UserDetail 用户详情，字段名与历史接口保持一致
type UserDetail struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	IsVerified  bool   `json:"isVerfied"`
}
