package models

import (
	"time"
)

// UserRole 用户角色
type UserRole string

const (
	RoleAdmin        UserRole = "Admin"
	RoleStandardUser UserRole = "Standard User"
	RoleGuest        UserRole = "Guest"
)

// User 用户模型
type User struct {
	ID               uint       `gorm:"primarykey" json:"id"`
	Name             string     `gorm:"size:100;not null" json:"name"`
	Email            string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Mobile           *string    `gorm:"size:20" json:"mobile"`
	PasswordHash     *string    `gorm:"size:255" json:"-"`
	Role             UserRole   `gorm:"size:50;not null;default:'Standard User'" json:"role"`
	GoogleID         *string    `gorm:"uniqueIndex;size:255" json:"google_id,omitempty"`
	IsVerified       bool       `gorm:"not null;default:false" json:"is_verified"`
	IsActive         bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	LastLoginAt      *time.Time `json:"last_login_at,omitempty"`
	ResetToken       *string    `gorm:"size:255" json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
