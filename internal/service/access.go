package service

import (
	"ffpu-go/internal/models"
	"ffpu-go/internal/utils"
)

// AccessDecision 策略详情的访问裁决
type AccessDecision int

const (
	// AccessAllow 允许访问
	AccessAllow AccessDecision = iota
	// AccessRequireAuth 需要登录（匿名访问私有策略）
	AccessRequireAuth
	// AccessDeny 拒绝访问（已登录但不是属主）
	AccessDeny
)

// CanView 判定调用方能否查看策略记录。公开记录任何人可看；
// 私有记录要求Token的sub与记录属主一致。
func CanView(p *models.InputPortfolio, claims *utils.Claims) AccessDecision {
	if p.IsPublic {
		return AccessAllow
	}
	if claims == nil {
		return AccessRequireAuth
	}
	if claims.Subject != p.UserID {
		return AccessDeny
	}
	return AccessAllow
}
