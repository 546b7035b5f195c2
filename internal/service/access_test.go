package service

import (
	"testing"

	"ffpu-go/internal/models"
	"ffpu-go/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func claimsFor(subject string) *utils.Claims {
	return &utils.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: subject},
	}
}

func TestCanView(t *testing.T) {
	tests := []struct {
		name     string
		isPublic bool
		claims   *utils.Claims
		want     AccessDecision
	}{
		{
			name:     "公开策略匿名可看",
			isPublic: true,
			claims:   nil,
			want:     AccessAllow,
		},
		{
			name:     "私有策略匿名要求登录",
			isPublic: false,
			claims:   nil,
			want:     AccessRequireAuth,
		},
		{
			name:     "私有策略属主可看",
			isPublic: false,
			claims:   claimsFor("owner@example.com"),
			want:     AccessAllow,
		},
		{
			name:     "私有策略其他用户拒绝",
			isPublic: false,
			claims:   claimsFor("other@example.com"),
			want:     AccessDeny,
		},
		{
			name:     "公开策略其他用户也可看",
			isPublic: true,
			claims:   claimsFor("other@example.com"),
			want:     AccessAllow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &models.InputPortfolio{
				SessionID: "sess",
				UserID:    "owner@example.com",
				IsPublic:  tt.isPublic,
			}
			assert.Equal(t, tt.want, CanView(p, tt.claims))
		})
	}
}
