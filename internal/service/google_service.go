package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ffpu-go/internal/config"
)

const (
	googleAuthURL     = "https://accounts.google.com/o/oauth2/auth"
	googleTokenURL    = "https://oauth2.googleapis.com/token"
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

// GoogleUser Google返回的用户信息
type GoogleUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// GoogleService Google OAuth对接。端点字段可在测试中指向本地假服务。
type GoogleService struct {
	cfg         *config.GoogleConfig
	client      *http.Client
	authURL     string
	tokenURL    string
	userInfoURL string
}

// NewGoogleService 创建Google OAuth服务
func NewGoogleService(cfg *config.GoogleConfig) *GoogleService {
	return &GoogleService{
		cfg:         cfg,
		client:      &http.Client{Timeout: 10 * time.Second},
		authURL:     googleAuthURL,
		tokenURL:    googleTokenURL,
		userInfoURL: googleUserInfoURL,
	}
}

// AuthURL 构造授权页地址
func (s *GoogleService) AuthURL() string {
	return fmt.Sprintf("%s?client_id=%s&redirect_uri=%s&response_type=code&scope=openid%%20email%%20profile",
		s.authURL, s.cfg.ClientID, s.cfg.RedirectURI)
}

// ExchangeCode 用授权码换取访问令牌
func (s *GoogleService) ExchangeCode(ctx context.Context, code string) (string, error) {
	form := url.Values{
		"client_id":     {s.cfg.ClientID},
		"client_secret": {s.cfg.ClientSecret},
		"code":          {code},
		"grant_type":    {"authorization_code"},
		"redirect_uri":  {s.cfg.RedirectURI},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProviderError, err)
	}
	defer resp.Body.Close()

	var tokenData struct {
		AccessToken string `json:"access_token"`
		Error       string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenData); err != nil {
		return "", fmt.Errorf("%w: %v", ErrProviderError, err)
	}
	if tokenData.Error != "" || tokenData.AccessToken == "" {
		return "", ErrInvalidGrant
	}

	return tokenData.AccessToken, nil
}

// FetchUser 用访问令牌获取用户信息
func (s *GoogleService) FetchUser(ctx context.Context, accessToken string) (*GoogleUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.userInfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderError, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrProviderError
	}

	var user GoogleUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderError, err)
	}

	return &user, nil
}
