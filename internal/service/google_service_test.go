package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"ffpu-go/internal/config"
	"ffpu-go/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFakeGoogle 启动一个伪Google服务，返回指向它的GoogleService
func newFakeGoogle(t *testing.T, tokenBody, userBody string, userStatus int) *GoogleService {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.Form.Get("grant_type"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(tokenBody))
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(userStatus)
		w.Write([]byte(userBody))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	svc := NewGoogleService(&config.GoogleConfig{
		ClientID:     "client",
		ClientSecret: "secret",
		RedirectURI:  "http://localhost/callback",
	})
	svc.client = server.Client()
	svc.tokenURL = server.URL + "/token"
	svc.userInfoURL = server.URL + "/userinfo"
	return svc
}

func TestExchangeCodeAndFetchUser(t *testing.T) {
	svc := newFakeGoogle(t,
		`{"access_token":"tok-123"}`,
		`{"id":"g-1","email":"g@example.com","name":"G User"}`,
		http.StatusOK,
	)

	token, err := svc.ExchangeCode(context.Background(), "code-1")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)

	user, err := svc.FetchUser(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "g@example.com", user.Email)
	assert.Equal(t, "G User", user.Name)
}

func TestExchangeCodeInvalidGrant(t *testing.T) {
	svc := newFakeGoogle(t, `{"error":"invalid_grant"}`, `{}`, http.StatusOK)

	_, err := svc.ExchangeCode(context.Background(), "bad-code")
	assert.ErrorIs(t, err, ErrInvalidGrant)
}

func TestFetchUserProviderError(t *testing.T) {
	svc := newFakeGoogle(t, `{"access_token":"tok"}`, `{}`, http.StatusUnauthorized)

	_, err := svc.FetchUser(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrProviderError)
}

func TestGoogleCallbackCreatesVerifiedUser(t *testing.T) {
	db := newTestDB(t)
	mailer := &fakeMailer{}
	svc, jwtManager := newTestAuthService(t, db, mailer)
	svc.googleSvc = newFakeGoogle(t,
		`{"access_token":"tok-123"}`,
		`{"id":"g-77","email":"oauth@example.com","name":"OAuth User"}`,
		http.StatusOK,
	)

	user, token, err := svc.GoogleCallback(context.Background(), "code-1")
	require.NoError(t, err)

	// 首次回调创建已验证的无密码账户
	assert.True(t, user.IsVerified)
	assert.Nil(t, user.PasswordHash)
	require.NotNil(t, user.GoogleID)
	assert.Equal(t, "g-77", *user.GoogleID)
	assert.Equal(t, models.RoleStandardUser, user.Role)

	claims, err := jwtManager.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "oauth@example.com", claims.Subject)

	// 新用户收到欢迎邮件
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "oauth@example.com", mailer.sent[0].To)

	// 二次回调复用账户，不再发欢迎邮件
	mailer.sent = nil
	again, _, err := svc.GoogleCallback(context.Background(), "code-2")
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)
	assert.Empty(t, mailer.sent)
}
