package service

import (
	"context"
	"testing"
	"time"

	"ffpu-go/internal/config"
	"ffpu-go/internal/models"
	"ffpu-go/internal/repository"
	"ffpu-go/internal/scoring"
	"ffpu-go/internal/utils"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))
	return db
}

func newTestConfig() *config.Config {
	return &config.Config{
		URLs: config.URLConfig{
			Frontend: "http://frontend.test",
			Backend:  "http://backend.test",
		},
	}
}

func newTestJWTManager() *utils.JWTManager {
	return utils.NewJWTManager("test-secret", "HS256", 30*time.Minute)
}

// sentMail 记录一次发送
type sentMail struct {
	To          string
	Subject     string
	Body        string
	ContentType string
}

// fakeMailer 内存邮件发送器
type fakeMailer struct {
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(to, subject, body, contentType string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body, ContentType: contentType})
	return nil
}

// fakeBackend 直接写库的评分后端，跳过子进程
type fakeBackend struct {
	db        *gorm.DB
	err       error
	skipWrite bool
}

func (b *fakeBackend) Run(ctx context.Context, sessionID, userID string, payload map[string]interface{}) error {
	if b.err != nil {
		return b.err
	}
	if b.skipWrite {
		return nil
	}
	return scoring.Populate(b.db, sessionID, userID, payload)
}

func newTestAuthService(t *testing.T, db *gorm.DB, mailer *fakeMailer) (*AuthService, *utils.JWTManager) {
	t.Helper()
	jwtManager := newTestJWTManager()
	cfg := newTestConfig()
	emailService := NewEmailService(mailer, jwtManager, cfg)
	googleSvc := NewGoogleService(&cfg.Google)

	testLogger := logrus.New()
	testLogger.SetLevel(logrus.PanicLevel)

	authService := NewAuthService(
		repository.NewUserRepository(db),
		jwtManager,
		emailService,
		googleSvc,
		testLogger,
	)
	return authService, jwtManager
}

func newTestStrategyService(t *testing.T, db *gorm.DB, backend ScoringBackend) *StrategyService {
	t.Helper()
	if backend == nil {
		backend = &fakeBackend{db: db}
	}
	return NewStrategyService(repository.NewStrategyRepository(db), backend)
}
