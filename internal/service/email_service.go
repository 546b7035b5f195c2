package service

import (
	"embed"
	"fmt"
	"strings"
	"time"

	"ffpu-go/internal/config"
	"ffpu-go/internal/utils"

	"gopkg.in/gomail.v2"
)

//go:embed templates/*.html
var mailTemplates embed.FS

// Mailer 邮件发送接口，测试替换为内存实现
type Mailer interface {
	Send(to, subject, body, contentType string) error
}

// SMTPMailer 基于gomail的SMTP发送实现
type SMTPMailer struct {
	cfg *config.SMTPConfig
}

// NewSMTPMailer 创建SMTP发送器
func NewSMTPMailer(cfg *config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// Send 发送一封邮件
func (m *SMTPMailer) Send(to, subject, body, contentType string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.Sender)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody(contentType, body)

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Sender, m.cfg.Password)
	return dialer.DialAndSend(msg)
}

// EmailService 组装并发送各类通知邮件
type EmailService struct {
	mailer     Mailer
	jwtManager *utils.JWTManager
	cfg        *config.Config
}

// NewEmailService 创建邮件服务
func NewEmailService(mailer Mailer, jwtManager *utils.JWTManager, cfg *config.Config) *EmailService {
	return &EmailService{
		mailer:     mailer,
		jwtManager: jwtManager,
		cfg:        cfg,
	}
}

// SendVerificationEmail 发送邮箱验证邮件，链接带24小时Token
func (s *EmailService) SendVerificationEmail(email string) error {
	token, err := s.jwtManager.GenerateToken(email, "", 24*time.Hour)
	if err != nil {
		return fmt.Errorf("生成验证Token失败: %w", err)
	}

	body, err := s.renderTemplate("templates/email_verification.html", map[string]string{
		"{verification_link}": fmt.Sprintf("%s/api/auth/verify-email/%s", s.cfg.URLs.Backend, token),
		"{dashboard_link}":    s.cfg.URLs.Frontend + "/screens",
		"{docs_link}":         s.cfg.URLs.Frontend + "/guides/backtesting",
	})
	if err != nil {
		return err
	}

	return s.mailer.Send(email, "Verify Your Email Address", body, "text/html")
}

// SendResetEmail 发送密码重置邮件
func (s *EmailService) SendResetEmail(email, token string) error {
	resetLink := fmt.Sprintf("%s/reset-password?token=%s", s.cfg.URLs.Frontend, token)
	body := fmt.Sprintf("Click the link to reset your password: %s", resetLink)
	return s.mailer.Send(email, "Password Reset Request", body, "text/plain")
}

// SendGoogleWelcomeEmail 向通过Google注册的新用户发送欢迎邮件
func (s *EmailService) SendGoogleWelcomeEmail(email string) error {
	body, err := s.renderTemplate("templates/google_welcome.html", map[string]string{
		"{dashboard_link}": s.cfg.URLs.Frontend + "/screens",
		"{docs_link}":      s.cfg.URLs.Frontend + "/guides/backtesting",
	})
	if err != nil {
		return err
	}

	return s.mailer.Send(email, "Welcome to Fidelfolio!", body, "text/html")
}

// renderTemplate 读取内嵌模板并替换占位符
func (s *EmailService) renderTemplate(name string, replacements map[string]string) (string, error) {
	raw, err := mailTemplates.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("读取邮件模板失败: %w", err)
	}

	body := string(raw)
	for placeholder, value := range replacements {
		body = strings.ReplaceAll(body, placeholder, value)
	}
	return body, nil
}
