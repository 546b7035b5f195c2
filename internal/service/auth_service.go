package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ffpu-go/internal/dto"
	"ffpu-go/internal/models"
	"ffpu-go/internal/repository"
	"ffpu-go/internal/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuthService 认证服务
type AuthService struct {
	userRepo     *repository.UserRepository
	jwtManager   *utils.JWTManager
	emailService *EmailService
	googleSvc    *GoogleService
	logger       *logrus.Logger
}

// NewAuthService 创建认证服务
func NewAuthService(
	userRepo *repository.UserRepository,
	jwtManager *utils.JWTManager,
	emailService *EmailService,
	googleSvc *GoogleService,
	logger *logrus.Logger,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		jwtManager:   jwtManager,
		emailService: emailService,
		googleSvc:    googleSvc,
		logger:       logger,
	}
}

// Signup 用户注册。新账户未验证，注册后发送验证邮件。
func (s *AuthService) Signup(req *dto.SignupRequest) (*models.User, error) {
	exists, err := s.userRepo.ExistsByEmail(req.Email)
	if err != nil {
		return nil, fmt.Errorf("检查邮箱失败: %w", err)
	}
	if exists {
		return nil, ErrEmailRegistered
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("密码哈希失败: %w", err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		Mobile:       &req.Mobile,
		PasswordHash: &hashedPassword,
		Role:         models.RoleStandardUser,
		IsVerified:   false,
		IsActive:     true,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("创建用户失败: %w", err)
	}

	// 邮件发送失败不影响注册结果，用户可以之后重新触发验证
	if err := s.emailService.SendVerificationEmail(user.Email); err != nil {
		s.logger.Warnf("发送验证邮件失败: %v", err)
	}

	return user, nil
}

// VerifyEmail 验证邮箱，Token的sub为邮箱地址
func (s *AuthService) VerifyEmail(token string) error {
	claims, err := s.jwtManager.VerifyToken(token)
	if err != nil {
		return err
	}

	user, err := s.userRepo.GetByEmail(claims.Subject)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("查询用户失败: %w", err)
	}

	user.IsVerified = true
	if err := s.userRepo.Save(user); err != nil {
		return fmt.Errorf("更新用户失败: %w", err)
	}

	return nil
}

// Login 用户登录。账户不存在、无密码（Google账户）或密码不匹配
// 统一返回凭证错误。登录不检查is_verified，未验证账户也可登录。
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if user.PasswordHash == nil || utils.CheckPassword(req.Password, *user.PasswordHash) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateToken(user.Email, string(user.Role), 0)
	if err != nil {
		return nil, fmt.Errorf("生成Token失败: %w", err)
	}

	return &dto.LoginResponse{
		Token: token,
		Role:  string(user.Role),
	}, nil
}

// GoogleAuthURL 获取Google授权页地址
func (s *AuthService) GoogleAuthURL() string {
	return s.googleSvc.AuthURL()
}

// GoogleCallback 处理Google回调：换码取用户信息，本地无账户时
// 创建已验证的无密码账户并发送欢迎邮件，最后签发本地Token。
func (s *AuthService) GoogleCallback(ctx context.Context, code string) (*models.User, string, error) {
	accessToken, err := s.googleSvc.ExchangeCode(ctx, code)
	if err != nil {
		return nil, "", err
	}

	info, err := s.googleSvc.FetchUser(ctx, accessToken)
	if err != nil {
		return nil, "", err
	}

	user, err := s.userRepo.GetByEmail(info.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", fmt.Errorf("查询用户失败: %w", err)
		}

		user = &models.User{
			Name:       info.Name,
			Email:      info.Email,
			GoogleID:   &info.ID,
			Role:       models.RoleStandardUser,
			IsVerified: true,
			IsActive:   true,
		}
		if err := s.userRepo.Create(user); err != nil {
			return nil, "", fmt.Errorf("创建用户失败: %w", err)
		}

		if err := s.emailService.SendGoogleWelcomeEmail(user.Email); err != nil {
			s.logger.Warnf("发送欢迎邮件失败: %v", err)
		}
	}

	token, err := s.jwtManager.GenerateToken(user.Email, string(user.Role), 0)
	if err != nil {
		return nil, "", fmt.Errorf("生成Token失败: %w", err)
	}

	return user, token, nil
}

// ForgotPassword 发送密码重置邮件，Token有效期15分钟
func (s *AuthService) ForgotPassword(email string) error {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmailNotFound
		}
		return fmt.Errorf("查询用户失败: %w", err)
	}

	resetToken, err := s.jwtManager.GenerateToken(user.Email, "", 15*time.Minute)
	if err != nil {
		return fmt.Errorf("生成重置Token失败: %w", err)
	}

	if err := s.emailService.SendResetEmail(user.Email, resetToken); err != nil {
		return fmt.Errorf("发送重置邮件失败: %w", err)
	}

	return nil
}

// ResetPassword 重置密码
func (s *AuthService) ResetPassword(token, newPassword string) error {
	claims, err := s.jwtManager.VerifyToken(token)
	if err != nil {
		return err
	}

	user, err := s.userRepo.GetByEmail(claims.Subject)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("查询用户失败: %w", err)
	}

	hashedPassword, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("密码哈希失败: %w", err)
	}

	user.PasswordHash = &hashedPassword
	if err := s.userRepo.Save(user); err != nil {
		return fmt.Errorf("更新用户失败: %w", err)
	}

	return nil
}

// GetUserDetail 获取用户详情
func (s *AuthService) GetUserDetail(email string) (*dto.UserDetail, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}

	mobile := ""
	if user.Mobile != nil {
		mobile = *user.Mobile
	}

	return &dto.UserDetail{
		Name:        user.Name,
		Email:       user.Email,
		PhoneNumber: mobile,
		IsVerified:  user.IsVerified,
	}, nil
}

// UpdateUser 更新用户信息，只更新请求中非空的字段
func (s *AuthService) UpdateUser(req *dto.UpdateUserRequest) error {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("查询用户失败: %w", err)
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Mobile != "" {
		user.Mobile = &req.Mobile
	}
	if req.NewPassword != "" {
		hashedPassword, err := utils.HashPassword(req.NewPassword)
		if err != nil {
			return fmt.Errorf("密码哈希失败: %w", err)
		}
		user.PasswordHash = &hashedPassword
	}

	if err := s.userRepo.Save(user); err != nil {
		return fmt.Errorf("更新用户失败: %w", err)
	}

	return nil
}
