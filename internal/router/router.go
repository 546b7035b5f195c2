package router

import (
	"ffpu-go/internal/config"
	"ffpu-go/internal/handler"
	"ffpu-go/internal/middleware"
	"ffpu-go/internal/repository"
	"ffpu-go/internal/service"
	"ffpu-go/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SetupRouter 设置路由
func SetupRouter(
	cfg *config.Config,
	jwtManager *utils.JWTManager,
	logger *logrus.Logger,
	db *gorm.DB,
) *gin.Engine {
	// 设置Gin模式
	if cfg.Server.ProductionMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// 全局中间件
	r.Use(middleware.LoggerMiddleware(logger))
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg))

	// 健康检查
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "FFPU API",
			"version": "1.0.0",
		})
	})

	// 初始化Repository
	userRepo := repository.NewUserRepository(db)
	strategyRepo := repository.NewStrategyRepository(db)

	// 初始化Service
	mailer := service.NewSMTPMailer(&cfg.SMTP)
	emailService := service.NewEmailService(mailer, jwtManager, cfg)
	googleService := service.NewGoogleService(&cfg.Google)
	authService := service.NewAuthService(userRepo, jwtManager, emailService, googleService, logger)
	strategyService := service.NewStrategyService(strategyRepo, service.NewScriptExecutor(cfg.Script.Path))

	// 初始化Handler
	authHandler := handler.NewAuthHandler(authService, cfg)
	strategyHandler := handler.NewStrategyHandler(strategyService)

	// API路由组
	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.GET("/verify-email/:token", authHandler.VerifyEmail)
			auth.POST("/login", authHandler.Login)
			auth.GET("/google/login", authHandler.GoogleLogin)
			auth.GET("/google/callback", authHandler.GoogleCallback)
			auth.POST("/forgot-password", authHandler.ForgotPassword)
			auth.POST("/reset-password", authHandler.ResetPassword)
			auth.POST("/get-user-detail", authHandler.GetUserDetail)
			auth.PUT("/update-user-details", authHandler.UpdateUserDetails)
		}

		strategy := api.Group("/strategy")
		{
			authorized := strategy.Group("")
			authorized.Use(middleware.AuthRequired(jwtManager))
			{
				authorized.POST("/execute", strategyHandler.Execute)
				authorized.POST("/save", strategyHandler.Save)
				authorized.GET("/get_all_strategy_user", strategyHandler.ListForUser)
			}

			strategy.GET("/get_all_public_strategies", strategyHandler.ListPublic)

			// 详情接口匿名可访问公开策略，私有策略在handler里鉴权
			strategy.GET("/strategies", middleware.AuthOptional(jwtManager), strategyHandler.Detail)
		}
	}

	return r
}
