package main

import (
	"flag"
	"log"
	"os"

	"ffpu-go/internal/config"
	"ffpu-go/internal/models"
	"ffpu-go/internal/router"
	"ffpu-go/internal/utils"

	"github.com/sirupsen/logrus"
)

func main() {
	configFile := flag.String("config", "./config/config.yaml", "配置文件路径")
	flag.Parse()

	// 加载配置
	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 初始化日志
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)
	logger.SetLevel(logrus.InfoLevel)

	// 初始化数据库
	db, err := models.InitDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	// 注册自定义校验规则
	if err := utils.RegisterValidations(); err != nil {
		log.Fatalf("注册校验规则失败: %v", err)
	}

	// 初始化JWT管理器
	jwtManager := utils.NewJWTManager(
		cfg.JWT.SecretKey,
		cfg.JWT.Algorithm,
		cfg.JWT.GetExpireDuration(),
	)

	// 设置路由
	r := router.SetupRouter(cfg, jwtManager, logger, db)

	// 启动服务器
	addr := cfg.Server.GetAddress()
	logger.Infof("服务器启动在 %s", addr)

	if err := r.Run(addr); err != nil {
		log.Fatalf("启动服务器失败: %v", err)
	}
}
