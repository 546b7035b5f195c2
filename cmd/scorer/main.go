package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"ffpu-go/internal/config"
	"ffpu-go/internal/models"
	"ffpu-go/internal/scoring"
)

// 评分器独立可执行文件。后端以子进程方式调用：
//
//	scorer <session_id> <user_id> <json_payload>
//
// 配置文件路径可通过 FFPU_CONFIG 环境变量覆盖，默认 ./config/config.yaml。
func main() {
	if len(os.Args) < 4 {
		fmt.Fprintln(os.Stderr, "用法: scorer <session_id> <user_id> <json_payload>")
		os.Exit(1)
	}

	sessionID := os.Args[1]
	userID := os.Args[2]

	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(os.Args[3]), &payload); err != nil {
		fmt.Fprintf(os.Stderr, "无效的JSON数据: %v\n", err)
		os.Exit(1)
	}

	configFile := os.Getenv("FFPU_CONFIG")
	if configFile == "" {
		configFile = "./config/config.yaml"
	}

	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	db, err := models.InitDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	if err := scoring.Populate(db, sessionID, userID, payload); err != nil {
		fmt.Fprintf(os.Stderr, "评分失败: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("回测完成, 会话: %s\n", sessionID)
}
