package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ScoringBackend 评分后端。生产实现以子进程方式执行外部评分器，
// 测试替换为直接写库的内存实现。
type ScoringBackend interface {
	Run(ctx context.Context, sessionID, userID string, payload map[string]interface{}) error
}

// ScriptExecutor 子进程评分后端
type ScriptExecutor struct {
	scriptPath string
}

// NewScriptExecutor 创建子进程评分后端
func NewScriptExecutor(scriptPath string) *ScriptExecutor {
	return &ScriptExecutor{scriptPath: scriptPath}
}

// Run 执行评分器，传三个位置参数：会话ID、用户ID、JSON负载。
// 评分器自行连接数据库写入三张表。
func (e *ScriptExecutor) Run(ctx context.Context, sessionID, userID string, payload map[string]interface{}) error {
	if _, err := os.Stat(e.scriptPath); err != nil {
		return ErrScriptNotFound
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("序列化负载失败: %w", err)
	}

	cmd := exec.CommandContext(ctx, e.scriptPath, sessionID, userID, string(data))
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %s", ErrScriptFailed, strings.TrimSpace(stderr.String()))
	}

	return nil
}
