// Package scoring 实现回测评分的落库逻辑：写入策略记录、
// 各持有期统计和逐年收益。cmd/scorer 将其编译为独立可执行文件，
// 由后端以子进程方式调用。
package scoring

import (
	"encoding/json"
	"fmt"
	"time"

	"ffpu-go/internal/models"
	"ffpu-go/internal/repository"

	"gorm.io/gorm"
)

// Populate 处理一次完整的评分：创建策略记录、1-10年持有期统计、
// 2000-2022逐年收益。统计数值目前是占位公式，真实回测引擎接入后替换。
func Populate(db *gorm.DB, sessionID, userID string, payload map[string]interface{}) error {
	repo := repository.NewStrategyRepository(db)

	if err := submitPortfolio(repo, sessionID, userID, payload); err != nil {
		return fmt.Errorf("写入策略记录失败: %w", err)
	}
	if err := createStats(repo, sessionID, payload); err != nil {
		return fmt.Errorf("写入持有期统计失败: %w", err)
	}
	if err := createCalYears(repo, sessionID, userID); err != nil {
		return fmt.Errorf("写入逐年收益失败: %w", err)
	}
	return nil
}

// submitPortfolio 插入一条新的策略记录。不做按会话ID的去重，
// 每次执行都产生新行。
func submitPortfolio(repo *repository.StrategyRepository, sessionID, userID string, payload map[string]interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	portfolio := models.InputPortfolio{
		SessionID:  sessionID,
		UserID:     userID,
		InsertTime: insertTime(),
		StratName:  string(raw),
		IsPublic:   false,
	}

	for year := models.FirstYear; year <= models.LastYear; year++ {
		slot, err := yearSlotJSON(payload[fmt.Sprintf("%d", year)])
		if err != nil {
			return err
		}
		portfolio.SetYearValue(year, slot)
	}

	return repo.CreatePortfolio(&portfolio)
}

// yearSlotJSON 将年份取值规整为JSON列表文本：
// 缺失 -> "[]"，非列表 -> 单元素列表，列表原样序列化。
func yearSlotJSON(value interface{}) (string, error) {
	var list []interface{}
	switch v := value.(type) {
	case nil:
		list = []interface{}{}
	case []interface{}:
		list = v
	default:
		list = []interface{}{v}
	}

	raw, err := json.Marshal(list)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// createStats 为1-10年每个持有期插入一行统计。
// strat_name与input_portfolio存同一份JSON文本。
func createStats(repo *repository.StrategyRepository, sessionID string, payload map[string]interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	stats := make([]models.PortfolioStats, 0, 10)
	for horizon := 1; horizon <= 10; horizon++ {
		stats = append(stats, models.PortfolioStats{
			SessionID:   sessionID,
			InsertTime:  insertTime(),
			StratName:   string(raw),
			NYears:      horizon,
			CagrMean:    floatPtr(0.1 * float64(horizon)),
			SharpeRatio: floatPtr(0.5 * float64(horizon)),
			NDatapoint:  100 + 10*horizon,
		})
	}

	return repo.CreateStats(stats)
}

// createCalYears 为2000-2022每个日历年插入一行收益
func createCalYears(repo *repository.StrategyRepository, sessionID, userID string) error {
	years := make([]models.CalYear, 0, 23)
	for year := 2000; year <= 2022; year++ {
		years = append(years, models.CalYear{
			SessionID:     sessionID,
			UserID:        userID,
			Year:          year,
			PortfolioCagr: floatPtr(0.05 * float64(year-2000+1)),
			IndexCagr:     floatPtr(0.04 * float64(year-2000+1)),
		})
	}

	return repo.CreateCalYears(years)
}

func insertTime() string {
	return time.Now().UTC().Format("2006-01-02 15:04:05.000000")
}

func floatPtr(v float64) *float64 {
	return &v
}
