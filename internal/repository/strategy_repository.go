package repository

import (
	"ffpu-go/internal/models"

	"gorm.io/gorm"
)

// StrategyRepository 策略数据访问层
type StrategyRepository struct {
	db *gorm.DB
}

// NewStrategyRepository 创建策略Repository
func NewStrategyRepository(db *gorm.DB) *StrategyRepository {
	return &StrategyRepository{db: db}
}

// CreatePortfolio 创建策略记录
func (r *StrategyRepository) CreatePortfolio(p *models.InputPortfolio) error {
	return r.db.Create(p).Error
}

// GetPortfolioBySessionID 根据会话ID获取策略记录。
// 会话ID没有唯一约束，出现重复时返回最先插入的一条。
func (r *StrategyRepository) GetPortfolioBySessionID(sessionID string) (*models.InputPortfolio, error) {
	var p models.InputPortfolio
	err := r.db.Where("session_id = ?", sessionID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SavePortfolio 保存策略记录变更
func (r *StrategyRepository) SavePortfolio(p *models.InputPortfolio) error {
	return r.db.Save(p).Error
}

// ListPortfolios 获取已命名策略的分页列表。userID为空时列出全部，
// 否则只列出指定用户的记录。
func (r *StrategyRepository) ListPortfolios(userID string, offset, limit int) ([]models.InputPortfolio, int64, error) {
	var portfolios []models.InputPortfolio
	var total int64

	query := r.db.Model(&models.InputPortfolio{}).Where("strat_name_alias IS NOT NULL")
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Offset(offset).Limit(limit).Find(&portfolios).Error
	return portfolios, total, err
}

// CreateStats 批量创建持有期统计
func (r *StrategyRepository) CreateStats(stats []models.PortfolioStats) error {
	return r.db.Create(&stats).Error
}

// GetStatsBySessionID 获取会话的全部持有期统计
func (r *StrategyRepository) GetStatsBySessionID(sessionID string) ([]models.PortfolioStats, error) {
	var stats []models.PortfolioStats
	err := r.db.Where("session_id = ?", sessionID).Find(&stats).Error
	return stats, err
}

// CreateCalYears 批量创建日历年收益
func (r *StrategyRepository) CreateCalYears(years []models.CalYear) error {
	return r.db.Create(&years).Error
}

// GetCalYearsBySessionID 获取会话的日历年收益，按年份升序
func (r *StrategyRepository) GetCalYearsBySessionID(sessionID string) ([]models.CalYear, error) {
	var years []models.CalYear
	err := r.db.Where("session_id = ?", sessionID).Order("year ASC").Find(&years).Error
	return years, err
}
