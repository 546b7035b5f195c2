package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"ffpu-go/internal/dto"
	"ffpu-go/internal/models"
	"ffpu-go/internal/repository"

	"gorm.io/gorm"
)

// StrategyService 策略服务
type StrategyService struct {
	strategyRepo *repository.StrategyRepository
	backend      ScoringBackend
}

// NewStrategyService 创建策略服务
func NewStrategyService(strategyRepo *repository.StrategyRepository, backend ScoringBackend) *StrategyService {
	return &StrategyService{
		strategyRepo: strategyRepo,
		backend:      backend,
	}
}

// Execute 执行评分并回读三张表的数据。评分器退出码为0但没有
// 策略记录落库时按部分失败处理，返回ErrNoRecordFound。
func (s *StrategyService) Execute(ctx context.Context, req *dto.ExecuteRequest) (*dto.ExecuteOutput, error) {
	// 客户端断开不终止评分，评分一旦开始就让三张表写完
	ctx = context.WithoutCancel(ctx)

	if err := s.backend.Run(ctx, req.SessionID, req.UserID, req.Data); err != nil {
		return nil, err
	}

	portfolio, err := s.strategyRepo.GetPortfolioBySessionID(req.SessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoRecordFound
		}
		return nil, fmt.Errorf("查询策略记录失败: %w", err)
	}

	stats, err := s.strategyRepo.GetStatsBySessionID(req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("查询持有期统计失败: %w", err)
	}

	calYears, err := s.strategyRepo.GetCalYearsBySessionID(req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("查询逐年收益失败: %w", err)
	}

	output := &dto.ExecuteOutput{
		IPPF:     executePortfolioView(portfolio),
		PFST:     make([]map[string]interface{}, 0, len(stats)),
		CalYears: make([]map[string]interface{}, 0, len(calYears)),
	}
	for i := range stats {
		output.PFST = append(output.PFST, executeStatView(&stats[i]))
	}
	for i := range calYears {
		output.CalYears = append(output.CalYears, executeCalYearView(&calYears[i]))
	}

	return output, nil
}

// Save 设置策略别名与公开标记
func (s *StrategyService) Save(req *dto.SaveStrategyRequest) error {
	portfolio, err := s.strategyRepo.GetPortfolioBySessionID(req.SessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStrategyNotFound
		}
		return fmt.Errorf("查询策略记录失败: %w", err)
	}

	alias := req.StratNameAlias
	portfolio.StratNameAlias = &alias
	portfolio.IsPublic = req.IsPublic != 0

	if err := s.strategyRepo.SavePortfolio(portfolio); err != nil {
		return fmt.Errorf("更新策略记录失败: %w", err)
	}

	return nil
}

// Detail 获取策略详情。逐年收益按年份升序，持有期统计保持存储顺序。
// 同时返回原始记录供handler做访问控制。
func (s *StrategyService) Detail(strategyID string) (*dto.StrategyDetail, *models.InputPortfolio, error) {
	portfolio, err := s.strategyRepo.GetPortfolioBySessionID(strategyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrStrategyNotFound
		}
		return nil, nil, fmt.Errorf("查询策略记录失败: %w", err)
	}

	stats, err := s.strategyRepo.GetStatsBySessionID(strategyID)
	if err != nil {
		return nil, nil, fmt.Errorf("查询持有期统计失败: %w", err)
	}

	calYears, err := s.strategyRepo.GetCalYearsBySessionID(strategyID)
	if err != nil {
		return nil, nil, fmt.Errorf("查询逐年收益失败: %w", err)
	}

	detail := &dto.StrategyDetail{
		IPPF:     detailPortfolioView(portfolio),
		PFST:     make([]map[string]interface{}, 0, len(stats)),
		CalYears: make([]map[string]interface{}, 0, len(calYears)),
	}
	for i := range stats {
		detail.PFST = append(detail.PFST, detailStatView(&stats[i]))
	}
	for i := range calYears {
		detail.CalYears = append(detail.CalYears, map[string]interface{}{
			"year":           calYears[i].Year,
			"portfolio_cagr": calYears[i].PortfolioCagr,
			"index_cagr":     calYears[i].IndexCagr,
		})
	}

	return detail, portfolio, nil
}

// List 获取已命名策略的分页列表。userID为空时列出全部（公共列表），
// 否则只列目标用户的记录。第一页为空视为无有效策略。
func (s *StrategyService) List(userID string, page, pageSize int) (*dto.StrategyListResponse, error) {
	offset := (page - 1) * pageSize

	portfolios, total, err := s.strategyRepo.ListPortfolios(userID, offset, pageSize)
	if err != nil {
		return nil, fmt.Errorf("查询策略列表失败: %w", err)
	}

	if len(portfolios) == 0 && page == 1 {
		return nil, ErrNoStrategies
	}

	items := make([]dto.StrategyListItem, 0, len(portfolios))
	for i := range portfolios {
		alias := ""
		if portfolios[i].StratNameAlias != nil {
			alias = *portfolios[i].StratNameAlias
		}
		items = append(items, dto.StrategyListItem{
			Strategy:   portfolios[i].StratName,
			Name:       alias,
			StrategyID: portfolios[i].SessionID,
		})
	}

	return &dto.StrategyListResponse{
		Strategies: items,
		Pagination: dto.Pagination{
			Total:      total,
			Page:       page,
			PageSize:   pageSize,
			TotalPages: (total + int64(pageSize) - 1) / int64(pageSize),
		},
	}, nil
}

// executePortfolioView 执行结果中的策略记录视图，年份键为纯数字年份
func executePortfolioView(p *models.InputPortfolio) map[string]interface{} {
	view := map[string]interface{}{
		"id":               strconv.FormatUint(uint64(p.ID), 10),
		"session_id":       p.SessionID,
		"user_id":          p.UserID,
		"insert_time":      p.InsertTime,
		"strat_name":       p.StratName,
		"strat_name_alias": p.StratNameAlias,
	}
	for year := models.FirstYear; year <= models.LastYear; year++ {
		view[strconv.Itoa(year)] = p.YearValue(year)
	}
	return view
}

// detailPortfolioView 详情中的策略记录视图，年份键带y_前缀
func detailPortfolioView(p *models.InputPortfolio) map[string]interface{} {
	view := map[string]interface{}{
		"session_id":       p.SessionID,
		"user_id":          p.UserID,
		"insert_time":      p.InsertTime,
		"strat_name":       p.StratName,
		"strat_name_alias": p.StratNameAlias,
		"isPublic":         p.IsPublic,
	}
	for year := models.FirstYear; year <= models.LastYear; year++ {
		view[fmt.Sprintf("y_%d", year)] = p.YearValue(year)
	}
	return view
}

// executeStatView 执行结果中的统计视图。浮点字段转为字符串，
// 与历史接口的序列化方式一致。
func executeStatView(st *models.PortfolioStats) map[string]interface{} {
	return map[string]interface{}{
		"id":             st.ID,
		"session_id":     st.SessionID,
		"insert_time":    st.InsertTime,
		"strat_name":     st.StratName,
		"nyears":         st.NYears,
		"cagr_mean":      floatString(st.CagrMean),
		"cagr_median":    floatString(st.CagrMedian),
		"cagr_std":       floatString(st.CagrStd),
		"sharpe_ratio":   floatString(st.SharpeRatio),
		"ndatapoint":     st.NDatapoint,
		"index_mean":     floatString(st.IndexMean),
		"index_median":   floatString(st.IndexMedian),
		"index_std":      floatString(st.IndexStd),
		"index_SR":       floatString(st.IndexSR),
		"alpha_mean":     floatString(st.AlphaMean),
		"alpha_median":   floatString(st.AlphaMedian),
		"alpha_std":      floatString(st.AlphaStd),
		"alpha_SR":       floatString(st.AlphaSR),
		"cagr_dwn_std":   floatString(st.CagrDwnStd),
		"index_dwn_std":  floatString(st.IndexDwnStd),
		"alpha_dwn_std":  floatString(st.AlphaDwnStd),
		"avg_no_stock":   floatString(st.AvgNoStock),
		"prob_0_15":      floatString(st.Prob015),
		"prob_0":         floatString(st.Prob0),
		"prob_0_7":       floatString(st.Prob07),
		"prob_0_15p":     floatString(st.Prob015p),
		"prob_0_25":      floatString(st.Prob025),
		"prob_0_5":       floatString(st.Prob05),
		"prob_1":         floatString(st.Prob1),
		"alpha_0_15":     floatString(st.Alpha015),
		"alpha_0":        floatString(st.Alpha0),
		"alpha_0_7":      floatString(st.Alpha07),
		"alpha_0_15_pos": floatString(st.Alpha015Pos),
		"alpha_0_25":     floatString(st.Alpha025),
		"alpha_0_5":      floatString(st.Alpha05),
		"alpha_1":        st.Alpha1,
		"highest_pcagr":  floatString(st.HighestPcagr),
		"lowest_pcagr":   floatString(st.LowestPcagr),
		"highest_index":  floatString(st.HighestIndex),
		"lowest_index":   floatString(st.LowestIndex),
		"highest_alpha":  floatString(st.HighestAlpha),
		"lowest_alpha":   floatString(st.LowestAlpha),
		"mod_list_pct":   st.ModListPct,
	}
}

// detailStatView 详情中的统计视图，只含前端展示用的子集
func detailStatView(st *models.PortfolioStats) map[string]interface{} {
	return map[string]interface{}{
		"nyears":        st.NYears,
		"cagr_mean":     st.CagrMean,
		"cagr_median":   st.CagrMedian,
		"cagr_std":      st.CagrStd,
		"sharpe_ratio":  st.SharpeRatio,
		"alpha_mean":    st.AlphaMean,
		"alpha_median":  st.AlphaMedian,
		"alpha_std":     st.AlphaStd,
		"highest_pcagr": st.HighestPcagr,
		"lowest_pcagr":  st.LowestPcagr,
		"highest_alpha": st.HighestAlpha,
		"lowest_alpha":  st.LowestAlpha,
	}
}

// executeCalYearView 执行结果中的逐年收益视图
func executeCalYearView(cy *models.CalYear) map[string]interface{} {
	return map[string]interface{}{
		"id":             cy.ID,
		"session_id":     cy.SessionID,
		"user_id":        cy.UserID,
		"year":           cy.Year,
		"portfolio_cagr": floatString(cy.PortfolioCagr),
		"index_cagr":     floatString(cy.IndexCagr),
	}
}

// floatString 浮点指针转字符串，nil保持为null
func floatString(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}
