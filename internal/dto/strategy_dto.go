package dto

// ExecuteRequest 策略执行请求。user_token沿用历史字段名，
// 内容是提交方的用户标识（邮箱）。
type ExecuteRequest struct {
	SessionID string                 `json:"session_id" binding:"required"`
	UserID    string                 `json:"user_token" binding:"required"`
	Data      map[string]interface{} `json:"data" binding:"required"`
}

// ExecuteResponse 策略执行结果信封，成功失败都以200返回
type ExecuteResponse struct {
	Status     string      `json:"status"`
	Output     interface{} `json:"output,omitempty"`
	Error      string      `json:"error,omitempty"`
	StrategyID string      `json:"strategy_id,omitempty"`
}

// ExecuteOutput 执行成功后回读的三张表数据
type ExecuteOutput struct {
	IPPF     map[string]interface{}   `json:"ippf"`
	PFST     []map[string]interface{} `json:"pfst"`
	CalYears []map[string]interface{} `json:"calyears"`
}

// SaveStrategyRequest 保存策略请求。isPublic沿用历史接口的0/1整型
type SaveStrategyRequest struct {
	SessionID      string `json:"session_id" binding:"required"`
	StratNameAlias string `json:"strat_name_alias" binding:"required"`
	IsPublic       int    `json:"isPublic"`
}

// StrategyListItem 策略列表条目
type StrategyListItem struct {
	Strategy   string `json:"strategy"`
	Name       string `json:"name"`
	StrategyID string `json:"strategy_id"`
}

// Pagination 分页元信息
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int64 `json:"total_pages"`
}

// StrategyListResponse 分页策略列表
type StrategyListResponse struct {
	Strategies []StrategyListItem `json:"strategies"`
	Pagination Pagination         `json:"pagination"`
}

// StrategyDetail 策略详情（记录、各持有期统计、逐年收益）
type StrategyDetail struct {
	IPPF     map[string]interface{}   `json:"ippf"`
	PFST     []map[string]interface{} `json:"pfst"`
	CalYears []map[string]interface{} `json:"calyears"`
}
