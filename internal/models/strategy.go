package models

// 策略相关表结构。input_portfolio 的年份列沿用历史库中的纯数字列名
// ("1999".."2022")，每列存放该年份持仓列表的JSON文本。

// FirstYear 持仓年份范围
const (
	FirstYear = 1999
	LastYear  = 2022
)

// InputPortfolio 用户提交的策略记录
type InputPortfolio struct {
	ID             uint    `gorm:"primarykey" json:"id"`
	SessionID      string  `gorm:"size:250;not null;index" json:"session_id"`
	UserID         string  `gorm:"size:255;not null" json:"user_id"`
	InsertTime     string  `gorm:"size:255;not null" json:"insert_time"`
	StratName      string  `gorm:"type:text;not null" json:"strat_name"`
	StratNameAlias *string `gorm:"size:255" json:"strat_name_alias"`
	IsPublic       bool    `gorm:"column:isPublic;not null;default:false" json:"isPublic"`

	Y1999 string `gorm:"column:1999;type:text" json:"-"`
	Y2000 string `gorm:"column:2000;type:text" json:"-"`
	Y2001 string `gorm:"column:2001;type:text" json:"-"`
	Y2002 string `gorm:"column:2002;type:text" json:"-"`
	Y2003 string `gorm:"column:2003;type:text" json:"-"`
	Y2004 string `gorm:"column:2004;type:text" json:"-"`
	Y2005 string `gorm:"column:2005;type:text" json:"-"`
	Y2006 string `gorm:"column:2006;type:text" json:"-"`
	Y2007 string `gorm:"column:2007;type:text" json:"-"`
	Y2008 string `gorm:"column:2008;type:text" json:"-"`
	Y2009 string `gorm:"column:2009;type:text" json:"-"`
	Y2010 string `gorm:"column:2010;type:text" json:"-"`
	Y2011 string `gorm:"column:2011;type:text" json:"-"`
	Y2012 string `gorm:"column:2012;type:text" json:"-"`
	Y2013 string `gorm:"column:2013;type:text" json:"-"`
	Y2014 string `gorm:"column:2014;type:text" json:"-"`
	Y2015 string `gorm:"column:2015;type:text" json:"-"`
	Y2016 string `gorm:"column:2016;type:text" json:"-"`
	Y2017 string `gorm:"column:2017;type:text" json:"-"`
	Y2018 string `gorm:"column:2018;type:text" json:"-"`
	Y2019 string `gorm:"column:2019;type:text" json:"-"`
	Y2020 string `gorm:"column:2020;type:text" json:"-"`
	Y2021 string `gorm:"column:2021;type:text" json:"-"`
	Y2022 string `gorm:"column:2022;type:text" json:"-"`
}

// TableName 指定表名
func (InputPortfolio) TableName() string {
	return "input_portfolio"
}

// yearSlots 按年份顺序返回各年份列的指针
func (p *InputPortfolio) yearSlots() []*string {
	return []*string{
		&p.Y1999, &p.Y2000, &p.Y2001, &p.Y2002, &p.Y2003, &p.Y2004,
		&p.Y2005, &p.Y2006, &p.Y2007, &p.Y2008, &p.Y2009, &p.Y2010,
		&p.Y2011, &p.Y2012, &p.Y2013, &p.Y2014, &p.Y2015, &p.Y2016,
		&p.Y2017, &p.Y2018, &p.Y2019, &p.Y2020, &p.Y2021, &p.Y2022,
	}
}

// YearValue 获取指定年份列的值，年份不在范围内时返回空字符串
func (p *InputPortfolio) YearValue(year int) string {
	if year < FirstYear || year > LastYear {
		return ""
	}
	return *p.yearSlots()[year-FirstYear]
}

// SetYearValue 设置指定年份列的值
func (p *InputPortfolio) SetYearValue(year int, value string) {
	if year < FirstYear || year > LastYear {
		return
	}
	*p.yearSlots()[year-FirstYear] = value
}

// PortfolioStats 按持有期（nyears）聚合的策略统计
type PortfolioStats struct {
	ID         uint   `gorm:"primarykey" json:"id"`
	SessionID  string `gorm:"type:text;index" json:"session_id"`
	InsertTime string `gorm:"type:text" json:"insert_time"`
	StratName  string `gorm:"type:text" json:"strat_name"`

	NYears      int      `gorm:"column:nyears" json:"nyears"`
	CagrMean    *float64 `gorm:"column:cagr_mean" json:"cagr_mean"`
	CagrMedian  *float64 `gorm:"column:cagr_median" json:"cagr_median"`
	CagrStd     *float64 `gorm:"column:cagr_std" json:"cagr_std"`
	SharpeRatio *float64 `gorm:"column:sharpe_ratio" json:"sharpe_ratio"`
	NDatapoint  int      `gorm:"column:ndatapoint" json:"ndatapoint"`

	IndexMean   *float64 `gorm:"column:index_mean" json:"index_mean"`
	IndexMedian *float64 `gorm:"column:index_median" json:"index_median"`
	IndexStd    *float64 `gorm:"column:index_std" json:"index_std"`
	IndexSR     *float64 `gorm:"column:index_SR" json:"index_SR"`

	AlphaMean   *float64 `gorm:"column:alpha_mean" json:"alpha_mean"`
	AlphaMedian *float64 `gorm:"column:alpha_median" json:"alpha_median"`
	AlphaStd    *float64 `gorm:"column:alpha_std" json:"alpha_std"`
	AlphaSR     *float64 `gorm:"column:alpha_SR" json:"alpha_SR"`

	CagrDwnStd  *float64 `gorm:"column:cagr_dwn_std" json:"cagr_dwn_std"`
	IndexDwnStd *float64 `gorm:"column:index_dwn_std" json:"index_dwn_std"`
	AlphaDwnStd *float64 `gorm:"column:alpha_dwn_std" json:"alpha_dwn_std"`

	AvgNoStock *float64 `gorm:"column:avg_no_stock" json:"avg_no_stock"`

	Prob015  *float64 `gorm:"column:prob_0_15" json:"prob_0_15"`
	Prob0    *float64 `gorm:"column:prob_0" json:"prob_0"`
	Prob07   *float64 `gorm:"column:prob_0_7" json:"prob_0_7"`
	Prob015p *float64 `gorm:"column:prob_0_15p" json:"prob_0_15p"`
	Prob025  *float64 `gorm:"column:prob_0_25" json:"prob_0_25"`
	Prob05   *float64 `gorm:"column:prob_0_5" json:"prob_0_5"`
	Prob1    *float64 `gorm:"column:prob_1" json:"prob_1"`

	Alpha015    *float64 `gorm:"column:alpha_0_15" json:"alpha_0_15"`
	Alpha0      *float64 `gorm:"column:alpha_0" json:"alpha_0"`
	Alpha07     *float64 `gorm:"column:alpha_0_7" json:"alpha_0_7"`
	Alpha015Pos *float64 `gorm:"column:alpha_0_15_pos" json:"alpha_0_15_pos"`
	Alpha025    *float64 `gorm:"column:alpha_0_25" json:"alpha_0_25"`
	Alpha05     *float64 `gorm:"column:alpha_0_5" json:"alpha_0_5"`
	Alpha1      *int     `gorm:"column:alpha_1" json:"alpha_1"`

	HighestPcagr *float64 `gorm:"column:highest_pcagr" json:"highest_pcagr"`
	LowestPcagr  *float64 `gorm:"column:lowest_pcagr" json:"lowest_pcagr"`
	HighestIndex *float64 `gorm:"column:highest_index" json:"highest_index"`
	LowestIndex  *float64 `gorm:"column:lowest_index" json:"lowest_index"`
	HighestAlpha *float64 `gorm:"column:highest_alpha" json:"highest_alpha"`
	LowestAlpha  *float64 `gorm:"column:lowest_alpha" json:"lowest_alpha"`

	ModListPct *string `gorm:"column:mod_list_pct;type:text" json:"mod_list_pct"`
}

// TableName 指定表名
func (PortfolioStats) TableName() string {
	return "portfolio_stats"
}

// CalYear 单个日历年的策略与指数收益
type CalYear struct {
	ID            uint     `gorm:"primarykey" json:"id"`
	SessionID     string   `gorm:"type:text;index" json:"session_id"`
	UserID        string   `gorm:"type:text" json:"user_id"`
	Year          int      `json:"year"`
	PortfolioCagr *float64 `gorm:"column:portfolio_cagr" json:"portfolio_cagr"`
	IndexCagr     *float64 `gorm:"column:index_cagr" json:"index_cagr"`
}

// TableName 指定表名
func (CalYear) TableName() string {
	return "cal_year"
}
