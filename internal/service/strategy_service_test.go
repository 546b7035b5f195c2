package service

import (
	"context"
	"fmt"
	"testing"

	"ffpu-go/internal/dto"
	"ffpu-go/internal/models"
	"ffpu-go/internal/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func executeRequest(sessionID string) *dto.ExecuteRequest {
	return &dto.ExecuteRequest{
		SessionID: sessionID,
		UserID:    "owner@example.com",
		Data: map[string]interface{}{
			"2000": []interface{}{float64(1), float64(2)},
			"2005": "x",
		},
	}
}

func TestExecuteComposesOutput(t *testing.T) {
	db := newTestDB(t)
	svc := newTestStrategyService(t, db, nil)

	output, err := svc.Execute(context.Background(), executeRequest("sess-exec"))
	require.NoError(t, err)

	assert.Equal(t, "sess-exec", output.IPPF["session_id"])
	assert.Equal(t, "owner@example.com", output.IPPF["user_id"])
	assert.Equal(t, "[1,2]", output.IPPF["2000"])
	assert.Equal(t, `["x"]`, output.IPPF["2005"])
	assert.Equal(t, "[]", output.IPPF["1999"])

	assert.Len(t, output.PFST, 10)
	assert.Len(t, output.CalYears, 23)

	// 浮点字段以字符串返回
	assert.IsType(t, "", output.PFST[0]["cagr_mean"])

	// 统计行与策略记录展示同一份策略定义
	assert.Equal(t, output.IPPF["strat_name"], output.PFST[0]["strat_name"])
}

// cancelAwareBackend 上下文已取消时拒绝执行，模拟被杀掉的子进程
type cancelAwareBackend struct {
	db *gorm.DB
}

func (b *cancelAwareBackend) Run(ctx context.Context, sessionID, userID string, payload map[string]interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return scoring.Populate(b.db, sessionID, userID, payload)
}

func TestExecuteSurvivesCallerCancel(t *testing.T) {
	db := newTestDB(t)
	svc := newTestStrategyService(t, db, &cancelAwareBackend{db: db})

	// 调用方上下文已取消（客户端断开），评分与落库照常完成
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	output, err := svc.Execute(ctx, executeRequest("sess-detach"))
	require.NoError(t, err)
	assert.Len(t, output.PFST, 10)

	var count int64
	require.NoError(t, db.Model(&models.CalYear{}).Where("session_id = ?", "sess-detach").Count(&count).Error)
	assert.Equal(t, int64(23), count)
}

func TestExecuteNoRecordAfterSuccess(t *testing.T) {
	db := newTestDB(t)
	svc := newTestStrategyService(t, db, &fakeBackend{db: db, skipWrite: true})

	// 评分器正常退出但没写库，按部分失败处理
	_, err := svc.Execute(context.Background(), executeRequest("sess-empty"))
	assert.ErrorIs(t, err, ErrNoRecordFound)
}

func TestExecuteBackendFailure(t *testing.T) {
	db := newTestDB(t)
	svc := newTestStrategyService(t, db, &fakeBackend{db: db, err: fmt.Errorf("%w: boom", ErrScriptFailed)})

	_, err := svc.Execute(context.Background(), executeRequest("sess-fail"))
	assert.ErrorIs(t, err, ErrScriptFailed)
}

func TestSaveUpdatesAliasAndVisibility(t *testing.T) {
	db := newTestDB(t)
	svc := newTestStrategyService(t, db, nil)

	require.NoError(t, scoring.Populate(db, "sess-save", "owner@example.com", map[string]interface{}{}))

	require.NoError(t, svc.Save(&dto.SaveStrategyRequest{
		SessionID:      "sess-save",
		StratNameAlias: "My Strategy",
		IsPublic:       1,
	}))

	var p models.InputPortfolio
	require.NoError(t, db.Where("session_id = ?", "sess-save").First(&p).Error)
	require.NotNil(t, p.StratNameAlias)
	assert.Equal(t, "My Strategy", *p.StratNameAlias)
	assert.True(t, p.IsPublic)
}

func TestSaveNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newTestStrategyService(t, db, nil)

	err := svc.Save(&dto.SaveStrategyRequest{
		SessionID:      "missing",
		StratNameAlias: "x",
	})
	assert.ErrorIs(t, err, ErrStrategyNotFound)

	// 没有记录被创建
	var count int64
	require.NoError(t, db.Model(&models.InputPortfolio{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDetailCalYearsAscending(t *testing.T) {
	db := newTestDB(t)
	svc := newTestStrategyService(t, db, nil)

	require.NoError(t, db.Create(&models.InputPortfolio{
		SessionID:  "sess-detail",
		UserID:     "owner@example.com",
		InsertTime: "2024-01-01 00:00:00.000000",
		StratName:  "{}",
	}).Error)

	// 乱序插入
	for _, year := range []int{2010, 2001, 2022, 2005} {
		require.NoError(t, db.Create(&models.CalYear{
			SessionID: "sess-detail",
			UserID:    "owner@example.com",
			Year:      year,
		}).Error)
	}

	detail, portfolio, err := svc.Detail("sess-detail")
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", portfolio.UserID)

	got := make([]int, 0, len(detail.CalYears))
	for _, cy := range detail.CalYears {
		got = append(got, cy["year"].(int))
	}
	assert.Equal(t, []int{2001, 2005, 2010, 2022}, got)
}

func TestDetailNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newTestStrategyService(t, db, nil)

	_, _, err := svc.Detail("missing")
	assert.ErrorIs(t, err, ErrStrategyNotFound)
}

func TestDetailYearKeysPrefixed(t *testing.T) {
	db := newTestDB(t)
	svc := newTestStrategyService(t, db, nil)

	require.NoError(t, scoring.Populate(db, "sess-keys", "owner@example.com", map[string]interface{}{
		"2005": "x",
	}))

	detail, _, err := svc.Detail("sess-keys")
	require.NoError(t, err)

	// 详情视图的年份键带y_前缀
	assert.Equal(t, `["x"]`, detail.IPPF["y_2005"])
	assert.Equal(t, "[]", detail.IPPF["y_1999"])
	assert.NotContains(t, detail.IPPF, "2005")
}

// namedPortfolio 插入一条已命名的策略记录
func namedPortfolio(t *testing.T, db *gorm.DB, sessionID, userID string) {
	t.Helper()
	alias := "alias-" + sessionID
	require.NoError(t, db.Create(&models.InputPortfolio{
		SessionID:      sessionID,
		UserID:         userID,
		InsertTime:     "2024-01-01 00:00:00.000000",
		StratName:      "{}",
		StratNameAlias: &alias,
	}).Error)
}

func TestListPagination(t *testing.T) {
	db := newTestDB(t)
	svc := newTestStrategyService(t, db, nil)

	for i := 1; i <= 5; i++ {
		namedPortfolio(t, db, fmt.Sprintf("sess-%d", i), "owner@example.com")
	}
	// 未命名记录不进列表
	require.NoError(t, db.Create(&models.InputPortfolio{
		SessionID:  "sess-unnamed",
		UserID:     "owner@example.com",
		InsertTime: "2024-01-01 00:00:00.000000",
		StratName:  "{}",
	}).Error)

	seen := map[string]int{}
	for page := 1; page <= 3; page++ {
		resp, err := svc.List("", page, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(5), resp.Pagination.Total)
		assert.Equal(t, int64(3), resp.Pagination.TotalPages)
		for _, item := range resp.Strategies {
			seen[item.StrategyID]++
		}
	}

	// 各页拼起来恰好覆盖全部记录一次
	assert.Len(t, seen, 5)
	for id, n := range seen {
		assert.Equal(t, 1, n, "strategy %s", id)
	}
}

func TestListFirstPageEmpty(t *testing.T) {
	db := newTestDB(t)
	svc := newTestStrategyService(t, db, nil)

	_, err := svc.List("", 1, 10)
	assert.ErrorIs(t, err, ErrNoStrategies)
}

func TestListPageBeyondLast(t *testing.T) {
	db := newTestDB(t)
	svc := newTestStrategyService(t, db, nil)

	namedPortfolio(t, db, "sess-only", "owner@example.com")

	// 超出末页返回空列表而非错误
	resp, err := svc.List("", 5, 10)
	require.NoError(t, err)
	assert.Empty(t, resp.Strategies)
	assert.Equal(t, int64(1), resp.Pagination.Total)
}

func TestListFiltersByUser(t *testing.T) {
	db := newTestDB(t)
	svc := newTestStrategyService(t, db, nil)

	namedPortfolio(t, db, "sess-a1", "a@example.com")
	namedPortfolio(t, db, "sess-a2", "a@example.com")
	namedPortfolio(t, db, "sess-b1", "b@example.com")

	resp, err := svc.List("a@example.com", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Pagination.Total)
	for _, item := range resp.Strategies {
		assert.Contains(t, item.StrategyID, "sess-a")
	}

	// 不带用户过滤时返回全部已命名记录
	all, err := svc.List("", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), all.Pagination.Total)
}
