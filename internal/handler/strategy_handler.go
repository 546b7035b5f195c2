package handler

import (
	"errors"
	"net/http"
	"strconv"

	"ffpu-go/internal/dto"
	"ffpu-go/internal/middleware"
	"ffpu-go/internal/service"
	"ffpu-go/internal/utils"

	"github.com/gin-gonic/gin"
)

// StrategyHandler 策略处理器
type StrategyHandler struct {
	strategyService *service.StrategyService
}

// NewStrategyHandler 创建策略处理器
func NewStrategyHandler(strategyService *service.StrategyService) *StrategyHandler {
	return &StrategyHandler{
		strategyService: strategyService,
	}
}

// Execute 执行策略评分。所有评分失败都以200返回Failure信封，
// 前端按status字段展示结果。
func (h *StrategyHandler) Execute(c *gin.Context) {
	var req dto.ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	output, err := h.strategyService.Execute(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusOK, dto.ExecuteResponse{
			Status: "Failure",
			Error:  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, dto.ExecuteResponse{
		Status:     "Success",
		Output:     output,
		StrategyID: req.SessionID,
	})
}

// Save 保存策略别名与公开标记
func (h *StrategyHandler) Save(c *gin.Context) {
	var req dto.SaveStrategyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if err := h.strategyService.Save(&req); err != nil {
		if errors.Is(err, service.ErrStrategyNotFound) {
			utils.NotFound(c, err.Error())
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.Message(c, "Strategy updated successfully")
}

// ListForUser 获取指定用户的策略分页列表
func (h *StrategyHandler) ListForUser(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		utils.BadRequest(c, "user_id is required")
		return
	}

	page, pageSize := paginationParams(c)

	resp, err := h.strategyService.List(userID, page, pageSize)
	if err != nil {
		if errors.Is(err, service.ErrNoStrategies) {
			utils.NotFound(c, "No valid strategies found for this user")
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListPublic 获取公共策略分页列表
func (h *StrategyHandler) ListPublic(c *gin.Context) {
	page, pageSize := paginationParams(c)

	resp, err := h.strategyService.List("", page, pageSize)
	if err != nil {
		if errors.Is(err, service.ErrNoStrategies) {
			utils.NotFound(c, err.Error())
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Detail 获取策略详情，按公开标记与属主身份做访问控制
func (h *StrategyHandler) Detail(c *gin.Context) {
	strategyID := c.Query("strategy_id")
	if strategyID == "" {
		utils.BadRequest(c, "strategy_id is required")
		return
	}

	detail, portfolio, err := h.strategyService.Detail(strategyID)
	if err != nil {
		if errors.Is(err, service.ErrStrategyNotFound) {
			utils.NotFound(c, "Strategy with ID "+strategyID+" not found")
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	claims, _ := middleware.GetClaims(c)
	switch service.CanView(portfolio, claims) {
	case service.AccessRequireAuth:
		utils.Unauthorized(c, "Authentication required to access this strategy")
		return
	case service.AccessDeny:
		utils.Forbidden(c, "Access denied: You don't have permission to view this strategy")
		return
	}

	c.JSON(http.StatusOK, detail)
}

// paginationParams 解析分页参数，非法值回落到默认值
func paginationParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if err != nil || pageSize < 1 {
		pageSize = 10
	}

	return page, pageSize
}
