package handler

import (
	"github.com/gin-gonic/gin"

	"contentforge-ai-api/internal/application/billing"
	"contentforge-ai-api/internal/domain/repository"
	"contentforge-ai-api/internal/interfaces/http/dto"
	"contentforge-ai-api/internal/interfaces/http/middleware"
)

// BillingHandler 计费账户处理器
type BillingHandler struct {
	svc *billing.Service
}

// NewBillingHandler 创建计费处理器
func NewBillingHandler(svc *billing.Service) *BillingHandler {
	return &BillingHandler{svc: svc}
}

// GetBalance 查询余额
// @Summary 查询当前用户的 token 余额
// @Tags Billing
// @Produce json
// @Success 200 {object} dto.Response[dto.BalanceResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/billing/balance [get]
func (h *BillingHandler) GetBalance(c *gin.Context) {
	userID := middleware.GetUserIDFromGin(c)

	account, err := h.svc.GetAccount(c.Request.Context(), userID)
	if err != nil {
		respondError(c, "get balance", err)
		return
	}

	dto.Success(c, &dto.BalanceResponse{
		UserID:    account.UserID,
		Balance:   account.Balance,
		UpdatedAt: account.UpdatedAt,
	})
}

// ListUsage 分页查询用量流水
// @Summary 查询当前用户的用量流水
// @Tags Billing
// @Produce json
// @Param page query int false "页码"
// @Param page_size query int false "每页条数"
// @Success 200 {object} dto.Response[[]dto.UsageRecordResponse]
// @Router /api/v1/billing/usage [get]
func (h *BillingHandler) ListUsage(c *gin.Context) {
	userID := middleware.GetUserIDFromGin(c)
	page := dto.BindPage(c)

	result, err := h.svc.ListUsage(c.Request.Context(), userID, repository.NewPagination(page.Page, page.PageSize))
	if err != nil {
		respondError(c, "list usage", err)
		return
	}

	records := make([]*dto.UsageRecordResponse, 0, len(result.Items))
	for _, r := range result.Items {
		records = append(records, &dto.UsageRecordResponse{
			ID:             r.ID,
			Operation:      r.Operation,
			Provider:       r.Provider,
			Model:          r.Model,
			InputTokens:    int64(r.InputTokens),
			OutputTokens:   int64(r.OutputTokens),
			BillableTokens: r.BillableTokens,
			Success:        r.Success,
			CreatedAt:      r.CreatedAt,
		})
	}

	dto.SuccessWithPage(c, records, dto.NewPageMeta(result.Page, result.PageSize, int(result.Total)))
}

// TopUp 充值
// @Summary 为当前用户充值 token
// @Tags Billing
// @Accept json
// @Produce json
// @Param body body dto.TopUpRequest true "充值数量"
// @Success 200 {object} dto.Response[dto.BalanceResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/billing/topup [post]
func (h *BillingHandler) TopUp(c *gin.Context) {
	var req dto.TopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	userID := middleware.GetUserIDFromGin(c)
	if err := h.svc.TopUp(c.Request.Context(), userID, req.Tokens); err != nil {
		respondError(c, "top up account", err)
		return
	}

	account, err := h.svc.GetAccount(c.Request.Context(), userID)
	if err != nil {
		respondError(c, "get balance", err)
		return
	}

	dto.Success(c, &dto.BalanceResponse{
		UserID:    account.UserID,
		Balance:   account.Balance,
		UpdatedAt: account.UpdatedAt,
	})
}
