package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/market_admin_server/internal/model/dto"
	"github.com/qs3c/market_admin_server/internal/pkg/pricing"
	"github.com/qs3c/market_admin_server/internal/pkg/response"
	"github.com/qs3c/market_admin_server/internal/service"
)

type CreditHandler struct {
	grantService    *service.GrantService
	settingsService *service.SettingsService
}

func NewCreditHandler(grantService *service.GrantService, settingsService *service.SettingsService) *CreditHandler {
	return &CreditHandler{
		grantService:    grantService,
		settingsService: settingsService,
	}
}

// GrantCredits 手动发放个人积分
func (h *CreditHandler) GrantCredits(c *gin.Context) {
	var req dto.GrantCreditsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "")
		return
	}

	resp, err := h.grantService.GrantPersonal(c.Request.Context(), &req)
	if err != nil {
		h.writeGrantError(c, err)
		return
	}

	response.Success(c, resp)
}

// TopUpPot 公共池充值
func (h *CreditHandler) TopUpPot(c *gin.Context) {
	var req dto.PotTopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "")
		return
	}

	resp, err := h.grantService.TopUpPot(c.Request.Context(), &req)
	if err != nil {
		h.writeGrantError(c, err)
		return
	}

	response.Success(c, resp)
}

// GetPotBalance 公共池当前余额与预警阈值
func (h *CreditHandler) GetPotBalance(c *gin.Context) {
	settings, err := h.settingsService.Load(c.Request.Context())
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, gin.H{
		"balance":   settings.CommunityPotBalance,
		"threshold": settings.LowPotWarningThreshold,
	})
}

// PreviewGrant 按当前单价预览金额可兑换的积分数
func (h *CreditHandler) PreviewGrant(c *gin.Context) {
	amount, err := strconv.ParseFloat(c.Query("amount"), 64)
	if err != nil {
		response.ParamError(c, "")
		return
	}

	preview, err := h.grantService.PreviewPersonal(c.Request.Context(), amount)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, preview)
}

// ListDonations 捐赠记录分页
func (h *CreditHandler) ListDonations(c *gin.Context) {
	page, pageSize := parsePaging(c)

	donations, total, err := h.grantService.ListDonations(page, pageSize)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessPage(c, total, page, pageSize, donations)
}

// ListPotTransactions 公共池流水分页
func (h *CreditHandler) ListPotTransactions(c *gin.Context) {
	page, pageSize := parsePaging(c)

	txs, total, err := h.grantService.ListPotTransactions(page, pageSize)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessPage(c, total, page, pageSize, txs)
}

func (h *CreditHandler) writeGrantError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserRequired):
		response.ParamError(c, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFoundError(c, err.Error())
	case errors.Is(err, service.ErrAmountNotPositive),
		errors.Is(err, service.ErrAmountTooSmall),
		errors.Is(err, pricing.ErrInvalidPrice):
		response.AmountError(c, err.Error())
	default:
		response.ServerError(c, "")
	}
}

func parsePaging(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
