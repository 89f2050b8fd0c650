package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/market_admin_server/internal/api/middleware"
	"github.com/qs3c/market_admin_server/internal/model/dto"
	"github.com/qs3c/market_admin_server/internal/pkg/payment"
	"github.com/qs3c/market_admin_server/internal/pkg/response"
	"github.com/qs3c/market_admin_server/internal/service"
)

type PackageHandler struct {
	packageService *service.PackageService
}

func NewPackageHandler(packageService *service.PackageService) *PackageHandler {
	return &PackageHandler{packageService: packageService}
}

// List 套餐列表
func (h *PackageHandler) List(c *gin.Context) {
	activeOnly := c.Query("active_only") == "true"

	infos, err := h.packageService.List(c.Request.Context(), activeOnly)
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.Success(c, infos)
}

// Create 创建套餐
func (h *PackageHandler) Create(c *gin.Context) {
	var req dto.CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "")
		return
	}

	info, err := h.packageService.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrPackageExists) {
			response.DuplicateError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	response.Success(c, info)
}

// Update 更新套餐
func (h *PackageHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "")
		return
	}

	var req dto.UpdatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "")
		return
	}

	info, err := h.packageService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.writePackageError(c, err)
		return
	}

	response.Success(c, info)
}

// ToggleActive 上架/下架
func (h *PackageHandler) ToggleActive(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "")
		return
	}

	info, err := h.packageService.ToggleActive(c.Request.Context(), id)
	if err != nil {
		h.writePackageError(c, err)
		return
	}

	response.Success(c, info)
}

// CreateCheckout 为套餐创建外部支付结账会话
func (h *PackageHandler) CreateCheckout(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "")
		return
	}

	userID := middleware.GetUserID(c)
	session, err := h.packageService.CreateCheckout(c.Request.Context(), id, &userID)
	if err != nil {
		if errors.Is(err, payment.ErrNotConfigured) {
			response.ServerError(c, err.Error())
			return
		}
		h.writePackageError(c, err)
		return
	}

	response.Success(c, session)
}

func (h *PackageHandler) writePackageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPackageNotFound):
		response.NotFoundError(c, err.Error())
	case errors.Is(err, service.ErrPackageInactive):
		response.ParamError(c, err.Error())
	case errors.Is(err, service.ErrAmountNotPositive), errors.Is(err, service.ErrInvalidSettingValue):
		response.AmountError(c, err.Error())
	default:
		response.ServerError(c, "")
	}
}
