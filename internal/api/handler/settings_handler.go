package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/market_admin_server/internal/model/dto"
	"github.com/qs3c/market_admin_server/internal/pkg/response"
	"github.com/qs3c/market_admin_server/internal/service"
)

type SettingsHandler struct {
	settingsService *service.SettingsService
}

func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetSettings 获取全部系统设置
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.Load(c.Request.Context())
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.Success(c, settings)
}

// UpdateSetting 更新单个设置项
func (h *SettingsHandler) UpdateSetting(c *gin.Context) {
	key := c.Param("key")

	var req dto.UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "")
		return
	}

	settings, err := h.settingsService.Update(c.Request.Context(), key, req.Value)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownSetting):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrInvalidSettingValue):
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, settings)
}

// GetAICost AI 成本估算
func (h *SettingsHandler) GetAICost(c *gin.Context) {
	info, err := h.settingsService.AICost(c.Request.Context())
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.Success(c, info)
}
