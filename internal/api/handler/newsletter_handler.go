package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/market_admin_server/internal/api/middleware"
	"github.com/qs3c/market_admin_server/internal/model/dto"
	"github.com/qs3c/market_admin_server/internal/pkg/response"
	"github.com/qs3c/market_admin_server/internal/service"
)

type NewsletterHandler struct {
	newsletterService *service.NewsletterService
}

func NewNewsletterHandler(newsletterService *service.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{newsletterService: newsletterService}
}

// ListTemplates 邮件模板列表
func (h *NewsletterHandler) ListTemplates(c *gin.Context) {
	tmpls, err := h.newsletterService.ListTemplates()
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.Success(c, tmpls)
}

// SaveTemplate 创建/覆盖模板
func (h *NewsletterHandler) SaveTemplate(c *gin.Context) {
	var req dto.SaveTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "")
		return
	}

	tmpl, err := h.newsletterService.SaveTemplate(&req)
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.Success(c, tmpl)
}

// DeleteTemplate 删除模板
func (h *NewsletterHandler) DeleteTemplate(c *gin.Context) {
	slug := c.Param("slug")

	if err := h.newsletterService.DeleteTemplate(slug); err != nil {
		if errors.Is(err, service.ErrTemplateNotFound) {
			response.NotFoundError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}
	response.Success(c, nil)
}

// ListNewsletters 通讯列表
func (h *NewsletterHandler) ListNewsletters(c *gin.Context) {
	page, pageSize := parsePaging(c)

	newsletters, total, err := h.newsletterService.ListNewsletters(page, pageSize)
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.SuccessPage(c, total, page, pageSize, newsletters)
}

// CreateNewsletter 创建通讯草稿
func (h *NewsletterHandler) CreateNewsletter(c *gin.Context) {
	var req dto.CreateNewsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "")
		return
	}

	n, err := h.newsletterService.CreateNewsletter(&req)
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.Success(c, n)
}

// SendNewsletter 将通讯加入发送队列
func (h *NewsletterHandler) SendNewsletter(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "")
		return
	}

	adminID := middleware.GetUserID(c)
	if err := h.newsletterService.QueueSend(c.Request.Context(), id, adminID); err != nil {
		switch {
		case errors.Is(err, service.ErrNewsletterNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrAlreadySent), errors.Is(err, service.ErrAlreadyQueued):
			response.DuplicateError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "已加入发送队列", nil)
}
