package api

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/market_admin_server/config"
	"github.com/qs3c/market_admin_server/internal/api/handler"
	"github.com/qs3c/market_admin_server/internal/api/middleware"
	"github.com/qs3c/market_admin_server/internal/model"
	"github.com/qs3c/market_admin_server/internal/pkg/response"
	"github.com/qs3c/market_admin_server/internal/repository"
)

// Handlers 路由依赖的全部 handler
type Handlers struct {
	Auth       *handler.AuthHandler
	Settings   *handler.SettingsHandler
	Credit     *handler.CreditHandler
	Package    *handler.PackageHandler
	User       *handler.UserHandler
	Newsletter *handler.NewsletterHandler
	WS         *handler.WSHandler
}

// SetupRouter 注册全部路由。版主可以看数据，写操作仅限管理员
func SetupRouter(cfg *config.Config, userRepo *repository.UserRepository, h *Handlers) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.CORS(&cfg.CORS))

	r.GET("/health", func(c *gin.Context) {
		response.Success(c, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	v1.POST("/auth/login", h.Auth.Login)

	auth := middleware.Auth(&cfg.JWT)
	staff := middleware.RequireRole(userRepo, model.RoleAdmin, model.RoleModerator)
	adminOnly := middleware.RequireRole(userRepo, model.RoleAdmin)

	admin := v1.Group("/admin", auth, staff)
	{
		// 系统设置
		admin.GET("/settings", h.Settings.GetSettings)
		admin.PUT("/settings/:key", adminOnly, h.Settings.UpdateSetting)
		admin.GET("/settings/ai-cost", h.Settings.GetAICost)

		// 积分发放与公共池
		admin.POST("/credits/grant", adminOnly, h.Credit.GrantCredits)
		admin.POST("/credits/pot", adminOnly, h.Credit.TopUpPot)
		admin.GET("/credits/pot", h.Credit.GetPotBalance)
		admin.GET("/credits/preview", h.Credit.PreviewGrant)
		admin.GET("/donations", h.Credit.ListDonations)
		admin.GET("/pot/transactions", h.Credit.ListPotTransactions)

		// 充值套餐
		admin.GET("/packages", h.Package.List)
		admin.POST("/packages", adminOnly, h.Package.Create)
		admin.PUT("/packages/:id", adminOnly, h.Package.Update)
		admin.PUT("/packages/:id/toggle", adminOnly, h.Package.ToggleActive)
		admin.POST("/packages/:id/checkout", h.Package.CreateCheckout)

		// 用户管理
		admin.GET("/users", h.User.Search)
		admin.GET("/users/:id", h.User.Get)
		admin.PUT("/users/:id/role", adminOnly, h.User.UpdateRole)
		admin.POST("/users/:id/avatar", adminOnly, h.User.UploadAvatar)

		// 邮件模板与通讯
		admin.GET("/templates", h.Newsletter.ListTemplates)
		admin.POST("/templates", adminOnly, h.Newsletter.SaveTemplate)
		admin.DELETE("/templates/:slug", adminOnly, h.Newsletter.DeleteTemplate)
		admin.GET("/newsletters", h.Newsletter.ListNewsletters)
		admin.POST("/newsletters", adminOnly, h.Newsletter.CreateNewsletter)
		admin.POST("/newsletters/:id/send", adminOnly, h.Newsletter.SendNewsletter)

		// 实时推送
		admin.GET("/ws", h.WS.Connect)
	}

	return r
}
