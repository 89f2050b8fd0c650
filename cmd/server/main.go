package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/qs3c/market_admin_server/config"
	"github.com/qs3c/market_admin_server/internal/api"
	"github.com/qs3c/market_admin_server/internal/api/handler"
	"github.com/qs3c/market_admin_server/internal/database"
	"github.com/qs3c/market_admin_server/internal/pkg/cache"
	"github.com/qs3c/market_admin_server/internal/pkg/cron"
	"github.com/qs3c/market_admin_server/internal/pkg/email"
	"github.com/qs3c/market_admin_server/internal/pkg/oss"
	"github.com/qs3c/market_admin_server/internal/pkg/payment"
	"github.com/qs3c/market_admin_server/internal/pkg/pubsub"
	"github.com/qs3c/market_admin_server/internal/pkg/queue"
	"github.com/qs3c/market_admin_server/internal/pkg/ws"
	"github.com/qs3c/market_admin_server/internal/repository"
	"github.com/qs3c/market_admin_server/internal/service"
)

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("连接数据库失败: %v", err)
	}

	redisClient, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("连接 Redis 失败: %v", err)
	}

	// OSS 可选，未配置时头像上传不可用
	var ossClient *oss.Client
	if cfg.OSS.Endpoint != "" {
		ossClient, err = oss.NewClient(&cfg.OSS)
		if err != nil {
			log.Fatalf("初始化 OSS 失败: %v", err)
		}
	}

	// 仓储层
	userRepo := repository.NewUserRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	donationRepo := repository.NewDonationRepository(db)
	potTxRepo := repository.NewPotTransactionRepository(db)
	packageRepo := repository.NewCreditPackageRepository(db)
	newsletterRepo := repository.NewNewsletterRepository(db)

	// 基础设施
	redisCache := cache.New(redisClient)
	publisher := pubsub.NewPublisher(redisClient)
	subscriber := pubsub.NewSubscriber(redisClient)
	sendQueue := queue.NewQueue(redisClient, cfg.Queue.NewsletterQueue)
	emailService := email.NewService(&cfg.Email)
	paymentClient := payment.NewClient(&cfg.Payment)
	hub := ws.NewHub()

	// 服务层
	settingsService := service.NewSettingsService(settingRepo, redisCache, cfg)
	ledgerService := service.NewLedgerService(userRepo, donationRepo, potTxRepo, settingsService)
	grantService := service.NewGrantService(ledgerService, settingsService, userRepo, donationRepo, potTxRepo, publisher)
	packageService := service.NewPackageService(packageRepo, settingsService, paymentClient)
	newsletterService := service.NewNewsletterService(newsletterRepo, sendQueue)
	authService := service.NewAuthService(userRepo, &cfg.JWT)
	userService := service.NewUserService(userRepo, ossClient)

	handlers := &api.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Settings:   handler.NewSettingsHandler(settingsService),
		Credit:     handler.NewCreditHandler(grantService, settingsService),
		Package:    handler.NewPackageHandler(packageService),
		User:       handler.NewUserHandler(userService),
		Newsletter: handler.NewNewsletterHandler(newsletterService),
		WS:         handler.NewWSHandler(hub),
	}

	router := api.SetupRouter(cfg, userRepo, handlers)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 订阅积分事件，推送给在线的管理后台
	go func() {
		err := subscriber.Subscribe(ctx, func(event *pubsub.CreditEvent) {
			if err := hub.Broadcast(&ws.Message{Type: event.Type, Data: event}); err != nil {
				log.Printf("广播积分事件失败: %v", err)
			}
		})
		if err != nil && ctx.Err() == nil {
			log.Printf("积分事件订阅退出: %v", err)
		}
	}()

	cronService := cron.NewService(userRepo, settingsService, emailService, publisher, cfg.Credits.WarningEmails)
	cronService.Start()
	defer cronService.Stop()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Printf("管理后台服务启动于 %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("服务关闭异常: %v", err)
	}
	log.Println("服务已退出")
}
