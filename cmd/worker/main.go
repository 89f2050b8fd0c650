package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/qs3c/market_admin_server/config"
	"github.com/qs3c/market_admin_server/internal/database"
	"github.com/qs3c/market_admin_server/internal/pkg/email"
	"github.com/qs3c/market_admin_server/internal/pkg/queue"
	"github.com/qs3c/market_admin_server/internal/repository"
	"github.com/qs3c/market_admin_server/internal/worker"
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

	processor := worker.NewProcessor(
		queue.NewQueue(redisClient, cfg.Queue.NewsletterQueue),
		repository.NewNewsletterRepository(db),
		repository.NewUserRepository(db),
		email.NewService(&cfg.Email),
	)

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("收到退出信号，正在停止 worker...")
		cancel()
	}()

	processor.Run(ctx)
}
