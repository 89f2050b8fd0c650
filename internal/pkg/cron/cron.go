package cron

import (
	"context"
	"log"
	"time"

	"github.com/qs3c/market_admin_server/internal/pkg/email"
	"github.com/qs3c/market_admin_server/internal/pkg/pubsub"
	"github.com/qs3c/market_admin_server/internal/repository"
	"github.com/qs3c/market_admin_server/internal/service"
)

// Service 后台定时任务：每日免费额度重置、公共池余额预警
type Service struct {
	userRepo        *repository.UserRepository
	settingsService *service.SettingsService
	emailService    *email.Service
	publisher       *pubsub.Publisher
	warningEmails   []string

	stopChan chan struct{}
}

func NewService(
	userRepo *repository.UserRepository,
	settingsService *service.SettingsService,
	emailService *email.Service,
	publisher *pubsub.Publisher,
	warningEmails []string,
) *Service {
	return &Service{
		userRepo:        userRepo,
		settingsService: settingsService,
		emailService:    emailService,
		publisher:       publisher,
		warningEmails:   warningEmails,
		stopChan:        make(chan struct{}),
	}
}

func (s *Service) Start() {
	go s.runDailyFreeListingsReset()
	go s.runLowPotCheck()
	log.Println("定时任务已启动")
}

func (s *Service) Stop() {
	close(s.stopChan)
}

// runDailyFreeListingsReset 每天 UTC 零点重置所有用户的免费发布额度
func (s *Service) runDailyFreeListingsReset() {
	for {
		now := time.Now().UTC()
		next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).Add(24 * time.Hour)

		timer := time.NewTimer(next.Sub(now))
		select {
		case <-s.stopChan:
			timer.Stop()
			return
		case <-timer.C:
			if err := s.userRepo.ResetAllFreeListings(next.Add(24 * time.Hour)); err != nil {
				log.Printf("重置免费发布额度失败: %v", err)
			} else {
				log.Println("已重置所有用户的免费发布额度")
			}
		}
	}
}

// runLowPotCheck 每小时检查公共池余额，低于阈值时告警
func (s *Service) runLowPotCheck() {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.CheckPotBalance(context.Background())
		}
	}
}

// CheckPotBalance 单次余额检查，低于阈值时发邮件并广播事件
func (s *Service) CheckPotBalance(ctx context.Context) {
	settings, err := s.settingsService.Load(ctx)
	if err != nil {
		log.Printf("公共池余额检查失败: %v", err)
		return
	}

	if settings.CommunityPotBalance >= settings.LowPotWarningThreshold {
		return
	}

	log.Printf("公共池余额 %d 低于预警阈值 %d", settings.CommunityPotBalance, settings.LowPotWarningThreshold)

	if s.emailService != nil {
		for _, to := range s.warningEmails {
			if err := s.emailService.SendLowPotWarning(to, settings.CommunityPotBalance, settings.LowPotWarningThreshold); err != nil {
				log.Printf("发送余额预警邮件到 %s 失败: %v", to, err)
			}
		}
	}

	if s.publisher != nil {
		err := s.publisher.PublishCreditEvent(ctx, &pubsub.CreditEvent{
			Type:       pubsub.EventPotWarning,
			NewBalance: settings.CommunityPotBalance,
			Message:    "公共池余额低于预警阈值",
		})
		if err != nil {
			log.Printf("发布余额预警事件失败: %v", err)
		}
	}
}
