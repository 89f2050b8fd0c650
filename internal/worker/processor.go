package worker

import (
	"context"
	"log"
	"time"

	"github.com/qs3c/market_admin_server/internal/model"
	"github.com/qs3c/market_admin_server/internal/pkg/email"
	"github.com/qs3c/market_admin_server/internal/pkg/queue"
	"github.com/qs3c/market_admin_server/internal/repository"
)

// Processor 通讯群发消费者。阻塞轮询队列，逐个收件人发送
type Processor struct {
	queue          *queue.Queue
	newsletterRepo *repository.NewsletterRepository
	userRepo       *repository.UserRepository
	emailService   *email.Service
}

func NewProcessor(
	q *queue.Queue,
	newsletterRepo *repository.NewsletterRepository,
	userRepo *repository.UserRepository,
	emailService *email.Service,
) *Processor {
	return &Processor{
		queue:          q,
		newsletterRepo: newsletterRepo,
		userRepo:       userRepo,
		emailService:   emailService,
	}
}

// Run 消费循环，ctx 取消后退出
func (p *Processor) Run(ctx context.Context) {
	log.Println("通讯发送 worker 已启动")

	for {
		select {
		case <-ctx.Done():
			log.Println("通讯发送 worker 已停止")
			return
		default:
		}

		msg, err := p.queue.Pop(ctx, 5*time.Second)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("读取发送队列失败: %v", err)
			time.Sleep(time.Second)
			continue
		}
		if msg == nil {
			continue
		}

		p.process(msg)
	}
}

func (p *Processor) process(msg *queue.SendMessage) {
	n, err := p.newsletterRepo.GetNewsletterByID(msg.NewsletterID)
	if err != nil {
		log.Printf("通讯 %d 不存在，跳过: %v", msg.NewsletterID, err)
		return
	}
	if n.Status == model.NewsletterStatusSent {
		log.Printf("通讯 %d 已发送过，跳过", n.ID)
		return
	}

	recipients, err := p.userRepo.ListNewsletterRecipients()
	if err != nil {
		log.Printf("查询订阅用户失败: %v", err)
		p.markFailed(n.ID)
		return
	}

	sent := 0
	for _, user := range recipients {
		if err := p.emailService.SendNewsletter(user.Email, n.Subject, n.HTMLBody); err != nil {
			log.Printf("向 %s 发送通讯 %d 失败: %v", user.Email, n.ID, err)
			continue
		}
		sent++
	}

	now := time.Now()
	err = p.newsletterRepo.UpdateNewsletterFields(n.ID, map[string]interface{}{
		"status":          model.NewsletterStatusSent,
		"recipient_count": sent,
		"sent_at":         &now,
	})
	if err != nil {
		log.Printf("更新通讯 %d 状态失败: %v", n.ID, err)
		return
	}

	log.Printf("通讯 %d 发送完成，共 %d 个收件人（操作人 %d）", n.ID, sent, msg.QueuedBy)
}

func (p *Processor) markFailed(id int64) {
	if err := p.newsletterRepo.UpdateNewsletterFields(id, map[string]interface{}{
		"status": model.NewsletterStatusFailed,
	}); err != nil {
		log.Printf("标记通讯 %d 失败状态出错: %v", id, err)
	}
}
