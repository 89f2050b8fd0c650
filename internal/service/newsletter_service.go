package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/qs3c/market_admin_server/internal/model"
	"github.com/qs3c/market_admin_server/internal/model/dto"
	"github.com/qs3c/market_admin_server/internal/pkg/queue"
	"github.com/qs3c/market_admin_server/internal/repository"
)

var (
	ErrTemplateNotFound   = errors.New("模板不存在")
	ErrNewsletterNotFound = errors.New("通讯不存在")
	ErrAlreadySent        = errors.New("通讯已发送")
	ErrAlreadyQueued      = errors.New("通讯已在发送队列中")
)

// NewsletterService 邮件模板与通讯群发。群发只入队，由 worker 异步消费
type NewsletterService struct {
	newsletterRepo *repository.NewsletterRepository
	queue          *queue.Queue
}

func NewNewsletterService(newsletterRepo *repository.NewsletterRepository, q *queue.Queue) *NewsletterService {
	return &NewsletterService{
		newsletterRepo: newsletterRepo,
		queue:          q,
	}
}

// SaveTemplate 按 slug 创建或覆盖模板
func (s *NewsletterService) SaveTemplate(req *dto.SaveTemplateRequest) (*model.EmailTemplate, error) {
	tmpl, err := s.newsletterRepo.GetTemplateBySlug(req.Slug)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		tmpl = &model.EmailTemplate{Slug: req.Slug, Subject: req.Subject, HTMLBody: req.HTMLBody}
		if err := s.newsletterRepo.CreateTemplate(tmpl); err != nil {
			return nil, err
		}
		return tmpl, nil
	}

	tmpl.Subject = req.Subject
	tmpl.HTMLBody = req.HTMLBody
	if err := s.newsletterRepo.UpdateTemplate(tmpl); err != nil {
		return nil, err
	}
	return tmpl, nil
}

func (s *NewsletterService) ListTemplates() ([]model.EmailTemplate, error) {
	return s.newsletterRepo.ListTemplates()
}

func (s *NewsletterService) DeleteTemplate(slug string) error {
	if _, err := s.newsletterRepo.GetTemplateBySlug(slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTemplateNotFound
		}
		return err
	}
	return s.newsletterRepo.DeleteTemplate(slug)
}

// CreateNewsletter 创建通讯草稿
func (s *NewsletterService) CreateNewsletter(req *dto.CreateNewsletterRequest) (*model.Newsletter, error) {
	n := &model.Newsletter{
		Subject:  req.Subject,
		HTMLBody: req.HTMLBody,
		Status:   model.NewsletterStatusDraft,
	}
	if err := s.newsletterRepo.CreateNewsletter(n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *NewsletterService) ListNewsletters(page, pageSize int) ([]model.Newsletter, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	return s.newsletterRepo.ListNewsletters(page, pageSize)
}

// QueueSend 将通讯加入发送队列
func (s *NewsletterService) QueueSend(ctx context.Context, newsletterID, adminID int64) error {
	n, err := s.newsletterRepo.GetNewsletterByID(newsletterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNewsletterNotFound
		}
		return err
	}

	switch n.Status {
	case model.NewsletterStatusSent:
		return ErrAlreadySent
	case model.NewsletterStatusQueued:
		return ErrAlreadyQueued
	}

	if err := s.queue.Push(ctx, &queue.SendMessage{NewsletterID: newsletterID, QueuedBy: adminID}); err != nil {
		return err
	}

	return s.newsletterRepo.UpdateNewsletterFields(newsletterID, map[string]interface{}{
		"status": model.NewsletterStatusQueued,
	})
}
