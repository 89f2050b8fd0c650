package model

import (
	"time"
)

// EmailTemplate 可复用的邮件模板
type EmailTemplate struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Slug      string    `gorm:"size:50;uniqueIndex;not null" json:"slug"`
	Subject   string    `gorm:"size:200;not null" json:"subject"`
	HTMLBody  string    `gorm:"type:text" json:"html_body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (EmailTemplate) TableName() string {
	return "email_templates"
}

// 通讯状态
const (
	NewsletterStatusDraft  = "draft"
	NewsletterStatusQueued = "queued"
	NewsletterStatusSent   = "sent"
	NewsletterStatusFailed = "failed"
)

// Newsletter 一期站内通讯
type Newsletter struct {
	ID             int64      `gorm:"primaryKey" json:"id"`
	Subject        string     `gorm:"size:200;not null" json:"subject"`
	HTMLBody       string     `gorm:"type:text" json:"html_body"`
	Status         string     `gorm:"size:20;default:draft;index" json:"status"`
	RecipientCount int        `gorm:"default:0" json:"recipient_count"`
	SentAt         *time.Time `json:"sent_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (Newsletter) TableName() string {
	return "newsletters"
}
