package model

import (
	"time"
)

// 捐赠类型
const (
	DonationTypePersonal  = "personal_credits"
	DonationTypeCommunity = "community_pot"
)

// Donation 捐赠/发放审计记录，只插入，不更新不删除
type Donation struct {
	ID              int64     `gorm:"primaryKey" json:"id"`
	UserID          *int64    `gorm:"index" json:"user_id,omitempty"` // 匿名公共池捐赠时为空
	Amount          float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	PricePerUnit    float64   `gorm:"type:decimal(10,4);not null" json:"price_per_unit"` // 发放时单价快照
	DonationType    string    `gorm:"size:20;not null;index" json:"donation_type"`
	CreditsGranted  int       `gorm:"not null" json:"credits_granted"`
	Status          string    `gorm:"size:20;default:completed" json:"status"`
	StripePaymentID string    `gorm:"size:100" json:"stripe_payment_id"` // 管理员发放时为 admin_grant_/admin_community_ 前缀的合成值
	CreatedAt       time.Time `json:"created_at"`
}

func (Donation) TableName() string {
	return "donations"
}
