package model

import (
	"time"
)

// 公共池流水类型
const (
	PotTxTypeAdjustment = "adjustment" // 管理员调整
	PotTxTypePurchase   = "purchase"   // 购买入账
	PotTxTypeConsume    = "consume"    // 消耗（发布免费信息）
)

// CommunityPotTransaction 公共池余额变动流水，只插入
type CommunityPotTransaction struct {
	ID              int64     `gorm:"primaryKey" json:"id"`
	TransactionType string    `gorm:"size:20;not null;index" json:"transaction_type"`
	UserID          *int64    `gorm:"index" json:"user_id,omitempty"`
	Amount          int       `gorm:"not null" json:"amount"`        // 有符号，增加为正
	BalanceAfter    int       `gorm:"not null" json:"balance_after"` // 变动后余额快照
	Description     string    `gorm:"size:255" json:"description"`
	CreatedAt       time.Time `json:"created_at"`
}

func (CommunityPotTransaction) TableName() string {
	return "community_pot_transactions"
}
