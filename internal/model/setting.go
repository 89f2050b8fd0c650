package model

import (
	"time"
)

// 设置项 key（credit_system_settings 表）
const (
	SettingDailyFreeListings      = "daily_free_listings"
	SettingCostPerListing         = "cost_per_listing"
	SettingCommunityPotBalance    = "community_pot_balance"
	SettingPowerUserCreditPrice   = "power_user_credit_price"
	SettingMinDonationAmount      = "min_donation_amount"
	SettingPowerUserMinPurchase   = "power_user_min_purchase"
	SettingLowPotWarningThreshold = "low_pot_warning_threshold"
	SettingAIModel                = "ai_model"
	SettingAvgTokensPerListing    = "avg_tokens_per_listing"
	SettingTokenCostPerMillion    = "token_cost_per_million"
)

// CreditSetting 积分系统设置行，值统一存字符串，读取时按 key 解析
type CreditSetting struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	SettingKey   string    `gorm:"size:50;uniqueIndex;not null" json:"setting_key"`
	SettingValue string    `gorm:"size:255;not null" json:"setting_value"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (CreditSetting) TableName() string {
	return "credit_system_settings"
}
