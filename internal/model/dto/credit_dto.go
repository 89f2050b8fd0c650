package dto

import "time"

// GrantCreditsRequest 手动发放个人积分请求
type GrantCreditsRequest struct {
	UserID     int64   `json:"user_id" binding:"required"`
	EuroAmount float64 `json:"euro_amount" binding:"required"`
	Reason     string  `json:"reason"`
}

// GrantCreditsResponse 发放结果
type GrantCreditsResponse struct {
	UserID         int64   `json:"user_id"`
	Username       string  `json:"username"`
	EuroAmount     float64 `json:"euro_amount"`
	CreditsGranted int     `json:"credits_granted"`
	NewCredits     int     `json:"new_credits"`
}

// PotTopUpRequest 公共池充值请求
type PotTopUpRequest struct {
	EuroAmount float64 `json:"euro_amount" binding:"required"`
	Reason     string  `json:"reason"`
	UserID     *int64  `json:"user_id"` // 可选，用于捐赠归属；为空则匿名
}

// PotTopUpResponse 公共池充值结果
type PotTopUpResponse struct {
	EuroAmount     float64 `json:"euro_amount"`
	CreditsGranted int     `json:"credits_granted"`
	NewBalance     int     `json:"new_balance"`
}

// GrantPreview 输入金额时的实时预览
type GrantPreview struct {
	EuroAmount   float64 `json:"euro_amount"`
	PricePerUnit float64 `json:"price_per_unit"`
	Credits      int     `json:"credits"`
}

// DonationInfo 捐赠记录
type DonationInfo struct {
	ID             int64     `json:"id"`
	UserID         *int64    `json:"user_id"`
	Amount         float64   `json:"amount"`
	PricePerUnit   float64   `json:"price_per_unit"`
	DonationType   string    `json:"donation_type"`
	CreditsGranted int       `json:"credits_granted"`
	Status         string    `json:"status"`
	PaymentRef     string    `json:"payment_ref"`
	CreatedAt      time.Time `json:"created_at"`
}

// PotTransactionInfo 公共池流水
type PotTransactionInfo struct {
	ID              int64     `json:"id"`
	TransactionType string    `json:"transaction_type"`
	UserID          *int64    `json:"user_id"`
	Amount          int       `json:"amount"`
	BalanceAfter    int       `json:"balance_after"`
	Description     string    `json:"description"`
	CreatedAt       time.Time `json:"created_at"`
}
