package pricing

import (
	"errors"
	"math"
)

var (
	// ErrInvalidPrice 单价非法（非正数或非有限值），禁止作为除数
	ErrInvalidPrice = errors.New("单价必须为正数")
)

// CreditsForAmount 按单价计算金额可兑换的积分数，向下取整。
// 金额非正或非有限值时返回 0（输入框实时预览场景，不视为错误）；
// 单价非法时返回 ErrInvalidPrice，调用方必须拒绝而不是除零。
func CreditsForAmount(amountEUR, pricePerUnit float64) (int, error) {
	if !validPrice(pricePerUnit) {
		return 0, ErrInvalidPrice
	}
	if amountEUR <= 0 || math.IsNaN(amountEUR) || math.IsInf(amountEUR, 0) {
		return 0, nil
	}
	return int(math.Floor(amountEUR / pricePerUnit)), nil
}

// CostForCredits 按单价计算积分对应的金额
func CostForCredits(count int, pricePerUnit float64) float64 {
	return float64(count) * pricePerUnit
}

// AICostPerListing 计算单条信息的 AI 成本
func AICostPerListing(avgTokens int, costPerMillionTokens float64) float64 {
	return float64(avgTokens) / 1_000_000 * costPerMillionTokens
}

// PackageCredits 计算套餐的基础积分、赠送积分与总积分。
// credits = floor(price / pricePerUnit)，bonus = floor(credits * bonusPercent)
func PackageCredits(price, bonusPercent, pricePerUnit float64) (credits, bonus, total int, err error) {
	credits, err = CreditsForAmount(price, pricePerUnit)
	if err != nil {
		return 0, 0, 0, err
	}
	if bonusPercent > 0 {
		bonus = int(math.Floor(float64(credits) * bonusPercent))
	}
	return credits, bonus, credits + bonus, nil
}

func validPrice(price float64) bool {
	return price > 0 && !math.IsNaN(price) && !math.IsInf(price, 0)
}
