package dto

// CreatePackageRequest 创建套餐请求
type CreatePackageRequest struct {
	PackageID    string  `json:"package_id" binding:"required,max=50"`
	PackageType  string  `json:"package_type" binding:"required,oneof=personal community"`
	DisplayName  string  `json:"display_name" binding:"required,max=100"`
	Price        float64 `json:"price" binding:"required,gt=0"`
	BonusPercent float64 `json:"bonus_percent" binding:"gte=0,lt=1"`
	IsPopular    bool    `json:"is_popular"`
	IsBestValue  bool    `json:"is_best_value"`
	SortOrder    int     `json:"sort_order"`
}

// UpdatePackageRequest 更新套餐请求，指针字段区分"未传"与"清零"
type UpdatePackageRequest struct {
	DisplayName  *string  `json:"display_name"`
	Price        *float64 `json:"price"`
	BonusPercent *float64 `json:"bonus_percent"`
	IsPopular    *bool    `json:"is_popular"`
	IsBestValue  *bool    `json:"is_best_value"`
	SortOrder    *int     `json:"sort_order"`
}

// PackageInfo 套餐信息（含按当前单价推导的积分数）
type PackageInfo struct {
	ID           int64   `json:"id"`
	PackageID    string  `json:"package_id"`
	PackageType  string  `json:"package_type"`
	DisplayName  string  `json:"display_name"`
	Price        float64 `json:"price"`
	BonusPercent float64 `json:"bonus_percent"`
	Credits      int     `json:"credits"`
	BonusCredits int     `json:"bonus_credits"`
	TotalCredits int     `json:"total_credits"`
	IsPopular    bool    `json:"is_popular"`
	IsBestValue  bool    `json:"is_best_value"`
	IsActive     bool    `json:"is_active"`
	SortOrder    int     `json:"sort_order"`
}
