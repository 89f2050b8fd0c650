package model

import (
	"time"
)

// 套餐类型
const (
	PackageTypePersonal  = "personal"
	PackageTypeCommunity = "community"
)

// CreditPackage 可购买的积分套餐，积分数量按当前单价在读取时推导
type CreditPackage struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	PackageID    string    `gorm:"size:50;uniqueIndex;not null" json:"package_id"`
	PackageType  string    `gorm:"size:20;not null;index" json:"package_type"`
	DisplayName  string    `gorm:"size:100;not null" json:"display_name"`
	Price        float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	BonusPercent float64   `gorm:"type:decimal(5,4);default:0" json:"bonus_percent"` // 小数形式，0.10 = 10%
	IsPopular    bool      `gorm:"default:false" json:"is_popular"`
	IsBestValue  bool      `gorm:"default:false" json:"is_best_value"`
	IsActive     bool      `gorm:"default:true;index" json:"is_active"`
	SortOrder    int       `gorm:"default:0" json:"sort_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (CreditPackage) TableName() string {
	return "credit_packages"
}
