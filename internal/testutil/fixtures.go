package testutil

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/market_admin_server/internal/model"
)

// TestUser 创建测试用户
func TestUser(t *testing.T, db *gorm.DB, opts ...func(*model.User)) *model.User {
	t.Helper()

	user := &model.User{
		Username:     fmt.Sprintf("testuser_%d", time.Now().UnixNano()%1000000),
		Email:        fmt.Sprintf("test_%d@example.com", time.Now().UnixNano()),
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuvwxyz123456", // bcrypt hash placeholder
		Role:         model.RoleUser,
	}

	for _, opt := range opts {
		opt(user)
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// WithUsername 设置用户名
func WithUsername(username string) func(*model.User) {
	return func(u *model.User) {
		u.Username = username
	}
}

// WithEmail 设置邮箱
func WithEmail(email string) func(*model.User) {
	return func(u *model.User) {
		u.Email = email
	}
}

// WithRole 设置角色
func WithRole(role string) func(*model.User) {
	return func(u *model.User) {
		u.Role = role
	}
}

// WithCredits 设置个人积分余额
func WithCredits(credits int) func(*model.User) {
	return func(u *model.User) {
		u.PersonalCredits = credits
	}
}

// WithPasswordHash 设置密码哈希
func WithPasswordHash(hash string) func(*model.User) {
	return func(u *model.User) {
		u.PasswordHash = hash
	}
}

// WithNewsletterOptIn 设置通讯订阅状态
func WithNewsletterOptIn(optIn bool) func(*model.User) {
	return func(u *model.User) {
		u.NewsletterOptIn = optIn
	}
}

// TestSetting 写入一条设置
func TestSetting(t *testing.T, db *gorm.DB, key, value string) *model.CreditSetting {
	t.Helper()

	setting := &model.CreditSetting{
		SettingKey:   key,
		SettingValue: value,
	}

	if err := db.Create(setting).Error; err != nil {
		t.Fatalf("Failed to create test setting: %v", err)
	}

	return setting
}

// TestPackage 创建测试套餐
func TestPackage(t *testing.T, db *gorm.DB, opts ...func(*model.CreditPackage)) *model.CreditPackage {
	t.Helper()

	pkg := &model.CreditPackage{
		PackageID:   fmt.Sprintf("pkg_%d", time.Now().UnixNano()%1000000),
		PackageType: model.PackageTypePersonal,
		DisplayName: "Test Package",
		Price:       10.00,
		IsActive:    true,
	}

	for _, opt := range opts {
		opt(pkg)
	}

	if err := db.Create(pkg).Error; err != nil {
		t.Fatalf("Failed to create test package: %v", err)
	}

	return pkg
}

// WithPackageID 设置套餐标识
func WithPackageID(packageID string) func(*model.CreditPackage) {
	return func(p *model.CreditPackage) {
		p.PackageID = packageID
	}
}

// WithPackageType 设置套餐类型
func WithPackageType(packageType string) func(*model.CreditPackage) {
	return func(p *model.CreditPackage) {
		p.PackageType = packageType
	}
}

// WithPrice 设置价格与赠送比例
func WithPrice(price, bonusPercent float64) func(*model.CreditPackage) {
	return func(p *model.CreditPackage) {
		p.Price = price
		p.BonusPercent = bonusPercent
	}
}

// WithActive 设置上架状态
func WithActive(active bool) func(*model.CreditPackage) {
	return func(p *model.CreditPackage) {
		p.IsActive = active
	}
}

// WithSortOrder 设置排序
func WithSortOrder(order int) func(*model.CreditPackage) {
	return func(p *model.CreditPackage) {
		p.SortOrder = order
	}
}

// TestNewsletter 创建测试通讯
func TestNewsletter(t *testing.T, db *gorm.DB, status string) *model.Newsletter {
	t.Helper()

	n := &model.Newsletter{
		Subject:  fmt.Sprintf("Test Newsletter %d", time.Now().UnixNano()%1000000),
		HTMLBody: "<p>hello</p>",
		Status:   status,
	}

	if err := db.Create(n).Error; err != nil {
		t.Fatalf("Failed to create test newsletter: %v", err)
	}

	return n
}
