package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/market_admin_server/internal/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepository) GetByID(id int64) (*model.User, error) {
	var user model.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) ExistsByUsername(username string) (bool, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

// Search 按用户名/邮箱模糊搜索，可按角色过滤
func (r *UserRepository) Search(query, role string, page, pageSize int) ([]model.User, int64, error) {
	db := r.db.Model(&model.User{})

	if query != "" {
		like := "%" + query + "%"
		db = db.Where("username LIKE ? OR email LIKE ?", like, like)
	}
	if role != "" {
		db = db.Where("role = ?", role)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []model.User
	err := db.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *UserRepository) Update(user *model.User) error {
	return r.db.Save(user).Error
}

func (r *UserRepository) UpdateFields(id int64, fields map[string]interface{}) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).Updates(fields).Error
}

// UpdateCredits 覆盖写入个人积分余额
func (r *UserRepository) UpdateCredits(id int64, credits int) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).
		Update("personal_credits", credits).Error
}

// AddDonationTotals 累加捐赠统计字段
func (r *UserRepository) AddDonationTotals(id int64, euroAmount float64, listings int) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"total_donated":              gorm.Expr("total_donated + ?", euroAmount),
		"community_listings_donated": gorm.Expr("community_listings_donated + ?", listings),
	}).Error
}

// ResetAllFreeListings 重置所有用户的每日免费发布计数
func (r *UserRepository) ResetAllFreeListings(nextReset time.Time) error {
	return r.db.Model(&model.User{}).Where("free_listings_used_today > 0").Updates(map[string]interface{}{
		"free_listings_used_today": 0,
		"free_listings_reset_at":   nextReset,
	}).Error
}

// ListNewsletterRecipients 获取订阅通讯的用户邮箱
func (r *UserRepository) ListNewsletterRecipients() ([]model.User, error) {
	var users []model.User
	err := r.db.Where("newsletter_opt_in = ?", true).Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
