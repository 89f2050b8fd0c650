package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/market_admin_server/internal/model"
)

type DonationRepository struct {
	db *gorm.DB
}

func NewDonationRepository(db *gorm.DB) *DonationRepository {
	return &DonationRepository{db: db}
}

func (r *DonationRepository) Create(donation *model.Donation) error {
	return r.db.Create(donation).Error
}

// List 按时间倒序分页
func (r *DonationRepository) List(page, pageSize int) ([]model.Donation, int64, error) {
	var total int64
	if err := r.db.Model(&model.Donation{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var donations []model.Donation
	err := r.db.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&donations).Error
	if err != nil {
		return nil, 0, err
	}

	return donations, total, nil
}

func (r *DonationRepository) ListByUser(userID int64) ([]model.Donation, error) {
	var donations []model.Donation
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&donations).Error
	if err != nil {
		return nil, err
	}
	return donations, nil
}

func (r *DonationRepository) CountByUser(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Donation{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
