package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/market_admin_server/internal/model"
)

type PotTransactionRepository struct {
	db *gorm.DB
}

func NewPotTransactionRepository(db *gorm.DB) *PotTransactionRepository {
	return &PotTransactionRepository{db: db}
}

func (r *PotTransactionRepository) Create(tx *model.CommunityPotTransaction) error {
	return r.db.Create(tx).Error
}

// List 按时间倒序分页
func (r *PotTransactionRepository) List(page, pageSize int) ([]model.CommunityPotTransaction, int64, error) {
	var total int64
	if err := r.db.Model(&model.CommunityPotTransaction{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var txs []model.CommunityPotTransaction
	err := r.db.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&txs).Error
	if err != nil {
		return nil, 0, err
	}

	return txs, total, nil
}
