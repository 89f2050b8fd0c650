package repository

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/qs3c/market_admin_server/internal/model"
)

type SettingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// ListAll 一次性读取所有设置行
func (r *SettingRepository) ListAll() ([]model.CreditSetting, error) {
	var settings []model.CreditSetting
	err := r.db.Find(&settings).Error
	if err != nil {
		return nil, err
	}
	return settings, nil
}

func (r *SettingRepository) Get(key string) (*model.CreditSetting, error) {
	var setting model.CreditSetting
	err := r.db.Where("setting_key = ?", key).First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// Upsert 写入单个设置项并更新时间戳
func (r *SettingRepository) Upsert(key, value string) error {
	setting := model.CreditSetting{
		SettingKey:   key,
		SettingValue: value,
		UpdatedAt:    time.Now(),
	}

	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "setting_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"setting_value", "updated_at"}),
	}).Create(&setting).Error
}
