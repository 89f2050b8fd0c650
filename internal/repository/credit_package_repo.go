package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/market_admin_server/internal/model"
)

type CreditPackageRepository struct {
	db *gorm.DB
}

func NewCreditPackageRepository(db *gorm.DB) *CreditPackageRepository {
	return &CreditPackageRepository{db: db}
}

func (r *CreditPackageRepository) Create(pkg *model.CreditPackage) error {
	return r.db.Create(pkg).Error
}

func (r *CreditPackageRepository) GetByID(id int64) (*model.CreditPackage, error) {
	var pkg model.CreditPackage
	err := r.db.Where("id = ?", id).First(&pkg).Error
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (r *CreditPackageRepository) ExistsByPackageID(packageID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.CreditPackage{}).Where("package_id = ?", packageID).Count(&count).Error
	return count > 0, err
}

// List 按排序字段返回套餐，activeOnly 时隐藏已下架的
func (r *CreditPackageRepository) List(activeOnly bool) ([]model.CreditPackage, error) {
	db := r.db.Model(&model.CreditPackage{})
	if activeOnly {
		db = db.Where("is_active = ?", true)
	}

	var pkgs []model.CreditPackage
	err := db.Order("sort_order ASC, id ASC").Find(&pkgs).Error
	if err != nil {
		return nil, err
	}
	return pkgs, nil
}

func (r *CreditPackageRepository) Update(pkg *model.CreditPackage) error {
	return r.db.Save(pkg).Error
}
