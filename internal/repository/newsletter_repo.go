package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/market_admin_server/internal/model"
)

type NewsletterRepository struct {
	db *gorm.DB
}

func NewNewsletterRepository(db *gorm.DB) *NewsletterRepository {
	return &NewsletterRepository{db: db}
}

func (r *NewsletterRepository) CreateTemplate(tmpl *model.EmailTemplate) error {
	return r.db.Create(tmpl).Error
}

func (r *NewsletterRepository) GetTemplateBySlug(slug string) (*model.EmailTemplate, error) {
	var tmpl model.EmailTemplate
	err := r.db.Where("slug = ?", slug).First(&tmpl).Error
	if err != nil {
		return nil, err
	}
	return &tmpl, nil
}

func (r *NewsletterRepository) ListTemplates() ([]model.EmailTemplate, error) {
	var tmpls []model.EmailTemplate
	err := r.db.Order("slug ASC").Find(&tmpls).Error
	if err != nil {
		return nil, err
	}
	return tmpls, nil
}

func (r *NewsletterRepository) UpdateTemplate(tmpl *model.EmailTemplate) error {
	return r.db.Save(tmpl).Error
}

func (r *NewsletterRepository) DeleteTemplate(slug string) error {
	return r.db.Where("slug = ?", slug).Delete(&model.EmailTemplate{}).Error
}

func (r *NewsletterRepository) CreateNewsletter(n *model.Newsletter) error {
	return r.db.Create(n).Error
}

func (r *NewsletterRepository) GetNewsletterByID(id int64) (*model.Newsletter, error) {
	var n model.Newsletter
	err := r.db.Where("id = ?", id).First(&n).Error
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NewsletterRepository) ListNewsletters(page, pageSize int) ([]model.Newsletter, int64, error) {
	var total int64
	if err := r.db.Model(&model.Newsletter{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var newsletters []model.Newsletter
	err := r.db.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&newsletters).Error
	if err != nil {
		return nil, 0, err
	}

	return newsletters, total, nil
}

func (r *NewsletterRepository) UpdateNewsletter(n *model.Newsletter) error {
	return r.db.Save(n).Error
}

func (r *NewsletterRepository) UpdateNewsletterFields(id int64, fields map[string]interface{}) error {
	return r.db.Model(&model.Newsletter{}).Where("id = ?", id).Updates(fields).Error
}
