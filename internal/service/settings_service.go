package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/market_admin_server/config"
	"github.com/qs3c/market_admin_server/internal/model"
	"github.com/qs3c/market_admin_server/internal/model/dto"
	"github.com/qs3c/market_admin_server/internal/pkg/cache"
	"github.com/qs3c/market_admin_server/internal/pkg/pricing"
	"github.com/qs3c/market_admin_server/internal/repository"
)

var (
	ErrUnknownSetting      = errors.New("未知设置项")
	ErrInvalidSettingValue = errors.New("设置值无效")
)

const (
	settingsCachePrefix = "credit_settings:"
	settingsCacheKey    = settingsCachePrefix + "all"
)

// SystemSettings 类型化的系统设置，原始字符串值在加载时解析一次
type SystemSettings struct {
	DailyFreeListings      int     `json:"daily_free_listings"`
	CostPerListing         float64 `json:"cost_per_listing"`
	CommunityPotBalance    int     `json:"community_pot_balance"`
	PowerUserCreditPrice   float64 `json:"power_user_credit_price"`
	MinDonationAmount      float64 `json:"min_donation_amount"`
	PowerUserMinPurchase   float64 `json:"power_user_min_purchase"`
	LowPotWarningThreshold int     `json:"low_pot_warning_threshold"`
	AIModel                string  `json:"ai_model"`
	AvgTokensPerListing    int     `json:"avg_tokens_per_listing"`
	TokenCostPerMillion    float64 `json:"token_cost_per_million"`
}

// DefaultSettings 所有设置项的默认值，整个系统唯一的默认值来源
func DefaultSettings() SystemSettings {
	return SystemSettings{
		DailyFreeListings:      3,
		CostPerListing:         0.20,
		CommunityPotBalance:    0,
		PowerUserCreditPrice:   0.20,
		MinDonationAmount:      1.00,
		PowerUserMinPurchase:   5.00,
		LowPotWarningThreshold: 50,
		AIModel:                "gpt-4o-mini",
		AvgTokensPerListing:    800,
		TokenCostPerMillion:    0.60,
	}
}

type SettingsService struct {
	settingRepo *repository.SettingRepository
	cache       *cache.Cache
	cacheTTL    time.Duration
}

func NewSettingsService(settingRepo *repository.SettingRepository, c *cache.Cache, cfg *config.Config) *SettingsService {
	ttl := 60 * time.Second
	if cfg != nil && cfg.Credits.SettingsCacheTTLSeconds > 0 {
		ttl = time.Duration(cfg.Credits.SettingsCacheTTLSeconds) * time.Second
	}

	return &SettingsService{
		settingRepo: settingRepo,
		cache:       c,
		cacheTTL:    ttl,
	}
}

// Load 加载全部设置。缓存有效期内直接返回缓存值，不访问数据库
func (s *SettingsService) Load(ctx context.Context) (*SystemSettings, error) {
	if s.cache != nil {
		var cached SystemSettings
		hit, err := s.cache.Get(ctx, settingsCacheKey, &cached)
		if err == nil && hit {
			return &cached, nil
		}
	}

	rows, err := s.settingRepo.ListAll()
	if err != nil {
		return nil, err
	}

	settings := settingsFromRows(rows)

	if s.cache != nil {
		// 缓存写入失败不影响本次读取
		_ = s.cache.Set(ctx, settingsCacheKey, settings, s.cacheTTL)
	}

	return &settings, nil
}

// Update 写入单个设置项，使缓存失效后强制重新加载。
// 更新成功返回后，后续 Load 一定能读到新值。
func (s *SettingsService) Update(ctx context.Context, key, value string) (*SystemSettings, error) {
	if !isKnownSetting(key) {
		return nil, ErrUnknownSetting
	}
	if err := validateSettingValue(key, value); err != nil {
		return nil, err
	}

	if err := s.settingRepo.Upsert(key, value); err != nil {
		return nil, err
	}

	s.invalidate(ctx)

	return s.Load(ctx)
}

// PotBalance 直接从底层设置行读取公共池余额（不走缓存，供台账写路径使用）
func (s *SettingsService) PotBalance(ctx context.Context) (int, error) {
	row, err := s.settingRepo.Get(model.SettingCommunityPotBalance)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DefaultSettings().CommunityPotBalance, nil
		}
		return 0, err
	}

	balance, err := strconv.Atoi(row.SettingValue)
	if err != nil {
		return DefaultSettings().CommunityPotBalance, nil
	}
	return balance, nil
}

// SetPotBalance 写入公共池余额并使设置缓存失效
func (s *SettingsService) SetPotBalance(ctx context.Context, balance int) error {
	if err := s.settingRepo.Upsert(model.SettingCommunityPotBalance, strconv.Itoa(balance)); err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

// AICost 当前 AI 成本信息
func (s *SettingsService) AICost(ctx context.Context) (*dto.AICostInfo, error) {
	settings, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.AICostInfo{
		Model:               settings.AIModel,
		AvgTokensPerListing: settings.AvgTokensPerListing,
		TokenCostPerMillion: settings.TokenCostPerMillion,
		CostPerListing:      pricing.AICostPerListing(settings.AvgTokensPerListing, settings.TokenCostPerMillion),
	}, nil
}

func (s *SettingsService) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidatePrefix(ctx, settingsCachePrefix)
	}
}

// settingsFromRows 把设置行解析为类型化结构，缺失或非法的值静默回退默认值
func settingsFromRows(rows []model.CreditSetting) SystemSettings {
	settings := DefaultSettings()

	for _, row := range rows {
		v := row.SettingValue
		switch row.SettingKey {
		case model.SettingDailyFreeListings:
			parseInt(v, &settings.DailyFreeListings)
		case model.SettingCostPerListing:
			parseFloat(v, &settings.CostPerListing)
		case model.SettingCommunityPotBalance:
			parseInt(v, &settings.CommunityPotBalance)
		case model.SettingPowerUserCreditPrice:
			parseFloat(v, &settings.PowerUserCreditPrice)
		case model.SettingMinDonationAmount:
			parseFloat(v, &settings.MinDonationAmount)
		case model.SettingPowerUserMinPurchase:
			parseFloat(v, &settings.PowerUserMinPurchase)
		case model.SettingLowPotWarningThreshold:
			parseInt(v, &settings.LowPotWarningThreshold)
		case model.SettingAIModel:
			if v != "" {
				settings.AIModel = v
			}
		case model.SettingAvgTokensPerListing:
			parseInt(v, &settings.AvgTokensPerListing)
		case model.SettingTokenCostPerMillion:
			parseFloat(v, &settings.TokenCostPerMillion)
		}
	}

	return settings
}

func parseInt(value string, dest *int) {
	if n, err := strconv.Atoi(value); err == nil {
		*dest = n
	}
}

func parseFloat(value string, dest *float64) {
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		*dest = f
	}
}

var settingKeys = map[string]struct{}{
	model.SettingDailyFreeListings:      {},
	model.SettingCostPerListing:         {},
	model.SettingCommunityPotBalance:    {},
	model.SettingPowerUserCreditPrice:   {},
	model.SettingMinDonationAmount:      {},
	model.SettingPowerUserMinPurchase:   {},
	model.SettingLowPotWarningThreshold: {},
	model.SettingAIModel:                {},
	model.SettingAvgTokensPerListing:    {},
	model.SettingTokenCostPerMillion:    {},
}

func isKnownSetting(key string) bool {
	_, ok := settingKeys[key]
	return ok
}

// validateSettingValue 写入前做一次类型校验，避免把无法解析的值存进库里。
// 作为除数使用的价格字段必须为正。
func validateSettingValue(key, value string) error {
	switch key {
	case model.SettingCostPerListing, model.SettingPowerUserCreditPrice:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 0 {
			return ErrInvalidSettingValue
		}
	case model.SettingMinDonationAmount, model.SettingPowerUserMinPurchase, model.SettingTokenCostPerMillion:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return ErrInvalidSettingValue
		}
	case model.SettingDailyFreeListings, model.SettingCommunityPotBalance, model.SettingLowPotWarningThreshold:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return ErrInvalidSettingValue
		}
	case model.SettingAvgTokensPerListing:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return ErrInvalidSettingValue
		}
	}
	return nil
}
