package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/qs3c/market_admin_server/internal/model"
	"github.com/qs3c/market_admin_server/internal/model/dto"
	"github.com/qs3c/market_admin_server/internal/pkg/payment"
	"github.com/qs3c/market_admin_server/internal/pkg/pricing"
	"github.com/qs3c/market_admin_server/internal/repository"
)

var (
	ErrPackageExists   = errors.New("套餐标识已存在")
	ErrPackageNotFound = errors.New("套餐不存在")
	ErrPackageInactive = errors.New("套餐已下架")
)

// PackageService 充值套餐管理。套餐只存价格和加成比例，
// 积分数按当前单价在读取时推导，调价后所有套餐自动生效。
type PackageService struct {
	packageRepo     *repository.CreditPackageRepository
	settingsService *SettingsService
	paymentClient   *payment.Client
}

func NewPackageService(packageRepo *repository.CreditPackageRepository, settingsService *SettingsService, paymentClient *payment.Client) *PackageService {
	return &PackageService{
		packageRepo:     packageRepo,
		settingsService: settingsService,
		paymentClient:   paymentClient,
	}
}

// List 套餐列表，activeOnly 为 true 时只返回在售套餐
func (s *PackageService) List(ctx context.Context, activeOnly bool) ([]dto.PackageInfo, error) {
	settings, err := s.settingsService.Load(ctx)
	if err != nil {
		return nil, err
	}

	pkgs, err := s.packageRepo.List(activeOnly)
	if err != nil {
		return nil, err
	}

	infos := make([]dto.PackageInfo, 0, len(pkgs))
	for i := range pkgs {
		info, err := s.toPackageInfo(&pkgs[i], settings)
		if err != nil {
			return nil, err
		}
		infos = append(infos, *info)
	}
	return infos, nil
}

// Create 创建套餐
func (s *PackageService) Create(ctx context.Context, req *dto.CreatePackageRequest) (*dto.PackageInfo, error) {
	exists, err := s.packageRepo.ExistsByPackageID(req.PackageID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrPackageExists
	}

	pkg := &model.CreditPackage{
		PackageID:    req.PackageID,
		PackageType:  req.PackageType,
		DisplayName:  req.DisplayName,
		Price:        req.Price,
		BonusPercent: req.BonusPercent,
		IsPopular:    req.IsPopular,
		IsBestValue:  req.IsBestValue,
		IsActive:     true,
		SortOrder:    req.SortOrder,
	}
	if err := s.packageRepo.Create(pkg); err != nil {
		return nil, err
	}

	settings, err := s.settingsService.Load(ctx)
	if err != nil {
		return nil, err
	}
	return s.toPackageInfo(pkg, settings)
}

// Update 更新套餐，只覆盖请求里出现的字段
func (s *PackageService) Update(ctx context.Context, id int64, req *dto.UpdatePackageRequest) (*dto.PackageInfo, error) {
	pkg, err := s.getPackage(id)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		pkg.DisplayName = *req.DisplayName
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, ErrAmountNotPositive
		}
		pkg.Price = *req.Price
	}
	if req.BonusPercent != nil {
		if *req.BonusPercent < 0 || *req.BonusPercent >= 1 {
			return nil, ErrInvalidSettingValue
		}
		pkg.BonusPercent = *req.BonusPercent
	}
	if req.IsPopular != nil {
		pkg.IsPopular = *req.IsPopular
	}
	if req.IsBestValue != nil {
		pkg.IsBestValue = *req.IsBestValue
	}
	if req.SortOrder != nil {
		pkg.SortOrder = *req.SortOrder
	}

	if err := s.packageRepo.Update(pkg); err != nil {
		return nil, err
	}

	settings, err := s.settingsService.Load(ctx)
	if err != nil {
		return nil, err
	}
	return s.toPackageInfo(pkg, settings)
}

// ToggleActive 上架/下架切换
func (s *PackageService) ToggleActive(ctx context.Context, id int64) (*dto.PackageInfo, error) {
	pkg, err := s.getPackage(id)
	if err != nil {
		return nil, err
	}

	pkg.IsActive = !pkg.IsActive
	if err := s.packageRepo.Update(pkg); err != nil {
		return nil, err
	}

	settings, err := s.settingsService.Load(ctx)
	if err != nil {
		return nil, err
	}
	return s.toPackageInfo(pkg, settings)
}

// CreateCheckout 为套餐创建外部支付结账会话
func (s *PackageService) CreateCheckout(ctx context.Context, id int64, userID *int64) (*payment.CheckoutSession, error) {
	if s.paymentClient == nil {
		return nil, payment.ErrNotConfigured
	}

	pkg, err := s.getPackage(id)
	if err != nil {
		return nil, err
	}
	if !pkg.IsActive {
		return nil, ErrPackageInactive
	}

	settings, err := s.settingsService.Load(ctx)
	if err != nil {
		return nil, err
	}

	info, err := s.toPackageInfo(pkg, settings)
	if err != nil {
		return nil, err
	}

	return s.paymentClient.CreateCheckoutSession(ctx, &payment.CheckoutRequest{
		PackageID:   pkg.PackageID,
		PackageType: pkg.PackageType,
		Amount:      pkg.Price,
		Credits:     info.TotalCredits,
		UserID:      userID,
	})
}

func (s *PackageService) getPackage(id int64) (*model.CreditPackage, error) {
	pkg, err := s.packageRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, err
	}
	return pkg, nil
}

// toPackageInfo 按套餐类型选择单价推导积分：个人套餐用积分单价，公共池套餐用发布成本
func (s *PackageService) toPackageInfo(pkg *model.CreditPackage, settings *SystemSettings) (*dto.PackageInfo, error) {
	pricePerUnit := settings.PowerUserCreditPrice
	if pkg.PackageType == model.PackageTypeCommunity {
		pricePerUnit = settings.CostPerListing
	}

	credits, bonus, total, err := pricing.PackageCredits(pkg.Price, pkg.BonusPercent, pricePerUnit)
	if err != nil {
		return nil, err
	}

	return &dto.PackageInfo{
		ID:           pkg.ID,
		PackageID:    pkg.PackageID,
		PackageType:  pkg.PackageType,
		DisplayName:  pkg.DisplayName,
		Price:        pkg.Price,
		BonusPercent: pkg.BonusPercent,
		Credits:      credits,
		BonusCredits: bonus,
		TotalCredits: total,
		IsPopular:    pkg.IsPopular,
		IsBestValue:  pkg.IsBestValue,
		IsActive:     pkg.IsActive,
		SortOrder:    pkg.SortOrder,
	}, nil
}
