package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/market_admin_server/internal/model"
	"github.com/qs3c/market_admin_server/internal/repository"
)

var ErrUserNotFound = errors.New("用户不存在")

// LedgerService 积分台账写入。每次变更同时落余额和审计记录，
// 两步顺序写入，不在同一事务内（已知限制，见 Donation 补偿流程）。
type LedgerService struct {
	userRepo        *repository.UserRepository
	donationRepo    *repository.DonationRepository
	potTxRepo       *repository.PotTransactionRepository
	settingsService *SettingsService
}

func NewLedgerService(
	userRepo *repository.UserRepository,
	donationRepo *repository.DonationRepository,
	potTxRepo *repository.PotTransactionRepository,
	settingsService *SettingsService,
) *LedgerService {
	return &LedgerService{
		userRepo:        userRepo,
		donationRepo:    donationRepo,
		potTxRepo:       potTxRepo,
		settingsService: settingsService,
	}
}

// GrantPersonalCredits 给用户增加个人积分并写入一条捐赠审计记录，返回新余额
func (s *LedgerService) GrantPersonalCredits(ctx context.Context, userID int64, credits int, euroAmount, pricePerUnit float64) (int, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}

	newCredits := user.PersonalCredits + credits
	if err := s.userRepo.UpdateCredits(userID, newCredits); err != nil {
		return 0, err
	}

	donation := &model.Donation{
		UserID:          &userID,
		Amount:          euroAmount,
		PricePerUnit:    pricePerUnit,
		DonationType:    model.DonationTypePersonal,
		CreditsGranted:  credits,
		Status:          "completed",
		StripePaymentID: fmt.Sprintf("admin_grant_%d", time.Now().Unix()),
	}
	if err := s.donationRepo.Create(donation); err != nil {
		// 余额已更新，审计记录缺失，需要人工核对
		return newCredits, fmt.Errorf("积分已发放但审计记录写入失败: %w", err)
	}

	return newCredits, nil
}

// AddToCommunityPot 增加公共池余额并写入池流水，返回新余额。
// userID 不为空时记为该用户的捐赠（写捐赠记录并累计用户捐赠统计），
// 为空时是匿名的管理员调整，不产生捐赠记录。
func (s *LedgerService) AddToCommunityPot(ctx context.Context, credits int, euroAmount, pricePerUnit float64, description string, userID *int64) (int, error) {
	current, err := s.settingsService.PotBalance(ctx)
	if err != nil {
		return 0, err
	}

	newBalance := current + credits
	if err := s.settingsService.SetPotBalance(ctx, newBalance); err != nil {
		return 0, err
	}

	if userID != nil {
		donation := &model.Donation{
			UserID:          userID,
			Amount:          euroAmount,
			PricePerUnit:    pricePerUnit,
			DonationType:    model.DonationTypeCommunity,
			CreditsGranted:  credits,
			Status:          "completed",
			StripePaymentID: fmt.Sprintf("admin_community_%d", time.Now().Unix()),
		}
		if err := s.donationRepo.Create(donation); err != nil {
			return newBalance, fmt.Errorf("公共池已入账但捐赠记录写入失败: %w", err)
		}
		if err := s.userRepo.AddDonationTotals(*userID, euroAmount, credits); err != nil {
			return newBalance, err
		}
	}

	if description == "" {
		description = fmt.Sprintf("管理员充值 %d 个发布额度", credits)
	}
	tx := &model.CommunityPotTransaction{
		TransactionType: model.PotTxTypeAdjustment,
		UserID:          userID,
		Amount:          credits,
		BalanceAfter:    newBalance,
		Description:     description,
	}
	if err := s.potTxRepo.Create(tx); err != nil {
		return newBalance, fmt.Errorf("公共池已入账但流水写入失败: %w", err)
	}

	return newBalance, nil
}
