package service

import (
	"context"
	"errors"
	"log"

	"github.com/qs3c/market_admin_server/internal/model/dto"
	"github.com/qs3c/market_admin_server/internal/pkg/pricing"
	"github.com/qs3c/market_admin_server/internal/pkg/pubsub"
	"github.com/qs3c/market_admin_server/internal/repository"
)

var (
	ErrUserRequired      = errors.New("请选择接收用户")
	ErrAmountNotPositive = errors.New("金额必须大于 0")
	ErrAmountTooSmall    = errors.New("金额不足以兑换至少 1 个积分")
)

// GrantService 管理员发放流程：校验、换算、委托台账写入、广播事件
type GrantService struct {
	ledger          *LedgerService
	settingsService *SettingsService
	userRepo        *repository.UserRepository
	donationRepo    *repository.DonationRepository
	potTxRepo       *repository.PotTransactionRepository
	publisher       *pubsub.Publisher
}

func NewGrantService(
	ledger *LedgerService,
	settingsService *SettingsService,
	userRepo *repository.UserRepository,
	donationRepo *repository.DonationRepository,
	potTxRepo *repository.PotTransactionRepository,
	publisher *pubsub.Publisher,
) *GrantService {
	return &GrantService{
		ledger:          ledger,
		settingsService: settingsService,
		userRepo:        userRepo,
		donationRepo:    donationRepo,
		potTxRepo:       potTxRepo,
		publisher:       publisher,
	}
}

// GrantPersonal 给指定用户发放个人积分
func (s *GrantService) GrantPersonal(ctx context.Context, req *dto.GrantCreditsRequest) (*dto.GrantCreditsResponse, error) {
	if req.UserID <= 0 {
		return nil, ErrUserRequired
	}
	if req.EuroAmount <= 0 {
		return nil, ErrAmountNotPositive
	}

	settings, err := s.settingsService.Load(ctx)
	if err != nil {
		return nil, err
	}

	credits, err := pricing.CreditsForAmount(req.EuroAmount, settings.PowerUserCreditPrice)
	if err != nil {
		return nil, err
	}
	if credits <= 0 {
		return nil, ErrAmountTooSmall
	}

	user, err := s.userRepo.GetByID(req.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	newCredits, err := s.ledger.GrantPersonalCredits(ctx, req.UserID, credits, req.EuroAmount, settings.PowerUserCreditPrice)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, &pubsub.CreditEvent{
		Type:           pubsub.EventPersonalGrant,
		UserID:         &req.UserID,
		EuroAmount:     req.EuroAmount,
		CreditsGranted: credits,
		NewBalance:     newCredits,
		Message:        req.Reason,
	})

	return &dto.GrantCreditsResponse{
		UserID:         user.ID,
		Username:       user.Username,
		EuroAmount:     req.EuroAmount,
		CreditsGranted: credits,
		NewCredits:     newCredits,
	}, nil
}

// TopUpPot 给公共池充值
func (s *GrantService) TopUpPot(ctx context.Context, req *dto.PotTopUpRequest) (*dto.PotTopUpResponse, error) {
	if req.EuroAmount <= 0 {
		return nil, ErrAmountNotPositive
	}

	settings, err := s.settingsService.Load(ctx)
	if err != nil {
		return nil, err
	}

	credits, err := pricing.CreditsForAmount(req.EuroAmount, settings.CostPerListing)
	if err != nil {
		return nil, err
	}
	if credits <= 0 {
		return nil, ErrAmountTooSmall
	}

	if req.UserID != nil {
		if _, err := s.userRepo.GetByID(*req.UserID); err != nil {
			return nil, ErrUserNotFound
		}
	}

	newBalance, err := s.ledger.AddToCommunityPot(ctx, credits, req.EuroAmount, settings.CostPerListing, req.Reason, req.UserID)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, &pubsub.CreditEvent{
		Type:           pubsub.EventPotAdjustment,
		UserID:         req.UserID,
		EuroAmount:     req.EuroAmount,
		CreditsGranted: credits,
		NewBalance:     newBalance,
		Message:        req.Reason,
	})

	return &dto.PotTopUpResponse{
		EuroAmount:     req.EuroAmount,
		CreditsGranted: credits,
		NewBalance:     newBalance,
	}, nil
}

// PreviewPersonal 按当前单价预览金额能兑换的个人积分数
func (s *GrantService) PreviewPersonal(ctx context.Context, euroAmount float64) (*dto.GrantPreview, error) {
	settings, err := s.settingsService.Load(ctx)
	if err != nil {
		return nil, err
	}

	credits, err := pricing.CreditsForAmount(euroAmount, settings.PowerUserCreditPrice)
	if err != nil {
		return nil, err
	}

	return &dto.GrantPreview{
		EuroAmount:   euroAmount,
		PricePerUnit: settings.PowerUserCreditPrice,
		Credits:      credits,
	}, nil
}

// ListDonations 捐赠记录分页
func (s *GrantService) ListDonations(page, pageSize int) ([]dto.DonationInfo, int64, error) {
	donations, total, err := s.donationRepo.List(page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	infos := make([]dto.DonationInfo, 0, len(donations))
	for _, d := range donations {
		infos = append(infos, dto.DonationInfo{
			ID:             d.ID,
			UserID:         d.UserID,
			Amount:         d.Amount,
			PricePerUnit:   d.PricePerUnit,
			DonationType:   d.DonationType,
			CreditsGranted: d.CreditsGranted,
			Status:         d.Status,
			PaymentRef:     d.StripePaymentID,
			CreatedAt:      d.CreatedAt,
		})
	}
	return infos, total, nil
}

// ListPotTransactions 公共池流水分页
func (s *GrantService) ListPotTransactions(page, pageSize int) ([]dto.PotTransactionInfo, int64, error) {
	txs, total, err := s.potTxRepo.List(page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	infos := make([]dto.PotTransactionInfo, 0, len(txs))
	for _, tx := range txs {
		infos = append(infos, dto.PotTransactionInfo{
			ID:              tx.ID,
			TransactionType: tx.TransactionType,
			UserID:          tx.UserID,
			Amount:          tx.Amount,
			BalanceAfter:    tx.BalanceAfter,
			Description:     tx.Description,
			CreatedAt:       tx.CreatedAt,
		})
	}
	return infos, total, nil
}

func (s *GrantService) publishEvent(ctx context.Context, event *pubsub.CreditEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishCreditEvent(ctx, event); err != nil {
		log.Printf("发布积分事件失败: %v", err)
	}
}
