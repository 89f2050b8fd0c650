package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/qs3c/market_admin_server/internal/model"
	"github.com/qs3c/market_admin_server/internal/model/dto"
	"github.com/qs3c/market_admin_server/internal/repository"
	"github.com/qs3c/market_admin_server/internal/testutil"
)

func newTestGrantService(t *testing.T) (*GrantService, *gorm.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	userRepo := repository.NewUserRepository(db)
	donationRepo := repository.NewDonationRepository(db)
	potTxRepo := repository.NewPotTransactionRepository(db)
	settingsService := NewSettingsService(repository.NewSettingRepository(db), nil, nil)
	ledger := NewLedgerService(userRepo, donationRepo, potTxRepo, settingsService)

	return NewGrantService(ledger, settingsService, userRepo, donationRepo, potTxRepo, nil), db
}

func TestGrantService_GrantPersonal(t *testing.T) {
	svc, db := newTestGrantService(t)
	ctx := context.Background()

	user := testutil.TestUser(t, db, testutil.WithUsername("alice"), testutil.WithCredits(50))

	// 默认单价 0.20，20 欧兑换 100 积分
	resp, err := svc.GrantPersonal(ctx, &dto.GrantCreditsRequest{
		UserID:     user.ID,
		EuroAmount: 20.00,
		Reason:     "社区贡献奖励",
	})
	require.NoError(t, err)

	assert.Equal(t, user.ID, resp.UserID)
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, 100, resp.CreditsGranted)
	assert.Equal(t, 150, resp.NewCredits)

	var donationCount int64
	require.NoError(t, db.Model(&model.Donation{}).Count(&donationCount).Error)
	assert.Equal(t, int64(1), donationCount)
}

func TestGrantService_GrantPersonal_UsesCurrentPrice(t *testing.T) {
	svc, db := newTestGrantService(t)
	ctx := context.Background()

	user := testutil.TestUser(t, db)
	testutil.TestSetting(t, db, model.SettingPowerUserCreditPrice, "0.50")

	resp, err := svc.GrantPersonal(ctx, &dto.GrantCreditsRequest{UserID: user.ID, EuroAmount: 20.00})
	require.NoError(t, err)
	assert.Equal(t, 40, resp.CreditsGranted)
}

func TestGrantService_GrantPersonal_Validation(t *testing.T) {
	svc, db := newTestGrantService(t)
	ctx := context.Background()

	user := testutil.TestUser(t, db)

	tests := []struct {
		name    string
		req     *dto.GrantCreditsRequest
		wantErr error
	}{
		{"missing user", &dto.GrantCreditsRequest{EuroAmount: 20.00}, ErrUserRequired},
		{"zero amount", &dto.GrantCreditsRequest{UserID: user.ID, EuroAmount: 0}, ErrAmountNotPositive},
		{"negative amount", &dto.GrantCreditsRequest{UserID: user.ID, EuroAmount: -5.00}, ErrAmountNotPositive},
		{"amount below one credit", &dto.GrantCreditsRequest{UserID: user.ID, EuroAmount: 0.19}, ErrAmountTooSmall},
		{"unknown user", &dto.GrantCreditsRequest{UserID: 99999, EuroAmount: 20.00}, ErrUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.GrantPersonal(ctx, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)

			// 校验失败不产生任何记录
			var count int64
			require.NoError(t, db.Model(&model.Donation{}).Count(&count).Error)
			assert.Equal(t, int64(0), count)
		})
	}
}

func TestGrantService_TopUpPot(t *testing.T) {
	svc, db := newTestGrantService(t)
	ctx := context.Background()

	testutil.TestSetting(t, db, model.SettingCommunityPotBalance, "100")

	// cost_per_listing 默认 0.20，100 欧折合 500 个发布额度
	resp, err := svc.TopUpPot(ctx, &dto.PotTopUpRequest{EuroAmount: 100.00, Reason: "月度补充"})
	require.NoError(t, err)

	assert.Equal(t, 500, resp.CreditsGranted)
	assert.Equal(t, 600, resp.NewBalance)

	var txs []model.CommunityPotTransaction
	require.NoError(t, db.Find(&txs).Error)
	require.Len(t, txs, 1)
	assert.Equal(t, "月度补充", txs[0].Description)

	var donationCount int64
	require.NoError(t, db.Model(&model.Donation{}).Count(&donationCount).Error)
	assert.Equal(t, int64(0), donationCount)
}

func TestGrantService_TopUpPot_Validation(t *testing.T) {
	svc, _ := newTestGrantService(t)
	ctx := context.Background()

	_, err := svc.TopUpPot(ctx, &dto.PotTopUpRequest{EuroAmount: 0})
	assert.ErrorIs(t, err, ErrAmountNotPositive)

	_, err = svc.TopUpPot(ctx, &dto.PotTopUpRequest{EuroAmount: 0.19})
	assert.ErrorIs(t, err, ErrAmountTooSmall)

	unknown := int64(99999)
	_, err = svc.TopUpPot(ctx, &dto.PotTopUpRequest{EuroAmount: 10.00, UserID: &unknown})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGrantService_PreviewPersonal(t *testing.T) {
	svc, _ := newTestGrantService(t)

	preview, err := svc.PreviewPersonal(context.Background(), 10.00)
	require.NoError(t, err)

	assert.InDelta(t, 0.20, preview.PricePerUnit, 1e-9)
	assert.Equal(t, 50, preview.Credits)

	// 不足一个积分的金额预览为 0，不报错
	preview, err = svc.PreviewPersonal(context.Background(), 0.19)
	require.NoError(t, err)
	assert.Equal(t, 0, preview.Credits)
}

func TestGrantService_ListDonations(t *testing.T) {
	svc, db := newTestGrantService(t)
	ctx := context.Background()

	user := testutil.TestUser(t, db)
	_, err := svc.GrantPersonal(ctx, &dto.GrantCreditsRequest{UserID: user.ID, EuroAmount: 20.00})
	require.NoError(t, err)

	donations, total, err := svc.ListDonations(1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, donations, 1)
	assert.Equal(t, model.DonationTypePersonal, donations[0].DonationType)
	assert.Equal(t, 100, donations[0].CreditsGranted)
}

func TestGrantService_ListPotTransactions(t *testing.T) {
	svc, _ := newTestGrantService(t)
	ctx := context.Background()

	_, err := svc.TopUpPot(ctx, &dto.PotTopUpRequest{EuroAmount: 20.00})
	require.NoError(t, err)

	txs, total, err := svc.ListPotTransactions(1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, txs, 1)
	assert.Equal(t, 100, txs[0].Amount)
	assert.Equal(t, 100, txs[0].BalanceAfter)
}
