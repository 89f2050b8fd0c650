package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/qs3c/market_admin_server/internal/model"
	"github.com/qs3c/market_admin_server/internal/repository"
	"github.com/qs3c/market_admin_server/internal/testutil"
)

func newTestLedgerService(t *testing.T) (*LedgerService, *gorm.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	settingsService := NewSettingsService(repository.NewSettingRepository(db), nil, nil)
	svc := NewLedgerService(
		repository.NewUserRepository(db),
		repository.NewDonationRepository(db),
		repository.NewPotTransactionRepository(db),
		settingsService,
	)
	return svc, db
}

func TestLedgerService_GrantPersonalCredits(t *testing.T) {
	svc, db := newTestLedgerService(t)
	ctx := context.Background()

	user := testutil.TestUser(t, db, testutil.WithCredits(50))

	newCredits, err := svc.GrantPersonalCredits(ctx, user.ID, 100, 20.00, 0.20)
	require.NoError(t, err)
	assert.Equal(t, 150, newCredits)

	got, err := repository.NewUserRepository(db).GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 150, got.PersonalCredits)

	// 恰好产生一条个人捐赠审计记录
	var donations []model.Donation
	require.NoError(t, db.Find(&donations).Error)
	require.Len(t, donations, 1)
	assert.Equal(t, model.DonationTypePersonal, donations[0].DonationType)
	assert.Equal(t, 100, donations[0].CreditsGranted)
	assert.InDelta(t, 20.00, donations[0].Amount, 1e-9)
	assert.InDelta(t, 0.20, donations[0].PricePerUnit, 1e-9)
	assert.Equal(t, "completed", donations[0].Status)
	assert.True(t, strings.HasPrefix(donations[0].StripePaymentID, "admin_grant_"))

	// 个人发放不写公共池流水
	var txCount int64
	require.NoError(t, db.Model(&model.CommunityPotTransaction{}).Count(&txCount).Error)
	assert.Equal(t, int64(0), txCount)
}

// 发放接口没有幂等保护，重复调用会重复入账
func TestLedgerService_GrantPersonalCredits_NotIdempotent(t *testing.T) {
	svc, db := newTestLedgerService(t)
	ctx := context.Background()

	user := testutil.TestUser(t, db, testutil.WithCredits(0))

	_, err := svc.GrantPersonalCredits(ctx, user.ID, 100, 20.00, 0.20)
	require.NoError(t, err)
	newCredits, err := svc.GrantPersonalCredits(ctx, user.ID, 100, 20.00, 0.20)
	require.NoError(t, err)

	assert.Equal(t, 200, newCredits)

	var count int64
	require.NoError(t, db.Model(&model.Donation{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestLedgerService_GrantPersonalCredits_UserNotFound(t *testing.T) {
	svc, _ := newTestLedgerService(t)

	_, err := svc.GrantPersonalCredits(context.Background(), 99999, 100, 20.00, 0.20)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestLedgerService_AddToCommunityPot_Anonymous(t *testing.T) {
	svc, db := newTestLedgerService(t)
	ctx := context.Background()

	testutil.TestSetting(t, db, model.SettingCommunityPotBalance, "120")

	newBalance, err := svc.AddToCommunityPot(ctx, 500, 100.00, 0.20, "", nil)
	require.NoError(t, err)
	assert.Equal(t, 620, newBalance)

	// 恰好一条池流水，balance_after 是写入后的余额
	var txs []model.CommunityPotTransaction
	require.NoError(t, db.Find(&txs).Error)
	require.Len(t, txs, 1)
	assert.Equal(t, model.PotTxTypeAdjustment, txs[0].TransactionType)
	assert.Nil(t, txs[0].UserID)
	assert.Equal(t, 500, txs[0].Amount)
	assert.Equal(t, 620, txs[0].BalanceAfter)
	assert.Equal(t, "管理员充值 500 个发布额度", txs[0].Description)

	// 匿名充值不产生捐赠记录
	var donationCount int64
	require.NoError(t, db.Model(&model.Donation{}).Count(&donationCount).Error)
	assert.Equal(t, int64(0), donationCount)
}

func TestLedgerService_AddToCommunityPot_Attributed(t *testing.T) {
	svc, db := newTestLedgerService(t)
	ctx := context.Background()

	user := testutil.TestUser(t, db)

	newBalance, err := svc.AddToCommunityPot(ctx, 250, 50.00, 0.20, "社区活动捐赠", &user.ID)
	require.NoError(t, err)
	assert.Equal(t, 250, newBalance)

	var donations []model.Donation
	require.NoError(t, db.Find(&donations).Error)
	require.Len(t, donations, 1)
	assert.Equal(t, model.DonationTypeCommunity, donations[0].DonationType)
	require.NotNil(t, donations[0].UserID)
	assert.Equal(t, user.ID, *donations[0].UserID)
	assert.True(t, strings.HasPrefix(donations[0].StripePaymentID, "admin_community_"))

	// 用户捐赠统计同步累计
	got, err := repository.NewUserRepository(db).GetByID(user.ID)
	require.NoError(t, err)
	assert.InDelta(t, 50.00, got.TotalDonated, 1e-9)
	assert.Equal(t, 250, got.CommunityListingsDonated)

	var txs []model.CommunityPotTransaction
	require.NoError(t, db.Find(&txs).Error)
	require.Len(t, txs, 1)
	require.NotNil(t, txs[0].UserID)
	assert.Equal(t, user.ID, *txs[0].UserID)
	assert.Equal(t, "社区活动捐赠", txs[0].Description)
}

func TestLedgerService_AddToCommunityPot_Accumulates(t *testing.T) {
	svc, db := newTestLedgerService(t)
	ctx := context.Background()

	_, err := svc.AddToCommunityPot(ctx, 100, 20.00, 0.20, "", nil)
	require.NoError(t, err)
	newBalance, err := svc.AddToCommunityPot(ctx, 50, 10.00, 0.20, "", nil)
	require.NoError(t, err)
	assert.Equal(t, 150, newBalance)

	var txs []model.CommunityPotTransaction
	require.NoError(t, db.Order("id ASC").Find(&txs).Error)
	require.Len(t, txs, 2)
	assert.Equal(t, 100, txs[0].BalanceAfter)
	assert.Equal(t, 150, txs[1].BalanceAfter)
}
