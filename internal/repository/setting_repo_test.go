package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/market_admin_server/internal/model"
	"github.com/qs3c/market_admin_server/internal/testutil"
)

func TestSettingRepository_Upsert(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSettingRepository(db)

	t.Run("insert new key", func(t *testing.T) {
		require.NoError(t, repo.Upsert(model.SettingCostPerListing, "0.20"))

		got, err := repo.Get(model.SettingCostPerListing)
		require.NoError(t, err)
		assert.Equal(t, "0.20", got.SettingValue)
	})

	t.Run("update existing key", func(t *testing.T) {
		require.NoError(t, repo.Upsert(model.SettingCostPerListing, "0.25"))

		got, err := repo.Get(model.SettingCostPerListing)
		require.NoError(t, err)
		assert.Equal(t, "0.25", got.SettingValue)

		// 没有产生第二行
		settings, err := repo.ListAll()
		require.NoError(t, err)
		assert.Len(t, settings, 1)
	})
}

func TestSettingRepository_ListAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSettingRepository(db)
	testutil.TestSetting(t, db, model.SettingDailyFreeListings, "5")
	testutil.TestSetting(t, db, model.SettingCommunityPotBalance, "120")

	settings, err := repo.ListAll()
	require.NoError(t, err)
	assert.Len(t, settings, 2)
}
