package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/market_admin_server/internal/testutil"
)

func TestCreditPackageRepository_List(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewCreditPackageRepository(db)
	testutil.TestPackage(t, db, testutil.WithPackageID("pro"), testutil.WithSortOrder(2))
	testutil.TestPackage(t, db, testutil.WithPackageID("starter"), testutil.WithSortOrder(1))
	testutil.TestPackage(t, db, testutil.WithPackageID("legacy"), testutil.WithSortOrder(3), testutil.WithActive(false))

	t.Run("all packages ordered by sort_order", func(t *testing.T) {
		pkgs, err := repo.List(false)
		require.NoError(t, err)
		require.Len(t, pkgs, 3)
		assert.Equal(t, "starter", pkgs[0].PackageID)
		assert.Equal(t, "pro", pkgs[1].PackageID)
	})

	t.Run("active only hides delisted", func(t *testing.T) {
		pkgs, err := repo.List(true)
		require.NoError(t, err)
		assert.Len(t, pkgs, 2)
		for _, p := range pkgs {
			assert.True(t, p.IsActive)
		}
	})
}

func TestCreditPackageRepository_ExistsByPackageID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewCreditPackageRepository(db)
	testutil.TestPackage(t, db, testutil.WithPackageID("starter"))

	exists, err := repo.ExistsByPackageID("starter")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByPackageID("missing")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCreditPackageRepository_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewCreditPackageRepository(db)
	pkg := testutil.TestPackage(t, db, testutil.WithPrice(10.00, 0.10))

	pkg.IsActive = false
	pkg.Price = 12.00
	require.NoError(t, repo.Update(pkg))

	got, err := repo.GetByID(pkg.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	assert.InDelta(t, 12.00, got.Price, 1e-9)
}
