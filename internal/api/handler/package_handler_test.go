package handler

import (
	"fmt"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/qs3c/market_admin_server/internal/model"
	"github.com/qs3c/market_admin_server/internal/model/dto"
	"github.com/qs3c/market_admin_server/internal/pkg/response"
	"github.com/qs3c/market_admin_server/internal/repository"
	"github.com/qs3c/market_admin_server/internal/service"
	"github.com/qs3c/market_admin_server/internal/testutil"
)

func newPackageTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	settingsService := service.NewSettingsService(repository.NewSettingRepository(db), nil, nil)
	packageService := service.NewPackageService(repository.NewCreditPackageRepository(db), settingsService, nil)
	h := NewPackageHandler(packageService)

	router := gin.New()
	admin := router.Group("/admin", mockAuth(1))
	admin.GET("/packages", h.List)
	admin.POST("/packages", h.Create)
	admin.PUT("/packages/:id", h.Update)
	admin.PUT("/packages/:id/toggle", h.ToggleActive)
	admin.POST("/packages/:id/checkout", h.CreateCheckout)

	return router, db
}

func TestPackageHandler_Create(t *testing.T) {
	router, _ := newPackageTestRouter(t)

	req := dto.CreatePackageRequest{
		PackageID:    "starter",
		PackageType:  model.PackageTypePersonal,
		DisplayName:  "Starter",
		Price:        10.00,
		BonusPercent: 0.10,
	}

	w := performJSON(t, router, "POST", "/admin/packages", req)
	resp := parseResponse(t, w)
	require.Equal(t, response.CodeSuccess, resp.Code)
	assert.Equal(t, float64(55), dataField(t, resp, "total_credits"))

	t.Run("duplicate package id", func(t *testing.T) {
		w := performJSON(t, router, "POST", "/admin/packages", req)
		resp := parseResponse(t, w)
		assert.Equal(t, response.CodeDuplicateAction, resp.Code)
	})

	t.Run("invalid package type rejected by binding", func(t *testing.T) {
		bad := req
		bad.PackageID = "other"
		bad.PackageType = "enterprise"
		w := performJSON(t, router, "POST", "/admin/packages", bad)
		resp := parseResponse(t, w)
		assert.Equal(t, response.CodeParamError, resp.Code)
	})
}

func TestPackageHandler_List(t *testing.T) {
	router, db := newPackageTestRouter(t)

	testutil.TestPackage(t, db, testutil.WithPackageID("a"), testutil.WithPrice(10.00, 0))
	testutil.TestPackage(t, db, testutil.WithPackageID("b"), testutil.WithActive(false))

	w := performJSON(t, router, "GET", "/admin/packages?active_only=true", nil)
	resp := parseResponse(t, w)
	require.Equal(t, response.CodeSuccess, resp.Code)

	items, ok := resp.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, items, 1)
}

func TestPackageHandler_ToggleActive(t *testing.T) {
	router, db := newPackageTestRouter(t)

	pkg := testutil.TestPackage(t, db)

	w := performJSON(t, router, "PUT", fmt.Sprintf("/admin/packages/%d/toggle", pkg.ID), nil)
	resp := parseResponse(t, w)
	require.Equal(t, response.CodeSuccess, resp.Code)
	assert.Equal(t, false, dataField(t, resp, "is_active"))

	t.Run("unknown id", func(t *testing.T) {
		w := performJSON(t, router, "PUT", "/admin/packages/99999/toggle", nil)
		resp := parseResponse(t, w)
		assert.Equal(t, response.CodeResourceNotFound, resp.Code)
	})
}

func TestPackageHandler_CreateCheckout_NotConfigured(t *testing.T) {
	router, db := newPackageTestRouter(t)

	pkg := testutil.TestPackage(t, db)

	w := performJSON(t, router, "POST", fmt.Sprintf("/admin/packages/%d/checkout", pkg.ID), nil)
	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeServerError, resp.Code)
}
