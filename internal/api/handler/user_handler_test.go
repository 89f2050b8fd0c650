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

func newUserTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	h := NewUserHandler(service.NewUserService(repository.NewUserRepository(db), nil))

	router := gin.New()
	admin := router.Group("/admin", mockAuth(1))
	admin.GET("/users", h.Search)
	admin.GET("/users/:id", h.Get)
	admin.PUT("/users/:id/role", h.UpdateRole)

	return router, db
}

func TestUserHandler_Search(t *testing.T) {
	router, db := newUserTestRouter(t)

	testutil.TestUser(t, db, testutil.WithUsername("anna"))
	testutil.TestUser(t, db, testutil.WithUsername("bob"))

	w := performJSON(t, router, "GET", "/admin/users?q=anna", nil)
	resp := parseResponse(t, w)
	require.Equal(t, response.CodeSuccess, resp.Code)
	assert.Equal(t, float64(1), dataField(t, resp, "total"))
}

func TestUserHandler_Get(t *testing.T) {
	router, db := newUserTestRouter(t)

	user := testutil.TestUser(t, db, testutil.WithUsername("carol"), testutil.WithCredits(30))

	w := performJSON(t, router, "GET", fmt.Sprintf("/admin/users/%d", user.ID), nil)
	resp := parseResponse(t, w)
	require.Equal(t, response.CodeSuccess, resp.Code)
	assert.Equal(t, "carol", dataField(t, resp, "username"))
	assert.Equal(t, float64(30), dataField(t, resp, "personal_credits"))

	w = performJSON(t, router, "GET", "/admin/users/99999", nil)
	assert.Equal(t, response.CodeResourceNotFound, parseResponse(t, w).Code)
}

func TestUserHandler_UpdateRole(t *testing.T) {
	router, db := newUserTestRouter(t)

	user := testutil.TestUser(t, db)

	w := performJSON(t, router, "PUT", fmt.Sprintf("/admin/users/%d/role", user.ID), dto.UpdateRoleRequest{
		Role: model.RoleModerator,
	})
	resp := parseResponse(t, w)
	require.Equal(t, response.CodeSuccess, resp.Code)
	assert.Equal(t, model.RoleModerator, dataField(t, resp, "role"))

	t.Run("invalid role rejected by binding", func(t *testing.T) {
		w := performJSON(t, router, "PUT", fmt.Sprintf("/admin/users/%d/role", user.ID), gin.H{"role": "superadmin"})
		assert.Equal(t, response.CodeParamError, parseResponse(t, w).Code)
	})
}
