package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/market_admin_server/internal/pkg/response"
	"github.com/qs3c/market_admin_server/internal/repository"
)

// RequireRole 角色校验中间件，必须在 Auth 之后使用。
// 每次请求回库查角色，角色变更立即生效，不受 token 有效期影响。
func RequireRole(userRepo *repository.UserRepository, roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		userID := GetUserID(c)
		if userID == 0 {
			response.AuthError(c, "")
			c.Abort()
			return
		}

		user, err := userRepo.GetByID(userID)
		if err != nil {
			response.AuthError(c, "")
			c.Abort()
			return
		}

		if _, ok := allowed[user.Role]; !ok {
			response.PermissionError(c, "")
			c.Abort()
			return
		}

		c.Next()
	}
}
