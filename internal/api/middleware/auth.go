package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/market_admin_server/config"
	"github.com/qs3c/market_admin_server/internal/pkg/jwt"
	"github.com/qs3c/market_admin_server/internal/pkg/response"
)

const UserIDKey = "user_id"

// Auth JWT 认证中间件，解析 Authorization: Bearer <token>
func Auth(jwtCfg *config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.AuthError(c, "缺少认证信息")
			c.Abort()
			return
		}

		claims, err := jwt.ParseToken(token, jwtCfg.Secret)
		if err != nil {
			response.AuthError(c, "")
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}

// extractToken 从 Header 或 query 提取 token（WebSocket 握手无法带自定义 Header）
func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return c.Query("token")
}

// GetUserID 从上下文获取当前登录用户 ID
func GetUserID(c *gin.Context) int64 {
	if v, exists := c.Get(UserIDKey); exists {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}
