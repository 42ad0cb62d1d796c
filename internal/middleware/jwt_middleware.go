package middleware

import (
	"strings"

	"shortlink-hub/internal/apperrors"
	"shortlink-hub/internal/jwt"

	"github.com/gin-gonic/gin"
)

// UserIDContextKey 认证通过后当前用户 ID 存放的 gin context 键
const UserIDContextKey = "user_id"

// JWTAuth 解析 Authorization: Bearer <token> 并把 user_id 写入 context
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			_ = c.Error(apperrors.UnauthorizedError("error.token_missing"))
			c.Abort()
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := jwt.ParseToken(tokenStr)
		if err != nil {
			_ = c.Error(apperrors.UnauthorizedError("error.token_invalid"))
			c.Abort()
			return
		}

		c.Set(UserIDContextKey, claims.UserID)
		c.Next()
	}
}

// CurrentUserID 读取认证中间件写入的用户 ID
func CurrentUserID(c *gin.Context) uint {
	return c.GetUint(UserIDContextKey)
}
