package middleware

import (
	"errors"
	"net/http"

	"shortlink-hub/internal/apperrors"
	"shortlink-hub/internal/i18n"
	"shortlink-hub/response"

	"github.com/gin-gonic/gin"
)

// GlobalErrorMiddleware 全局错误中间件
func GlobalErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// 如果有错误发生
		if len(c.Errors) > 0 {
			for _, err := range c.Errors {
				var appErr *apperrors.AppError
				if errors.As(err.Err, &appErr) {
					// 消息键统一在出口处翻译
					msg := appErr.Message
					if i18n.IsMessageKey(msg) {
						msg = i18n.T(c.Request.Context(), msg)
					}
					c.AbortWithStatusJSON(appErr.Code, response.ErrorFromAppError(appErr, msg))
					return
				}
			}

			// 默认处理未定义的错误
			c.AbortWithStatusJSON(http.StatusInternalServerError, response.Error("System error"))
			return
		}
	}
}
