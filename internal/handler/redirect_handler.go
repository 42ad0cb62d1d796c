package handler

import (
	"net/http"
	"regexp"

	"shortlink-hub/constant"
	"shortlink-hub/internal/apperrors"
	"shortlink-hub/internal/dto"
	"shortlink-hub/internal/repository"
	"shortlink-hub/internal/service"
	"shortlink-hub/pkg/logging"
	"shortlink-hub/pkg/utils"
	"shortlink-hub/response"

	"github.com/gin-gonic/gin"
	"github.com/gomodule/redigo/redis"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var edgeCodePattern = regexp.MustCompile(`^[a-z]{6}$`)

// ResolveShortLinkHandler 短码解析 JSON 接口（GET /api/shortlink/redirect/:shortCode，匿名）。
// 与边缘跳转不同，这里把失败原因原样返回给调用方。
func ResolveShortLinkHandler(c *gin.Context) {
	shortCode := c.Param("shortCode")

	url, err := service.ResolveShortCode(c.Request.Context(), shortCode)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.OK(dto.RedirectResponse{URL: url}, "success"))
}

// EdgeRedirectHandler 边缘跳转（GET /s/:code，匿名）。
// 任何失败都统一跳到兜底页，不向访客区分原因。
func EdgeRedirectHandler(c *gin.Context) {
	code := c.Param("code")
	if !edgeCodePattern.MatchString(code) {
		redirectNotFound(c)
		return
	}

	conn := repository.RedisConn()
	if conn != nil {
		defer repository.CloseRedisConn(conn)

		// 命中空值缓存直接走兜底页，不再查库
		if cached, err := redis.String(conn.Do("GET", constant.GetMissCodeKey(code))); err == nil && cached == "" {
			redirectNotFound(c)
			return
		}
	}

	targetURL, err := service.ResolveShortCode(c.Request.Context(), code)
	if err != nil {
		// 未知短码缓存空值，防止缓存穿透
		if conn != nil && apperrors.Reason(err) == apperrors.ReasonNotFound {
			if _, setErr := conn.Do("SET", constant.GetMissCodeKey(code), "", "EX", constant.MissCacheSeconds); setErr != nil {
				logging.Logger.Error("设置空值缓存失败",
					zap.String("short_code", code),
					zap.Error(setErr),
				)
			}
		}
		redirectNotFound(c)
		return
	}

	// 入库时已校验过，这里再防御性校验一次 scheme
	if err := utils.ValidateTargetURL(targetURL); err != nil {
		logging.Logger.Error("目标 URL 校验失败",
			zap.String("short_code", code),
			zap.String("target_url", targetURL),
		)
		redirectNotFound(c)
		return
	}

	// 记录访问统计
	if conn != nil {
		ip := c.ClientIP()
		service.RecordDailyPV(conn, code)
		service.RecordDailyUV(conn, code, ip)
		service.RecordTotalUV(conn, code, ip)
	}

	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Redirect(http.StatusFound, targetURL)
}

// redirectNotFound 跳转到配置的兜底页；未配置时返回 404
func redirectNotFound(c *gin.Context) {
	notFoundURL := viper.GetString("shortlink.not_found_url")
	if notFoundURL == "" {
		c.Status(http.StatusNotFound)
		return
	}
	c.Redirect(http.StatusFound, notFoundURL)
}
