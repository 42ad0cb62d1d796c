package handler

import (
	"net/http"
	"reflect"
	"strconv"

	"shortlink-hub/internal/apperrors"
	"shortlink-hub/internal/dto"
	"shortlink-hub/internal/middleware"
	"shortlink-hub/internal/service"
	"shortlink-hub/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// CreateShortLinkHandler 创建短链（POST /api/shortlink）
func CreateShortLinkHandler(c *gin.Context) {
	var req dto.CreateShortLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		zap.L().Warn("Request body binding failed",
			zap.Error(err),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)
		_ = c.Error(bindingError(req, err))
		return
	}

	userID := middleware.CurrentUserID(c)

	link, err := service.CreateShortLink(c.Request.Context(), req, userID)
	if err != nil {
		zap.L().Warn("Short link creation failed",
			zap.Error(err),
			zap.String("short_code", req.ShortCode),
			zap.Uint("user_id", userID),
		)
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, response.OK(link, "短链创建成功"))
}

// ListShortLinksHandler 分页查询短链列表（GET /api/shortlink）
func ListShortLinksHandler(c *gin.Context) {
	pageStr := c.DefaultQuery("page", "1")
	sizeStr := c.DefaultQuery("pageSize", "10")
	search := c.Query("search")
	tag := c.Query("tag")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		_ = c.Error(apperrors.InvalidRequestError("页码必须为正整数"))
		return
	}

	pageSize, err := strconv.Atoi(sizeStr)
	if err != nil || pageSize < 1 || pageSize > 100 {
		_ = c.Error(apperrors.InvalidRequestError("每页数量必须为1-100之间的整数"))
		return
	}

	pageResp, err := service.ListShortLinks(c.Request.Context(), middleware.CurrentUserID(c), page, pageSize, search, tag)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.OK(pageResp, "success"))
}

// GetShortLinkHandler 查询短链详情（GET /api/shortlink/:id，仅创建者）
func GetShortLinkHandler(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	link, err := service.GetShortLink(c.Request.Context(), id, middleware.CurrentUserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.OK(link, "success"))
}

// UpdateShortLinkHandler 更新短链（PUT /api/shortlink/:id，仅创建者）
func UpdateShortLinkHandler(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateShortLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		zap.L().Warn("Request body binding failed",
			zap.Error(err),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)
		_ = c.Error(apperrors.InvalidRequestErrorDefault())
		return
	}

	userID := middleware.CurrentUserID(c)

	link, err := service.UpdateShortLink(c.Request.Context(), id, userID, req)
	if err != nil {
		zap.L().Warn("Short link update failed",
			zap.Error(err),
			zap.Uint("id", id),
			zap.Uint("user_id", userID),
		)
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.OK(link, "短链更新成功"))
}

// DeleteShortLinkHandler 删除短链（DELETE /api/shortlink/:id，仅创建者）
func DeleteShortLinkHandler(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := service.DeleteShortLink(c.Request.Context(), id, middleware.CurrentUserID(c)); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetShortLinkStatsHandler 查询短链统计（GET /api/shortlink/:id/stats，仅创建者）
func GetShortLinkStatsHandler(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	stats, err := service.GetShortLinkStats(c.Request.Context(), id, middleware.CurrentUserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.OK(stats, "success"))
}

// parseIDParam 解析路径中的记录 ID；非法时写入错误并返回 false
func parseIDParam(c *gin.Context) (uint, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || id < 1 {
		_ = c.Error(apperrors.InvalidRequestError("无效的 ID"))
		return 0, false
	}
	return uint(id), true
}

// bindingError 优先取字段 msg 标签里的自定义提示
func bindingError(req interface{}, err error) error {
	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			field, ok := reflect.TypeOf(req).FieldByName(e.Field())
			if !ok {
				continue
			}
			if customMsg := field.Tag.Get("msg"); customMsg != "" {
				return apperrors.InvalidRequestError(customMsg)
			}
		}
	}
	return apperrors.InvalidRequestErrorDefault()
}
