package service

import (
	"context"
	"errors"
	"time"

	"shortlink-hub/constant"
	"shortlink-hub/internal/apperrors"
	"shortlink-hub/internal/dto"
	"shortlink-hub/internal/model"
	"shortlink-hub/internal/repository"
	"shortlink-hub/pkg/logging"
	"shortlink-hub/pkg/utils"
	"shortlink-hub/response"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CreateShortLink 创建短链
func CreateShortLink(ctx context.Context, req dto.CreateShortLinkRequest, userID uint) (*model.ShortLink, error) {
	if err := utils.ValidateTargetURL(req.TargetURL); err != nil {
		return nil, apperrors.InvalidURLError(err.Error())
	}

	shortCode := req.ShortCode
	if shortCode != "" {
		// 调用方自带短码：先校验格式，再检查是否被占用
		if err := utils.ValidateShortCode(shortCode); err != nil {
			return nil, apperrors.InvalidCodeError(err.Error())
		}

		exists, err := shortCodeExists(shortCode)
		if err != nil {
			logging.Logger.Error("查询短码失败", zap.String("short_code", shortCode), zap.Error(err))
			return nil, apperrors.SystemErrorDefault()
		}
		if exists {
			return nil, apperrors.CodeConflictError()
		}
	} else {
		code, err := GenerateShortCode()
		if err != nil {
			logging.Logger.Error("生成短码失败", zap.Error(err))
			return nil, apperrors.SystemErrorDefault()
		}
		shortCode = code
	}

	var expiresAt *time.Time
	if req.ExpiresAt != "" {
		t, err := dto.ParseExpiresAt(req.ExpiresAt)
		if err != nil {
			return nil, apperrors.InvalidRequestError(err.Error())
		}
		expiresAt = &t
	}

	// 缺省启用
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	shortLink := &model.ShortLink{
		ShortCode:   shortCode,
		TargetURL:   req.TargetURL,
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		IsActive:    isActive,
		ExpiresAt:   expiresAt,
		CreatedBy:   userID,
	}

	if err := repository.DB.Create(shortLink).Error; err != nil {
		logging.Logger.Error("数据库操作失败", zap.Error(err))
		return nil, apperrors.SystemErrorDefault()
	}

	// 新短码生效后清掉可能存在的空值缓存
	dropMissCache(shortCode)

	return shortLink, nil
}

// ListShortLinks 分页查询当前用户的短链列表
func ListShortLinks(ctx context.Context, userID uint, page, pageSize int, search, tag string) (*response.PageResponse[model.ShortLink], error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10 // 默认每页10条，最大100条
	}

	// 仅限本人创建的记录
	db := repository.DB.Model(&model.ShortLink{}).Where("created_by = ?", userID)

	if search != "" {
		pattern := "%" + search + "%"
		db = db.Where(
			"title LIKE ? OR description LIKE ? OR target_url LIKE ? OR short_code LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	if tag != "" {
		// tags 以 JSON 数组存储，按序列化后的元素匹配
		db = db.Where("tags LIKE ?", `%"`+tag+`"%`)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, apperrors.SystemError("统计短链记录数失败: " + err.Error())
	}

	if total == 0 {
		return &response.PageResponse[model.ShortLink]{
			Page:     page,
			PageSize: pageSize,
			Total:    0,
			Data:     []model.ShortLink{},
		}, nil
	}

	var links []model.ShortLink
	if err := db.
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Order("id DESC").
		Find(&links).Error; err != nil {
		logging.Logger.Error("数据库操作失败", zap.Error(err))
		return nil, apperrors.SystemErrorDefault()
	}

	totalPages := (int(total) + pageSize - 1) / pageSize

	return &response.PageResponse[model.ShortLink]{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		Data:       links,
	}, nil
}

// GetShortLink 查询短链详情（仅创建者可见）
func GetShortLink(ctx context.Context, id, userID uint) (*model.ShortLink, error) {
	return findOwnedShortLink(id, userID)
}

// UpdateShortLink 更新短链（仅创建者，id/short_code/created_by 不可变）
func UpdateShortLink(ctx context.Context, id, userID uint, req dto.UpdateShortLinkRequest) (*model.ShortLink, error) {
	existing, err := findOwnedShortLink(id, userID)
	if err != nil {
		return nil, err
	}

	if req.TargetURL != nil {
		if err := utils.ValidateTargetURL(*req.TargetURL); err != nil {
			return nil, apperrors.InvalidURLError(err.Error())
		}
		existing.TargetURL = *req.TargetURL
	}
	if req.Title != nil {
		existing.Title = *req.Title
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}
	if req.Tags != nil {
		existing.Tags = *req.Tags
	}
	if req.ExpiresAt != nil {
		if *req.ExpiresAt == "" {
			existing.ExpiresAt = nil
		} else {
			t, err := dto.ParseExpiresAt(*req.ExpiresAt)
			if err != nil {
				return nil, apperrors.InvalidRequestError(err.Error())
			}
			existing.ExpiresAt = &t
		}
	}
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}

	// click_count 由解析路径原子累加，更新时不回写旧值
	if err := repository.DB.Omit("click_count").Save(existing).Error; err != nil {
		logging.Logger.Error("更新短链失败",
			zap.Uint("id", id),
			zap.Error(err))
		return nil, apperrors.SystemErrorDefault()
	}

	return existing, nil
}

// DeleteShortLink 删除短链（仅创建者，硬删除）
func DeleteShortLink(ctx context.Context, id, userID uint) error {
	existing, err := findOwnedShortLink(id, userID)
	if err != nil {
		return err
	}

	if err := repository.DB.Delete(&model.ShortLink{}, existing.ID).Error; err != nil {
		logging.Logger.Error("删除短链失败",
			zap.Uint("id", id),
			zap.Error(err))
		return apperrors.SystemErrorDefault()
	}

	return nil
}

// ResolveShortCode 公开的短码解析：校验可用性并精确加一次点击计数。
// 计数与可用性检查合并为同一条带条件的原子 UPDATE，并发解析不会竞争。
func ResolveShortCode(ctx context.Context, code string) (string, error) {
	res := repository.DB.Model(&model.ShortLink{}).
		Where("short_code = ? AND is_active = ? AND (expires_at IS NULL OR expires_at > ?)",
			code, true, time.Now()).
		UpdateColumn("click_count", gorm.Expr("click_count + ?", 1))
	if res.Error != nil {
		logging.Logger.Error("短码解析更新失败", zap.String("short_code", code), zap.Error(res.Error))
		return "", apperrors.SystemErrorDefault()
	}

	if res.RowsAffected == 0 {
		// 没命中条件，再读一次区分失败原因
		return "", classifyResolveFailure(code)
	}

	var link model.ShortLink
	if err := repository.DB.Select("target_url").Where("short_code = ?", code).First(&link).Error; err != nil {
		logging.Logger.Error("短码解析读取失败", zap.String("short_code", code), zap.Error(err))
		return "", apperrors.SystemErrorDefault()
	}

	return link.TargetURL, nil
}

// classifyResolveFailure 区分解析失败的具体原因：不存在 / 已禁用 / 已过期
func classifyResolveFailure(code string) error {
	var link model.ShortLink
	err := repository.DB.Where("short_code = ?", code).First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.LinkNotFoundError()
	}
	if err != nil {
		logging.Logger.Error("查询短链失败", zap.String("short_code", code), zap.Error(err))
		return apperrors.SystemErrorDefault()
	}

	if !link.IsActive {
		return apperrors.LinkInactiveError()
	}
	return apperrors.LinkExpiredError()
}

// findOwnedShortLink 统一的归属检查：先确认记录存在，再确认调用者是创建者。
// Update/Delete/FindOne 都走这里，避免每个操作各写一份检查。
func findOwnedShortLink(id, userID uint) (*model.ShortLink, error) {
	var link model.ShortLink
	if err := repository.DB.First(&link, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.LinkNotFoundError()
		}
		logging.Logger.Error("查询短链失败", zap.Uint("id", id), zap.Error(err))
		return nil, apperrors.SystemErrorDefault()
	}

	if link.CreatedBy != userID {
		return nil, apperrors.ForbiddenError()
	}

	return &link, nil
}

// dropMissCache 删除短码对应的空值缓存（没有 Redis 时跳过）
func dropMissCache(code string) {
	conn := repository.RedisConn()
	if conn == nil {
		return
	}
	defer repository.CloseRedisConn(conn)

	if _, err := conn.Do("DEL", constant.GetMissCodeKey(code)); err != nil {
		logging.Logger.Warn("Redis 删除空值缓存失败",
			zap.String("short_code", code),
			zap.Error(err))
	}
}
