package dto

import (
	"fmt"
	"time"
)

// CreateShortLinkRequest 用于创建短链的请求参数
type CreateShortLinkRequest struct {
	TargetURL   string   `json:"originalUrl" binding:"required" msg:"originalUrl must be an absolute http/https URL"`
	Title       string   `json:"title" binding:"max=255"`
	Description string   `json:"description" binding:"max=512"`
	ShortCode   string   `json:"shortCode"` // 可选，缺省时自动生成
	Tags        []string `json:"tags"`
	ExpiresAt   string   `json:"expiresAt"` // ISO-8601，可选
	IsActive    *bool    `json:"isActive"`  // 缺省为 true
}

// UpdateShortLinkRequest 用于更新短链的请求参数，所有字段可选
type UpdateShortLinkRequest struct {
	TargetURL   *string   `json:"originalUrl"`
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Tags        *[]string `json:"tags"`
	ExpiresAt   *string   `json:"expiresAt"` // ISO-8601
	IsActive    *bool     `json:"isActive"`
}

// ParseExpiresAt 解析 ISO-8601 时间字符串
func ParseExpiresAt(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("error.expires_at_invalid")
	}
	return t, nil
}
