package model

import "time"

type ShortLink struct {
	BaseModel
	ShortCode   string     `gorm:"uniqueIndex;size:32;not null" json:"shortCode"`
	TargetURL   string     `gorm:"size:2048;not null" json:"originalUrl"`
	Title       string     `gorm:"size:255" json:"title"`
	Description string     `gorm:"size:512" json:"description"`
	Tags        []string   `gorm:"serializer:json;type:text" json:"tags"`
	IsActive    bool       `json:"isActive"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
	ClickCount  int64      `gorm:"default:0" json:"clickCount"`
	CreatedBy   uint       `gorm:"index;not null" json:"createdBy"`
}
