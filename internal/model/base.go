package model

import "time"

// BaseModel 公共模型字段（硬删除，不使用 gorm.DeletedAt）
type BaseModel struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
