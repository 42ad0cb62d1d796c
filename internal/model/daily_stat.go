package model

type DailyStat struct {
	BaseModel
	ShortLinkID uint   `gorm:"index" json:"shortLinkId"`
	Date        string `gorm:"type:date;index" json:"date"` // YYYY-MM-DD
	PV          int64  `gorm:"default:0" json:"pv"`
	UV          int64  `gorm:"default:0" json:"uv"`
}
