package constant

import (
	"fmt"
	"time"
)

// 常量定义
const (
	BasePrefix = "redirect:"
	Separator  = ":"
)

// Redis 键模板
const (
	MissCode = BasePrefix + "miss" + Separator + "%s"                   // redirect:miss:shortcode（防穿透空值缓存）
	DailyPV  = BasePrefix + "pv" + Separator + "%s"                     // redirect:pv:yyyyMMdd
	DailyUV  = BasePrefix + "uv" + Separator + "%s" + Separator + "%s"  // redirect:uv:yyyyMMdd:shortcode
	TotalUV  = BasePrefix + "total_uv" + Separator + "%s"               // redirect:total_uv:shortcode
)

// MissCacheSeconds 空值缓存过期时间（秒）
const MissCacheSeconds = 300

// GetMissCodeKey 生成未知短码的空值缓存 key
func GetMissCodeKey(shortcode string) string {
	return fmt.Sprintf(MissCode, shortcode)
}

// GetDateKey 生成当前日期的键（格式：yyyyMMdd）
func GetDateKey() string {
	return time.Now().Format("20060102")
}

// GetDailyPVKey 生成每日 PV 键（格式：redirect:pv:yyyyMMdd）
func GetDailyPVKey(date string) string {
	return fmt.Sprintf(DailyPV, date)
}

// GetDailyUVKey 生成每日 UV 键（格式：redirect:uv:yyyyMMdd:shortcode）
func GetDailyUVKey(shortcode, date string) string {
	return fmt.Sprintf(DailyUV, date, shortcode)
}

// GetTotalUVKey 生成总 UV 键（格式：redirect:total_uv:shortcode）
func GetTotalUVKey(shortcode string) string {
	return fmt.Sprintf(TotalUV, shortcode)
}
