package service

import (
	"context"
	"time"

	"shortlink-hub/internal/model"
	"shortlink-hub/internal/repository"
	"shortlink-hub/pkg/logging"

	"github.com/gomodule/redigo/redis"
	"go.uber.org/zap"
)

// ShortLinkStats 短链统计视图：精确点击数 + Redis 去重访客数 + 每日明细
type ShortLinkStats struct {
	ShortCode  string            `json:"shortCode"`
	ClickCount int64             `json:"clickCount"`
	TotalUV    int64             `json:"totalUv"`
	Daily      []model.DailyStat `json:"daily"`
}

// GetShortLinkStats 查询短链统计（仅创建者）
func GetShortLinkStats(ctx context.Context, id, userID uint) (*ShortLinkStats, error) {
	link, err := findOwnedShortLink(id, userID)
	if err != nil {
		return nil, err
	}

	var daily []model.DailyStat
	if err := repository.DB.
		Where("short_link_id = ?", link.ID).
		Order("date DESC").
		Find(&daily).Error; err != nil {
		logging.Logger.Error("查询每日统计失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	stats := &ShortLinkStats{
		ShortCode:  link.ShortCode,
		ClickCount: link.ClickCount,
		TotalUV:    0,
		Daily:      daily,
	}

	// Redis 不可用时跳过实时 UV，返回已落库的数据
	conn := repository.RedisConn()
	if conn != nil {
		defer repository.CloseRedisConn(conn)
		if uv, err := GetTotalUv(conn, link.ShortCode); err == nil {
			stats.TotalUV = uv
		}
	}

	return stats, nil
}

// StatisticalData 把 Redis 中当日的 PV/UV 计数落库到 daily_stats，由 cron 周期触发
func StatisticalData() error {
	logging.Logger.Info("StatisticalData start")

	conn := repository.RedisConn()
	if conn == nil {
		logging.Logger.Warn("StatisticalData skipped: redis not initialized")
		return nil
	}
	defer repository.CloseRedisConn(conn)

	var links []model.ShortLink
	if err := repository.DB.Find(&links).Error; err != nil {
		logging.Logger.Error("获取短链列表失败", zap.Error(err))
		return err
	}

	today := time.Now().Format("2006-01-02")
	redisDate := time.Now().Format("20060102")

	for _, link := range links {
		doStatisticalData(conn, link, today, redisDate)
	}

	logging.Logger.Info("StatisticalData end")
	return nil
}

func doStatisticalData(conn redis.Conn, link model.ShortLink, today, redisDate string) {
	// 禁用且一天以上没有更新过的短链跳过同步
	if !link.IsActive && !link.UpdatedAt.IsZero() {
		yesterday := time.Now().AddDate(0, 0, -1)
		if link.UpdatedAt.Before(yesterday) {
			return
		}
	}

	dailyPv, _ := GetDailyPv(conn, link.ShortCode, redisDate)
	dailyUv, _ := GetDailyUv(conn, link.ShortCode, redisDate)

	if dailyPv == 0 && dailyUv == 0 {
		return
	}

	dailyStat := &model.DailyStat{
		ShortLinkID: link.ID,
		Date:        today,
		PV:          dailyPv,
		UV:          dailyUv,
	}

	db := repository.DB.
		Where("short_link_id = ? AND date = ?", link.ID, today).
		Assign("pv", dailyPv, "uv", dailyUv).
		FirstOrCreate(dailyStat)

	if db.Error != nil {
		logging.Logger.Error("Failed to insert or update daily stat",
			zap.Uint("short_link_id", link.ID),
			zap.String("date", today),
			zap.Int64("pv", dailyPv),
			zap.Int64("uv", dailyUv),
			zap.Error(db.Error),
		)
	}
}
