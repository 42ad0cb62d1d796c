package service

import (
	"shortlink-hub/constant"
	"shortlink-hub/pkg/logging"

	"github.com/gomodule/redigo/redis"
	"go.uber.org/zap"
)

// RecordDailyPV 记录每日 PV
func RecordDailyPV(conn redis.Conn, shortCode string) {
	dailyPvKey := constant.GetDailyPVKey(constant.GetDateKey())

	_, err := conn.Do("HINCRBY", dailyPvKey, shortCode, 1)
	if err != nil {
		logging.Logger.Error("Failed to record daily PV",
			zap.String("key", dailyPvKey),
			zap.String("short_code", shortCode),
			zap.Error(err))
	}

	_, err = conn.Do("EXPIRE", dailyPvKey, 3*24*3600) // 3天过期
	if err != nil {
		logging.Logger.Error("Failed to record daily PV Expire",
			zap.String("key", dailyPvKey),
			zap.String("short_code", shortCode),
			zap.Error(err))
	}
}

// RecordDailyUV 记录每日 UV（HyperLogLog，按访客 IP 去重）
func RecordDailyUV(conn redis.Conn, shortCode string, ip string) {
	dailyUvKey := constant.GetDailyUVKey(shortCode, constant.GetDateKey())

	_, err := conn.Do("PFADD", dailyUvKey, ip)
	if err != nil {
		logging.Logger.Error("Failed to record daily UV",
			zap.String("key", dailyUvKey),
			zap.String("ip", ip),
			zap.Error(err))
	}

	_, err = conn.Do("EXPIRE", dailyUvKey, 3*24*3600) // 3天过期
	if err != nil {
		logging.Logger.Error("Failed to record daily UV Expire",
			zap.String("key", dailyUvKey),
			zap.String("short_code", shortCode),
			zap.Error(err))
	}
}

// RecordTotalUV 记录总 UV
func RecordTotalUV(conn redis.Conn, shortCode string, ip string) {
	totalUvKey := constant.GetTotalUVKey(shortCode)
	_, err := conn.Do("PFADD", totalUvKey, ip)
	if err != nil {
		logging.Logger.Error("Failed to record total UV",
			zap.String("key", totalUvKey),
			zap.String("ip", ip),
			zap.Error(err))
	}
}

// GetDailyPv 获取某日期的短链接访问量（PV）
func GetDailyPv(conn redis.Conn, shortCode string, date string) (int64, error) {
	dailyPvKey := constant.GetDailyPVKey(date)

	reply, err := conn.Do("HGET", dailyPvKey, shortCode)
	if err != nil {
		logging.Logger.Error("Failed to get daily PV",
			zap.String("key", dailyPvKey),
			zap.String("short_code", shortCode),
			zap.Error(err))
		return 0, err
	}
	if reply == nil {
		return 0, nil
	}

	result, err := redis.Int64(reply, err)
	if err != nil {
		logging.Logger.Error("Failed to parse daily PV",
			zap.String("key", dailyPvKey),
			zap.String("short_code", shortCode),
			zap.Error(err))
		return 0, err
	}

	return result, nil
}

// GetDailyUv 获取某日期的短链接独立访客数（UV）
func GetDailyUv(conn redis.Conn, shortCode string, date string) (int64, error) {
	dailyUvKey := constant.GetDailyUVKey(shortCode, date)

	reply, err := conn.Do("PFCOUNT", dailyUvKey)
	if err != nil {
		logging.Logger.Error("Failed to get daily UV",
			zap.String("key", dailyUvKey),
			zap.String("short_code", shortCode),
			zap.Error(err))
		return 0, err
	}

	result, err := redis.Int64(reply, err)
	if err != nil {
		logging.Logger.Error("Failed to parse daily UV",
			zap.String("key", dailyUvKey),
			zap.String("short_code", shortCode),
			zap.Error(err))
		return 0, err
	}

	return result, nil
}

// GetTotalUv 获取短链接的总独立访客数（UV）
func GetTotalUv(conn redis.Conn, shortCode string) (int64, error) {
	totalUvKey := constant.GetTotalUVKey(shortCode)

	reply, err := conn.Do("PFCOUNT", totalUvKey)
	if err != nil {
		logging.Logger.Error("Failed to get total UV",
			zap.String("key", totalUvKey),
			zap.String("short_code", shortCode),
			zap.Error(err))
		return 0, err
	}

	result, err := redis.Int64(reply, err)
	if err != nil {
		logging.Logger.Error("Failed to parse total UV",
			zap.String("key", totalUvKey),
			zap.String("short_code", shortCode),
			zap.Error(err))
		return 0, err
	}

	return result, nil
}
