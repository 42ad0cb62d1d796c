package service

import (
	"testing"

	"shortlink-hub/internal/model"
	"shortlink-hub/internal/repository"
	"shortlink-hub/pkg/logging"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB 用内存 SQLite 替换全局 DB，每个测试各自独立建库
func setupTestDB(t *testing.T) {
	t.Helper()

	if logging.Logger == nil {
		logging.Logger = zap.NewNop()
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// 内存库在多连接下会各自独立，这里收敛到单连接
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.ShortLink{}, &model.User{}, &model.DailyStat{}))

	repository.DB = db
}
