package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shortlink-hub/internal/handler"
	"shortlink-hub/internal/i18n"
	"shortlink-hub/internal/middleware"
	"shortlink-hub/internal/repository"
	"shortlink-hub/internal/service"
	"shortlink-hub/pkg/logging"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func initConfig() {
	wd, _ := os.Getwd()
	log.Printf("Loading config from: %s/config.yaml", wd)

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Failed to read config file: %v", err)
	}
}

func startServer(r *gin.Engine) {
	addr := viper.GetString("server.addr")
	if addr == "" {
		addr = ":8080"
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	// 启动服务器
	go func() {
		logging.Logger.Info("Server is running on " + addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 等待中断信号以优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logging.Logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	if repository.RedisPool != nil {
		if err := repository.RedisPool.Close(); err != nil {
			logging.Logger.Warn("Redis pool close failed", zap.Error(err))
		}
	}

	logging.Logger.Info("Server exiting")
}

func main() {
	initConfig()

	logging.InitLoggerFromConfig()
	logging.Logger.Info("Application started")

	repository.InitDB(logging.Logger, logging.AtomicLevel)
	repository.InitRedis()

	// 初始化 i18n（加载 TOML 文件）
	bundle, err := i18n.InitI18n([]string{
		"./i18n/en.toml",
		"./i18n/zh.toml",
	}, "en")
	if err != nil {
		panic(err)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	// 注册全局错误中间件
	r.Use(middleware.GlobalErrorMiddleware())
	r.Use(middleware.ZapGinLogger(logging.Logger))
	r.Use(middleware.CorsMiddleware())
	r.Use(middleware.I18nMiddleware(bundle))

	api := r.Group("/api")
	{
		api.POST("/auth/register", handler.RegisterHandler)
		api.POST("/auth/login", handler.LoginHandler)

		// 匿名解析接口，供边缘层和内部调用
		api.GET("/shortlink/redirect/:shortCode", handler.ResolveShortLinkHandler)

		authed := api.Group("", middleware.JWTAuth())
		{
			authed.POST("/shortlink", handler.CreateShortLinkHandler)
			authed.GET("/shortlink", handler.ListShortLinksHandler)
			authed.GET("/shortlink/:id", handler.GetShortLinkHandler)
			authed.PUT("/shortlink/:id", handler.UpdateShortLinkHandler)
			authed.DELETE("/shortlink/:id", handler.DeleteShortLinkHandler)
			authed.GET("/shortlink/:id/stats", handler.GetShortLinkStatsHandler)
		}
	}

	// 边缘跳转路径
	r.GET("/s/:code", handler.EdgeRedirectHandler)

	c := cron.New()

	// 定时任务：每十分钟把 Redis 统计落库一次
	_, addErr := c.AddFunc("*/10 * * * *", func() {
		if err := service.StatisticalData(); err != nil {
			logging.Logger.Error("Failed to flush click statistics via cron job", zap.Error(err))
		}
	})

	if addErr != nil {
		logging.Logger.Fatal("Failed to schedule cron job", zap.Error(addErr))
	}

	c.Start()

	startServer(r)
}
