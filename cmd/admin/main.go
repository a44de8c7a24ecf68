package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"telco-admin/internal/core/config"
	"telco-admin/internal/core/database"
	"telco-admin/internal/core/logger"
	"telco-admin/internal/core/observability"
	"telco-admin/internal/core/server"
	"telco-admin/internal/repo"
	"telco-admin/internal/service"
	"telco-admin/internal/transport/http/handler"
	"telco-admin/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.FromOptions(logger.Options{
		Level:  cfg.Log.Level,
		JSON:   cfg.Log.JSON,
		Rotate: logger.FileRotate(cfg.Log.Rotate),
	})
	defer cleanup()
	undo := logger.RedirectStdLog(log, zapcore.InfoLevel)
	defer undo()

	flush, err := observability.InitSentry(cfg.Sentry.DSN, cfg.App.Env, cfg.Sentry.Release)
	if err != nil {
		log.Warn("sentry disabled", zap.Error(err))
	}
	defer flush()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 后台端只读导出，不做迁移
	db := mustOpenDB(ctx, cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("db handle", zap.Error(err))
	}

	if err := service.RegisterMetrics(prometheus.DefaultRegisterer); err != nil {
		log.Warn("period metrics not registered", zap.Error(err))
	}
	periods := service.NewPeriodService(repo.NewPeriodRepo(db), log)
	router.Register(handler.NewExportModule(periods, repo.NewLineRepo(db), log))

	r := router.NewAdminEngine(log, router.Options{
		AllowOrigins: cfg.CORS.AllowOrigins,
		RPS:          cfg.App.HTTP.RPS,
		Burst:        cfg.App.HTTP.Burst,
		MaxInFlight:  cfg.App.HTTP.MaxInFlight,
		Timeout:      30 * time.Second,
	}, sqlDB.PingContext)

	addr := server.Addr(cfg.App.Admin.Host, cfg.App.Admin.Port)
	srv := server.BuildServer(addr, r, 5*time.Second, 60*time.Second, 60*time.Second)

	host4human := cfg.App.Admin.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.Admin.Port)
	log.Info("admin api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health/db"),
		zap.String("metrics", baseURL+"/metrics"),
		zap.String("admin_v1", baseURL+"/admin/v1"),
	)

	if err := server.Run(ctx, srv, log); err != nil {
		log.Fatal("admin api FAILED", zap.Error(err))
	}
	log.Info("admin api stopped gracefully")
}

func mustOpenDB(ctx context.Context, cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(ctx, database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		ConnectRetries:     cfg.DB.ConnectRetries,
		LogLevel:           cfg.DB.LogLevel,
	}, l)
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}
