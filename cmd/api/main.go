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

	"telco-admin/internal/core/cache"
	"telco-admin/internal/core/config"
	"telco-admin/internal/core/database"
	"telco-admin/internal/core/logger"
	"telco-admin/internal/core/observability"
	"telco-admin/internal/core/server"
	"telco-admin/internal/feature/catalog"
	"telco-admin/internal/feature/lines"
	"telco-admin/internal/feature/registry"
	"telco-admin/internal/feature/staff"
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

	// 数据库（失败会直接 Fatal）
	db := mustOpenDB(ctx, cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))
	if err := database.Migrate(ctx, db, cfg.DB.Driver, cfg.DB.Migrate); err != nil {
		log.Fatal("migrate failed", zap.String("mode", cfg.DB.Migrate), zap.Error(err))
	}
	log.Info("migrate done", zap.String("mode", cfg.DB.Migrate))

	// 目录缓存（未配置 redis.addr 时为 nil，直接查库）
	c := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.TTL())
	if c != nil {
		if err := c.Ping(ctx); err != nil {
			log.Warn("redis unreachable, catalog cache bypassed", zap.Error(err))
			_ = c.Close()
			c = nil
		} else {
			defer c.Close()
		}
	}

	if err := service.RegisterMetrics(prometheus.DefaultRegisterer); err != nil {
		log.Warn("period metrics not registered", zap.Error(err))
	}
	periods := service.NewPeriodService(repo.NewPeriodRepo(db), log)
	router.Register(
		handler.NewPeriodModule(periods, log),
		registry.NewModule(db, log),
		catalog.NewModule(db, c, log),
		staff.NewModule(db, log),
		lines.NewModule(db, log),
	)

	r := router.NewAPIEngine(log, router.Options{
		AllowOrigins: cfg.CORS.AllowOrigins,
		RPS:          cfg.App.HTTP.RPS,
		Burst:        cfg.App.HTTP.Burst,
		MaxInFlight:  cfg.App.HTTP.MaxInFlight,
		Timeout:      time.Duration(cfg.App.HTTP.RequestTimeoutSec) * time.Second,
	})

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("telco api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("api_v1", baseURL+"/api/v1"),
	)

	if err := server.Run(ctx, srv, log); err != nil {
		log.Fatal("telco api FAILED", zap.Error(err))
	}
	log.Info("telco api stopped gracefully")
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
