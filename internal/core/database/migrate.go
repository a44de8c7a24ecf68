package database

import (
	"context"
	"fmt"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"telco-admin/internal/core/database/migrations"
	"telco-admin/internal/domain"
)

// Models 参与 AutoMigrate 的全部模型（顺序无关，gorm 按依赖排序）
var Models = []any{
	&domain.Telco{},
	&domain.Plan{},
	&domain.Advisor{},
	&domain.Position{},
	&domain.Company{},
	&domain.LegalRepresentative{},
	&domain.RepresentationPeriod{},
	&domain.Employee{},
	&domain.Line{},
}

// 迁移方式
const (
	MigrateAuto  = "auto"  // gorm AutoMigrate
	MigrateGoose = "goose" // 内嵌 SQL（仅 postgres）
	MigrateNone  = "none"
)

// gooseUp 测试可替换
var gooseUp = func(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, sqlDB, "postgres")
}

// Migrate 按配置执行表结构迁移
func Migrate(ctx context.Context, db *gorm.DB, driver, mode string) error {
	switch mode {
	case "", MigrateAuto:
		return db.WithContext(ctx).AutoMigrate(Models...)
	case MigrateGoose:
		if driver != "postgres" {
			return fmt.Errorf("goose migrations only ship for postgres, got %q", driver)
		}
		return gooseUp(ctx, db)
	case MigrateNone:
		return nil
	default:
		return fmt.Errorf("unknown migrate mode %q", mode)
	}
}
