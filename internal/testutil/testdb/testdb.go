// Package testdb 测试用内存 SQLite
package testdb

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"telco-admin/internal/core/database"
	"telco-admin/internal/domain"
)

// Open 每个测试独立的 :memory: 库（单连接，避免连接池拿到空库）
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(database.Models...), "failed to migrate test database")
	return db
}

// SeedRepresentative 按指定 ID 写入代表人
func SeedRepresentative(t testing.TB, db *gorm.DB, id uint, cui string) *domain.LegalRepresentative {
	t.Helper()
	r := &domain.LegalRepresentative{
		Model:     domain.Model{ID: id},
		FirstName: "Rep",
		LastName:  cui,
		CUI:       cui,
	}
	require.NoError(t, db.Create(r).Error)
	return r
}

// SeedCompany 按指定 ID 写入公司
func SeedCompany(t testing.TB, db *gorm.DB, id uint, taxID string) *domain.Company {
	t.Helper()
	c := &domain.Company{
		Model: domain.Model{ID: id},
		Name:  "Empresa " + taxID,
		TaxID: taxID,
	}
	require.NoError(t, db.Create(c).Error)
	return c
}
