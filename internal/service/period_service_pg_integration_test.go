//go:build integration

package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"telco-admin/internal/core/database"
	"telco-admin/internal/domain"
	"telco-admin/internal/repo"
	"telco-admin/internal/service"
	"telco-admin/internal/testutil/testdb"
)

// startPostgres 启动容器并用内嵌 goose 迁移建表
func startPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	t.Cleanup(cancel)

	pg, err := postgres.RunContainer(ctx,
		tc.WithImage("postgres:16-alpine"),
		postgres.WithDatabase("telco"),
		postgres.WithUsername("telco"),
		postgres.WithPassword("telco"),
		tc.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).WithStartupTimeout(time.Minute)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		stopCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
		defer stop()
		_ = pg.Terminate(stopCtx)
	})

	uri, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := database.NewGorm(ctx, database.Opts{
		Driver:         "postgres",
		DSN:            uri,
		MaxOpenConns:   10,
		ConnectRetries: 5,
		LogLevel:       "silent",
	}, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(ctx, db, "postgres", database.MigrateGoose))
	return db
}

func TestPeriodService_Postgres(t *testing.T) {
	db := startPostgres(t)
	testdb.SeedRepresentative(t, db, 1, "1000000010101")
	testdb.SeedCompany(t, db, 10, "NIT-10")
	svc := service.NewPeriodService(repo.NewPeriodRepo(db), zaptest.NewLogger(t))
	ctx := context.Background()
	date := func(s string) *domain.Date {
		v, err := domain.ParseDate(s)
		require.NoError(t, err)
		return &v
	}

	t.Run("concurrent opens for the same pair admit exactly one", func(t *testing.T) {
		const n = 8
		var (
			wg       sync.WaitGroup
			mu       sync.Mutex
			ok       int
			overlaps int
		)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(day int) {
				defer wg.Done()
				_, err := svc.Create(ctx, service.CreatePeriodInput{
					LegalRepresentativeID: 1,
					CompanyID:             10,
					StartDate:             date("2024-01-0" + string(rune('1'+day))),
				})
				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					ok++
				case assert.ErrorIs(t, err, domain.ErrOverlap):
					overlaps++
				}
			}(i)
		}
		wg.Wait()
		assert.Equal(t, 1, ok)
		assert.Equal(t, n-1, overlaps)

		active, err := svc.ActiveForCompany(ctx, 10)
		require.NoError(t, err)
		require.Len(t, active, 1)
		assert.True(t, active[0].IsActive)
	})

	t.Run("end then reopen the next day", func(t *testing.T) {
		active, err := svc.ActiveForCompany(ctx, 10)
		require.NoError(t, err)
		require.Len(t, active, 1)

		ended, err := svc.End(ctx, active[0].ID, service.EndPeriodInput{EndDate: date("2024-03-31")})
		require.NoError(t, err)
		assert.False(t, ended.IsActive)

		next, err := svc.Create(ctx, service.CreatePeriodInput{
			LegalRepresentativeID: 1,
			CompanyID:             10,
			StartDate:             date("2024-04-01"),
		})
		require.NoError(t, err)
		assert.True(t, next.IsActive)

		history, err := svc.HistoryForCompany(ctx, 10)
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, "2024-04-01", history[0].StartDate.String())
	})

	t.Run("database check keeps isActive consistent", func(t *testing.T) {
		err := db.Exec(`UPDATE representation_periods SET is_active = TRUE WHERE end_date IS NOT NULL`).Error
		assert.Error(t, err)
	})
}
