package service

import (
	"context"
	"fmt"
	"skillbloom_backend/internal/model"
	"skillbloom_backend/internal/repository"
	"skillbloom_backend/pkg/database"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func seedUser(t *testing.T, db *gorm.DB, u *model.User) *model.User {
	t.Helper()
	if u.Email == "" {
		u.Email = uuid.NewString() + "@example.com"
	}
	if u.Password == "" {
		u.Password = "x"
	}
	require.NoError(t, repository.NewUserRepository(db).Create(context.Background(), u))
	return u
}

type mockCompleter struct {
	mock.Mock
}

func (m *mockCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// blockingCompleter 一直等到 ctx 结束
type blockingCompleter struct{}

func (blockingCompleter) Complete(ctx context.Context, _ string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}
