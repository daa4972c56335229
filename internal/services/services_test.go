package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/martapp/backend/internal/config"
	"github.com/martapp/backend/internal/models"
	"github.com/martapp/backend/internal/store"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.CartItem{},
		&models.FavoriteProduct{},
		&models.Preference{},
		&models.Receipt{},
		&models.SystemLog{},
	))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:       "test-secret",
		JWTAccessExpiry: time.Hour,
	}
}

func newAuthFixture(t *testing.T) (*AuthService, *store.UserStore, *store.SessionStore) {
	t.Helper()
	db := newTestDB(t)
	users := store.NewUserStore(db)
	session, err := store.NewSessionStore(db)
	require.NoError(t, err)
	return NewAuthService(users, session, testConfig()), users, session
}
