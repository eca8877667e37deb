// Package testutil opens throwaway SQLite databases for package tests.
package testutil

import (
	"context"
	"fmt"
	"testing"

	"brewpair/configs"
	"brewpair/entity"
	"brewpair/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDB returns a migrated in-memory database private to t.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := configs.SQLiteDSN(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection keeps the shared-cache memory db free of table locks
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, configs.SetupDatabase(db))
	return db
}

// NewDemoDB is NewDB plus the Gloria Jeans sample menu.
func NewDemoDB(t *testing.T) (*gorm.DB, *entity.Shop) {
	t.Helper()
	db := NewDB(t)
	shop, err := configs.SeedDemo(db)
	require.NoError(t, err)
	return db, shop
}

func Coffee(t *testing.T, db *gorm.DB, shopID, name string) *entity.Coffee {
	t.Helper()
	var c entity.Coffee
	require.NoError(t, db.Where("shop_id = ? AND name = ?", shopID, name).First(&c).Error)
	return &c
}

func Pastry(t *testing.T, db *gorm.DB, shopID, name string) *entity.Pastry {
	t.Helper()
	var p entity.Pastry
	require.NoError(t, db.Where("shop_id = ? AND name = ?", shopID, name).First(&p).Error)
	return &p
}

func Pairing(t *testing.T, db *gorm.DB, coffeeID, pastryID string) *entity.PairingRule {
	t.Helper()
	var r entity.PairingRule
	require.NoError(t, db.Where("coffee_id = ? AND pastry_id = ?", coffeeID, pastryID).First(&r).Error)
	return &r
}

// Events returns every event of a session, oldest first.
func Events(t *testing.T, db *gorm.DB, sessionID string) []entity.AnalyticsEvent {
	t.Helper()
	out, err := repository.NewEventRepository(db).FindBySession(context.Background(), sessionID)
	require.NoError(t, err)
	return out
}

func CountEvents(t *testing.T, db *gorm.DB, kind entity.EventKind) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&entity.AnalyticsEvent{}).Where("event_type = ?", kind).Count(&n).Error)
	return n
}
