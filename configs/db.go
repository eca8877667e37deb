package configs

import (
	"fmt"
	"strings"

	"brewpair/entity"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ConnectionDB opens the configured driver. SQLite always runs with foreign keys on,
// the cascade rules of the catalog depend on it.
func ConnectionDB(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite", "sqlite3", "":
		dialector = sqlite.Open(SQLiteDSN(cfg.DBSource))
	case "postgres":
		dialector = postgres.New(postgres.Config{DriverName: "postgres", DSN: cfg.DBSource})
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	return db, nil
}

// SQLiteDSN appends the pragmas we rely on unless the caller already set them.
func SQLiteDSN(source string) string {
	params := []string{}
	if !strings.Contains(source, "_foreign_keys") && !strings.Contains(source, "_fk") {
		params = append(params, "_foreign_keys=on")
	}
	if !strings.Contains(source, "mode=memory") && !strings.Contains(source, "_journal_mode") {
		params = append(params, "_journal_mode=WAL", "_busy_timeout=5000")
	}
	if len(params) == 0 {
		return source
	}
	sep := "?"
	if strings.Contains(source, "?") {
		sep = "&"
	}
	return source + sep + strings.Join(params, "&")
}

func SetupDatabase(db *gorm.DB) error {
	// Migrate the schema
	return db.AutoMigrate(
		&entity.User{},
		&entity.Shop{},
		&entity.Coffee{},
		&entity.Pastry{},
		&entity.PairingRule{},
		&entity.AnalyticsEvent{},
	)
}

// SqlxDB shares gorm's pool with the raw-SQL analytics queries.
func SqlxDB(db *gorm.DB) (*sqlx.DB, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	driver := "sqlite3"
	if db.Dialector.Name() == "postgres" {
		driver = "postgres"
	}
	return sqlx.NewDb(sqlDB, driver), nil
}
