package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"blogcms/internal/config"
	"blogcms/internal/logger"
	"blogcms/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Init opens the configured database and migrates the schema.
func Init(cfg config.DatabaseConfig, mode string) (*gorm.DB, error) {
	conn, err := Open(cfg, mode)
	if err != nil {
		return nil, err
	}
	logger.Infow("database_connected", "driver", cfg.Driver)

	if err := Migrate(conn); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	logger.Infow("database_migrated")
	return conn, nil
}

// Open 根据驱动名创建 gorm 连接
func Open(cfg config.DatabaseConfig, mode string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", "sqlite":
		if err := ensureSQLiteDir(cfg.DSN); err != nil {
			return nil, err
		}
		dialector = sqlite.Open(cfg.DSN)
	case "postgres", "postgresql":
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	level := gormlogger.Warn
	if strings.EqualFold(mode, "debug") {
		level = gormlogger.Info
	}
	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(logger.StdLogger(), gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	applyPool(sqlDB, cfg.Pool)
	return conn, nil
}

// Migrate creates or updates the blog tables and their indexes.
func Migrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&models.Post{},
		&models.Comment{},
	)
}

// ensureSQLiteDir creates the parent directory of a file backed sqlite DSN.
func ensureSQLiteDir(dsn string) error {
	path := dsn
	if i := strings.Index(path, "?"); i >= 0 {
		path = path[:i]
	}
	if path == "" || strings.HasPrefix(path, "file:") || strings.Contains(path, ":memory:") {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create sqlite dir: %w", err)
	}
	return nil
}

func applyPool(sqlDB *sql.DB, pool config.DatabasePoolConfig) {
	if pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns >= 0 {
		sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetimeSeconds > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(pool.ConnMaxLifetimeSeconds) * time.Second)
	}
	if pool.ConnMaxIdleTimeSeconds > 0 {
		sqlDB.SetConnMaxIdleTime(time.Duration(pool.ConnMaxIdleTimeSeconds) * time.Second)
	}
}
