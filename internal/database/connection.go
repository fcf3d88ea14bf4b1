package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config параметры подключения к базе
type Config struct {
	Driver          string // postgres, mysql, sqlite
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	LogLevel        string
}

// Connector пул соединений с базой. Создаётся один раз на процесс и
// передаётся в NewDatabase; соединения открываются лениво при первом запросе.
type Connector struct {
	db *gorm.DB
}

func Open(cfg Config) (*Connector, error) {
	if cfg.DSN == "" {
		return nil, errors.New("database DSN is empty")
	}

	var dialector gorm.Dialector
	switch strings.ToLower(cfg.Driver) {
	case "", "postgres", "postgresql":
		dialector = postgres.New(postgres.Config{
			DSN:                  cfg.DSN,
			PreferSimpleProtocol: true,
		})
	case "mysql":
		// DEFAULT CURRENT_TIMESTAMP в MySQL допустим только для datetime без долей секунды
		precision := 0
		dialector = mysql.New(mysql.Config{
			DSN:                      cfg.DSN,
			DefaultDatetimePrecision: &precision,
		})
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:               logger.Default.LogMode(gormLogLevel(cfg.LogLevel)),
		DisableAutomaticPing: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	return &Connector{db: db}, nil
}

// DB возвращает сессию gorm, привязанную к ctx
func (c *Connector) DB(ctx context.Context) *gorm.DB {
	return c.db.WithContext(ctx)
}

func (c *Connector) Dialect() string {
	return c.db.Dialector.Name()
}

// Query выполняет параметризованный запрос и возвращает строки.
// Любая ошибка (сеть, таймаут, кривой SQL) приходит как *Error с KindQuery.
func (c *Connector) Query(ctx context.Context, query string, args ...interface{}) ([]map[string]interface{}, error) {
	var rows []map[string]interface{}
	if err := c.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, newError(KindQuery, "query", err)
	}
	if rows == nil {
		rows = []map[string]interface{}{}
	}
	return rows, nil
}

func (c *Connector) Ping(ctx context.Context) error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return newError(KindQuery, "ping", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return newError(KindQuery, "ping", err)
	}
	return nil
}

func (c *Connector) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func gormLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
