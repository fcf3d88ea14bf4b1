package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port     string
	Database DatabaseConfig
	RedisURL string
	JWT      JWTConfig
	Log      LogConfig
}

type DatabaseConfig struct {
	Driver              string // postgres, mysql, sqlite
	URL                 string
	MaxOpenConns        int
	MaxIdleConns        int
	ConnMaxLifetimeMins int
	LogLevel            string // silent, error, warn, info
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

type LogConfig struct {
	Level  string
	Pretty bool
}

// Load читает .env.local / .env (если есть) и переменные окружения
func Load() (*Config, error) {
	if err := godotenv.Load(".env.local"); err != nil {
		_ = godotenv.Load()
	}

	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("PORT", "8080")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME_MINUTES", 30)
	v.SetDefault("DB_LOG_LEVEL", "warn")
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", false)

	return v
}

// FromViper собирает Config из уже настроенного viper
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port: v.GetString("PORT"),
		Database: DatabaseConfig{
			Driver:              strings.ToLower(v.GetString("DB_DRIVER")),
			URL:                 v.GetString("DATABASE_URL"),
			MaxOpenConns:        v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:        v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetimeMins: v.GetInt("DB_CONN_MAX_LIFETIME_MINUTES"),
			LogLevel:            v.GetString("DB_LOG_LEVEL"),
		},
		RedisURL: v.GetString("REDIS_URL"),
		JWT: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
			TTL:    v.GetDuration("JWT_TTL"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Pretty: v.GetBool("LOG_PRETTY"),
		},
	}

	// старое имя переменной из первой версии приложения
	if cfg.Database.URL == "" {
		cfg.Database.URL = v.GetString("POSTGRES_URL")
	}

	if cfg.Database.URL == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}
	if cfg.JWT.Secret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}
	if cfg.JWT.TTL <= 0 {
		return nil, errors.New("JWT_TTL must be positive")
	}

	return cfg, nil
}
