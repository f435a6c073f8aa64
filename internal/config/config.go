package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string

	HTTPAddr string

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int

	RateLimit RateLimitConfig
}

// RateLimitConfig controls the optional redis-backed limiter on quote endpoints.
type RateLimitConfig struct {
	Enabled       bool
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	QuoteRate     float64
	QuoteBurst    int
}

// Load loads configuration from an optional .env file, an optional
// promusic.yaml, and environment variables. Environment wins.
func Load() Config {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("promusic")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/promusic")
	_ = v.ReadInConfig()

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("app_service", "promusic")
	v.SetDefault("app_version", "0.1.0")
	v.SetDefault("environment", "development")
	v.SetDefault("http_addr", ":8080")

	v.SetDefault("database_type", "sqlite")
	v.SetDefault("database_host", "localhost")
	v.SetDefault("database_port", "5432")
	v.SetDefault("database_name", "promusic")
	v.SetDefault("database_user", "postgres")
	v.SetDefault("database_password", "")
	v.SetDefault("database_sslmode", "disable")
	v.SetDefault("database_max_idle_conn", 2)
	v.SetDefault("database_max_open_conn", 10)
	v.SetDefault("database_conn_max_lifetime", 3600)

	v.SetDefault("rate_limit_enabled", false)
	v.SetDefault("rate_limit_redis_addr", "")
	v.SetDefault("rate_limit_redis_password", "")
	v.SetDefault("rate_limit_redis_db", 0)
	v.SetDefault("rate_limit_quote_rate", 10.0)
	v.SetDefault("rate_limit_quote_burst", 20)

	return Config{
		AppName:     v.GetString("app_service"),
		AppVersion:  v.GetString("app_version"),
		Environment: v.GetString("environment"),

		HTTPAddr: v.GetString("http_addr"),

		DBType:            v.GetString("database_type"),
		DBHost:            v.GetString("database_host"),
		DBPort:            v.GetString("database_port"),
		DBName:            v.GetString("database_name"),
		DBUser:            v.GetString("database_user"),
		DBPassword:        v.GetString("database_password"),
		DBSSLMode:         v.GetString("database_sslmode"),
		DBMaxIdleConn:     v.GetInt("database_max_idle_conn"),
		DBMaxOpenConn:     v.GetInt("database_max_open_conn"),
		DBConnMaxLifetime: v.GetInt("database_conn_max_lifetime"),

		RateLimit: RateLimitConfig{
			Enabled:       v.GetBool("rate_limit_enabled"),
			RedisAddr:     strings.TrimSpace(v.GetString("rate_limit_redis_addr")),
			RedisPassword: strings.TrimSpace(v.GetString("rate_limit_redis_password")),
			RedisDB:       v.GetInt("rate_limit_redis_db"),
			QuoteRate:     v.GetFloat64("rate_limit_quote_rate"),
			QuoteBurst:    v.GetInt("rate_limit_quote_burst"),
		},
	}
}
