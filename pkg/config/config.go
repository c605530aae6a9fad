package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	CORS     CORSConfig
	Log      LogConfig
	Vouchers VoucherConfig
	Docs     DocsConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Issuer     string
	Expiration time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// VoucherConfig tunes voucher projections and the stats cache. Location is
// the office timezone that ages and registration expiries are judged in.
type VoucherConfig struct {
	StatsCacheEnabled bool
	StatsCacheTTL     time.Duration
	ListLimit         int
	Location          *time.Location
}

// DocsConfig toggles the swagger UI outside production.
type DocsConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Enabled:  v.GetBool("REDIS_ENABLED"),
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Issuer:     v.GetString("JWT_ISSUER"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 12*time.Hour),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	listLimit := v.GetInt("VOUCHER_LIST_LIMIT")
	if listLimit <= 0 {
		listLimit = 100
	}
	location, err := time.LoadLocation(v.GetString("OFFICE_TIMEZONE"))
	if err != nil {
		return nil, fmt.Errorf("invalid OFFICE_TIMEZONE: %w", err)
	}
	cfg.Vouchers = VoucherConfig{
		StatsCacheEnabled: v.GetBool("VOUCHER_STATS_CACHE_ENABLED"),
		StatsCacheTTL:     parseDuration(v.GetString("VOUCHER_STATS_CACHE_TTL"), 2*time.Minute),
		ListLimit:         listLimit,
		Location:          location,
	}

	cfg.Docs = DocsConfig{Enabled: v.GetBool("ENABLE_DOCS")}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

const devJWTSecret = "dev_secret"

// Validate rejects settings that are only acceptable during development.
func (c *Config) Validate() error {
	if c.Env != EnvProduction {
		return nil
	}
	if c.JWT.Secret == "" || c.JWT.Secret == devJWTSecret {
		return errors.New("JWT_SECRET must be set in production")
	}
	if c.Vouchers.StatsCacheEnabled && !c.Redis.Enabled {
		return errors.New("VOUCHER_STATS_CACHE_ENABLED requires REDIS_ENABLED")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "lgu_benefits")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", devJWTSecret)
	v.SetDefault("JWT_ISSUER", "lgu-benefits-api")
	v.SetDefault("JWT_EXPIRATION", "12h")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("VOUCHER_STATS_CACHE_ENABLED", false)
	v.SetDefault("VOUCHER_STATS_CACHE_TTL", "2m")
	v.SetDefault("VOUCHER_LIST_LIMIT", 100)
	v.SetDefault("OFFICE_TIMEZONE", "Asia/Manila")

	v.SetDefault("ENABLE_DOCS", true)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
