package config

import (
	"errors"
	"strings"
	"time"

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

	Workbook WorkbookConfig
	Gate     GateConfig
	Redis    RedisConfig
	AuditDB  AuditDBConfig
	JWT      JWTConfig
	CORS     CORSConfig
	Log      LogConfig
	Cache    CacheConfig
	Exports  ExportsConfig
}

// WorkbookConfig locates the spreadsheet file backing the canonical store.
type WorkbookConfig struct {
	Path string
}

// GateConfig tunes the mutual-exclusion gate serializing store mutations.
type GateConfig struct {
	AcquireTimeout time.Duration
	LockTTL        time.Duration
	UseRedis       bool
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// AuditDBConfig configures the optional Postgres audit trail.
type AuditDBConfig struct {
	Enabled      bool
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// CacheConfig governs the admin-panel snapshot cache.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

// ExportsConfig toggles record export endpoints.
type ExportsConfig struct {
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
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Workbook = WorkbookConfig{
		Path: v.GetString("WORKBOOK_PATH"),
	}

	cfg.Gate = GateConfig{
		AcquireTimeout: parseDuration(v.GetString("GATE_ACQUIRE_TIMEOUT"), 30*time.Second),
		LockTTL:        parseDuration(v.GetString("GATE_LOCK_TTL"), time.Minute),
		UseRedis:       v.GetBool("GATE_USE_REDIS"),
	}

	cfg.Redis = RedisConfig{
		Enabled:  v.GetBool("REDIS_ENABLED"),
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.AuditDB = AuditDBConfig{
		Enabled:      v.GetBool("AUDIT_DB_ENABLED"),
		Host:         v.GetString("AUDIT_DB_HOST"),
		Port:         v.GetInt("AUDIT_DB_PORT"),
		User:         v.GetString("AUDIT_DB_USER"),
		Password:     v.GetString("AUDIT_DB_PASSWORD"),
		Name:         v.GetString("AUDIT_DB_NAME"),
		SSLMode:      v.GetString("AUDIT_DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("AUDIT_DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("AUDIT_DB_MAX_IDLE_CONNS"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 12*time.Hour),
		Issuer:     v.GetString("JWT_ISSUER"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Cache = CacheConfig{
		Enabled: v.GetBool("ENABLE_PANEL_CACHE"),
		TTL:     parseDuration(v.GetString("PANEL_CACHE_TTL"), 5*time.Minute),
	}

	cfg.Exports = ExportsConfig{
		Enabled: v.GetBool("ENABLE_EXPORTS"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("WORKBOOK_PATH", "./data/yakit-takip.xlsx")

	v.SetDefault("GATE_ACQUIRE_TIMEOUT", "30s")
	v.SetDefault("GATE_LOCK_TTL", "1m")
	v.SetDefault("GATE_USE_REDIS", false)

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("AUDIT_DB_ENABLED", false)
	v.SetDefault("AUDIT_DB_HOST", "localhost")
	v.SetDefault("AUDIT_DB_PORT", 5432)
	v.SetDefault("AUDIT_DB_USER", "postgres")
	v.SetDefault("AUDIT_DB_PASSWORD", "postgres")
	v.SetDefault("AUDIT_DB_NAME", "yakit_takip_audit")
	v.SetDefault("AUDIT_DB_SSL_MODE", "disable")
	v.SetDefault("AUDIT_DB_MAX_OPEN_CONNS", 5)
	v.SetDefault("AUDIT_DB_MAX_IDLE_CONNS", 2)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "12h")
	v.SetDefault("JWT_ISSUER", "yakit-takip-api")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENABLE_PANEL_CACHE", false)
	v.SetDefault("PANEL_CACHE_TTL", "5m")

	v.SetDefault("ENABLE_EXPORTS", true)
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
