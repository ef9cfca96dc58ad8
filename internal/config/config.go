package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	JWT    JWTConfig
	S3     S3Config
	Log    LogConfig
	CORS   CORSConfig
	Redis  RedisConfig
	Queue  QueueConfig
	Email  EmailConfig
	Label  LabelConfig
	Upload UploadConfig
	POS    POSConfig
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	FrontendURL string `mapstructure:"frontend_url"`
}

// QueueConfig holds notification dispatcher settings.
type QueueConfig struct {
	PollIntervalSecs int `mapstructure:"poll_interval_secs"`
	Concurrency      int `mapstructure:"concurrency"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// RedisConfig holds the settings cache connection.
type RedisConfig struct {
	Addr        string        `mapstructure:"addr"`
	Password    string        `mapstructure:"password"`
	DB          int           `mapstructure:"db"`
	SettingsTTL time.Duration `mapstructure:"settings_ttl"`
}

// Enabled reports whether a Redis address is configured.
func (r *RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// LabelConfig holds shipping label settings.
type LabelConfig struct {
	ArchiveEnabled bool `mapstructure:"archive_enabled"`
}

// UploadConfig holds admin image upload settings. Images go to the S3 bucket.
type UploadConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	MaxImageSizeMB int64  `mapstructure:"max_image_size_mb"`
	PublicBaseURL  string `mapstructure:"public_base_url"`
}

// POSConfig holds point-of-sale settings.
type POSConfig struct {
	DefaultRegion string `mapstructure:"default_region"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds access token verification settings. Tokens are issued by
// the identity service; this API only verifies them.
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the AMORLIAS_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("AMORLIAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "amorlias")
	v.SetDefault("db.password", "amorlias_secret")
	v.SetDefault("db.name", "amorlias_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.issuer", "amorlias")

	// S3 defaults
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "amorlias-labels")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Redis is optional; an empty address disables the settings cache.
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.settings_ttl", "10m")

	v.SetDefault("queue.poll_interval_secs", 15)
	v.SetDefault("queue.concurrency", 4)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "ap-south-1")
	v.SetDefault("email.from_address", "orders@amorlias.com")
	v.SetDefault("email.from_name", "Amorlias")
	v.SetDefault("email.frontend_url", "http://localhost:3000")

	v.SetDefault("label.archive_enabled", false)
	v.SetDefault("upload.enabled", false)
	v.SetDefault("upload.max_image_size_mb", 5)
	v.SetDefault("upload.public_base_url", "")
	v.SetDefault("pos.default_region", "IN")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":              "AMORLIAS_SERVER_PORT",
		"server.read_timeout":      "AMORLIAS_SERVER_READ_TIMEOUT",
		"server.write_timeout":     "AMORLIAS_SERVER_WRITE_TIMEOUT",
		"server.environment":       "AMORLIAS_SERVER_ENVIRONMENT",
		"db.host":                  "AMORLIAS_DB_HOST",
		"db.port":                  "AMORLIAS_DB_PORT",
		"db.user":                  "AMORLIAS_DB_USER",
		"db.password":              "AMORLIAS_DB_PASSWORD",
		"db.name":                  "AMORLIAS_DB_NAME",
		"db.sslmode":               "AMORLIAS_DB_SSLMODE",
		"db.max_open":              "AMORLIAS_DB_MAX_OPEN",
		"db.max_idle":              "AMORLIAS_DB_MAX_IDLE",
		"jwt.secret":               "AMORLIAS_JWT_SECRET",
		"jwt.issuer":               "AMORLIAS_JWT_ISSUER",
		"s3.region":                "AMORLIAS_S3_REGION",
		"s3.bucket":                "AMORLIAS_S3_BUCKET",
		"s3.endpoint":              "AMORLIAS_S3_ENDPOINT",
		"s3.access_key":            "AMORLIAS_S3_ACCESS_KEY",
		"s3.secret_key":            "AMORLIAS_S3_SECRET_KEY",
		"s3.presign_expiry":        "AMORLIAS_S3_PRESIGN_EXPIRY",
		"log.level":                "AMORLIAS_LOG_LEVEL",
		"log.format":               "AMORLIAS_LOG_FORMAT",
		"cors.allowed_origins":     "AMORLIAS_CORS_ALLOWED_ORIGINS",
		"redis.addr":               "AMORLIAS_REDIS_ADDR",
		"redis.password":           "AMORLIAS_REDIS_PASSWORD",
		"redis.db":                 "AMORLIAS_REDIS_DB",
		"redis.settings_ttl":       "AMORLIAS_REDIS_SETTINGS_TTL",
		"queue.poll_interval_secs": "AMORLIAS_QUEUE_POLL_INTERVAL_SECS",
		"queue.concurrency":        "AMORLIAS_QUEUE_CONCURRENCY",
		"email.provider":           "AMORLIAS_EMAIL_PROVIDER",
		"email.region":             "AMORLIAS_EMAIL_REGION",
		"email.from_address":       "AMORLIAS_EMAIL_FROM_ADDRESS",
		"email.from_name":          "AMORLIAS_EMAIL_FROM_NAME",
		"email.frontend_url":       "AMORLIAS_EMAIL_FRONTEND_URL",
		"label.archive_enabled":    "AMORLIAS_LABEL_ARCHIVE_ENABLED",
		"upload.enabled":           "AMORLIAS_UPLOAD_ENABLED",
		"upload.max_image_size_mb": "AMORLIAS_UPLOAD_MAX_IMAGE_SIZE_MB",
		"upload.public_base_url":   "AMORLIAS_UPLOAD_PUBLIC_BASE_URL",
		"pos.default_region":       "AMORLIAS_POS_DEFAULT_REGION",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if AMORLIAS_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("AMORLIAS_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret: v.GetString("jwt.secret"),
		Issuer: v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitCSV(v.GetString("cors.allowed_origins")),
	}
	cfg.Redis = RedisConfig{
		Addr:        v.GetString("redis.addr"),
		Password:    v.GetString("redis.password"),
		DB:          v.GetInt("redis.db"),
		SettingsTTL: v.GetDuration("redis.settings_ttl"),
	}
	cfg.Queue = QueueConfig{
		PollIntervalSecs: v.GetInt("queue.poll_interval_secs"),
		Concurrency:      v.GetInt("queue.concurrency"),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		FrontendURL: v.GetString("email.frontend_url"),
	}
	cfg.Label = LabelConfig{
		ArchiveEnabled: v.GetBool("label.archive_enabled"),
	}
	cfg.Upload = UploadConfig{
		Enabled:        v.GetBool("upload.enabled"),
		MaxImageSizeMB: v.GetInt64("upload.max_image_size_mb"),
		PublicBaseURL:  strings.TrimRight(v.GetString("upload.public_base_url"), "/"),
	}
	cfg.POS = POSConfig{
		DefaultRegion: strings.ToUpper(v.GetString("pos.default_region")),
	}

	if cfg.Queue.Concurrency < 1 {
		return nil, fmt.Errorf("queue.concurrency must be at least 1, got %d", cfg.Queue.Concurrency)
	}
	if cfg.Upload.Enabled && cfg.Upload.MaxImageSizeMB < 1 {
		return nil, fmt.Errorf("upload.max_image_size_mb must be at least 1, got %d", cfg.Upload.MaxImageSizeMB)
	}
	if cfg.Queue.PollIntervalSecs < 1 {
		return nil, fmt.Errorf("queue.poll_interval_secs must be at least 1, got %d", cfg.Queue.PollIntervalSecs)
	}

	return cfg, nil
}

// splitCSV parses a comma-separated list, dropping blanks.
func splitCSV(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}
