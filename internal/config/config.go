package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config aggregates application settings that may be sourced from files or environment variables.
type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	MinIO    MinIOConfig    `mapstructure:"minio"`
	Auth     AuthConfig     `mapstructure:"auth"`
	AI       AIConfig       `mapstructure:"ai"`
	Worker   WorkerConfig   `mapstructure:"worker"`
}

// APIConfig contains HTTP server settings.
type APIConfig struct {
	Port           int      `mapstructure:"port"`
	MaxResumes     int      `mapstructure:"max_resumes"`
	MaxUploadBytes int64    `mapstructure:"max_upload_bytes"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	CookieDomain   string   `mapstructure:"cookie_domain"`
}

// DatabaseConfig contains connection options for PostgreSQL.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode"`
}

// RedisConfig 包含 Redis 连接配置。
type RedisConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Addr returns host:port for go-redis and asynq.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// MinIOConfig contains connection options for MinIO/S3-compatible storage.
type MinIOConfig struct {
	Endpoint         string `mapstructure:"endpoint"`
	PublicEndpoint   string `mapstructure:"public_endpoint"`
	AccessKeyID      string `mapstructure:"access_key_id"`
	SecretAccessKey  string `mapstructure:"secret_access_key"`
	UseSSL           bool   `mapstructure:"use_ssl"`
	Bucket           string `mapstructure:"bucket"`
	Region           string `mapstructure:"region"`
	AutoCreateBucket bool   `mapstructure:"auto_create_bucket"`
	// BucketLookup 取值 auto、dns 或 path。
	BucketLookup string        `mapstructure:"bucket_lookup"`
	PresignTTL   time.Duration `mapstructure:"presign_ttl"`
}

// AuthConfig holds JWT signing material and login throttling knobs.
type AuthConfig struct {
	PrivateKeyPath     string        `mapstructure:"private_key_path"`
	PublicKeyPath      string        `mapstructure:"public_key_path"`
	AccessTokenTTL     time.Duration `mapstructure:"access_token_ttl"`
	RefreshTokenTTL    time.Duration `mapstructure:"refresh_token_ttl"`
	LoginRateLimit     int           `mapstructure:"login_rate_limit"`
	LoginLockThreshold int           `mapstructure:"login_lock_threshold"`
	LoginLockTTL       time.Duration `mapstructure:"login_lock_ttl"`
}

// AIConfig configures the two suggestion providers.
type AIConfig struct {
	HuggingFaceURL   string        `mapstructure:"huggingface_url"`
	HuggingFaceKey   string        `mapstructure:"huggingface_key"`
	HuggingFaceModel string        `mapstructure:"huggingface_model"`
	OpenRouterURL    string        `mapstructure:"openrouter_url"`
	OpenRouterKey    string        `mapstructure:"openrouter_key"`
	OpenRouterModel  string        `mapstructure:"openrouter_model"`
	Timeout          time.Duration `mapstructure:"timeout"`
}

// WorkerConfig contains asynq worker settings.
type WorkerConfig struct {
	Concurrency int           `mapstructure:"concurrency"`
	MaxRetry    int           `mapstructure:"max_retry"`
	PDFTimeout  time.Duration `mapstructure:"pdf_timeout"`
	ChromeBin   string        `mapstructure:"chrome_bin"`
}

// DSN builds a lib/pq compatible connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host,
		d.Port,
		d.User,
		d.Password,
		d.Name,
		d.SSLMode,
	)
}

// Load reads configuration from environment variables, after merging an optional .env file.
func Load() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if err := bindEnv(v); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// MustLoad wraps Load and panics on failure.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func loadDotEnv() error {
	path := os.Getenv("ENV_FILE")
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat env file: %w", err)
	}
	// 已存在的环境变量优先，.env 只补缺省值。
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %q: %w", path, err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.max_resumes", 0)
	v.SetDefault("api.max_upload_bytes", 5*1024*1024)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "resumebuilder")
	v.SetDefault("database.user", "resumebuilder")
	v.SetDefault("database.password", "resumebuilder")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("minio.endpoint", "localhost:9000")
	v.SetDefault("minio.public_endpoint", "http://localhost:9000")
	v.SetDefault("minio.use_ssl", false)
	v.SetDefault("minio.bucket", "resumes")
	v.SetDefault("minio.auto_create_bucket", true)
	v.SetDefault("minio.bucket_lookup", "auto")
	v.SetDefault("minio.presign_ttl", 15*time.Minute)
	v.SetDefault("auth.private_key_path", "keys/jwt_private.pem")
	v.SetDefault("auth.public_key_path", "keys/jwt_public.pem")
	v.SetDefault("auth.access_token_ttl", 15*time.Minute)
	v.SetDefault("auth.refresh_token_ttl", 7*24*time.Hour)
	v.SetDefault("auth.login_rate_limit", 10)
	v.SetDefault("auth.login_lock_threshold", 5)
	v.SetDefault("auth.login_lock_ttl", 15*time.Minute)
	v.SetDefault("ai.huggingface_url", "https://api-inference.huggingface.co/models")
	v.SetDefault("ai.huggingface_model", "microsoft/DialoGPT-medium")
	v.SetDefault("ai.openrouter_url", "https://openrouter.ai/api/v1")
	v.SetDefault("ai.openrouter_model", "anthropic/claude-3-haiku")
	v.SetDefault("ai.timeout", 30*time.Second)
	v.SetDefault("worker.concurrency", 4)
	v.SetDefault("worker.max_retry", 3)
	v.SetDefault("worker.pdf_timeout", 30*time.Second)
}

func bindEnv(v *viper.Viper) error {
	mappings := map[string]string{
		"api.port":                  "API_PORT",
		"api.max_resumes":           "API_MAX_RESUMES",
		"api.max_upload_bytes":      "API_MAX_UPLOAD_BYTES",
		"api.allowed_origins":       "API_ALLOWED_ORIGINS",
		"api.cookie_domain":         "API_COOKIE_DOMAIN",
		"database.host":             "DATABASE_HOST",
		"database.port":             "DATABASE_PORT",
		"database.name":             "POSTGRES_DB",
		"database.user":             "POSTGRES_USER",
		"database.password":         "POSTGRES_PASSWORD",
		"database.sslmode":          "DATABASE_SSLMODE",
		"redis.host":                "REDIS_HOST",
		"redis.port":                "REDIS_PORT",
		"minio.endpoint":            "MINIO_ENDPOINT",
		"minio.public_endpoint":     "MINIO_PUBLIC_ENDPOINT",
		"minio.access_key_id":       "MINIO_ACCESS_KEY_ID",
		"minio.secret_access_key":   "MINIO_SECRET_ACCESS_KEY",
		"minio.use_ssl":             "MINIO_USE_SSL",
		"minio.bucket":              "MINIO_BUCKET",
		"minio.region":              "MINIO_REGION",
		"minio.auto_create_bucket":  "MINIO_AUTO_CREATE_BUCKET",
		"minio.bucket_lookup":       "MINIO_BUCKET_LOOKUP",
		"minio.presign_ttl":         "MINIO_PRESIGN_TTL",
		"auth.private_key_path":     "JWT_PRIVATE_KEY_PATH",
		"auth.public_key_path":      "JWT_PUBLIC_KEY_PATH",
		"auth.access_token_ttl":     "JWT_ACCESS_TOKEN_TTL",
		"auth.refresh_token_ttl":    "JWT_REFRESH_TOKEN_TTL",
		"auth.login_rate_limit":     "LOGIN_RATE_LIMIT_PER_HOUR",
		"auth.login_lock_threshold": "LOGIN_LOCK_THRESHOLD",
		"auth.login_lock_ttl":       "LOGIN_LOCK_TTL",
		"ai.huggingface_url":        "HUGGINGFACE_API_URL",
		"ai.huggingface_key":        "HUGGINGFACE_API_KEY",
		"ai.huggingface_model":      "HUGGINGFACE_MODEL",
		"ai.openrouter_url":         "OPENROUTER_API_URL",
		"ai.openrouter_key":         "OPENROUTER_API_KEY",
		"ai.openrouter_model":       "OPENROUTER_MODEL",
		"ai.timeout":                "AI_TIMEOUT",
		"worker.concurrency":        "WORKER_CONCURRENCY",
		"worker.max_retry":          "WORKER_MAX_RETRY",
		"worker.pdf_timeout":        "WORKER_PDF_TIMEOUT",
		"worker.chrome_bin":         "CHROME_BIN",
	}

	for key, env := range mappings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind %s to %s: %w", key, env, err)
		}
	}

	return nil
}

func validate(cfg Config) error {
	if cfg.API.Port <= 0 {
		return errors.New("api port must be positive")
	}
	if cfg.API.MaxResumes < 0 {
		return errors.New("api max resumes must not be negative")
	}
	if cfg.API.MaxUploadBytes <= 0 {
		return errors.New("api max upload bytes must be positive")
	}
	if cfg.Database.Host == "" {
		return errors.New("database host is required")
	}
	if cfg.Database.Port <= 0 {
		return errors.New("database port must be positive")
	}
	if cfg.Database.Name == "" {
		return errors.New("database name is required")
	}
	if cfg.Database.User == "" {
		return errors.New("database user is required")
	}
	if cfg.Database.Password == "" {
		return errors.New("database password is required")
	}
	if cfg.Database.SSLMode == "" {
		return errors.New("database sslmode is required")
	}
	if cfg.Redis.Host == "" {
		return errors.New("redis host is required")
	}
	if cfg.Redis.Port <= 0 {
		return errors.New("redis port must be positive")
	}
	if cfg.MinIO.Endpoint == "" {
		return errors.New("minio endpoint is required")
	}
	if cfg.MinIO.PublicEndpoint == "" {
		return errors.New("minio public endpoint is required")
	}
	if cfg.MinIO.AccessKeyID == "" {
		return errors.New("minio access key id is required")
	}
	if cfg.MinIO.SecretAccessKey == "" {
		return errors.New("minio secret access key is required")
	}
	if cfg.MinIO.Bucket == "" {
		return errors.New("minio bucket is required")
	}
	if cfg.MinIO.PresignTTL <= 0 {
		return errors.New("minio presign ttl must be positive")
	}
	if cfg.Auth.PrivateKeyPath == "" || cfg.Auth.PublicKeyPath == "" {
		return errors.New("jwt key paths are required")
	}
	if cfg.Auth.AccessTokenTTL <= 0 || cfg.Auth.RefreshTokenTTL <= 0 {
		return errors.New("jwt token ttl must be positive")
	}
	if cfg.AI.Timeout <= 0 {
		return errors.New("ai timeout must be positive")
	}
	if cfg.Worker.Concurrency <= 0 {
		return errors.New("worker concurrency must be positive")
	}
	if cfg.Worker.MaxRetry < 0 {
		return errors.New("worker max retry must not be negative")
	}
	if cfg.Worker.PDFTimeout <= 0 {
		return errors.New("worker pdf timeout must be positive")
	}
	return nil
}
