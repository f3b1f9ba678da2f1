package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"b2bees-backend/internal/infrastructure/database"
	"b2bees-backend/internal/shared/utils"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Config chứa toàn bộ application configuration
// Struct này được populate từ environment variables
type Config struct {
	App      AppConfig
	Database *database.DBConfig
	Redis    RedisConfig
	Cache    CacheConfig
	JWT      JWTConfig
	Admin    AdminConfig
	Upload   UploadConfig
	Imgur    ImgurConfig
	MinIO    MinIOConfig
	LLM      LLMConfig
	SMTP     SMTPConfig
	Currency CurrencyConfig
	CORS     CORSConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

// IsProduction báo hiệu các nhánh chỉ chạy ở production (vd: không fallback upload)
func (a AppConfig) IsProduction() bool {
	return a.Environment == "production"
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type CacheConfig struct {
	CatalogTTL time.Duration
}

type JWTConfig struct {
	Secret            string
	AccessTokenExpiry int // minutes
}

type AdminConfig struct {
	// bcrypt hash, tạo bằng `beesctl hash-password`
	PasswordHash string
}

type UploadConfig struct {
	Provider      string // imgur, minio, local
	Dir           string // thư mục fallback local
	PublicBaseURL string // base URL để build link cho file local
	MaxSizeMB     int
}

type ImgurConfig struct {
	ClientID string
	APIURL   string
	Timeout  time.Duration
}

type MinIOConfig struct {
	Endpoint  string // localhost:9000
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type LLMConfig struct {
	Provider      string // openai, gemini
	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string
	GeminiKey     string
	GeminiModel   string
	Timeout       time.Duration
}

type SMTPConfig struct {
	Host string
	Port string
	From string
}

type CurrencyConfig struct {
	CountryHeaders []string
	CookieSecure   bool
}

type CORSConfig struct {
	AllowedOrigins []string
}

// Load đọc config từ environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Bees API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Cache: CacheConfig{
			CatalogTTL: time.Duration(getEnvInt("CACHE_TTL", 300)) * time.Second,
		},
		JWT: JWTConfig{
			Secret:            getEnv("JWT_SECRET", defaultJWTSecret),
			AccessTokenExpiry: getEnvInt("JWT_ACCESS_EXPIRY", 720), // 12 hours
		},
		Admin: AdminConfig{
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		},
		Upload: UploadConfig{
			Provider:      getEnv("UPLOAD_PROVIDER", "imgur"),
			Dir:           getEnv("UPLOAD_DIR", "public/uploads"),
			PublicBaseURL: getEnv("UPLOAD_PUBLIC_BASE_URL", "http://localhost:8080"),
			MaxSizeMB:     getEnvInt("UPLOAD_MAX_SIZE_MB", 5),
		},
		Imgur: ImgurConfig{
			ClientID: getEnv("IMGUR_CLIENT_ID", ""),
			APIURL:   getEnv("IMGUR_API_URL", "https://api.imgur.com/3/image"),
			Timeout:  getEnvDuration("IMGUR_TIMEOUT", 15*time.Second),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "bees"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		LLM: LLMConfig{
			Provider:      getEnv("LLM_PROVIDER", "openai"),
			OpenAIKey:     getEnv("OPENAI_API_KEY", ""),
			OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			GeminiKey:     getEnv("GEMINI_API_KEY", ""),
			GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			Timeout:       getEnvDuration("LLM_TIMEOUT", 30*time.Second),
		},
		SMTP: SMTPConfig{
			Host: getEnv("SMTP_HOST", "localhost"),
			Port: getEnv("SMTP_PORT", "1025"),
			From: getEnv("SMTP_FROM", "hello@b2bees.dev"),
		},
		Currency: CurrencyConfig{
			CountryHeaders: getEnvList("CURRENCY_COUNTRY_HEADERS", []string{"X-Vercel-IP-Country", "CF-IPCountry"}),
			CookieSecure:   getEnvBool("COOKIE_SECURE", false),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
	}

	dbConfig, err := LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}
	cfg.Database = dbConfig

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	switch c.Upload.Provider {
	case "imgur", "minio", "local":
	default:
		return fmt.Errorf("UPLOAD_PROVIDER must be one of imgur, minio, local (got %q)", c.Upload.Provider)
	}

	switch c.LLM.Provider {
	case "openai", "gemini":
	default:
		return fmt.Errorf("LLM_PROVIDER must be openai or gemini (got %q)", c.LLM.Provider)
	}

	if c.App.IsProduction() {
		if c.JWT.Secret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Database == nil || c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
		if c.Admin.PasswordHash == "" {
			return fmt.Errorf("ADMIN_PASSWORD_HASH must be set in production")
		}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvList đọc list phân cách bằng dấu phẩy
func getEnvList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	values := utils.TrimStrings(strings.Split(valueStr, ","))
	if len(values) == 0 {
		return defaultValue
	}
	return values
}
