package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const defaultSecret = "your-secret-key-change-in-production"

// TokenExpiry 令牌有效期固定 24 小时
const TokenExpiry = 24 * time.Hour

// Config 应用配置
type Config struct {
	Env         string
	AppSecret   string
	DatabaseURL string
	JWTExpiry   time.Duration
	Port        string
	SiteName    string

	// 上传
	UploadDir      string
	MaxUploadBytes int64

	// 认证
	BcryptCost     int
	AuthRatePerMin int

	// 外部目录数据源
	TMDBToken string

	// 日志
	LogLevel  string
	LogFormat string
}

// Load 加载配置
func Load() *Config {
	maxUploadMB := getEnvInt("MAX_UPLOAD_MB", 5)

	dbUser := getEnv("DB_USER", "postgres")
	dbPass := getEnv("DB_PASSWORD", "postgres")
	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbName := getEnv("DB_NAME", "movie_tracker")
	dbSSL := getEnv("DB_SSLMODE", "disable")

	dbURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		dbUser, dbPass, dbHost, dbPort, dbName, dbSSL)

	return &Config{
		Env:            getEnv("APP_ENV", "development"),
		AppSecret:      getEnv("APP_SECRET", getEnv("JWT_SECRET", defaultSecret)),
		DatabaseURL:    dbURL,
		JWTExpiry:      TokenExpiry,
		Port:           getEnv("PORT", "3000"),
		SiteName:       getEnv("SITE_NAME", "Movie Tracker"),
		UploadDir:      getEnv("UPLOAD_DIR", "./web/uploads"),
		MaxUploadBytes: int64(maxUploadMB) << 20,
		BcryptCost:     getEnvInt("BCRYPT_COST", bcrypt.DefaultCost),
		AuthRatePerMin: getEnvInt("AUTH_RATE_PER_MIN", 10),
		TMDBToken:      getEnv("TMDB_TOKEN", ""),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
	}
}

// UsesDefaultSecret 是否仍在使用默认密钥
func (c *Config) UsesDefaultSecret() bool {
	return c.AppSecret == defaultSecret
}

// IsProduction 是否生产环境
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || v <= 0 {
		return defaultValue
	}
	return v
}
