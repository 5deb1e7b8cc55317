package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config 应用配置
type Config struct {
	Env             string
	AppSecret       string
	DatabaseURL     string
	TokenValidity   time.Duration // 访问令牌有效期
	RefreshGrace    time.Duration // 过期后仍允许刷新的宽限期
	ResetCodeTTL    time.Duration // 密码重置验证码有效期
	CleanupInterval time.Duration // 后台清理任务执行间隔
	Port            string
	SiteName        string
	SiteUrl         string
	MailAPIKey      string
	MailFrom        string
	MailFromName    string
}

// Load 加载配置
func Load() *Config {
	validityHours, _ := strconv.Atoi(getEnv("TOKEN_VALIDITY_HOURS", "24"))
	graceHours, _ := strconv.Atoi(getEnv("REFRESH_GRACE_HOURS", "24"))
	resetMinutes, _ := strconv.Atoi(getEnv("RESET_CODE_TTL_MINUTES", "10"))
	cleanupMinutes, _ := strconv.Atoi(getEnv("CLEANUP_INTERVAL_MINUTES", "10"))

	dbUser := getEnv("DB_USER", "postgres")
	dbPass := getEnv("DB_PASSWORD", "postgres")
	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbName := getEnv("DB_NAME", "streamflix")
	dbSSL := getEnv("DB_SSLMODE", "disable")

	dbURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		dbUser, dbPass, dbHost, dbPort, dbName, dbSSL)

	appSecret := getEnv("APP_SECRET", getEnv("JWT_SECRET", "your-secret-key-change-in-production"))

	if getEnv("APP_ENV", "development") == "production" && appSecret == "your-secret-key-change-in-production" {
		fmt.Println("【严重警告】生产环境正在使用默认密钥！请立即设置 APP_SECRET 环境变量。")
	}

	return &Config{
		Env:             getEnv("APP_ENV", "development"),
		AppSecret:       appSecret,
		DatabaseURL:     dbURL,
		TokenValidity:   time.Duration(validityHours) * time.Hour,
		RefreshGrace:    time.Duration(graceHours) * time.Hour,
		ResetCodeTTL:    time.Duration(resetMinutes) * time.Minute,
		CleanupInterval: time.Duration(cleanupMinutes) * time.Minute,
		Port:            getEnv("PORT", "5005"),
		SiteName:        getEnv("SITE_NAME", "StreamFlix"),
		SiteUrl:         getEnv("SITE_URL", "http://localhost:5005"),
		MailAPIKey:      getEnv("MAIL_API_KEY", ""),
		MailFrom:        getEnv("MAIL_FROM", "noreply@streamflix.local"),
		MailFromName:    getEnv("MAIL_FROM_NAME", "StreamFlix"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
