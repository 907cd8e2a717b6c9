package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config - 모든 환경변수를 담음
type Config struct {
	// Gemini API
	GeminiAPIKey     string
	GeminiImageModel string
	GeminiVideoModel string
	GeminiTextModel  string

	// Generation
	GenerationLanguage string

	// Video polling
	VideoPollInterval time.Duration
	VideoPollTimeout  time.Duration // 0 = no limit

	// Redis (optional - translation cache)
	RedisHost     string
	RedisPort     string
	RedisUsername string
	RedisPassword string
	RedisUseTLS   bool
}

var globalConfig *Config

// LoadConfig - 환경변수 로드
func LoadConfig() (*Config, error) {
	// .env 파일 로드 (있으면)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env file not found, using environment variables")
	}

	// Redis UseTLS 파싱
	useTLS := true // 기본값
	if tlsStr := os.Getenv("REDIS_USE_TLS"); tlsStr != "" {
		if parsed, err := strconv.ParseBool(tlsStr); err == nil {
			useTLS = parsed
		}
	}

	// 폴링 간격 파싱 (기본 10초)
	pollSeconds := 10
	if s := os.Getenv("VIDEO_POLL_INTERVAL_SECONDS"); s != "" {
		if parsed, err := strconv.Atoi(s); err == nil && parsed > 0 {
			pollSeconds = parsed
		}
	}

	// 폴링 타임아웃 파싱 (기본 0 = 무제한)
	timeoutMinutes := 0
	if s := os.Getenv("VIDEO_POLL_TIMEOUT_MINUTES"); s != "" {
		if parsed, err := strconv.Atoi(s); err == nil && parsed >= 0 {
			timeoutMinutes = parsed
		}
	}

	globalConfig = &Config{
		// Gemini API
		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		GeminiImageModel: getEnv("GEMINI_IMAGE_MODEL", "gemini-2.5-flash-image"),
		GeminiVideoModel: getEnv("GEMINI_VIDEO_MODEL", "veo-3.0-generate-001"),
		GeminiTextModel:  getEnv("GEMINI_TEXT_MODEL", "gemini-2.5-flash"),

		// Generation
		GenerationLanguage: getEnv("GENERATION_LANGUAGE", "en"),

		// Video polling
		VideoPollInterval: time.Duration(pollSeconds) * time.Second,
		VideoPollTimeout:  time.Duration(timeoutMinutes) * time.Minute,

		// Redis
		RedisHost:     getEnv("REDIS_HOST", ""),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisUsername: getEnv("REDIS_USERNAME", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisUseTLS:   useTLS,
	}

	// 필수 환경변수 검증
	if err := globalConfig.validate(); err != nil {
		return nil, err
	}

	log.Println("✅ Configuration loaded successfully")
	log.Printf("   Image model: %s", globalConfig.GeminiImageModel)
	log.Printf("   Video model: %s (poll every %s)", globalConfig.GeminiVideoModel, globalConfig.VideoPollInterval)
	log.Printf("   Text model: %s", globalConfig.GeminiTextModel)
	if globalConfig.RedisHost != "" {
		log.Printf("   Redis: %s (TLS: %v)", globalConfig.GetRedisAddr(), globalConfig.RedisUseTLS)
	} else {
		log.Println("   Redis: disabled (no REDIS_HOST)")
	}

	return globalConfig, nil
}

// GetConfig - 로드된 설정 가져오기
func GetConfig() *Config {
	if globalConfig == nil {
		log.Fatal("❌ Config not loaded. Call LoadConfig() first.")
	}
	return globalConfig
}

// validate - 필수 환경변수 검증
func (c *Config) validate() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	return nil
}

// getEnv - 환경변수 가져오기 (기본값 지원)
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetRedisAddr - Redis 연결 문자열 생성
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}
