package redisutil

import (
	"context"
	"crypto/sha256"
	"crypto/tls"
	"encoding/hex"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/minhkiet/AI-Magic-Tool-Studio/modules/common/config"
)

// 번역 캐시 TTL (prompt 재사용이 잦은 배치 작업용)
const translationTTL = 24 * time.Hour

// Connect - Redis 연결 생성 (REDIS_HOST가 없으면 nil 반환, 캐시 비활성)
func Connect(cfg *config.Config) *redis.Client {
	if cfg.RedisHost == "" {
		return nil
	}

	log.Printf("🔌 Connecting to Redis: %s", cfg.GetRedisAddr())

	// TLS 설정
	var tlsConfig *tls.Config
	if cfg.RedisUseTLS {
		tlsConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.GetRedisAddr(),
		Username:     cfg.RedisUsername,
		Password:     cfg.RedisPassword,
		TLSConfig:    tlsConfig,
		DB:           0,
		DialTimeout:  10 * time.Second,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	})

	// 연결 테스트
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("❌ Redis ping failed: %v", err)
		return nil
	}

	return rdb
}

// TranslationCache - 번역 결과 캐시 (nil client 허용 = no-op)
type TranslationCache struct {
	rdb *redis.Client
}

// NewTranslationCache - 캐시 생성
func NewTranslationCache(rdb *redis.Client) *TranslationCache {
	return &TranslationCache{rdb: rdb}
}

// Get - 캐시된 번역 조회
func (c *TranslationCache) Get(ctx context.Context, text, sourceLang, targetLang string) (string, bool) {
	if c == nil || c.rdb == nil {
		return "", false
	}

	val, err := c.rdb.Get(ctx, cacheKey(text, sourceLang, targetLang)).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// Set - 번역 결과 저장
func (c *TranslationCache) Set(ctx context.Context, text, sourceLang, targetLang, translated string) {
	if c == nil || c.rdb == nil {
		return
	}

	if err := c.rdb.Set(ctx, cacheKey(text, sourceLang, targetLang), translated, translationTTL).Err(); err != nil {
		log.Printf("⚠️  Failed to cache translation: %v", err)
	}
}

// cacheKey - 원문+언어쌍 기반 캐시 키 생성
func cacheKey(text, sourceLang, targetLang string) string {
	sum := sha256.Sum256([]byte(sourceLang + "|" + targetLang + "|" + text))
	return "translation:" + hex.EncodeToString(sum[:])
}
