package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Upstream UpstreamConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Observ   ObservabilityConfig
	Cache    CacheConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

// UpstreamConfig points at the inventory/order API this gateway fronts.
type UpstreamConfig struct {
	BaseURL  string
	Password string
	Timeout  time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers    []string
	TopicAudit string
}

type ObservabilityConfig struct {
	JaegerEndpoint string
	PrometheusPort string
}

type CacheConfig struct {
	SnapshotTTL     time.Duration
	RefreshInterval time.Duration
}

func Load() *Config {
	_ = godotenv.Load()

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	upstreamTimeout, _ := strconv.Atoi(getEnv("UPSTREAM_TIMEOUT_SECONDS", "15"))
	snapshotTTL, _ := strconv.Atoi(getEnv("SNAPSHOT_TTL_SECONDS", "60"))
	refreshInterval, _ := strconv.Atoi(getEnv("SNAPSHOT_REFRESH_SECONDS", "120"))

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Env:  getEnv("ENV", "development"),
		},
		Upstream: UpstreamConfig{
			BaseURL:  getEnv("UPSTREAM_BASE_URL", "http://localhost:9000"),
			Password: getEnv("UPSTREAM_PASSWORD", ""),
			Timeout:  time.Duration(upstreamTimeout) * time.Second,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Kafka: KafkaConfig{
			Brokers:    strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			TopicAudit: getEnv("KAFKA_TOPIC_AUDIT", "admin-audit"),
		},
		Observ: ObservabilityConfig{
			JaegerEndpoint: getEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces"),
			PrometheusPort: getEnv("PROMETHEUS_PORT", "9090"),
		},
		Cache: CacheConfig{
			SnapshotTTL:     time.Duration(snapshotTTL) * time.Second,
			RefreshInterval: time.Duration(refreshInterval) * time.Second,
		},
	}

	log.Printf("Config loaded: env=%s, port=%s, upstream=%s", cfg.Server.Env, cfg.Server.Port, cfg.Upstream.BaseURL)
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
