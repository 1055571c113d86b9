package config

import (
	"os"
	"strconv"
)

type RenewalServiceConfig struct {
	Port        string
	PostgresCfg PostgresConfig
	RedisCfg    RedisConfig
	RabbitMQCfg RabbitMQConfig
	EngineCfg   EngineConfig
}

type PostgresConfig struct {
	DBname   string
	Username string
	Password string
	Host     string
	Port     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type RabbitMQConfig struct {
	Username string
	Password string
	Host     string
	Port     string
}

// EngineConfig carries the renewal engine's decisioning knobs. Everything
// that looks like a threshold lives here so the engine itself holds no
// hidden constants.
type EngineConfig struct {
	DefaultLookaheadDays  int
	EscalationWindowDays  int
	StaleAfterDays        int
	ScanIntervalMinutes   int
	ScanWorkers           int
	TimeCriticalDays      int
	TimeUrgentDays        int
	TimeApproachingDays   int
	PremiumLargeThreshold int64
	PremiumMidThreshold   int64
	PremiumSmallThreshold int64
}

func New() *RenewalServiceConfig {
	return &RenewalServiceConfig{
		Port: getEnvOrDefault("PORT", "8086"),
		PostgresCfg: PostgresConfig{
			DBname:   getEnvOrDefault("POSTGRES_DB", "renewal_service"),
			Username: getEnvOrDefault("POSTGRES_USER", "postgres"),
			Password: getEnvOrDefault("POSTGRES_PASSWORD", "postgres"),
			Host:     getEnvOrDefault("POSTGRES_HOST", "localhost"),
			Port:     getEnvOrDefault("POSTGRES_PORT", "5432"),
		},
		RedisCfg: RedisConfig{
			Host:     getEnvOrDefault("REDIS_HOST", "localhost"),
			Port:     getEnvOrDefault("REDIS_PORT", "6379"),
			Password: getEnvOrDefault("REDIS_PASSWORD", ""),
			DB:       0,
		},
		RabbitMQCfg: RabbitMQConfig{
			Username: getEnvOrDefault("RABBITMQ_USER", "admin"),
			Password: getEnvOrDefault("RABBITMQ_PWD", "admin"),
			Host:     getEnvOrDefault("RABBITMQ_HOST", "localhost"),
			Port:     getEnvOrDefault("RABBITMQ_PORT", "5672"),
		},
		EngineCfg: EngineConfig{
			DefaultLookaheadDays:  getEnvIntOrDefault("SCAN_LOOKAHEAD_DAYS", 90),
			EscalationWindowDays:  getEnvIntOrDefault("ESCALATION_WINDOW_DAYS", 30),
			StaleAfterDays:        getEnvIntOrDefault("ESCALATION_STALE_DAYS", 7),
			ScanIntervalMinutes:   getEnvIntOrDefault("SCAN_INTERVAL_MINUTES", 60),
			ScanWorkers:           getEnvIntOrDefault("SCAN_WORKERS", 2),
			TimeCriticalDays:      getEnvIntOrDefault("RISK_TIME_CRITICAL_DAYS", 14),
			TimeUrgentDays:        getEnvIntOrDefault("RISK_TIME_URGENT_DAYS", 30),
			TimeApproachingDays:   getEnvIntOrDefault("RISK_TIME_APPROACHING_DAYS", 45),
			PremiumLargeThreshold: int64(getEnvIntOrDefault("RISK_PREMIUM_LARGE", 100000)),
			PremiumMidThreshold:   int64(getEnvIntOrDefault("RISK_PREMIUM_MID", 50000)),
			PremiumSmallThreshold: int64(getEnvIntOrDefault("RISK_PREMIUM_SMALL", 25000)),
		},
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
