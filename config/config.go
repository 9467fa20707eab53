package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Server configuration
	Port        string
	Environment string

	// Redis configuration
	RedisURL      string
	RedisPassword string
	RedisDB       int

	// PubNub configuration
	PubNubPublishKey   string
	PubNubSubscribeKey string
	PubNubSecretKey    string

	// Analytics configuration
	CacheTTL              time.Duration
	GatewayPageSize       int
	SubComputationTimeout time.Duration

	// Business assumptions. These are placeholders promoted to config so
	// shops with different economics can override them per deployment.
	TargetEfficiency       float64
	AverageServicePrice    float64
	ImplementationCost     float64
	WeeklyCapacityMinutes  int
	PeakHourStaffThreshold int

	// Rate limiting
	RateLimitPerMinute int

	// Monitoring
	EnableMetrics bool
	MetricsPort   string
}

func LoadConfig() *Config {
	return &Config{
		// Server
		Port:        getEnv("PORT", "8090"),
		Environment: getEnv("ENVIRONMENT", "development"),

		// Redis
		RedisURL:      getEnv("REDIS_URL", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		// PubNub
		PubNubPublishKey:   getEnv("PUBNUB_PUBLISH_KEY", ""),
		PubNubSubscribeKey: getEnv("PUBNUB_SUBSCRIBE_KEY", ""),
		PubNubSecretKey:    getEnv("PUBNUB_SECRET_KEY", ""),

		// Analytics
		CacheTTL:              getEnvAsDuration("ANALYTICS_CACHE_TTL", "300s"),
		GatewayPageSize:       getEnvAsInt("GATEWAY_PAGE_SIZE", 10000),
		SubComputationTimeout: getEnvAsDuration("SUB_COMPUTATION_TIMEOUT", "10s"),

		// Business assumptions
		TargetEfficiency:       getEnvAsFloat("TARGET_EFFICIENCY", 0.90),
		AverageServicePrice:    getEnvAsFloat("AVERAGE_SERVICE_PRICE", 50),
		ImplementationCost:     getEnvAsFloat("IMPLEMENTATION_COST", 5000),
		WeeklyCapacityMinutes:  getEnvAsInt("WEEKLY_CAPACITY_MINUTES", 7*8*60),
		PeakHourStaffThreshold: getEnvAsInt("PEAK_HOUR_STAFF_THRESHOLD", 10),

		// Rate limiting
		RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 30),

		// Monitoring
		EnableMetrics: getEnvAsBool("ENABLE_METRICS", true),
		MetricsPort:   getEnv("METRICS_PORT", "9090"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	// If parsing fails, try to parse default value
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
