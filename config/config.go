package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	IGUsername  string
	IGPassword  string
	SessionFile string

	ReplyText        string
	UnitPrice        float64
	InboxLimit       int
	FallbackCustomer string

	SendDelay         time.Duration
	SendJitter        time.Duration
	TickDelay         time.Duration
	FailureCooldown   time.Duration
	TransientCooldown time.Duration
	RateLimitCooldown time.Duration

	ProxyEnabled bool
	ProxyURL     string

	Port            string
	DataDir         string
	DashboardOrigin string

	StoreBackend  string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	S3BackupEnabled bool
	S3Bucket        string
	S3Region        string
}

func Load() *Config {
	godotenv.Load()

	return &Config{
		IGUsername:  getEnv("IG_USERNAME", ""),
		IGPassword:  getEnv("IG_PASSWORD", ""),
		SessionFile: getEnv("IG_SESSION_FILE", "session.json"),

		ReplyText:        getEnv("REPLY_TEXT", "Oi! Obrigada pelo interesse! Já te envio o catálogo e as formas de pagamento."),
		UnitPrice:        getEnvFloat("UNIT_PRICE", 89.90),
		InboxLimit:       getEnvInt("INBOX_LIMIT", 20),
		FallbackCustomer: getEnv("FALLBACK_CUSTOMER", "Cliente"),

		SendDelay:         getEnvSeconds("SEND_DELAY_SECONDS", 25),
		SendJitter:        getEnvSeconds("SEND_JITTER_SECONDS", 20),
		TickDelay:         getEnvSeconds("TICK_DELAY_SECONDS", 60),
		FailureCooldown:   getEnvSeconds("FAILURE_COOLDOWN_SECONDS", 45),
		TransientCooldown: getEnvSeconds("TRANSIENT_COOLDOWN_SECONDS", 120),
		RateLimitCooldown: getEnvSeconds("RATE_LIMIT_COOLDOWN_SECONDS", 600),

		ProxyEnabled: getEnvBool("PROXY_ENABLED", false),
		ProxyURL:     getEnv("PROXY_URL", ""),

		Port:            getEnv("PORT", "5000"),
		DataDir:         getEnv("DATA_DIR", "data"),
		DashboardOrigin: getEnv("DASHBOARD_ORIGIN", "https://ladelicato.netlify.app"),

		StoreBackend:  getEnv("STORE_BACKEND", "file"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		S3BackupEnabled: getEnvBool("S3_BACKUP_ENABLED", false),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Region:        getEnv("S3_REGION", "us-east-1"),
	}
}

// HasCredentials reports whether gateway credentials were provided. When
// they are missing the HTTP surface still runs, but the reply loop stays
// offline.
func (c *Config) HasCredentials() bool {
	return c.IGUsername != "" && c.IGPassword != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvSeconds(key string, defaultValue int) time.Duration {
	return time.Duration(getEnvInt(key, defaultValue)) * time.Second
}
