package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

type Config struct {
	AppEnv            string
	Port              string
	LogLevel          string
	StorageDriver     string
	CartStorageKey    string
	RedisURL          string
	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	DatabaseURL       string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSSLMode         string
	MigrationDir      string
	SaveMaxRetries    uint64
	SaveRetryInterval time.Duration
	JWTSecret         string
	JWTExpiry         time.Duration
	OriginURL         string
	RabbitMQURI       string
	AMQPQueue         string
}

var AppConfig *Config

func LoadConfig() error {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("Warning: .env file not found, using system environment variables")
	}

	cfg, err := FromEnv()
	if err != nil {
		return err
	}
	AppConfig = cfg

	logrus.WithFields(logrus.Fields{
		"env":     cfg.AppEnv,
		"port":    cfg.Port,
		"storage": cfg.StorageDriver,
	}).Info("Configuration loaded successfully")
	return nil
}

// FromEnv reads the process environment without touching .env files.
func FromEnv() (*Config, error) {
	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("APP_PORT", getEnv("PORT", "8082")),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		StorageDriver:  strings.ToLower(getEnv("STORAGE_DRIVER", DriverMemory)),
		CartStorageKey: getEnv("CART_STORAGE_KEY", "@GoMarketplace:cart"),
		RedisURL:       os.Getenv("REDIS_URL"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", "postgres"),
		DBName:         getEnv("DB_NAME", "go_marketplace"),
		DBSSLMode:      getEnv("DB_SSLMODE", "disable"),
		MigrationDir:   getEnv("MIGRATION_DIR", "database/migration"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		OriginURL:      os.Getenv("ORIGIN_URL"),
		RabbitMQURI:    os.Getenv("RABBITMQ_URI"),
		AMQPQueue:      getEnv("AMQP_QUEUE", "cart-events"),
	}

	var err error
	if cfg.RedisDB, err = getEnvInt("REDIS_DB", 0); err != nil {
		return nil, err
	}

	retries, err := getEnvInt("SAVE_MAX_RETRIES", 3)
	if err != nil {
		return nil, err
	}
	if retries < 0 {
		return nil, fmt.Errorf("SAVE_MAX_RETRIES must not be negative, got %d", retries)
	}
	cfg.SaveMaxRetries = uint64(retries)

	if cfg.SaveRetryInterval, err = getEnvDuration("SAVE_RETRY_INTERVAL", 100*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.JWTExpiry, err = getEnvDuration("JWT_EXPIRY", 24*time.Hour); err != nil {
		return nil, err
	}

	switch cfg.StorageDriver {
	case DriverMemory, DriverRedis, DriverPostgres:
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// PostgresDSN prefers DATABASE_URL over the individual DB_* variables.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
