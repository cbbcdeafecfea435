package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppEnv   string
	HTTPPort int

	// CatalogBackend selects the product catalog: "memory" (built-in demo
	// dataset) or "mysql".
	CatalogBackend string
	MySQLDSN       string

	// StoreBackend selects cart/wishlist persistence: "file" or "redis".
	StoreBackend string
	DataDir      string
	RedisAddr    string

	// CheckoutDelay is the simulated payment-processing latency.
	CheckoutDelay time.Duration
}

func Load() Config {
	return Config{
		AppEnv:         getEnv("APP_ENV", "dev"),
		HTTPPort:       getEnvInt("HTTP_PORT", 8080),
		CatalogBackend: getEnv("CATALOG_BACKEND", "memory"),
		MySQLDSN:       getEnv("MYSQL_DSN", "root:root@tcp(localhost:3306)/techstore?parseTime=true"),
		StoreBackend:   getEnv("STORE_BACKEND", "file"),
		DataDir:        getEnv("DATA_DIR", "./data"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		CheckoutDelay:  getEnvDuration("CHECKOUT_DELAY", 2*time.Second),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
