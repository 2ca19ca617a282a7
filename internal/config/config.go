package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the full environment surface of the entry engine. Everything
// has a working default so a plain `go run` against a local backend needs
// no .env at all.
type Config struct {
	Port string

	Upstream struct {
		BaseURL string
		Timeout time.Duration
	}

	Autosave struct {
		Delay time.Duration
	}

	NoticeTTL time.Duration

	Redis struct {
		Enabled  bool
		Host     string
		Port     string
		Password string
		DB       int
	}

	RateLimit struct {
		Requests int
		Window   time.Duration
	}

	Log struct {
		Level  string
		Format string
	}
}

func Load() *Config {
	// Missing .env is fine, env vars may come from the environment itself.
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.Port = getEnv("PORT", "8080")

	cfg.Upstream.BaseURL = getEnv("UPSTREAM_BASE_URL", "http://localhost:5000")
	cfg.Upstream.Timeout = time.Duration(getEnvInt("UPSTREAM_TIMEOUT_S", 30)) * time.Second

	cfg.Autosave.Delay = time.Duration(getEnvInt("AUTOSAVE_DELAY_MS", 2000)) * time.Millisecond

	cfg.NoticeTTL = time.Duration(getEnvInt("NOTICE_TTL_S", 5)) * time.Second

	cfg.Redis.Enabled = getEnv("REDIS_ENABLED", "false") == "true"
	cfg.Redis.Host = getEnv("REDIS_HOST", "localhost")
	cfg.Redis.Port = getEnv("REDIS_PORT", "6379")
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	cfg.Redis.DB = getEnvInt("REDIS_DB", 0)

	cfg.RateLimit.Requests = getEnvInt("RATE_LIMIT", 100)
	cfg.RateLimit.Window = time.Duration(getEnvInt("RATE_WINDOW_S", 60)) * time.Second

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
