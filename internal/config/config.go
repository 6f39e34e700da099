package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ResolverModeDoH = "doh"
	ResolverModeDNS = "dns"
)

type Config struct {
	RedisHost        string
	RedisPort        string
	Port             string
	LogLevel         string
	ResolverMode     string
	DoHEndpoint      string
	DNSServer        string
	ResolverTimeout  time.Duration
	TrustAnchorsFile string
	AudioDir         string
	DefaultLanguage  string
	EnableHistory    bool
	EnableWatch      bool
	WatchSchedule    string
	AllowedOrigin    string
	SkipOriginCheck  bool
}

// LoadConfig reads configuration from the environment. A .env file in the
// working directory is loaded first when present; real environment variables
// take precedence over it.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		RedisHost:        getEnv("REDIS_HOST", "localhost"),
		RedisPort:        getEnv("REDIS_PORT", "6379"),
		Port:             getEnv("PORT", "5000"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		ResolverMode:     strings.ToLower(getEnv("RESOLVER_MODE", ResolverModeDoH)),
		DoHEndpoint:      getEnv("DOH_ENDPOINT", "https://dns.google/resolve"),
		DNSServer:        getEnv("DNS_SERVER", "8.8.8.8:53"),
		TrustAnchorsFile: os.Getenv("TRUST_ANCHORS_FILE"),
		AudioDir:         getEnv("AUDIO_DIR", "public/audio"),
		DefaultLanguage:  strings.ToLower(getEnv("DEFAULT_LANGUAGE", "english")),
		EnableHistory:    getEnvBool("ENABLE_HISTORY", true),
		EnableWatch:      getEnvBool("ENABLE_WATCH", true),
		WatchSchedule:    getEnv("WATCH_SCHEDULE", "0 */6 * * *"),
		AllowedOrigin:    os.Getenv("ALLOWED_ORIGIN"),
		SkipOriginCheck:  getEnvBool("SKIP_ORIGIN_CHECK", false),
	}

	timeout, err := time.ParseDuration(getEnv("RESOLVER_TIMEOUT", "3s"))
	if err != nil {
		return nil, fmt.Errorf("invalid RESOLVER_TIMEOUT: %w", err)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("RESOLVER_TIMEOUT must be positive, got %s", timeout)
	}
	cfg.ResolverTimeout = timeout

	switch cfg.ResolverMode {
	case ResolverModeDoH, ResolverModeDNS:
	default:
		return nil, fmt.Errorf("unknown RESOLVER_MODE %q (want %q or %q)", cfg.ResolverMode, ResolverModeDoH, ResolverModeDNS)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return fallback
}
