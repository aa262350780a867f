package utils

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr        string
	TCPAddr     string
	APIBase     string
	HTTPTimeout time.Duration
	RedisURL    string
	CORSOrigins []string
	LogLevel    string
	Env         string
	Session     SessionConfig
}

type SessionConfig struct {
	Secret   string
	Issuer   string
	Duration time.Duration
}

// LoadDotEnv reads a .env file into the environment if one exists. Values
// already set in the environment win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	existing := paths[:0]
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

func LoadConfig() Config {
	return Config{
		Addr:        getEnv("POKEHUB_ADDR", ":8080"),
		TCPAddr:     getEnv("POKEHUB_TCP_ADDR", ":7070"),
		APIBase:     getEnv("POKEHUB_API_BASE", "https://pokeapi.co/api/v2"),
		HTTPTimeout: time.Duration(getInt("POKEHUB_HTTP_TIMEOUT", 15)) * time.Second,
		RedisURL:    os.Getenv("POKEHUB_REDIS_URL"),
		CORSOrigins: splitList(getEnv("POKEHUB_CORS_ORIGINS", "*")),
		LogLevel:    getEnv("POKEHUB_LOG_LEVEL", "info"),
		Env:         getEnv("POKEHUB_ENV", "production"),
		Session:     LoadSessionConfig(),
	}
}

type MirrorConfig struct {
	Addr     string
	DataDir  string
	LogLevel string
	Env      string
}

func LoadMirrorConfig() MirrorConfig {
	return MirrorConfig{
		Addr:     getEnv("POKEHUB_MIRROR_ADDR", ":9000"),
		DataDir:  getEnv("POKEHUB_MIRROR_DIR", "data/pokemon"),
		LogLevel: getEnv("POKEHUB_LOG_LEVEL", "info"),
		Env:      getEnv("POKEHUB_ENV", "production"),
	}
}

func LoadSessionConfig() SessionConfig {
	// dev default (change for demo / production)
	secret := getEnv("POKEHUB_SESSION_SECRET", "dev-secret-change-me")
	issuer := getEnv("POKEHUB_SESSION_ISSUER", "pokehub")
	hours := getInt("POKEHUB_SESSION_TTL_HOURS", 24)

	return SessionConfig{
		Secret:   secret,
		Issuer:   issuer,
		Duration: time.Duration(hours) * time.Hour,
	}
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// getInt falls back to def when the value is missing, not a number or <= 0.
func getInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
