package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/erraggy/oasmodel/parser"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheFileTTL       time.Duration
	CacheContentTTL    time.Duration
	CacheSweepInterval time.Duration

	// Result paging.
	ProblemLimit int
	MaxLimit     int

	// Input bounds.
	MaxInlineSize int64

	// RulesFile is an optional rule file applied by the validate tool.
	RulesFile string
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from OASMODEL_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       envBool("OASMODEL_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("OASMODEL_CACHE_MAX_SIZE", 10),
		CacheFileTTL:       envDuration("OASMODEL_CACHE_FILE_TTL", 15*time.Minute),
		CacheContentTTL:    envDuration("OASMODEL_CACHE_CONTENT_TTL", 15*time.Minute),
		CacheSweepInterval: envDuration("OASMODEL_CACHE_SWEEP_INTERVAL", 60*time.Second),
		ProblemLimit:       envInt("OASMODEL_PROBLEM_LIMIT", 100),
		MaxLimit:           envInt("OASMODEL_MAX_LIMIT", 1000),
		MaxInlineSize:      int64(envInt("OASMODEL_MAX_INLINE_SIZE", int(parser.DefaultMaxFileSize))),
		RulesFile:          envFile("OASMODEL_RULES_FILE"),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}

// envFile returns the path named by key when it points at a regular file.
func envFile(key string) string {
	v := os.Getenv(key)
	if v == "" {
		return ""
	}
	info, err := os.Stat(v)
	if err != nil || !info.Mode().IsRegular() {
		slog.Warn("rules file env var does not name a file, ignoring", "key", key, "value", v)
		return ""
	}
	return v
}
