package infra

import (
	"os"
	"strconv"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv  string
	Port    string
	BaseURL string

	BriaAPIKey    string
	BriaBaseURL   string
	BriaSync      bool
	BriaMCPAPIKey string
	BriaMCPURL    string

	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string

	JWTSecret string

	SubmitTimeout time.Duration
	PollInterval  time.Duration
	PollTimeout   time.Duration
	BatchStagger  time.Duration
	BatchSize     int

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	RateLimitPerMin  int
}

// LoadConfig loads configuration from environment variables and applies
// defaults where needed. Provider keys are optional: without a Bria key the
// service still serves interpretation and the catalog, and generation
// reports missing credentials per request instead of failing startup.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:  getEnv("APP_ENV", "development"),
		Port:    getEnv("PORT", "8080"),
		BaseURL: getEnv("BASE_URL", "http://localhost:8080"),

		BriaAPIKey:    os.Getenv("BRIA_API_KEY"),
		BriaBaseURL:   getEnv("BRIA_API_BASE_URL", "https://engine.prod.bria-api.com/v2"),
		BriaSync:      getEnvBool("BRIA_SYNC", false),
		BriaMCPAPIKey: os.Getenv("BRIA_MCP_API_KEY"),
		BriaMCPURL:    getEnv("BRIA_MCP_URL", "https://mcp.prod.bria-api.com/mcp"),

		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiBaseURL: getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),

		JWTSecret: os.Getenv("STUDIO_JWT_SECRET"),

		SubmitTimeout: time.Second * time.Duration(getEnvInt("BRIA_SUBMIT_TIMEOUT_SECONDS", 90)),
		PollInterval:  time.Millisecond * time.Duration(getEnvInt("BRIA_POLL_INTERVAL_MS", 2000)),
		PollTimeout:   time.Second * time.Duration(getEnvInt("BRIA_POLL_TIMEOUT_SECONDS", 300)),
		BatchStagger:  time.Millisecond * time.Duration(getEnvInt("BATCH_STAGGER_MS", 300)),
		BatchSize:     getEnvInt("BATCH_SIZE", 4),

		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 0)),
		HTTPIdleTimeout:  time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:  getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
	}

	// A one-shot generate call may block for a full submit plus poll window
	// before the response is written. The server's write deadline must
	// outlast that, or a successful render is torn down on the way out.
	if floor := cfg.SubmitTimeout + cfg.PollTimeout + 30*time.Second; cfg.HTTPWriteTimeout < floor {
		cfg.HTTPWriteTimeout = floor
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
