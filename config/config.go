package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// TokenKey is the environment variable holding the GitHub credential
const TokenKey = "GITHUB_TOKEN"

// ConfigurationError reports a required setting that is missing
type ConfigurationError struct {
	Key string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	if e.Key == TokenKey {
		return "GitHub token not configured. Set GITHUB_TOKEN in the environment."
	}
	return fmt.Sprintf("%s is not configured", e.Key)
}

// Config holds all configuration for the gallery service
type Config struct {
	// Server settings
	Port         int
	Host         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// GitHub source
	GitHubToken     string
	GitHubOwner     string
	GitHubRepo      string
	GitHubPath      string
	GitHubRef       string
	GitHubAPIURL    string
	GitHubUserAgent string

	// Catalog
	CategoriesFile string
	CrawlTimeout   time.Duration

	// Security
	AllowedOrigins []string
	RateLimitRPS   int

	// Logging
	LogLevel  string
	LogFormat string
	LogFile   string

	// Telemetry
	OTelEnabled bool

	EnvFile string
}

// Load reads configuration from environment variables. A missing token is
// not an error here; requests check it with RequireGitHubToken.
func Load() (*Config, error) {
	envFile := getEnvFile()

	// Load .env file if it exists
	_ = godotenv.Load(envFile)

	cfg := &Config{
		Port:            getEnvInt("PORT", 8091),
		Host:            getEnv("HOST", "0.0.0.0"),
		ReadTimeout:     time.Duration(getEnvInt("READ_TIMEOUT_SECONDS", 30)) * time.Second,
		WriteTimeout:    time.Duration(getEnvInt("WRITE_TIMEOUT_SECONDS", 300)) * time.Second,
		GitHubToken:     getEnv(TokenKey, ""),
		GitHubOwner:     getEnv("GITHUB_OWNER", "AndreJorgeSenaiBA"),
		GitHubRepo:      getEnv("GITHUB_REPO", "dados"),
		GitHubPath:      strings.Trim(getEnv("GITHUB_PATH", ""), "/"),
		GitHubRef:       getEnv("GITHUB_REF", ""),
		GitHubAPIURL:    getEnv("GITHUB_API_URL", ""),
		GitHubUserAgent: getEnv("GITHUB_USER_AGENT", "Repox-App"),
		CategoriesFile:  getEnv("CATEGORIES_FILE", ""),
		CrawlTimeout:    time.Duration(getEnvInt("CRAWL_TIMEOUT_SECONDS", 0)) * time.Second,
		AllowedOrigins:  getEnvSlice("ALLOWED_ORIGINS", []string{"*"}),
		RateLimitRPS:    getEnvInt("RATE_LIMIT_RPS", 100),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "json"),
		LogFile:         getEnv("LOG_FILE", ""),
		OTelEnabled:     getEnvBool("OTEL_ENABLED", false),
		EnvFile:         envFile,
	}

	if cfg.GitHubOwner == "" || cfg.GitHubRepo == "" {
		return nil, fmt.Errorf("GITHUB_OWNER and GITHUB_REPO must not be empty")
	}
	if cfg.RateLimitRPS <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_RPS must be positive, got %d", cfg.RateLimitRPS)
	}

	return cfg, nil
}

// getEnvFile returns the path to the .env file
func getEnvFile() string {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		return envFile
	}
	return ".env"
}

// LoadWithDefaults loads config with defaults for testing
func LoadWithDefaults() *Config {
	return &Config{
		Port:            8091,
		Host:            "0.0.0.0",
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    300 * time.Second,
		GitHubToken:     "test-token",
		GitHubOwner:     "AndreJorgeSenaiBA",
		GitHubRepo:      "dados",
		GitHubUserAgent: "Repox-App",
		AllowedOrigins:  []string{"*"},
		RateLimitRPS:    100,
		LogLevel:        "info",
		LogFormat:       "json",
	}
}

// Addr returns the server address string
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Repository returns "owner/repo"
func (c *Config) Repository() string {
	return c.GitHubOwner + "/" + c.GitHubRepo
}

// RequireGitHubToken fails with a ConfigurationError when no token is set
func (c *Config) RequireGitHubToken() error {
	if strings.TrimSpace(c.GitHubToken) == "" {
		return &ConfigurationError{Key: TokenKey}
	}
	return nil
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

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return defaultValue
}
