package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port           string
	SiteName       string
	SiteURL        string
	SessionSecret  string
	TrustedProxies []string

	// Content store
	ContentBackend   string
	SanityProjectID  string
	SanityDataset    string
	SanityAPIVersion string
	SanityToken      string
	SanityUseCDN     bool
	DatabaseURL      string

	// Pages
	Revalidate time.Duration

	// Comments
	CommentEndpoint   string
	CommentRelayToken string
	CommentRateLimit  int
	RedisAddr         string
	RedisPassword     string

	// Moderation mail
	SMTPHost       string
	SMTPPort       string
	SMTPUser       string
	SMTPPass       string
	SMTPFrom       string
	ModeratorEmail string
}

func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	port := getEnv("PORT", "8080")

	cfg := &Config{
		Port:          port,
		SiteName:      getEnv("SITE_NAME", "Inkwell"),
		SiteURL:       getEnv("SITE_URL", "http://localhost:"+port),
		SessionSecret: getEnv("SESSION_SECRET", "secret_key_change_me"),

		ContentBackend:   getEnv("CONTENT_BACKEND", "sanity"),
		SanityProjectID:  getEnv("SANITY_PROJECT_ID", os.Getenv("NEXT_PUBLIC_SANITY_PROJECT_ID")),
		SanityDataset:    getEnv("SANITY_DATASET", getEnv("NEXT_PUBLIC_SANITY_DATASET", "production")),
		SanityAPIVersion: getEnv("SANITY_API_VERSION", "2021-10-21"),
		SanityToken:      getEnv("SANITY_API_TOKEN", ""),
		SanityUseCDN:     getEnv("SANITY_USE_CDN", "false") == "true",
		DatabaseURL:      getEnv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=inkwell port=5432 sslmode=disable"),

		CommentEndpoint:   getEnv("COMMENT_ENDPOINT", "http://127.0.0.1:"+port+"/api/createComment"),
		CommentRelayToken: getEnv("COMMENT_RELAY_TOKEN", ""),
		RedisAddr:         getEnv("REDIS_ADDR", ""),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),

		SMTPHost:       getEnv("SMTP_HOST", ""),
		SMTPPort:       getEnv("SMTP_PORT", ""),
		SMTPUser:       getEnv("SMTP_USER", ""),
		SMTPPass:       getEnv("SMTP_PASS", ""),
		SMTPFrom:       getEnv("SMTP_FROM", ""),
		ModeratorEmail: getEnv("MODERATOR_EMAIL", ""),
	}

	cfg.TrustedProxies = splitList(getEnv("TRUSTED_PROXIES", ""))

	seconds, err := strconv.Atoi(getEnv("REVALIDATE_SECONDS", "60"))
	if err != nil || seconds <= 0 {
		return nil, fmt.Errorf("invalid REVALIDATE_SECONDS %q", os.Getenv("REVALIDATE_SECONDS"))
	}
	cfg.Revalidate = time.Duration(seconds) * time.Second

	limit, err := strconv.Atoi(getEnv("COMMENT_RATE_LIMIT", "5"))
	if err != nil || limit < 0 {
		return nil, fmt.Errorf("invalid COMMENT_RATE_LIMIT %q", os.Getenv("COMMENT_RATE_LIMIT"))
	}
	cfg.CommentRateLimit = limit

	switch cfg.ContentBackend {
	case "sanity":
		if cfg.SanityProjectID == "" {
			return nil, fmt.Errorf("SANITY_PROJECT_ID is required for the sanity content backend")
		}
	case "postgres":
	default:
		return nil, fmt.Errorf("unknown CONTENT_BACKEND %q", cfg.ContentBackend)
	}

	return cfg, nil
}

// MailEnabled reports whether every SMTP setting needed for moderation notices is present.
func (c *Config) MailEnabled() bool {
	return c.SMTPHost != "" && c.SMTPPort != "" && c.SMTPUser != "" && c.SMTPPass != "" &&
		c.SMTPFrom != "" && c.ModeratorEmail != ""
}

// splitList parses a comma-separated list, dropping empty entries. An empty
// input yields nil.
func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
