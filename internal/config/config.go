// Package config reads the server configuration from the environment.
//
// An optional .env file is loaded first; variables already set in the
// process environment win over the file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/devraikou/portfolio/internal/apperror"
	"github.com/devraikou/portfolio/internal/nav"
)

type Config struct {
	Port     int
	DBPath   string
	LogLevel string

	Presence PresenceConfig
	GitHub   GitHubConfig
	Auth     AuthConfig
	Nav      nav.Config

	// ImageDomains are the hosts images may be loaded from, besides self.
	ImageDomains []string
}

type PresenceConfig struct {
	BaseURL         string
	UserID          string
	PollInterval    time.Duration
	ElapsedInterval time.Duration
}

type GitHubConfig struct {
	APIURL       string
	Account      string
	Token        string
	DisplayCount int
	FetchTimeout time.Duration
}

type AuthConfig struct {
	JWTSecret         string
	AdminPasswordHash string
}

// AdminEnabled reports whether the admin inbox can be used.
func (a AuthConfig) AdminEnabled() bool {
	return a.JWTSecret != "" && a.AdminPasswordHash != ""
}

// Load reads the configuration. If envFile is empty a .env in the working
// directory is loaded when present; a named envFile must exist.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("config: loading %s: %w", envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	p := &parser{}
	navDefaults := nav.DefaultConfig()

	cfg := &Config{
		Port:     p.int("PORT", 8080),
		DBPath:   getEnv("DB_PATH", "data/portfolio.db"),
		LogLevel: strings.ToLower(getEnv("LOG_LEVEL", "info")),
		Presence: PresenceConfig{
			BaseURL:         getEnv("PRESENCE_BASE_URL", "https://api.lanyard.rest/v1"),
			UserID:          getEnv("PRESENCE_USER_ID", "263957712507895808"),
			PollInterval:    p.duration("PRESENCE_POLL_INTERVAL", 30*time.Second),
			ElapsedInterval: p.duration("PRESENCE_ELAPSED_INTERVAL", 60*time.Second),
		},
		GitHub: GitHubConfig{
			APIURL:       getEnv("GITHUB_API_URL", "https://api.github.com"),
			Account:      getEnv("GITHUB_ACCOUNT", "devraikou"),
			Token:        os.Getenv("GITHUB_TOKEN"),
			DisplayCount: p.int("PROJECTS_DISPLAY_COUNT", 6),
			FetchTimeout: p.duration("PROJECTS_FETCH_TIMEOUT", 10*time.Second),
		},
		Auth: AuthConfig{
			JWTSecret:         os.Getenv("JWT_SECRET"),
			AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		},
		Nav: nav.Config{
			TopOffset:       p.float("NAV_TOP_OFFSET", navDefaults.TopOffset),
			BottomOffset:    p.float("NAV_BOTTOM_OFFSET", navDefaults.BottomOffset),
			HeaderOffset:    p.float("NAV_HEADER_OFFSET", navDefaults.HeaderOffset),
			ActivationRatio: p.float("NAV_ACTIVATION_RATIO", navDefaults.ActivationRatio),
			ScrollMargin:    navDefaults.ScrollMargin,
		},
		ImageDomains: splitList(getEnv("IMAGE_DOMAINS", "cdn.discordapp.com")),
	}

	if p.err != nil {
		return nil, p.err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges. It returns the first problem found as an
// apperror validation error naming the variable.
func (c *Config) Validate() error {
	switch {
	case c.Port < 1 || c.Port > 65535:
		return apperror.ValidationFailed("PORT", fmt.Sprintf("port %d out of range", c.Port))
	case c.DBPath == "":
		return apperror.ValidationFailed("DB_PATH", "database path is required")
	case c.Presence.UserID == "":
		return apperror.ValidationFailed("PRESENCE_USER_ID", "presence user id is required")
	case c.Presence.PollInterval <= 0:
		return apperror.ValidationFailed("PRESENCE_POLL_INTERVAL", "poll interval must be positive")
	case c.Presence.ElapsedInterval <= 0:
		return apperror.ValidationFailed("PRESENCE_ELAPSED_INTERVAL", "elapsed interval must be positive")
	case c.GitHub.Account == "":
		return apperror.ValidationFailed("GITHUB_ACCOUNT", "github account is required")
	case c.GitHub.DisplayCount < 1:
		return apperror.ValidationFailed("PROJECTS_DISPLAY_COUNT", "display count must be at least 1")
	case c.GitHub.FetchTimeout <= 0:
		return apperror.ValidationFailed("PROJECTS_FETCH_TIMEOUT", "fetch timeout must be positive")
	case c.Nav.ActivationRatio < 0 || c.Nav.ActivationRatio > 1:
		return apperror.ValidationFailed("NAV_ACTIVATION_RATIO", "activation ratio must be between 0 and 1")
	}

	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// SlogLevel returns the configured log level. Validate has already
// rejected unknown names.
func (c *Config) SlogLevel() slog.Level {
	lvl, _ := ParseLevel(c.LogLevel)
	return lvl
}

// ParseLevel maps debug, info, warn and error onto slog levels.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, apperror.ValidationFailed("LOG_LEVEL", fmt.Sprintf("unknown log level %q", s))
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parser collects the first conversion error so Load can report it once.
type parser struct {
	err error
}

func (p *parser) fail(key, value string, err error) {
	if p.err != nil {
		return
	}
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		err = numErr.Err
	}
	p.err = apperror.ValidationFailed(key, fmt.Sprintf("invalid %s value %q: %v", key, value, err))
}

func (p *parser) int(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		p.fail(key, value, err)
		return defaultValue
	}
	return n
}

func (p *parser) float(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		p.fail(key, value, err)
		return defaultValue
	}
	return f
}

func (p *parser) duration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		p.fail(key, value, err)
		return defaultValue
	}
	return d
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
