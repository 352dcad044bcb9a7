// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the process needs from the environment.
type Config struct {
	// Addr is the HTTP listen address. PORT (Railway-style) takes
	// precedence over ADDR.
	Addr string
	// ChannelSecret signs inbound webhook deliveries.
	ChannelSecret string
	// ChannelToken authorizes outbound replies.
	ChannelToken string
	// OpenAIKey authorizes generator calls.
	OpenAIKey string
	// OpenAIModel optionally overrides the generator model.
	OpenAIModel string
	// SessionTTL is how long an idle walkthrough survives before eviction.
	SessionTTL time.Duration
	// GenerateTimeout bounds each generator call.
	GenerateTimeout time.Duration
}

// Load reads configuration from the environment. A .env file in the working
// directory is honored for local runs; deployed environments set real vars.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Addr:            getenv("ADDR", ":8080"),
		ChannelSecret:   os.Getenv("LINE_CHANNEL_SECRET"),
		ChannelToken:    os.Getenv("LINE_CHANNEL_ACCESS_TOKEN"),
		OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:     os.Getenv("OPENAI_MODEL"),
		SessionTTL:      time.Hour,
		GenerateTimeout: 30 * time.Second,
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Addr = ":" + port
	}

	if v := os.Getenv("SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("parsing SESSION_TTL: %w", err)
		}
		cfg.SessionTTL = d
	}
	if v := os.Getenv("GENERATE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("parsing GENERATE_TIMEOUT: %w", err)
		}
		cfg.GenerateTimeout = d
	}

	var missing []string
	if cfg.ChannelSecret == "" {
		missing = append(missing, "LINE_CHANNEL_SECRET")
	}
	if cfg.ChannelToken == "" {
		missing = append(missing, "LINE_CHANNEL_ACCESS_TOKEN")
	}
	if cfg.OpenAIKey == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
