package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/mcdev12/sparring/go/internal/models"
	"gopkg.in/yaml.v3"
)

// Config is the server configuration loaded from yaml, with env overrides
// applied in loadConfig.
type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`

	Responder struct {
		BaseURL    string `yaml:"base_url"`
		TimeoutSec int    `yaml:"timeout_sec"`
	} `yaml:"responder"`

	NATS struct {
		URL string `yaml:"url"`
	} `yaml:"nats"`

	Session struct {
		DefaultRounds []RoundConfig `yaml:"default_rounds"`
		SoundEnabled  bool          `yaml:"sound_enabled"`
	} `yaml:"session"`
}

// RoundConfig is one round in the configured default plan.
type RoundConfig struct {
	Label       string `yaml:"label"`
	DurationSec int    `yaml:"duration_sec"`
}

// DefaultRounds converts the configured plan to model rounds, falling back to
// the built-in plan when none is configured.
func (c *Config) DefaultRounds() []models.Round {
	if len(c.Session.DefaultRounds) == 0 {
		return models.DefaultRoundPlan()
	}
	rounds := make([]models.Round, len(c.Session.DefaultRounds))
	for i, r := range c.Session.DefaultRounds {
		rounds[i] = models.Round{Label: r.Label, DurationSec: r.DurationSec}
	}
	return rounds
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func loadConfig(path string) (*Config, error) {
	var config Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Env overrides and defaults
	config.Server.Port = getEnv("PORT", orDefault(config.Server.Port, "8080"))
	config.Responder.BaseURL = getEnv("RESPONDER_URL", orDefault(config.Responder.BaseURL, "http://localhost:9090"))
	if config.Responder.TimeoutSec <= 0 {
		config.Responder.TimeoutSec = getEnvAsInt("RESPONDER_TIMEOUT_SEC", 30)
	}
	config.NATS.URL = getEnv("NATS_URL", config.NATS.URL)

	return &config, nil
}

func orDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
