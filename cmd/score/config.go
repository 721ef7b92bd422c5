package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Schedule struct {
		BaseURL         string `yaml:"base_url"`
		IntervalMinutes int    `yaml:"interval_minutes"`
	} `yaml:"schedule"`
	Live struct {
		BaseURL     string `yaml:"base_url"`
		PollSeconds int    `yaml:"poll_seconds"`
	} `yaml:"live"`
}

func defaultConfig() *Config {
	var cfg Config
	cfg.Schedule.BaseURL = "https://cornellbigred.com"
	cfg.Schedule.IntervalMinutes = 15
	cfg.Live.BaseURL = "https://sidearmstats.com/cornell"
	cfg.Live.PollSeconds = 30
	return &cfg
}

func (c *Config) ScrapeInterval() time.Duration {
	return time.Duration(c.Schedule.IntervalMinutes) * time.Minute
}

func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Live.PollSeconds) * time.Second
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
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := defaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}
