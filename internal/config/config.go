// Package config loads the reporter configuration from an optional YAML
// file with environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultTimezone = "Asia/Seoul"

// Config enumerates everything a report run needs: the API token, the
// source repository whose contributors are checked, the destination
// repository that receives the issue, and the reporting timezone.
type Config struct {
	Token       string `yaml:"token,omitempty"`
	SourceOwner string `yaml:"source_owner,omitempty"`
	SourceRepo  string `yaml:"source_repo,omitempty"`
	DestOwner   string `yaml:"dest_owner,omitempty"`
	DestRepo    string `yaml:"dest_repo,omitempty"`
	Timezone    string `yaml:"timezone,omitempty"`
}

// Load reads the YAML file at path (skipped when path is empty), then
// applies environment variable overrides. The destination pair defaults to
// the source pair, covering the common post-to-the-same-repo setup.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}
	applyEnv(cfg)
	if cfg.Timezone == "" {
		cfg.Timezone = defaultTimezone
	}
	if cfg.DestOwner == "" && cfg.DestRepo == "" {
		cfg.DestOwner = cfg.SourceOwner
		cfg.DestRepo = cfg.SourceRepo
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	overrides := map[string]*string{
		"GITHUB_TOKEN":       &cfg.Token,
		"DAILY_SOURCE_OWNER": &cfg.SourceOwner,
		"DAILY_SOURCE_REPO":  &cfg.SourceRepo,
		"DAILY_DEST_OWNER":   &cfg.DestOwner,
		"DAILY_DEST_REPO":    &cfg.DestRepo,
		"DAILY_TIMEZONE":     &cfg.Timezone,
	}
	for env, dst := range overrides {
		if value := os.Getenv(env); value != "" {
			*dst = value
		}
	}
}

// Validate checks that every required field is present and the timezone is
// resolvable.
func (c *Config) Validate() error {
	if c.Token == "" {
		return errors.New("token is not set (GITHUB_TOKEN environment variable or token in the config file)")
	}
	if c.SourceOwner == "" || c.SourceRepo == "" {
		return errors.New("source repository is not set (DAILY_SOURCE_OWNER / DAILY_SOURCE_REPO)")
	}
	if c.DestOwner == "" || c.DestRepo == "" {
		return errors.New("destination repository is not set (DAILY_DEST_OWNER / DAILY_DEST_REPO)")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return nil
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
