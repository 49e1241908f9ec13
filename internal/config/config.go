// Package config provides YAML-based configuration loading for relaydesk.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// DefaultBotScopes are requested when slack.scopes is empty.
var DefaultBotScopes = []string{
	"chat:write",
	"channels:read",
	"groups:read",
	"team:read",
	"im:history",
	"channels:history",
}

// Config is the top-level relaydesk configuration, loaded from relaydesk.yaml.
type Config struct {
	Port     int            `yaml:"port"`
	API      APIConfig      `yaml:"api"`
	Slack    SlackConfig    `yaml:"slack"`
	Sessions SessionsConfig `yaml:"sessions"`
}

// APIConfig locates the routing backend.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Token   string `yaml:"token"`
}

// SlackConfig controls the "Connect Slack Workspace" flow. A shareable
// install URL wins over building one from the client id.
type SlackConfig struct {
	InstallURL  string   `yaml:"install_url"`
	ClientID    string   `yaml:"client_id"`
	RedirectURL string   `yaml:"redirect_url"`
	Scopes      []string `yaml:"scopes"`
	UserScopes  []string `yaml:"user_scopes"`
}

// SessionsConfig controls per-browser console lifetimes.
type SessionsConfig struct {
	TTL   string `yaml:"ttl"`
	Sweep string `yaml:"sweep"`

	// TTLDuration is TTL parsed during validation.
	TTLDuration time.Duration `yaml:"-"`
}

// Environment variables that override the file.
const (
	EnvAPIBaseURL       = "RELAYDESK_API_BASE_URL"
	EnvAPIToken         = "RELAYDESK_API_TOKEN"
	EnvSlackClientID    = "RELAYDESK_SLACK_CLIENT_ID"
	EnvSlackInstallURL  = "RELAYDESK_SLACK_INSTALL_URL"
	EnvSlackRedirectURL = "RELAYDESK_SLACK_REDIRECT_URL"
	EnvPort             = "RELAYDESK_PORT"
)

// cronParser uses standard 5-field cron expressions (minute, hour, dom, month, dow).
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Load reads a YAML config file from path and returns a validated Config.
// An empty path builds the config from the environment alone.
func Load(path string) (*Config, error) {
	if path == "" {
		return ParseEnv(nil, os.Getenv)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return ParseEnv(data, os.Getenv)
}

// Parse unmarshals YAML bytes into a validated Config, ignoring the
// environment.
func Parse(data []byte) (*Config, error) {
	return ParseEnv(data, func(string) string { return "" })
}

// ParseEnv unmarshals YAML bytes, applies overrides from getenv, and
// validates the result.
func ParseEnv(data []byte, getenv func(string) string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.applyEnv(getenv); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	set(&c.API.BaseURL, EnvAPIBaseURL)
	set(&c.API.Token, EnvAPIToken)
	set(&c.Slack.ClientID, EnvSlackClientID)
	set(&c.Slack.InstallURL, EnvSlackInstallURL)
	set(&c.Slack.RedirectURL, EnvSlackRedirectURL)
	if v := strings.TrimSpace(getenv(EnvPort)); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvPort, err)
		}
		c.Port = p
	}
	return nil
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	if c.Port == 0 {
		c.Port = 8080
	}
	if len(c.Slack.Scopes) == 0 {
		c.Slack.Scopes = append([]string(nil), DefaultBotScopes...)
	}
	if c.Sessions.TTL == "" {
		c.Sessions.TTL = "30m"
	}
	if c.Sessions.Sweep == "" {
		c.Sessions.Sweep = "*/5 * * * *"
	}
}

// validate checks that all required fields are present and consistent.
func (c *Config) validate() error {
	var errs []string
	if c.API.BaseURL == "" {
		errs = append(errs, "api.base_url is required")
	} else if u, err := url.Parse(c.API.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, "api.base_url must be an absolute URL")
	}
	if c.Slack.InstallURL == "" && c.Slack.ClientID == "" {
		errs = append(errs, "slack.install_url or slack.client_id is required")
	}
	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Sprintf("port %d out of range", c.Port))
	}
	if d, err := time.ParseDuration(c.Sessions.TTL); err != nil || d <= 0 {
		errs = append(errs, fmt.Sprintf("sessions.ttl %q is not a positive duration", c.Sessions.TTL))
	} else {
		c.Sessions.TTLDuration = d
	}
	if _, err := cronParser.Parse(c.Sessions.Sweep); err != nil {
		errs = append(errs, fmt.Sprintf("sessions.sweep %q: %v", c.Sessions.Sweep, err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
