package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const fullYAML = `
port: 9090
api:
  base_url: https://router.internal:8443
  token: secret
slack:
  client_id: "123.456"
  redirect_url: https://router.example.com/slack/oauth/install
  scopes: [chat:write, channels:read]
  user_scopes: [users:read]
sessions:
  ttl: 1h
  sweep: "@every 10m"
`

const minimalYAML = `
api:
  base_url: http://localhost:3000
slack:
  install_url: https://slack.com/oauth/v2/authorize?client_id=abc
`

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestParse_FullConfig(t *testing.T) {
	cfg, err := Parse([]byte(fullYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if cfg.API.BaseURL != "https://router.internal:8443" || cfg.API.Token != "secret" {
		t.Errorf("API = %+v", cfg.API)
	}
	if cfg.Slack.ClientID != "123.456" {
		t.Errorf("Slack.ClientID = %q", cfg.Slack.ClientID)
	}
	if len(cfg.Slack.Scopes) != 2 || cfg.Slack.Scopes[1] != "channels:read" {
		t.Errorf("Slack.Scopes = %v", cfg.Slack.Scopes)
	}
	if len(cfg.Slack.UserScopes) != 1 {
		t.Errorf("Slack.UserScopes = %v", cfg.Slack.UserScopes)
	}
	if cfg.Sessions.TTLDuration != time.Hour {
		t.Errorf("Sessions.TTLDuration = %v, want 1h", cfg.Sessions.TTLDuration)
	}
	if cfg.Sessions.Sweep != "@every 10m" {
		t.Errorf("Sessions.Sweep = %q", cfg.Sessions.Sweep)
	}
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte(minimalYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if len(cfg.Slack.Scopes) != len(DefaultBotScopes) {
		t.Errorf("Slack.Scopes = %v, want defaults", cfg.Slack.Scopes)
	}
	if cfg.Sessions.TTLDuration != 30*time.Minute {
		t.Errorf("TTLDuration = %v, want 30m", cfg.Sessions.TTLDuration)
	}
	if cfg.Sessions.Sweep != "*/5 * * * *" {
		t.Errorf("Sweep = %q", cfg.Sessions.Sweep)
	}
}

func TestParse_DefaultScopesAreCopied(t *testing.T) {
	cfg, err := Parse([]byte(minimalYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg.Slack.Scopes[0] = "mutated"
	if DefaultBotScopes[0] == "mutated" {
		t.Error("defaults share backing array with config")
	}
}

func TestParse_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"missing base url", "slack:\n  client_id: x\n", "api.base_url is required"},
		{"relative base url", "api:\n  base_url: /api\nslack:\n  client_id: x\n", "absolute URL"},
		{"missing slack", "api:\n  base_url: http://x\n", "slack.install_url or slack.client_id"},
		{"bad ttl", minimalYAML + "sessions:\n  ttl: soon\n", "sessions.ttl"},
		{"bad sweep", minimalYAML + "sessions:\n  sweep: every tuesday\n", "sessions.sweep"},
		{"bad port", minimalYAML + "port: 70000\n", "out of range"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want to contain %q", err.Error(), tt.want)
			}
		})
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("api: [")); err == nil || !strings.Contains(err.Error(), "config: parse") {
		t.Errorf("err = %v", err)
	}
}

func TestParseEnv_Overrides(t *testing.T) {
	cfg, err := ParseEnv([]byte(minimalYAML), env(map[string]string{
		EnvAPIBaseURL:       "https://override.example.com",
		EnvAPIToken:         "tok",
		EnvSlackClientID:    "cid",
		EnvSlackRedirectURL: "https://r.example.com/cb",
		EnvPort:             "7000",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.API.BaseURL != "https://override.example.com" || cfg.API.Token != "tok" {
		t.Errorf("API = %+v", cfg.API)
	}
	if cfg.Slack.ClientID != "cid" || cfg.Slack.RedirectURL != "https://r.example.com/cb" {
		t.Errorf("Slack = %+v", cfg.Slack)
	}
	if cfg.Port != 7000 {
		t.Errorf("Port = %d", cfg.Port)
	}
}

func TestParseEnv_EnvOnly(t *testing.T) {
	cfg, err := ParseEnv(nil, env(map[string]string{
		EnvAPIBaseURL:      "http://localhost:3000",
		EnvSlackInstallURL: "https://slack.com/apps/install",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Slack.InstallURL != "https://slack.com/apps/install" {
		t.Errorf("InstallURL = %q", cfg.Slack.InstallURL)
	}
}

func TestParseEnv_BadPort(t *testing.T) {
	_, err := ParseEnv([]byte(minimalYAML), env(map[string]string{EnvPort: "http"}))
	if err == nil || !strings.Contains(err.Error(), EnvPort) {
		t.Errorf("err = %v", err)
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "relaydesk.yaml")
	if err := os.WriteFile(path, []byte(minimalYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvPort, "")
	t.Setenv(EnvAPIBaseURL, "")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != "http://localhost:3000" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil || !strings.Contains(err.Error(), "config: read") {
		t.Errorf("err = %v", err)
	}
}
