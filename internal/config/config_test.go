package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SERVICE_PORT", "")
	t.Setenv("REPOS_CONFIG_PATH", "")
	t.Setenv("GITHUB_TOKEN", "")
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("port = %d, want 8000", cfg.Server.Port)
	}
	if cfg.Registry.Path != "repos.json" {
		t.Errorf("registry path = %q, want repos.json", cfg.Registry.Path)
	}
	if cfg.GitHub.Token != "" {
		t.Errorf("token = %q, want empty", cfg.GitHub.Token)
	}
	if cfg.GitHub.BaseURL != DefaultGitHubBaseURL {
		t.Errorf("baseURL = %q, want %q", cfg.GitHub.BaseURL, DefaultGitHubBaseURL)
	}
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("server:\n  port: 9001\nregistry:\n  path: /etc/pigi/repos.yaml\ngithub:\n  token: secret\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9001 {
		t.Errorf("port = %d, want 9001", cfg.Server.Port)
	}
	if cfg.Registry.Path != "/etc/pigi/repos.yaml" {
		t.Errorf("registry path = %q", cfg.Registry.Path)
	}
	if cfg.GitHub.Token != "secret" {
		t.Errorf("token = %q, want secret", cfg.GitHub.Token)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: [not a mapping"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed config file")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 9001\n"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	t.Setenv("SERVICE_PORT", "9002")
	t.Setenv("REPOS_CONFIG_PATH", "override.json")
	t.Setenv("GITHUB_TOKEN", "env-token")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9002 {
		t.Errorf("port = %d, want 9002", cfg.Server.Port)
	}
	if cfg.Registry.Path != "override.json" {
		t.Errorf("registry path = %q, want override.json", cfg.Registry.Path)
	}
	if cfg.GitHub.Token != "env-token" {
		t.Errorf("token = %q, want env-token", cfg.GitHub.Token)
	}
}

func TestInvalidPort(t *testing.T) {
	t.Setenv("SERVICE_PORT", "not-a-number")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for unparseable SERVICE_PORT")
	}
}

func TestPortOutOfRange(t *testing.T) {
	t.Setenv("SERVICE_PORT", "70000")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for out-of-range port")
	}
}
