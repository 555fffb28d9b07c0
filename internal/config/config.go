package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Registry RegistryConfig `yaml:"registry"`
	GitHub   GitHubConfig   `yaml:"github"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type RegistryConfig struct {
	Path string `yaml:"path"`
}

type GitHubConfig struct {
	// Token is the fallback upstream credential, used when a request does
	// not embed one of its own.
	Token   string `yaml:"token"`
	BaseURL string `yaml:"baseURL"`
}

const DefaultGitHubBaseURL = "https://api.github.com"

// Load builds the configuration from an optional YAML file, then applies
// process-environment overrides (SERVICE_PORT, REPOS_CONFIG_PATH,
// GITHUB_TOKEN). Environment values win over file values.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Server:   ServerConfig{Port: 8000},
		Registry: RegistryConfig{Path: "repos.json"},
		GitHub:   GitHubConfig{BaseURL: DefaultGitHubBaseURL},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d", cfg.Server.Port)
	}
	if cfg.Registry.Path == "" {
		return nil, fmt.Errorf("registry path is empty")
	}
	if cfg.GitHub.BaseURL == "" {
		cfg.GitHub.BaseURL = DefaultGitHubBaseURL
	}

	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("SERVICE_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing SERVICE_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("REPOS_CONFIG_PATH"); v != "" {
		cfg.Registry.Path = v
	}
	if v := os.Getenv("GITHUB_TOKEN"); v != "" {
		cfg.GitHub.Token = v
	}
	return nil
}
