package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/blastlab/testgen/internal/paths"
	"gopkg.in/yaml.v3"
)

const (
	DefaultServerPort = 3001
	DefaultBackendURL = "http://localhost:11434"
	DefaultModel      = "llama3.2"
	DefaultProvider   = "ollama"
	DefaultOutputMode = "strict"
)

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// GRPCPort enables the gRPC GenerateService when non-zero.
	GRPCPort int `yaml:"grpc_port"`
}

// Addr returns the HTTP listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// GRPCAddr returns the gRPC listen address, or "" when gRPC is disabled.
func (s ServerConfig) GRPCAddr() string {
	if s.GRPCPort == 0 {
		return ""
	}
	return fmt.Sprintf("%s:%d", s.Host, s.GRPCPort)
}

type BackendConfig struct {
	Provider     string `yaml:"provider"` // ollama, langchain-ollama, openai, gemini
	URL          string `yaml:"url"`
	Model        string `yaml:"model"`
	APIKeySecret string `yaml:"api_key_secret"`
	Output       string `yaml:"output"` // strict or lenient
}

type ClientConfig struct {
	ProxyURL string `yaml:"proxy_url"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console or json
}

type VaultConfig struct {
	Backend string `yaml:"backend"` // keychain or env
}

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Backend BackendConfig `yaml:"backend"`
	Client  ClientConfig  `yaml:"client"`
	Log     LogConfig     `yaml:"log"`
	Vault   VaultConfig   `yaml:"vault"`
}

func Defaults() Config {
	return Config{
		Server: ServerConfig{Port: DefaultServerPort},
		Backend: BackendConfig{
			Provider: DefaultProvider,
			URL:      DefaultBackendURL,
			Model:    DefaultModel,
			Output:   DefaultOutputMode,
		},
		Client: ClientConfig{ProxyURL: fmt.Sprintf("http://localhost:%d", DefaultServerPort)},
		Log:    LogConfig{Level: "info", Format: "console"},
		Vault:  VaultConfig{Backend: "keychain"},
	}
}

// Path returns the expected path to the config.yaml file.
func Path() string {
	return filepath.Join(paths.Home(), "config.yaml")
}

// Load reads configuration from config.yaml if it exists.
// Missing file is not an error; defaults are returned.
func Load() (Config, error) {
	cfg := Defaults()
	b, err := os.ReadFile(Path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	var fileCfg Config
	if err := yaml.Unmarshal(b, &fileCfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	merge(&cfg, fileCfg)
	return cfg, nil
}

// merge overrides defaults with provided values if non-zero.
func merge(cfg *Config, f Config) {
	if f.Server.Host != "" {
		cfg.Server.Host = f.Server.Host
	}
	if f.Server.Port != 0 {
		cfg.Server.Port = f.Server.Port
	}
	if f.Server.GRPCPort != 0 {
		cfg.Server.GRPCPort = f.Server.GRPCPort
	}
	if f.Backend.Provider != "" {
		cfg.Backend.Provider = f.Backend.Provider
	}
	if f.Backend.URL != "" {
		cfg.Backend.URL = f.Backend.URL
	}
	if f.Backend.Model != "" {
		cfg.Backend.Model = f.Backend.Model
	}
	if f.Backend.APIKeySecret != "" {
		cfg.Backend.APIKeySecret = f.Backend.APIKeySecret
	}
	if f.Backend.Output != "" {
		cfg.Backend.Output = f.Backend.Output
	}
	if f.Client.ProxyURL != "" {
		cfg.Client.ProxyURL = f.Client.ProxyURL
	}
	if f.Log.Level != "" {
		cfg.Log.Level = f.Log.Level
	}
	if f.Log.Format != "" {
		cfg.Log.Format = f.Log.Format
	}
	if f.Vault.Backend != "" {
		cfg.Vault.Backend = f.Vault.Backend
	}
}

// Save writes cfg to config.yaml, creating the home directory when needed.
func Save(cfg Config) (string, error) {
	if _, err := paths.EnsureHome(); err != nil {
		return "", err
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}
	p := Path()
	if err := os.WriteFile(p, b, 0o644); err != nil {
		return "", err
	}
	return p, nil
}

// Check reports every problem found in cfg. A nil slice means the config is usable.
func Check(cfg Config) []string {
	var problems []string
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("server.port out of range: %d", cfg.Server.Port))
	}
	if cfg.Server.GRPCPort < 0 || cfg.Server.GRPCPort > 65535 {
		problems = append(problems, fmt.Sprintf("server.grpc_port out of range: %d", cfg.Server.GRPCPort))
	}
	if cfg.Server.GRPCPort != 0 && cfg.Server.GRPCPort == cfg.Server.Port {
		problems = append(problems, "server.grpc_port must differ from server.port")
	}
	switch strings.ToLower(cfg.Backend.Provider) {
	case "ollama", "langchain-ollama", "openai", "gemini":
	default:
		problems = append(problems, fmt.Sprintf("backend.provider not supported: %q", cfg.Backend.Provider))
	}
	if strings.TrimSpace(cfg.Backend.Model) == "" {
		problems = append(problems, "backend.model is required")
	}
	if cfg.Backend.URL != "" {
		if u, err := url.Parse(cfg.Backend.URL); err != nil || u.Scheme == "" || u.Host == "" {
			problems = append(problems, fmt.Sprintf("backend.url is not an absolute URL: %q", cfg.Backend.URL))
		}
	}
	switch cfg.Backend.Output {
	case "strict", "lenient":
	default:
		problems = append(problems, fmt.Sprintf("backend.output must be strict or lenient: %q", cfg.Backend.Output))
	}
	if u, err := url.Parse(cfg.Client.ProxyURL); err != nil || u.Scheme == "" || u.Host == "" {
		problems = append(problems, fmt.Sprintf("client.proxy_url is not an absolute URL: %q", cfg.Client.ProxyURL))
	}
	switch cfg.Vault.Backend {
	case "keychain", "env":
	default:
		problems = append(problems, fmt.Sprintf("vault.backend not supported: %q", cfg.Vault.Backend))
	}
	return problems
}
