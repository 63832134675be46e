package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/quikcommit/qc/internal/output"
)

// FileName is the config file inside Dir().
const FileName = "config.yaml"

// DefaultAPIURL is the hosted generation service.
const DefaultAPIURL = "https://api.quikcommit.dev"

// Config is the persisted user configuration.
type Config struct {
	APIURL   string   `yaml:"api_url,omitempty"`
	Model    string   `yaml:"model,omitempty"`
	Provider string   `yaml:"provider,omitempty"`
	Excludes []string `yaml:"excludes,omitempty"`
	Rules    *Rules   `yaml:"rules,omitempty"`
}

// Store reads and writes config.yaml and the credentials file in one directory.
type Store struct {
	dir string
}

// NewStore returns a Store rooted at dir. An empty dir means Dir().
func NewStore(dir string) *Store {
	if dir == "" {
		dir = Dir()
	}
	return &Store{dir: dir}
}

// Dir returns the directory the store reads from.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path() string {
	return filepath.Join(s.dir, FileName)
}

// Load reads config.yaml. A missing or unreadable file yields an empty
// Config: a broken config must never block commit generation.
func (s *Store) Load() *Config {
	cfg := &Config{}
	data, err := os.ReadFile(s.path())
	if err != nil {
		return cfg
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return &Config{}
	}
	if cfg.Rules != nil {
		cfg.Rules = cfg.Rules.Sanitize()
	}
	return cfg
}

// Save writes cfg to config.yaml with owner-only permissions.
func (s *Store) Save(cfg *Config) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return output.NewSystemErrorWithCause("failed to create config directory", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return output.NewSystemErrorWithCause("failed to encode config", err)
	}
	if err := os.WriteFile(s.path(), data, 0o600); err != nil {
		return output.NewSystemErrorWithCause("failed to write config", err)
	}
	return nil
}

// Reset removes config.yaml. A missing file is not an error.
func (s *Store) Reset() error {
	err := os.Remove(s.path())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return output.NewSystemErrorWithCause("failed to remove config", err)
	}
	return nil
}

// settableKeys lists the keys accepted by Set.
var settableKeys = []string{"model", "api_url", "provider"}

// Set updates a single key and saves. An empty value clears the key.
func (s *Store) Set(key, value string) error {
	cfg := s.Load()
	switch strings.ToLower(key) {
	case "model":
		cfg.Model = value
	case "api_url", "apiurl":
		cfg.APIURL = strings.TrimRight(value, "/")
	case "provider":
		cfg.Provider = strings.ToLower(value)
	default:
		return output.NewUserError(fmt.Sprintf("unknown config key %q (valid: %s)", key, strings.Join(settableKeys, ", ")))
	}
	return s.Save(cfg)
}

// ResolveAPIURL returns the service base URL: $QC_API_URL, then config, then default.
func (c *Config) ResolveAPIURL() string {
	if env := os.Getenv("QC_API_URL"); env != "" {
		return strings.TrimRight(env, "/")
	}
	if c.APIURL != "" {
		return c.APIURL
	}
	return DefaultAPIURL
}
