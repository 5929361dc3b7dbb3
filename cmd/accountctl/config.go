package main

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/authkit/pkg/apiclient"
	"github.com/dmitrymomot/authkit/pkg/config"
	"github.com/dmitrymomot/authkit/pkg/credstore"
)

// Config aggregates everything accountctl needs. Values resolve in order:
// environment variables, then the optional YAML profile, then package
// defaults.
type Config struct {
	API   apiclient.Config
	Store credstore.Config

	// EncryptionKey seals the on-disk credential cache when set. Must be
	// exactly 32 bytes.
	EncryptionKey string `env:"CREDSTORE_KEY"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"warn"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// profileFile is the YAML profile accountctl reads from
// ~/.config/accountctl/config.yaml (or the path given via ACCOUNTCTL_CONFIG).
type profileFile struct {
	BaseURL   string `yaml:"base_url"`
	Timeout   string `yaml:"timeout"`
	StorePath string `yaml:"store_path"`
	Namespace string `yaml:"namespace"`
}

func defaultProfilePath() string {
	if p := os.Getenv("ACCOUNTCTL_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "accountctl", "config.yaml")
}

// loadConfig builds the effective configuration. A missing profile file is
// fine; a malformed one is not.
func loadConfig() (Config, error) {
	_ = config.LoadEnv()

	var cfg Config
	if err := config.Load(&cfg.API); err != nil {
		return Config{}, err
	}
	if err := config.Load(&cfg.Store); err != nil {
		return Config{}, err
	}
	if err := config.Load(&cfg); err != nil {
		return Config{}, err
	}

	if path := defaultProfilePath(); path != "" {
		if err := applyProfile(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	if cfg.Store.Path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, err
		}
		cfg.Store.Path = filepath.Join(home, ".config", "accountctl")
	}

	return cfg, nil
}

// applyProfile fills in values from the YAML profile. Environment variables
// win: a profile value only applies when the matching variable is unset.
func applyProfile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	var p profileFile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return err
	}

	if p.BaseURL != "" && os.Getenv("API_BASE_URL") == "" {
		cfg.API.BaseURL = p.BaseURL
	}
	if p.Timeout != "" && os.Getenv("API_TIMEOUT") == "" {
		d, err := time.ParseDuration(p.Timeout)
		if err != nil {
			return err
		}
		cfg.API.Timeout = d
	}
	if p.StorePath != "" && os.Getenv("CREDSTORE_PATH") == "" {
		cfg.Store.Path = p.StorePath
	}
	if p.Namespace != "" && os.Getenv("CREDSTORE_NAMESPACE") == "" {
		cfg.Store.Namespace = p.Namespace
	}

	return nil
}
