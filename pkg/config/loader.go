package config

import (
	"errors"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Load parses environment variables into the provided configuration struct
// based on `env` field tags.
//
// Example:
//
//	type ClientConfig struct {
//		BaseURL string `env:"API_BASE_URL,required"`
//		Debug   bool   `env:"DEBUG" envDefault:"false"`
//	}
//
//	var cfg ClientConfig
//	if err := config.Load(&cfg); err != nil {
//		// handle error
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}

	return nil
}

// MustLoad works like Load but panics if configuration loading fails. Useful
// for configurations the application cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(err)
	}
}

// LoadEnv loads environment variables from the given dotenv files before any
// Load call. Later files take precedence over earlier ones.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		// Default .env is optional; missing is fine.
		_ = godotenv.Load()
		return nil
	}

	for _, path := range paths {
		if err := godotenv.Overload(path); err != nil {
			return errors.Join(ErrLoadingEnvFile, err)
		}
	}

	return nil
}
