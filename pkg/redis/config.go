package redis

import "time"

// Config holds redis connection configuration
type Config struct {
	// ConnectionURL in the format "redis://:password@localhost:6379/0"
	ConnectionURL string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`

	// RetryAttempts is the number of connection attempts before giving up
	RetryAttempts int `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`

	// RetryInterval is the wait between attempts
	RetryInterval time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`

	// ConnectTimeout bounds the whole connection procedure
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
}

// DefaultConfig returns default redis connection configuration
func DefaultConfig() Config {
	return Config{
		ConnectionURL:  "redis://localhost:6379/0",
		RetryAttempts:  3,
		RetryInterval:  5 * time.Second,
		ConnectTimeout: 30 * time.Second,
	}
}
