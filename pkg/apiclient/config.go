package apiclient

import "time"

// Config holds API client configuration
type Config struct {
	// BaseURL is the root of the account API, e.g. "https://api.example.com"
	BaseURL string `env:"API_BASE_URL" envDefault:"http://localhost:3333"`

	// Timeout bounds each individual request (0 disables the client timeout)
	Timeout time.Duration `env:"API_TIMEOUT" envDefault:"30s"`
}

// DefaultConfig returns default API client configuration
func DefaultConfig() Config {
	return Config{
		BaseURL: "http://localhost:3333",
		Timeout: 30 * time.Second,
	}
}
