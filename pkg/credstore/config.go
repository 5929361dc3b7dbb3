package credstore

// Config holds credential store configuration
type Config struct {
	// Namespace prefixes both storage keys (default: "authkit")
	Namespace string `env:"CREDSTORE_NAMESPACE" envDefault:"authkit"`

	// Path is the directory for the file-backed store. Empty means the
	// caller decides (typically a per-user config directory).
	Path string `env:"CREDSTORE_PATH"`
}

// DefaultConfig returns default credential store configuration
func DefaultConfig() Config {
	return Config{
		Namespace: "authkit",
	}
}
