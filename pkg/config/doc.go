// Package config loads configuration structs from environment variables,
// with optional dotenv file support for local development. Struct fields are
// mapped with `env` tags; see Load for an example.
package config
