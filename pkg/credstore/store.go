package credstore

import (
	"context"

	"github.com/dmitrymomot/authkit/pkg/apiclient"
)

// Credentials is the durable form of an authenticated session: the bearer
// token together with the user record it belongs to. The two are persisted
// under independent keys but only ever valid as a pair.
type Credentials struct {
	Token string
	User  apiclient.User
}

// Store defines the interface for credential persistence
type Store interface {
	// Save writes both the token and the user record
	Save(ctx context.Context, creds Credentials) error

	// Load returns the stored pair. It returns ErrNotFound unless both keys
	// are present and the user record decodes successfully.
	Load(ctx context.Context) (Credentials, error)

	// Clear removes both keys
	Clear(ctx context.Context) error
}
