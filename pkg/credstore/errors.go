package credstore

import "errors"

var (
	// ErrNotFound indicates no complete credential pair is stored. Missing
	// keys, partial pairs and corrupt user records all report ErrNotFound so
	// that callers fail open to the logged-out state.
	ErrNotFound = errors.New("credstore.not_found")

	// ErrEmptyToken indicates Save was called without a token
	ErrEmptyToken = errors.New("credstore.empty_token")

	// ErrStoreFailure indicates the underlying storage rejected an operation
	ErrStoreFailure = errors.New("credstore.store_failure")

	// ErrInvalidKey indicates the encryption key has the wrong size
	ErrInvalidKey = errors.New("credstore.invalid_key")
)
