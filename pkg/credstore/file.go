package credstore

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/dmitrymomot/authkit/pkg/apiclient"
)

// FileStore persists credentials as two files under a directory, the
// filesystem analogue of the browser's namespaced local storage keys. Files
// are written with 0600 and the directory is created on demand.
//
// With an encryption key configured, both files are sealed with
// XChaCha20-Poly1305 so a copied credential cache is useless without the key.
type FileStore struct {
	dir       string
	namespace string
	aead      interface {
		Seal(dst, nonce, plaintext, additionalData []byte) []byte
		Open(dst, nonce, ciphertext, additionalData []byte) ([]byte, error)
	}
}

// FileOption is a functional option for configuring the FileStore.
type FileOption func(*FileStore) error

// WithNamespace sets the filename prefix for both keys (default "authkit").
func WithNamespace(ns string) FileOption {
	return func(s *FileStore) error {
		if ns != "" {
			s.namespace = ns
		}
		return nil
	}
}

// WithEncryptionKey enables at-rest encryption of both files. The key must be
// exactly 32 bytes.
func WithEncryptionKey(key []byte) FileOption {
	return func(s *FileStore) error {
		aead, err := chacha20poly1305.NewX(key)
		if err != nil {
			return errors.Join(ErrInvalidKey, err)
		}
		s.aead = aead
		return nil
	}
}

// NewFileStore creates a file-backed credential store rooted at dir.
func NewFileStore(dir string, opts ...FileOption) (*FileStore, error) {
	s := &FileStore{
		dir:       dir,
		namespace: "authkit",
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}

	return s, nil
}

func (s *FileStore) tokenPath() string {
	return filepath.Join(s.dir, s.namespace+".token")
}

func (s *FileStore) userPath() string {
	return filepath.Join(s.dir, s.namespace+".user.json")
}

// Save writes both keys. The token is written last so a crash between the two
// writes leaves a partial pair, which Load already treats as absent.
func (s *FileStore) Save(ctx context.Context, creds Credentials) error {
	if creds.Token == "" {
		return ErrEmptyToken
	}

	userJSON, err := json.Marshal(creds.User)
	if err != nil {
		return errors.Join(ErrStoreFailure, err)
	}

	if err := s.writeFile(s.userPath(), userJSON); err != nil {
		return err
	}
	return s.writeFile(s.tokenPath(), []byte(creds.Token))
}

// Load returns the stored pair, or ErrNotFound when either key is missing or
// the user record does not decode.
func (s *FileStore) Load(ctx context.Context) (Credentials, error) {
	token, err := s.readFile(s.tokenPath())
	if err != nil {
		return Credentials{}, ErrNotFound
	}

	userJSON, err := s.readFile(s.userPath())
	if err != nil {
		return Credentials{}, ErrNotFound
	}

	var user apiclient.User
	if err := json.Unmarshal(userJSON, &user); err != nil {
		// Corrupt cache reads as logged out rather than failing the caller.
		return Credentials{}, ErrNotFound
	}

	if len(token) == 0 {
		return Credentials{}, ErrNotFound
	}

	return Credentials{Token: string(token), User: user}, nil
}

// Clear removes both keys. Missing files are not an error.
func (s *FileStore) Clear(ctx context.Context) error {
	var errs []error
	for _, path := range []string{s.tokenPath(), s.userPath()} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrStoreFailure}, errs...)...)
	}
	return nil
}

func (s *FileStore) writeFile(path string, data []byte) error {
	if s.aead != nil {
		nonce := make([]byte, chacha20poly1305.NonceSizeX)
		if _, err := rand.Read(nonce); err != nil {
			return errors.Join(ErrStoreFailure, err)
		}
		data = s.aead.Seal(nonce, nonce, data, nil)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	return nil
}

func (s *FileStore) readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if s.aead != nil {
		if len(data) < chacha20poly1305.NonceSizeX {
			return nil, ErrNotFound
		}
		nonce, sealed := data[:chacha20poly1305.NonceSizeX], data[chacha20poly1305.NonceSizeX:]
		plain, err := s.aead.Open(nil, nonce, sealed, nil)
		if err != nil {
			return nil, ErrNotFound
		}
		return plain, nil
	}

	return data, nil
}
