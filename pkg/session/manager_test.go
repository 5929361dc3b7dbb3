package session_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/apiclient"
	"github.com/dmitrymomot/authkit/pkg/credstore"
	"github.com/dmitrymomot/authkit/pkg/session"
)

var testUser = apiclient.User{
	ID:        "u1",
	Name:      "John Doe",
	Email:     "john@example.com",
	AvatarURL: "http://localhost:3333/avatar.jpg",
}

// fakeAPI implements session.API with scriptable sign-in behavior and records
// the transport token state.
type fakeAPI struct {
	mu         sync.Mutex
	token      string
	signInFunc func(ctx context.Context, email, password string) (apiclient.SessionPayload, error)
	signIns    int
}

func (f *fakeAPI) SignIn(ctx context.Context, email, password string) (apiclient.SessionPayload, error) {
	f.mu.Lock()
	f.signIns++
	fn := f.signInFunc
	f.mu.Unlock()

	if fn == nil {
		return apiclient.SessionPayload{}, errors.New("no sign-in behavior configured")
	}
	return fn(ctx, email, password)
}

func (f *fakeAPI) SetToken(token string) {
	f.mu.Lock()
	f.token = token
	f.mu.Unlock()
}

func (f *fakeAPI) ClearToken() {
	f.mu.Lock()
	f.token = ""
	f.mu.Unlock()
}

func (f *fakeAPI) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func acceptingAPI(token string, user apiclient.User) *fakeAPI {
	return &fakeAPI{
		signInFunc: func(ctx context.Context, email, password string) (apiclient.SessionPayload, error) {
			return apiclient.SessionPayload{Token: token, User: user}, nil
		},
	}
}

// failingStore rejects every write, for exercising persistence failures.
type failingStore struct{}

func (failingStore) Save(ctx context.Context, creds credstore.Credentials) error {
	return credstore.ErrStoreFailure
}

func (failingStore) Load(ctx context.Context) (credstore.Credentials, error) {
	return credstore.Credentials{}, credstore.ErrNotFound
}

func (failingStore) Clear(ctx context.Context) error { return credstore.ErrStoreFailure }

func TestManager_Bootstrap(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("rehydrates a complete stored pair", func(t *testing.T) {
		t.Parallel()

		store := credstore.NewMemoryStore()
		require.NoError(t, store.Save(ctx, credstore.Credentials{Token: "t1", User: testUser}))

		api := &fakeAPI{}
		m := session.New(api, store)
		defer m.Close() //nolint:errcheck

		snap := m.Bootstrap(ctx)
		assert.True(t, snap.IsAuthenticated())
		assert.Equal(t, "t1", snap.Token)
		assert.Equal(t, testUser, snap.User)
		assert.Equal(t, "t1", api.Token())
	})

	t.Run("stays logged out on empty store", func(t *testing.T) {
		t.Parallel()

		api := &fakeAPI{}
		m := session.New(api, credstore.NewMemoryStore())
		defer m.Close() //nolint:errcheck

		snap := m.Bootstrap(ctx)
		assert.False(t, snap.IsAuthenticated())
		assert.Empty(t, api.Token())
	})

	t.Run("stays logged out on partial pair", func(t *testing.T) {
		t.Parallel()

		store := credstore.NewMemoryStore()
		store.SetRaw("token", "t1")

		api := &fakeAPI{}
		m := session.New(api, store)
		defer m.Close() //nolint:errcheck

		snap := m.Bootstrap(ctx)
		assert.False(t, snap.IsAuthenticated())
		assert.Empty(t, api.Token(), "no header configured for a partial session")
	})

	t.Run("stays logged out on corrupt user record", func(t *testing.T) {
		t.Parallel()

		store := credstore.NewMemoryStore()
		store.SetRaw("token", "t1")
		store.SetRaw("user", "{not json")

		api := &fakeAPI{}
		m := session.New(api, store)
		defer m.Close() //nolint:errcheck

		snap := m.Bootstrap(ctx)
		assert.False(t, snap.IsAuthenticated())
	})

	t.Run("installs bearer header on the real transport", func(t *testing.T) {
		t.Parallel()

		var gotAuth string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		client, err := apiclient.New(srv.URL)
		require.NoError(t, err)

		store := credstore.NewMemoryStore()
		require.NoError(t, store.Save(ctx, credstore.Credentials{Token: "t1", User: testUser}))

		m := session.New(client, store)
		defer m.Close() //nolint:errcheck
		m.Bootstrap(ctx)

		require.NoError(t, client.ForgotPassword(ctx, "john@example.com"))
		assert.Equal(t, "Bearer t1", gotAuth)
	})
}

func TestManager_SignIn(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("persists, installs token and replaces snapshot", func(t *testing.T) {
		t.Parallel()

		store := credstore.NewMemoryStore()
		api := acceptingAPI("t1", testUser)
		m := session.New(api, store)
		defer m.Close() //nolint:errcheck

		snap, err := m.SignIn(ctx, "john@example.com", "123456")
		require.NoError(t, err)
		assert.True(t, snap.IsAuthenticated())
		assert.Equal(t, testUser, snap.User)

		assert.Equal(t, "t1", api.Token())

		stored, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, credstore.Credentials{Token: "t1", User: testUser}, stored)
	})

	t.Run("remote failure leaves everything untouched", func(t *testing.T) {
		t.Parallel()

		store := credstore.NewMemoryStore()
		api := &fakeAPI{
			signInFunc: func(ctx context.Context, email, password string) (apiclient.SessionPayload, error) {
				return apiclient.SessionPayload{}, apiclient.ErrUnexpectedStatus
			},
		}
		m := session.New(api, store)
		defer m.Close() //nolint:errcheck

		_, err := m.SignIn(ctx, "john@example.com", "wrong")
		assert.ErrorIs(t, err, apiclient.ErrUnexpectedStatus)

		assert.False(t, m.Snapshot().IsAuthenticated())
		assert.Empty(t, api.Token())
		_, err = store.Load(ctx)
		assert.ErrorIs(t, err, credstore.ErrNotFound)
	})

	t.Run("persistence failure aborts before any state change", func(t *testing.T) {
		t.Parallel()

		api := acceptingAPI("t1", testUser)
		m := session.New(api, failingStore{})
		defer m.Close() //nolint:errcheck

		_, err := m.SignIn(ctx, "john@example.com", "123456")
		assert.ErrorIs(t, err, credstore.ErrStoreFailure)
		assert.False(t, m.Snapshot().IsAuthenticated())
		assert.Empty(t, api.Token())
	})

	t.Run("last completed sign-in wins", func(t *testing.T) {
		t.Parallel()

		store := credstore.NewMemoryStore()
		api := acceptingAPI("t1", testUser)
		m := session.New(api, store)
		defer m.Close() //nolint:errcheck

		_, err := m.SignIn(ctx, "john@example.com", "123456")
		require.NoError(t, err)

		other := apiclient.User{ID: "u2", Name: "Jane", Email: "jane@example.com"}
		api.signInFunc = func(ctx context.Context, email, password string) (apiclient.SessionPayload, error) {
			return apiclient.SessionPayload{Token: "t2", User: other}, nil
		}

		_, err = m.SignIn(ctx, "jane@example.com", "654321")
		require.NoError(t, err)

		assert.Equal(t, "t2", m.Snapshot().Token)
		assert.Equal(t, other, m.Snapshot().User)
	})
}

func TestManager_SignOut(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("clears store, transport and snapshot", func(t *testing.T) {
		t.Parallel()

		store := credstore.NewMemoryStore()
		api := acceptingAPI("t1", testUser)
		m := session.New(api, store)
		defer m.Close() //nolint:errcheck

		_, err := m.SignIn(ctx, "john@example.com", "123456")
		require.NoError(t, err)

		require.NoError(t, m.SignOut(ctx))

		assert.False(t, m.Snapshot().IsAuthenticated())
		assert.Empty(t, api.Token())
		_, err = store.Load(ctx)
		assert.ErrorIs(t, err, credstore.ErrNotFound)
	})

	t.Run("is idempotent while logged out", func(t *testing.T) {
		t.Parallel()

		api := &fakeAPI{}
		m := session.New(api, credstore.NewMemoryStore())
		defer m.Close() //nolint:errcheck

		require.NoError(t, m.SignOut(ctx))
		require.NoError(t, m.SignOut(ctx))
		assert.False(t, m.Snapshot().IsAuthenticated())
	})
}

func TestManager_UpdateUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("replaces the user and preserves the token", func(t *testing.T) {
		t.Parallel()

		store := credstore.NewMemoryStore()
		api := acceptingAPI("t1", testUser)
		m := session.New(api, store)
		defer m.Close() //nolint:errcheck

		_, err := m.SignIn(ctx, "john@example.com", "123456")
		require.NoError(t, err)

		updated := apiclient.User{ID: "u1", Name: "John", Email: "john@test.com"}
		require.NoError(t, m.UpdateUser(ctx, updated))

		snap := m.Snapshot()
		assert.Equal(t, "t1", snap.Token)
		assert.Equal(t, updated, snap.User)

		stored, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "t1", stored.Token, "token unchanged in the store")
		assert.Equal(t, updated, stored.User)
	})

	t.Run("rejects the call while logged out", func(t *testing.T) {
		t.Parallel()

		store := credstore.NewMemoryStore()
		m := session.New(&fakeAPI{}, store)
		defer m.Close() //nolint:errcheck

		err := m.UpdateUser(ctx, testUser)
		assert.ErrorIs(t, err, session.ErrNotAuthenticated)

		_, err = store.Load(ctx)
		assert.ErrorIs(t, err, credstore.ErrNotFound, "nothing persisted without a token")
	})
}

func TestManager_Subscribe(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := credstore.NewMemoryStore()
	api := acceptingAPI("t1", testUser)
	m := session.New(api, store)
	defer m.Close() //nolint:errcheck

	sub := m.Subscribe(ctx)

	_, err := m.SignIn(ctx, "john@example.com", "123456")
	require.NoError(t, err)

	select {
	case msg := <-sub.Receive(ctx):
		assert.True(t, msg.Data.IsAuthenticated())
		assert.Equal(t, testUser, msg.Data.User)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for snapshot change")
	}

	require.NoError(t, m.SignOut(ctx))

	select {
	case msg := <-sub.Receive(ctx):
		assert.False(t, msg.Data.IsAuthenticated())
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for sign-out snapshot")
	}
}
