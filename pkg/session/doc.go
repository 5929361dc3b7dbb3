// Package session owns client-side authentication state: who is signed in,
// the bearer token backing that, and how both survive process restarts.
//
// The Manager is the single writer of two pieces of process-wide state: the
// session snapshot and the API transport's default authorization header.
// Every other component reads only. There are exactly two states, logged out
// and logged in, and the invariant that token and user are always populated
// together; Snapshot values are replaced atomically so no reader can observe
// a half-updated pair.
//
// # Lifecycle
//
//	manager := session.New(client, store)
//	manager.Bootstrap(ctx)                  // rehydrate from the credential store
//	snap, err := manager.SignIn(ctx, email, password)
//	_ = manager.UpdateUser(ctx, updated)    // keep token, replace user
//	_ = manager.SignOut(ctx)                // idempotent
//
// Bootstrap fails open: a missing, partial or corrupt stored credential pair
// simply boots the process logged out. A failed SignIn writes nothing and
// changes nothing.
//
// Consumers that need to react to auth changes subscribe to the snapshot
// feed:
//
//	sub := manager.Subscribe(ctx)
//	for msg := range sub.Receive(ctx) {
//	    render(msg.Data)
//	}
//
// The manager performs no call deduplication and no token refresh; callers
// serialize user-triggered operations through UI disablement.
package session
