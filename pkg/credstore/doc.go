// Package credstore provides durable persistence for the current session
// credential: a bearer token and the user record it belongs to, stored under
// two independent namespaced keys.
//
// The two-key layout is deliberate: Load succeeds only when both keys are
// present and the user record decodes, so a partial pair, whether from a
// crash between writes or manual tampering, reads as ErrNotFound and the
// application boots into the logged-out state instead of failing.
//
// Three backends ship out of the box:
//
//   - FileStore   – two files in a directory, optional XChaCha20-Poly1305
//     at-rest encryption; the default for desktop/CLI clients
//   - RedisStore  – two Redis keys written transactionally, for headless
//     clients sharing a session across processes
//   - MemoryStore – in-process map for tests, with raw-key helpers for
//     staging partial and corrupt states
//
// # Usage
//
//	store, err := credstore.NewFileStore(dir, credstore.WithNamespace("myapp"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	_ = store.Save(ctx, credstore.Credentials{Token: "t1", User: user})
//
//	creds, err := store.Load(ctx)
//	if errors.Is(err, credstore.ErrNotFound) {
//	    // logged out
//	}
package credstore
