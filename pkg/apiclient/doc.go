// Package apiclient provides a typed HTTP client for the account API.
//
// The client wraps net/http with the stable wire contract of the remote
// service: credential exchange, password recovery, profile and avatar
// updates. It also owns the default authorization header: after SetToken,
// every request carries "Authorization: Bearer <token>" until ClearToken.
// Only the session manager is expected to mutate the token; every other
// component treats the client as a read-only transport.
//
// Server error bodies are deliberately never parsed for display. Any status
// outside the 2xx range surfaces as ErrUnexpectedStatus and callers degrade
// to their own generic user-facing message.
//
// # Usage
//
//	client, err := apiclient.New("https://api.example.com")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	payload, err := client.SignIn(ctx, "john@example.com", "123456")
//	if err != nil {
//	    // errors.Is(err, apiclient.ErrUnexpectedStatus) for rejected credentials
//	}
//	client.SetToken(payload.Token)
package apiclient
