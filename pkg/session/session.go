package session

import "github.com/dmitrymomot/authkit/pkg/apiclient"

// Snapshot is a read-only view of the current session. Token and User are
// always set together or both empty; consumers never observe a half-populated
// pair.
type Snapshot struct {
	Token string
	User  apiclient.User
}

// IsAuthenticated reports whether the snapshot represents a logged-in user.
func (s Snapshot) IsAuthenticated() bool {
	return s.Token != ""
}
