package apiclient

// User is the identity record mirrored from the remote service. The client
// trusts its shape structurally and performs no further validation.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

// IsZero reports whether the record carries no identity.
func (u User) IsZero() bool {
	return u == User{}
}
