package account

import "errors"

var (
	// ErrMissingResetToken is returned when a password reset is submitted
	// without a token. The reset endpoint is never called in that case.
	ErrMissingResetToken = errors.New("account.missing_reset_token")

	// ErrNoAvatarData is returned when an avatar upload is submitted without
	// file contents.
	ErrNoAvatarData = errors.New("account.no_avatar_data")
)
