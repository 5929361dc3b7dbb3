package account

import (
	"context"
	"io"

	"github.com/dmitrymomot/authkit/pkg/apiclient"
	"github.com/dmitrymomot/authkit/pkg/notify"
	"github.com/dmitrymomot/authkit/pkg/validator"
)

// AvatarAPI covers the avatar upload operation. *apiclient.Client satisfies
// it.
type AvatarAPI interface {
	UpdateAvatar(ctx context.Context, filename string, data io.Reader) (apiclient.User, error)
}

// AvatarInput carries the selected avatar file.
type AvatarInput struct {
	Filename string
	Data     io.Reader
}

// AvatarForm uploads a new avatar image, propagates the server's user record
// into the session and confirms with a notice. The user stays on the profile
// page.
type AvatarForm struct {
	api      AvatarAPI
	sessions SessionUpdater
	notifier notify.Notifier
}

// NewAvatarForm creates the avatar upload flow.
func NewAvatarForm(api AvatarAPI, sessions SessionUpdater, notifier notify.Notifier) *AvatarForm {
	if notifier == nil {
		notifier = notify.NoOpNotifier{}
	}
	return &AvatarForm{api: api, sessions: sessions, notifier: notifier}
}

func (f *AvatarForm) Validate(in AvatarInput) error {
	return validator.Apply(
		validator.RequiredString("avatar", in.Filename),
		validator.Rule{
			Check: func() bool { return in.Data != nil },
			Error: validator.ValidationError{Field: "avatar", Message: "no file selected"},
		},
	)
}

func (f *AvatarForm) Submit(ctx context.Context, in AvatarInput) (apiclient.User, error) {
	if in.Data == nil {
		return apiclient.User{}, ErrNoAvatarData
	}

	return f.api.UpdateAvatar(ctx, in.Filename, in.Data)
}

func (f *AvatarForm) OnSuccess(ctx context.Context, user apiclient.User) error {
	if err := f.sessions.UpdateUser(ctx, user); err != nil {
		return err
	}

	f.notifier.Notify(ctx, notify.Success("Avatar updated", ""))
	return nil
}

func (f *AvatarForm) FailureNotice() (string, string) {
	return "Avatar update failed", "Could not upload the image, try again."
}
