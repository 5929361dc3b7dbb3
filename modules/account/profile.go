package account

import (
	"context"

	"github.com/dmitrymomot/authkit/pkg/apiclient"
	"github.com/dmitrymomot/authkit/pkg/notify"
	"github.com/dmitrymomot/authkit/pkg/submit"
	"github.com/dmitrymomot/authkit/pkg/validator"
)

// ProfileAPI covers the remote operations of the profile flows.
// *apiclient.Client satisfies it.
type ProfileAPI interface {
	UpdateProfile(ctx context.Context, update apiclient.ProfileUpdate) (apiclient.User, error)
}

// SessionUpdater is the slice of the session manager the profile flows use to
// propagate the server's updated user record. *session.Manager satisfies it.
type SessionUpdater interface {
	UpdateUser(ctx context.Context, user apiclient.User) error
}

// ProfileInput carries the profile form fields. The password block is
// optional: with Password empty the submit updates name and email only, and
// none of the password fields reach the server.
type ProfileInput struct {
	Name                 string
	Email                string
	OldPassword          string
	Password             string
	PasswordConfirmation string
}

// ProfileForm updates the authenticated user's profile, propagates the
// server's user record into the session, confirms with a notice and returns
// to the dashboard.
type ProfileForm struct {
	api      ProfileAPI
	sessions SessionUpdater
	notifier notify.Notifier
	nav      submit.Navigator
}

// NewProfileForm creates the profile editing flow.
func NewProfileForm(api ProfileAPI, sessions SessionUpdater, notifier notify.Notifier, nav submit.Navigator) *ProfileForm {
	if notifier == nil {
		notifier = notify.NoOpNotifier{}
	}
	return &ProfileForm{api: api, sessions: sessions, notifier: notifier, nav: nav}
}

// Validate applies the composite password rule: a new password requires the
// old one and a matching confirmation, while leaving the new password empty
// exempts all password fields.
func (f *ProfileForm) Validate(in ProfileInput) error {
	rules := []validator.Rule{
		validator.RequiredString("name", in.Name),
		validator.RequiredString("email", in.Email),
		validator.ValidEmail("email", in.Email),
		validator.RequiredStringWhen(in.Password != "", "old_password", in.OldPassword),
	}

	if in.Password != "" {
		rules = append(rules, validator.EqualString("password_confirmation", in.PasswordConfirmation, in.Password))
	}

	return validator.Apply(rules...)
}

func (f *ProfileForm) Submit(ctx context.Context, in ProfileInput) (apiclient.User, error) {
	update := apiclient.ProfileUpdate{
		Name:  in.Name,
		Email: in.Email,
	}

	// Without a new password the whole password block stays out of the
	// payload, even when the old password field was filled.
	if in.Password != "" {
		update.OldPassword = in.OldPassword
		update.Password = in.Password
		update.PasswordConfirmation = in.PasswordConfirmation
	}

	return f.api.UpdateProfile(ctx, update)
}

func (f *ProfileForm) OnSuccess(ctx context.Context, user apiclient.User) error {
	if err := f.sessions.UpdateUser(ctx, user); err != nil {
		return err
	}

	f.notifier.Notify(ctx, notify.Success(
		"Profile updated",
		"Your profile information was saved.",
	))
	f.nav.Navigate(PathDashboard)
	return nil
}

func (f *ProfileForm) FailureNotice() (string, string) {
	return "Profile update failed", "Could not update your profile, try again."
}
