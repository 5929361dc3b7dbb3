package account

import (
	"context"

	"github.com/dmitrymomot/authkit/pkg/notify"
	"github.com/dmitrymomot/authkit/pkg/submit"
	"github.com/dmitrymomot/authkit/pkg/validator"
)

// PasswordAPI covers the remote operations of the password recovery flows.
// *apiclient.Client satisfies it.
type PasswordAPI interface {
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password, passwordConfirmation string) error
}

// ForgotPasswordInput carries the recovery request form fields.
type ForgotPasswordInput struct {
	Email string
}

// ForgotPasswordForm requests a password recovery email. On success the user
// stays on the page and sees a confirmation notice.
type ForgotPasswordForm struct {
	api      PasswordAPI
	notifier notify.Notifier
}

// NewForgotPasswordForm creates the recovery request flow.
func NewForgotPasswordForm(api PasswordAPI, notifier notify.Notifier) *ForgotPasswordForm {
	if notifier == nil {
		notifier = notify.NoOpNotifier{}
	}
	return &ForgotPasswordForm{api: api, notifier: notifier}
}

func (f *ForgotPasswordForm) Validate(in ForgotPasswordInput) error {
	return validator.Apply(
		validator.RequiredString("email", in.Email),
		validator.ValidEmail("email", in.Email),
	)
}

func (f *ForgotPasswordForm) Submit(ctx context.Context, in ForgotPasswordInput) (struct{}, error) {
	return struct{}{}, f.api.ForgotPassword(ctx, in.Email)
}

func (f *ForgotPasswordForm) OnSuccess(ctx context.Context, _ struct{}) error {
	f.notifier.Notify(ctx, notify.Success(
		"Recovery email sent",
		"Check your inbox for password reset instructions.",
	))
	return nil
}

func (f *ForgotPasswordForm) FailureNotice() (string, string) {
	return "Password recovery failed", "Could not send the recovery email, try again."
}

// ResetPasswordInput carries the reset form fields plus the token the user
// arrived with. The token comes from outside the form (the recovery link), so
// its absence is not a field error the user can correct inline.
type ResetPasswordInput struct {
	Token                string
	Password             string
	PasswordConfirmation string
}

// ResetPasswordForm confirms a password reset and sends the user back to the
// sign-in page.
type ResetPasswordForm struct {
	api PasswordAPI
	nav submit.Navigator
}

// NewResetPasswordForm creates the reset confirmation flow.
func NewResetPasswordForm(api PasswordAPI, nav submit.Navigator) *ResetPasswordForm {
	return &ResetPasswordForm{api: api, nav: nav}
}

func (f *ResetPasswordForm) Validate(in ResetPasswordInput) error {
	return validator.Apply(
		validator.RequiredString("password", in.Password),
		validator.EqualString("password_confirmation", in.PasswordConfirmation, in.Password),
	)
}

// Submit rejects a missing token before touching the network, presenting it
// as a failed reset rather than a field error.
func (f *ResetPasswordForm) Submit(ctx context.Context, in ResetPasswordInput) (struct{}, error) {
	if in.Token == "" {
		return struct{}{}, ErrMissingResetToken
	}

	return struct{}{}, f.api.ResetPassword(ctx, in.Token, in.Password, in.PasswordConfirmation)
}

func (f *ResetPasswordForm) OnSuccess(ctx context.Context, _ struct{}) error {
	f.nav.Navigate(PathRoot)
	return nil
}

func (f *ResetPasswordForm) FailureNotice() (string, string) {
	return "Password reset failed", "Could not reset your password, try again."
}
