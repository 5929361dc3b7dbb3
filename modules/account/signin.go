package account

import (
	"context"

	"github.com/dmitrymomot/authkit/pkg/session"
	"github.com/dmitrymomot/authkit/pkg/submit"
	"github.com/dmitrymomot/authkit/pkg/validator"
)

// SignInInput carries the sign-in form fields.
type SignInInput struct {
	Email    string
	Password string
}

// SessionSignIn is the slice of the session manager the sign-in flow uses.
// *session.Manager satisfies it.
type SessionSignIn interface {
	SignIn(ctx context.Context, email, password string) (session.Snapshot, error)
}

// SignInForm authenticates a user and lands them on the dashboard. The remote
// exchange, credential persistence and snapshot replacement all happen inside
// the session manager, so a failure at any of those points presents as a
// single failed submit.
type SignInForm struct {
	sessions SessionSignIn
	nav      submit.Navigator
}

// NewSignInForm creates the sign-in flow.
func NewSignInForm(sessions SessionSignIn, nav submit.Navigator) *SignInForm {
	return &SignInForm{sessions: sessions, nav: nav}
}

func (f *SignInForm) Validate(in SignInInput) error {
	return validator.Apply(
		validator.RequiredString("email", in.Email),
		validator.ValidEmail("email", in.Email),
		validator.RequiredString("password", in.Password),
	)
}

func (f *SignInForm) Submit(ctx context.Context, in SignInInput) (session.Snapshot, error) {
	return f.sessions.SignIn(ctx, in.Email, in.Password)
}

// OnSuccess navigates to the dashboard. Sign-in shows no success notice; the
// page change is the feedback.
func (f *SignInForm) OnSuccess(ctx context.Context, _ session.Snapshot) error {
	f.nav.Navigate(PathDashboard)
	return nil
}

func (f *SignInForm) FailureNotice() (string, string) {
	return "Authentication failed", "Check your credentials and try again."
}
