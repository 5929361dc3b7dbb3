package account_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/modules/account"
	"github.com/dmitrymomot/authkit/pkg/notify"
	"github.com/dmitrymomot/authkit/pkg/submit"
)

// fakePasswordAPI records calls to the password recovery operations.
type fakePasswordAPI struct {
	forgotCalls []string
	forgotErr   error

	resetCalls []resetCall
	resetErr   error
}

type resetCall struct {
	token, password, confirmation string
}

func (f *fakePasswordAPI) ForgotPassword(_ context.Context, email string) error {
	f.forgotCalls = append(f.forgotCalls, email)
	return f.forgotErr
}

func (f *fakePasswordAPI) ResetPassword(_ context.Context, token, password, confirmation string) error {
	f.resetCalls = append(f.resetCalls, resetCall{token, password, confirmation})
	return f.resetErr
}

func TestForgotPasswordForm(t *testing.T) {
	t.Parallel()

	t.Run("sends the recovery email and confirms", func(t *testing.T) {
		t.Parallel()

		api := &fakePasswordAPI{}
		notices := notify.NewRecorder()
		form := account.NewForgotPasswordForm(api, notices)

		result := submit.New[account.ForgotPasswordInput, struct{}](form,
			submit.WithNotifier[account.ForgotPasswordInput, struct{}](notices),
		).Run(context.Background(), account.ForgotPasswordInput{Email: "john@example.com"})

		require.True(t, result.Succeeded())
		assert.Equal(t, []string{"john@example.com"}, api.forgotCalls)

		last, ok := notices.Last()
		require.True(t, ok)
		assert.Equal(t, notify.KindSuccess, last.Kind)
		assert.Equal(t, "Recovery email sent", last.Title)
	})

	t.Run("invalid email never reaches the server", func(t *testing.T) {
		t.Parallel()

		api := &fakePasswordAPI{}
		notices := notify.NewRecorder()
		form := account.NewForgotPasswordForm(api, notices)

		result := submit.New[account.ForgotPasswordInput, struct{}](form,
			submit.WithNotifier[account.ForgotPasswordInput, struct{}](notices),
		).Run(context.Background(), account.ForgotPasswordInput{Email: "nope"})

		assert.Equal(t, submit.StatusLocalInvalid, result.Status)
		assert.Empty(t, api.forgotCalls)
		assert.Empty(t, notices.Notices())
	})

	t.Run("remote failure shows an error notice", func(t *testing.T) {
		t.Parallel()

		api := &fakePasswordAPI{forgotErr: errors.New("boom")}
		notices := notify.NewRecorder()
		form := account.NewForgotPasswordForm(api, notices)

		result := submit.New[account.ForgotPasswordInput, struct{}](form,
			submit.WithNotifier[account.ForgotPasswordInput, struct{}](notices),
		).Run(context.Background(), account.ForgotPasswordInput{Email: "john@example.com"})

		assert.Equal(t, submit.StatusRemoteFailed, result.Status)

		last, ok := notices.Last()
		require.True(t, ok)
		assert.Equal(t, notify.KindError, last.Kind)
		assert.Equal(t, "Password recovery failed", last.Title)
	})
}

func TestResetPasswordForm(t *testing.T) {
	t.Parallel()

	t.Run("resets and returns to the sign-in page", func(t *testing.T) {
		t.Parallel()

		api := &fakePasswordAPI{}
		nav := submit.NewNavRecorder()
		form := account.NewResetPasswordForm(api, nav)

		result := submit.New[account.ResetPasswordInput, struct{}](form).
			Run(context.Background(), account.ResetPasswordInput{
				Token:                "reset-token",
				Password:             "123456",
				PasswordConfirmation: "123456",
			})

		require.True(t, result.Succeeded())
		require.Len(t, api.resetCalls, 1)
		assert.Equal(t, resetCall{"reset-token", "123456", "123456"}, api.resetCalls[0])
		assert.Equal(t, []string{account.PathRoot}, nav.Paths())
	})

	t.Run("mismatched confirmation never reaches the server", func(t *testing.T) {
		t.Parallel()

		api := &fakePasswordAPI{}
		nav := submit.NewNavRecorder()
		form := account.NewResetPasswordForm(api, nav)

		sinks := &sinkRecorder{}
		result := submit.New[account.ResetPasswordInput, struct{}](form,
			submit.WithFieldErrorSink[account.ResetPasswordInput, struct{}](sinks.fieldErrorSink),
		).Run(context.Background(), account.ResetPasswordInput{
			Token:                "reset-token",
			Password:             "123456",
			PasswordConfirmation: "654321",
		})

		assert.Equal(t, submit.StatusLocalInvalid, result.Status)
		assert.Empty(t, api.resetCalls)
		assert.Empty(t, nav.Paths())
		assert.Contains(t, sinks.lastFieldErrors(), "password_confirmation")
	})

	t.Run("missing token fails without a remote call", func(t *testing.T) {
		t.Parallel()

		api := &fakePasswordAPI{}
		nav := submit.NewNavRecorder()
		notices := notify.NewRecorder()
		form := account.NewResetPasswordForm(api, nav)

		result := submit.New[account.ResetPasswordInput, struct{}](form,
			submit.WithNotifier[account.ResetPasswordInput, struct{}](notices),
		).Run(context.Background(), account.ResetPasswordInput{
			Password:             "123456",
			PasswordConfirmation: "123456",
		})

		assert.Equal(t, submit.StatusRemoteFailed, result.Status)
		assert.ErrorIs(t, result.Err, account.ErrMissingResetToken)
		assert.Empty(t, api.resetCalls)
		assert.Empty(t, nav.Paths())

		last, ok := notices.Last()
		require.True(t, ok)
		assert.Equal(t, notify.KindError, last.Kind)
		assert.Equal(t, "Password reset failed", last.Title)
	})
}
