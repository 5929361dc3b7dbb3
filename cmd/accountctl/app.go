package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dmitrymomot/authkit/modules/account"
	"github.com/dmitrymomot/authkit/pkg/apiclient"
	"github.com/dmitrymomot/authkit/pkg/credstore"
	"github.com/dmitrymomot/authkit/pkg/logger"
	"github.com/dmitrymomot/authkit/pkg/notify"
	"github.com/dmitrymomot/authkit/pkg/session"
	"github.com/dmitrymomot/authkit/pkg/submit"
)

var (
	errNotSignedIn = errors.New("not signed in")
	errFailed      = errors.New("command failed")
)

// app wires the packages together for terminal use. All account logic lives
// in the packages; the app only parses flags, prompts and prints.
type app struct {
	cfg      Config
	api      *apiclient.Client
	sessions *session.Manager
	logger   *slog.Logger
	out      io.Writer
}

func newApp(cfg Config) (*app, error) {
	log := logger.New(
		logger.WithFormat(logger.Format(cfg.LogFormat)),
		logger.WithLevel(parseLevel(cfg.LogLevel)),
		logger.WithOutput(os.Stderr),
	)

	api, err := apiclient.NewFromConfig(cfg.API)
	if err != nil {
		return nil, err
	}

	storeOpts := []credstore.FileOption{credstore.WithNamespace(cfg.Store.Namespace)}
	if cfg.EncryptionKey != "" {
		storeOpts = append(storeOpts, credstore.WithEncryptionKey([]byte(cfg.EncryptionKey)))
	}

	store, err := credstore.NewFileStore(cfg.Store.Path, storeOpts...)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:      cfg,
		api:      api,
		sessions: session.New(api, store, session.WithLogger(log)),
		logger:   log,
		out:      os.Stdout,
	}, nil
}

func parseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelWarn
	}
	return l
}

// notifier prints notices the way a UI would show toasts.
func (a *app) notifier() notify.Notifier {
	return notify.Func(func(_ context.Context, n notify.Notice) {
		switch n.Kind {
		case notify.KindError:
			fmt.Fprintf(a.out, "error: %s", n.Title)
		default:
			fmt.Fprintf(a.out, "%s", n.Title)
		}
		if n.Description != "" {
			fmt.Fprintf(a.out, " (%s)", n.Description)
		}
		fmt.Fprintln(a.out)
	})
}

// nav records where a browser would go next.
func (a *app) nav() submit.Navigator {
	return submit.NavigatorFunc(func(path string) {
		a.logger.Debug("navigate", slog.String("path", path))
	})
}

func (a *app) fieldErrorSink() func(map[string]string) {
	return func(m map[string]string) {
		for field, msg := range m {
			fmt.Fprintf(a.out, "%s: %s\n", field, msg)
		}
	}
}

func (a *app) run(ctx context.Context, args []string) error {
	defer a.sessions.Close() //nolint:errcheck

	if len(args) == 0 {
		usage(a.out)
		return errFailed
	}

	switch args[0] {
	case "login":
		return a.login(ctx, args[1:])
	case "logout":
		return a.logout(ctx)
	case "whoami":
		return a.whoami(ctx)
	case "forgot":
		return a.forgot(ctx, args[1:])
	case "reset":
		return a.reset(ctx, args[1:])
	case "profile":
		return a.profile(ctx, args[1:])
	case "avatar":
		return a.avatar(ctx, args[1:])
	default:
		usage(a.out)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: accountctl <login|logout|whoami|forgot|reset|profile|avatar> [flags]")
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	if err := fs.Parse(args); err != nil {
		return err
	}

	password, err := promptPassword("Password")
	if err != nil {
		return err
	}

	form := account.NewSignInForm(a.sessions, a.nav())
	result := submit.New[account.SignInInput, session.Snapshot](form,
		submit.WithNotifier[account.SignInInput, session.Snapshot](a.notifier()),
		submit.WithFieldErrorSink[account.SignInInput, session.Snapshot](a.fieldErrorSink()),
		submit.WithLogger[account.SignInInput, session.Snapshot](a.logger),
	).Run(ctx, account.SignInInput{Email: *email, Password: password})

	if !result.Succeeded() {
		return errFailed
	}

	fmt.Fprintf(a.out, "signed in as %s <%s>\n", result.Payload.User.Name, result.Payload.User.Email)
	return nil
}

func (a *app) logout(ctx context.Context) error {
	if err := a.sessions.SignOut(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "signed out")
	return nil
}

func (a *app) whoami(ctx context.Context) error {
	snap := a.sessions.Bootstrap(ctx)
	if !snap.IsAuthenticated() {
		return errNotSignedIn
	}

	fmt.Fprintf(a.out, "%s <%s>\n", snap.User.Name, snap.User.Email)
	return nil
}

func (a *app) forgot(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("forgot", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	if err := fs.Parse(args); err != nil {
		return err
	}

	form := account.NewForgotPasswordForm(a.api, a.notifier())
	result := submit.New[account.ForgotPasswordInput, struct{}](form,
		submit.WithNotifier[account.ForgotPasswordInput, struct{}](a.notifier()),
		submit.WithFieldErrorSink[account.ForgotPasswordInput, struct{}](a.fieldErrorSink()),
		submit.WithLogger[account.ForgotPasswordInput, struct{}](a.logger),
	).Run(ctx, account.ForgotPasswordInput{Email: *email})

	if !result.Succeeded() {
		return errFailed
	}
	return nil
}

func (a *app) reset(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("reset", flag.ContinueOnError)
	token := fs.String("token", "", "token from the recovery email")
	if err := fs.Parse(args); err != nil {
		return err
	}

	password, err := promptPassword("New password")
	if err != nil {
		return err
	}
	confirmation, err := promptPassword("Confirm password")
	if err != nil {
		return err
	}

	form := account.NewResetPasswordForm(a.api, a.nav())
	result := submit.New[account.ResetPasswordInput, struct{}](form,
		submit.WithNotifier[account.ResetPasswordInput, struct{}](a.notifier()),
		submit.WithFieldErrorSink[account.ResetPasswordInput, struct{}](a.fieldErrorSink()),
		submit.WithLogger[account.ResetPasswordInput, struct{}](a.logger),
	).Run(ctx, account.ResetPasswordInput{
		Token:                *token,
		Password:             password,
		PasswordConfirmation: confirmation,
	})

	if !result.Succeeded() {
		return errFailed
	}

	fmt.Fprintln(a.out, "password reset, sign in with your new password")
	return nil
}

func (a *app) profile(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("profile", flag.ContinueOnError)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "account email")
	changePassword := fs.Bool("change-password", false, "prompt for a password change")
	if err := fs.Parse(args); err != nil {
		return err
	}

	snap := a.sessions.Bootstrap(ctx)
	if !snap.IsAuthenticated() {
		return errNotSignedIn
	}

	in := account.ProfileInput{Name: snap.User.Name, Email: snap.User.Email}
	if *name != "" {
		in.Name = *name
	}
	if *email != "" {
		in.Email = *email
	}

	if *changePassword {
		var err error
		if in.OldPassword, err = promptPassword("Current password"); err != nil {
			return err
		}
		if in.Password, err = promptPassword("New password"); err != nil {
			return err
		}
		if in.PasswordConfirmation, err = promptPassword("Confirm password"); err != nil {
			return err
		}
	}

	form := account.NewProfileForm(a.api, a.sessions, a.notifier(), a.nav())
	result := submit.New[account.ProfileInput, apiclient.User](form,
		submit.WithNotifier[account.ProfileInput, apiclient.User](a.notifier()),
		submit.WithFieldErrorSink[account.ProfileInput, apiclient.User](a.fieldErrorSink()),
		submit.WithLogger[account.ProfileInput, apiclient.User](a.logger),
	).Run(ctx, in)

	if !result.Succeeded() {
		return errFailed
	}
	return nil
}

func (a *app) avatar(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("avatar", flag.ContinueOnError)
	file := fs.String("file", "", "path to the image file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	snap := a.sessions.Bootstrap(ctx)
	if !snap.IsAuthenticated() {
		return errNotSignedIn
	}

	in := account.AvatarInput{}
	if *file != "" {
		f, err := os.Open(*file)
		if err != nil {
			return err
		}
		defer f.Close() //nolint:errcheck
		in = account.AvatarInput{Filename: filepath.Base(*file), Data: f}
	}

	form := account.NewAvatarForm(a.api, a.sessions, a.notifier())
	result := submit.New[account.AvatarInput, apiclient.User](form,
		submit.WithNotifier[account.AvatarInput, apiclient.User](a.notifier()),
		submit.WithFieldErrorSink[account.AvatarInput, apiclient.User](a.fieldErrorSink()),
		submit.WithLogger[account.AvatarInput, apiclient.User](a.logger),
	).Run(ctx, in)

	if !result.Succeeded() {
		return errFailed
	}
	return nil
}
