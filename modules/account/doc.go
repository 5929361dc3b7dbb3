// Package account composes the per-page form flows of the client: sign-in,
// password recovery and reset, profile editing and avatar upload.
//
// Each flow is a submit.Form implementation that declares its local
// validation schema, its remote call and its success effects. The surrounding
// application wires a flow into a submit.Pipeline together with its UI sinks
// (field errors, loading indicator, notices) and runs it on each submit.
//
// Success effects follow a fixed order: session update first, then the
// success notice, then navigation, so the destination page always observes
// the new session state.
//
// Example:
//
//	form := account.NewSignInForm(sessions, nav)
//	pipeline := submit.New[account.SignInInput, session.Snapshot](form,
//		submit.WithNotifier[account.SignInInput, session.Snapshot](toasts),
//		submit.WithFieldErrorSink[account.SignInInput, session.Snapshot](renderErrors),
//		submit.WithLoadingSink[account.SignInInput, session.Snapshot](setLoading),
//	)
//
//	result := pipeline.Run(ctx, account.SignInInput{
//		Email:    "john@example.com",
//		Password: "123456",
//	})
//	if result.Succeeded() {
//		// nav already received the dashboard path
//	}
package account
