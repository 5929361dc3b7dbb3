// Package submit implements the guarded-submit pipeline every form in the
// application runs: collect input, validate locally, call the remote
// operation once, then either apply the success effects or surface the
// failure.
//
// The control flow is fixed. Validation collects every violation before
// deciding; a local failure attaches field errors to the form's controls and
// never reaches the network, and never emits a notice. A validation pass
// asserts the loading indicator, performs the remote call exactly once, and
// clears the indicator on every exit path. A remote failure, including a
// success effect failing after a successful response, emits a single generic
// error notice and navigates nowhere.
//
// Outcomes are a discriminated Result rather than error-type inspection:
//
//	res := pipeline.Run(ctx, input)
//	switch res.Status {
//	case submit.StatusSucceeded:
//	case submit.StatusLocalInvalid: // res.FieldErrors
//	case submit.StatusRemoteFailed: // res.Err
//	}
//
// The pipeline applies no locking and no timeout: the UI layer disables the
// submit control while a run is in flight, and a hung remote call keeps the
// loading indicator asserted.
package submit
