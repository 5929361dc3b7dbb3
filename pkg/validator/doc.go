// Package validator provides composable, declarative validation rules for
// form input, aggregating every failure into a single field-addressable error
// value.
//
// A Rule pairs a boolean Check function with the error metadata to report when
// the check fails. Rules are evaluated with Apply, which runs all of them
// without stopping at the first failure and collects the results into a
// ValidationErrors slice that satisfies the error interface.
//
// ValidationErrors.FieldMap flattens the set into a map from field name to
// message for attaching errors to individual form controls: when a field
// appears more than once the last message wins, and dotted field paths from
// nested rules are collapsed to their top-level segment.
//
// # Usage
//
//	err := validator.Apply(
//	    validator.RequiredString("email", in.Email),
//	    validator.ValidEmail("email", in.Email),
//	    validator.MinLenString("password", in.Password, 6),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	    renderFieldErrors(verrs.FieldMap())
//	}
//
// The package holds no global state and every helper is goroutine-safe.
package validator
