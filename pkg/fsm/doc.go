// Package fsm provides a minimal thread-safe finite state machine with
// string-typed states and events. The submit pipeline uses it to keep each
// form run on its legal path from idle through validation and submission to a
// terminal outcome.
package fsm
