// Package notify defines the structured feedback contract between the core
// and whatever surface renders user-visible messages (toast stack, terminal,
// log aggregation).
//
// A Notice carries a kind (success or error), a title and an optional
// description. Delivery through the Notifier interface is fire-and-forget:
// the submit pipeline emits notices and never inspects the outcome.
//
// Ships with a slog-backed notifier for headless clients, a fan-out
// MultiNotifier, a Func adapter for wiring arbitrary toast renderers, and a
// Recorder test double.
package notify
