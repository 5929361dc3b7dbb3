package notify

import (
	"context"
	"log/slog"
)

// Notifier accepts structured feedback events. Delivery is fire-and-forget:
// the core never consumes a return value beyond logging.
type Notifier interface {
	Notify(ctx context.Context, notice Notice)
}

// Func adapts an ordinary function to the Notifier interface.
type Func func(ctx context.Context, notice Notice)

func (f Func) Notify(ctx context.Context, notice Notice) {
	f(ctx, notice)
}

// SlogNotifier delivers notices to a structured logger. It serves headless
// clients where there is no toast surface to render into.
type SlogNotifier struct {
	logger *slog.Logger
}

// NewSlogNotifier creates a notifier writing to the given logger. A nil
// logger falls back to slog.Default.
func NewSlogNotifier(logger *slog.Logger) *SlogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogNotifier{logger: logger}
}

func (n *SlogNotifier) Notify(ctx context.Context, notice Notice) {
	level := slog.LevelInfo
	if notice.Kind == KindError {
		level = slog.LevelWarn
	}

	n.logger.LogAttrs(ctx, level, notice.Title,
		slog.String("notice_id", notice.ID),
		slog.String("kind", string(notice.Kind)),
		slog.String("description", notice.Description),
	)
}

// MultiNotifier fans a notice out to several sinks, best effort.
type MultiNotifier struct {
	notifiers []Notifier
}

// NewMultiNotifier creates a notifier delivering to every given sink in order.
// Nil sinks are filtered out.
func NewMultiNotifier(notifiers ...Notifier) *MultiNotifier {
	m := &MultiNotifier{}
	for _, n := range notifiers {
		if n != nil {
			m.notifiers = append(m.notifiers, n)
		}
	}
	return m
}

func (m *MultiNotifier) Notify(ctx context.Context, notice Notice) {
	for _, n := range m.notifiers {
		n.Notify(ctx, notice)
	}
}

// NoOpNotifier discards every notice. Useful when feedback is not needed.
type NoOpNotifier struct{}

func (NoOpNotifier) Notify(ctx context.Context, notice Notice) {}
