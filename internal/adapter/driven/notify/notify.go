// Package notify implements the Notifier port: per-request toasts for the GUI
// and a slog sink for contexts without a user in front of them.
package notify

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ericfisherdev/omnisearch/internal/domain/model"
	"github.com/ericfisherdev/omnisearch/internal/domain/port/driven"
	"github.com/ericfisherdev/omnisearch/internal/observability"
)

// Compile-time interface satisfaction checks.
var (
	_ driven.Notifier = Toasts{}
	_ driven.Notifier = (*Log)(nil)
	_ driven.Notifier = Multi(nil)
	_ driven.Notifier = (*Counting)(nil)
)

// Buffer collects the notifications raised while serving one request.
type Buffer struct {
	mu    sync.Mutex
	items []model.Notification
}

// Add appends n to the buffer.
func (b *Buffer) Add(n model.Notification) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = append(b.items, n)
}

// Drain returns the buffered notifications and empties the buffer.
func (b *Buffer) Drain() []model.Notification {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.items
	b.items = nil
	return out
}

type bufferKey struct{}

// WithBuffer returns a context carrying a fresh toast buffer.
func WithBuffer(ctx context.Context) (context.Context, *Buffer) {
	b := &Buffer{}
	return context.WithValue(ctx, bufferKey{}, b), b
}

// BufferFrom returns the toast buffer bound to ctx, or nil.
func BufferFrom(ctx context.Context) *Buffer {
	b, _ := ctx.Value(bufferKey{}).(*Buffer)
	return b
}

// Toasts delivers notifications to the toast buffer of the current request.
// Notifications raised in a context without a buffer are dropped.
type Toasts struct{}

// Notify appends n to the request's toast buffer.
func (Toasts) Notify(ctx context.Context, n model.Notification) {
	if b := BufferFrom(ctx); b != nil {
		b.Add(n)
	}
}

// Log writes notifications to a structured logger.
type Log struct {
	logger *slog.Logger
}

// NewLog creates a Log notifier. A nil logger selects slog.Default().
func NewLog(logger *slog.Logger) *Log {
	if logger == nil {
		logger = slog.Default()
	}
	return &Log{logger: logger}
}

// Notify logs n at a level matching its severity.
func (l *Log) Notify(ctx context.Context, n model.Notification) {
	level := slog.LevelInfo
	switch n.Level {
	case model.NotificationWarning:
		level = slog.LevelWarn
	case model.NotificationError:
		level = slog.LevelError
	}
	l.logger.Log(ctx, level, "user notification", "message", n.Message)
}

// Multi fans a notification out to every notifier in order.
type Multi []driven.Notifier

// Notify forwards n to each notifier.
func (m Multi) Notify(ctx context.Context, n model.Notification) {
	for _, notifier := range m {
		notifier.Notify(ctx, n)
	}
}

// Counting wraps a notifier and counts notifications by level.
type Counting struct {
	next    driven.Notifier
	metrics *observability.Metrics
}

// NewCounting wraps next. A nil metrics disables counting.
func NewCounting(next driven.Notifier, metrics *observability.Metrics) *Counting {
	return &Counting{next: next, metrics: metrics}
}

// Notify counts n and forwards it.
func (c *Counting) Notify(ctx context.Context, n model.Notification) {
	if c.metrics != nil {
		c.metrics.Notifications.WithLabelValues(string(n.Level)).Inc()
	}
	c.next.Notify(ctx, n)
}

// Warn builds a warning notification.
func Warn(message string) model.Notification {
	return model.Notification{Level: model.NotificationWarning, Message: message}
}
