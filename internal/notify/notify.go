package notify

import (
	"context"
	"log/slog"
	"sync"
)

// Level is the kind of a transient notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Notice is one toast shown to the user.
type Notice struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Success builds a success notice.
func Success(msg string) Notice { return Notice{Level: LevelSuccess, Message: msg} }

// Error builds an error notice.
func Error(msg string) Notice { return Notice{Level: LevelError, Message: msg} }

// Notifier delivers notices to the user.
type Notifier interface {
	Notify(ctx context.Context, n Notice)
}

// Discard drops every notice.
var Discard Notifier = NotifierFunc(func(context.Context, Notice) {})

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, n Notice)

// Notify calls f.
func (f NotifierFunc) Notify(ctx context.Context, n Notice) { f(ctx, n) }

// Recorder keeps notices in memory, for HTMX partial responses and tests.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

// Notify records n.
func (r *Recorder) Notify(_ context.Context, n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

// Notices returns a copy of the recorded notices.
func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}

// FlashStore persists notices until the next page render.
type FlashStore interface {
	AddFlash(ctx context.Context, n Notice) error
}

// Flash delivers notices through a FlashStore so they survive the
// post/redirect/get cycle.
type Flash struct {
	Store FlashStore
}

// Notify stores n; a storage failure only loses the toast.
func (f Flash) Notify(ctx context.Context, n Notice) {
	if err := f.Store.AddFlash(ctx, n); err != nil {
		slog.WarnContext(ctx, "Failed to store flash notice", "error", err, "level", n.Level)
	}
}

// Multi fans a notice out to several notifiers.
func Multi(notifiers ...Notifier) Notifier {
	return NotifierFunc(func(ctx context.Context, n Notice) {
		for _, notifier := range notifiers {
			notifier.Notify(ctx, n)
		}
	})
}
