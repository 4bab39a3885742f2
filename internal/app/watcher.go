package app

import (
	"context"
	"io"
	"log"
	"time"

	"github.com/example/tickdup/internal/ports/primary"
	"github.com/example/tickdup/internal/ports/secondary"
)

// Watcher drives the automation continuously: one pass, sleep, repeat.
// Passes run strictly sequentially; cancellation stops the loop before
// the next pass rather than aborting the one in flight.
type Watcher struct {
	service  primary.AutomationService
	notifier secondary.Notifier
	logger   *log.Logger
}

// NewWatcher creates a watcher around an automation service. A nil
// notifier disables notifications; a nil logger discards output.
func NewWatcher(service primary.AutomationService, notifier secondary.Notifier, logger *log.Logger) *Watcher {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Watcher{service: service, notifier: notifier, logger: logger}
}

// Watch polls until ctx is cancelled. Each pass runs to completion even
// if ctx is cancelled mid-pass; the cancellation takes effect at the next
// scheduling point. Pass errors are logged and retried on the next tick.
func (w *Watcher) Watch(ctx context.Context, mode string, req primary.RunRequest, interval time.Duration) error {
	w.logger.Printf("polling every %s (mode: %s)", interval, mode)
	w.notifier.Notify("tickdup", "automation starting")
	defer w.notifier.Notify("tickdup", "automation stopping")

	for {
		w.runOnce(ctx, mode, req)

		select {
		case <-time.After(interval):
		case <-ctx.Done():
			w.logger.Printf("shutting down")
			return ctx.Err()
		}
	}
}

func (w *Watcher) runOnce(ctx context.Context, mode string, req primary.RunRequest) {
	// Detach from cancellation so an interrupt stops scheduling further
	// passes instead of aborting a remote call mid-pass.
	passCtx := context.WithoutCancel(ctx)

	var stats *primary.RunStats
	var err error
	if mode == primary.ModePendingDiff {
		stats, err = w.service.RunPendingDiff(passCtx, req)
	} else {
		stats, err = w.service.RunCompleted(passCtx, req)
	}

	if err != nil {
		w.logger.Printf("pass failed: %v", err)
		w.notifier.Notify("tickdup", "automation error: "+err.Error())
		return
	}
	w.logger.Printf("pass complete - checked: %d, matched: %d, duplicated: %d, errors: %d",
		stats.Checked, stats.Matched, stats.Duplicated, stats.Errors)
}

type nopNotifier struct{}

func (nopNotifier) Notify(title, message string) {}
