package app

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/example/tickdup/internal/ports/primary"
)

// stubService counts passes and optionally fails them.
type stubService struct {
	runs    atomic.Int32
	pending atomic.Int32
	err     error
}

var _ primary.AutomationService = (*stubService)(nil)

func (s *stubService) RunCompleted(ctx context.Context, req primary.RunRequest) (*primary.RunStats, error) {
	s.runs.Add(1)
	if s.err != nil {
		return &primary.RunStats{Errors: 1}, s.err
	}
	return &primary.RunStats{Checked: 1}, nil
}

func (s *stubService) RunPendingDiff(ctx context.Context, req primary.RunRequest) (*primary.RunStats, error) {
	s.pending.Add(1)
	return &primary.RunStats{}, nil
}

func (s *stubService) RecentRuns(ctx context.Context, limit int) ([]*primary.RunSummary, error) {
	return nil, nil
}

func TestWatcher_RunsUntilCancelled(t *testing.T) {
	service := &stubService{}
	notifier := &mockNotifier{}
	watcher := NewWatcher(service, notifier, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- watcher.Watch(ctx, primary.ModeCompleted, primary.RunRequest{}, 10*time.Millisecond)
	}()

	// Let a few passes happen, then stop.
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop after cancellation")
	}

	if service.runs.Load() < 2 {
		t.Errorf("expected multiple passes, got %d", service.runs.Load())
	}
	if len(notifier.messages) < 2 {
		t.Fatalf("expected start and stop notifications, got %v", notifier.messages)
	}
	if !strings.Contains(notifier.messages[0], "starting") {
		t.Errorf("first notification should announce start: %v", notifier.messages)
	}
	if !strings.Contains(notifier.messages[len(notifier.messages)-1], "stopping") {
		t.Errorf("last notification should announce stop: %v", notifier.messages)
	}
}

func TestWatcher_PassErrorNotifiesAndContinues(t *testing.T) {
	service := &stubService{err: errors.New("ticktick API error: status 500")}
	notifier := &mockNotifier{}
	watcher := NewWatcher(service, notifier, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- watcher.Watch(ctx, primary.ModeCompleted, primary.RunRequest{}, 10*time.Millisecond)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	if service.runs.Load() < 2 {
		t.Errorf("errors must not stop the loop, got %d passes", service.runs.Load())
	}

	var sawError bool
	for _, msg := range notifier.messages {
		if strings.Contains(msg, "error") {
			sawError = true
		}
	}
	if !sawError {
		t.Errorf("expected an error notification, got %v", notifier.messages)
	}
}

func TestWatcher_PendingMode(t *testing.T) {
	service := &stubService{}
	watcher := NewWatcher(service, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- watcher.Watch(ctx, primary.ModePendingDiff, primary.RunRequest{}, 10*time.Millisecond)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()
	<-done

	if service.pending.Load() == 0 {
		t.Error("pending mode must drive RunPendingDiff")
	}
	if service.runs.Load() != 0 {
		t.Error("pending mode must not drive RunCompleted")
	}
}
