// Package notify implements the Notifier secondary port with desktop
// alerts. Notifications are best-effort: a missing notifier binary or a
// failed invocation is logged and otherwise ignored.
package notify

import (
	"fmt"
	"io"
	"log"
	"os/exec"
	"runtime"

	"github.com/example/tickdup/internal/ports/secondary"
)

// DesktopNotifier shows OS alerts via osascript (macOS) or notify-send
// (Linux). On other platforms Notify is a no-op.
type DesktopNotifier struct {
	logger *log.Logger
	goos   string
	runCmd func(name string, args ...string) error
}

var _ secondary.Notifier = (*DesktopNotifier)(nil)

// NewDesktopNotifier creates a desktop notifier. A nil logger discards
// failure messages.
func NewDesktopNotifier(logger *log.Logger) *DesktopNotifier {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &DesktopNotifier{
		logger: logger,
		goos:   runtime.GOOS,
		runCmd: func(name string, args ...string) error {
			return exec.Command(name, args...).Run()
		},
	}
}

// Notify shows an alert with the given title and message.
func (n *DesktopNotifier) Notify(title, message string) {
	var err error
	switch n.goos {
	case "darwin":
		script := fmt.Sprintf("display notification %q with title %q", message, title)
		err = n.runCmd("osascript", "-e", script)
	case "linux":
		err = n.runCmd("notify-send", title, message)
	default:
		return
	}
	if err != nil {
		n.logger.Printf("warning: desktop notification failed: %v", err)
	}
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

var _ secondary.Notifier = NopNotifier{}

// Notify does nothing.
func (NopNotifier) Notify(title, message string) {}
