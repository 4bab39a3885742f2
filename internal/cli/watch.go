package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/tickdup/internal/wire"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the automation continuously",
	Long: `Poll the remote task service at a fixed interval, running one
reconciliation pass per tick. Passes never overlap. SIGINT or SIGTERM
stops the loop before the next pass; the pass in flight always runs to
completion.

Examples:
  tickdup watch                  # poll with the configured interval
  tickdup watch --interval 10m   # override the interval`,
	RunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		wire.SetVerbose(verbose)
		noNotify, _ := cmd.Flags().GetBool("no-notify")
		wire.SetNoNotify(noNotify)

		req, mode, err := requestFromFlags(cmd)
		if err != nil {
			return err
		}
		cfg := wire.Config()
		if err := cfg.Validate(); err != nil {
			return err
		}

		interval := cfg.PollInterval()
		if s, _ := cmd.Flags().GetString("interval"); s != "" {
			d, err := time.ParseDuration(s)
			if err != nil || d <= 0 {
				return fmt.Errorf("invalid --interval %q (want a duration like 5m)", s)
			}
			interval = d
		}

		unlock, err := acquireRunLock(cfg.StateDir)
		if err != nil {
			return err
		}
		defer unlock()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		fmt.Printf("Polling every %s (mode: %s). Press Ctrl+C to stop.\n", interval, mode)
		err = wire.Watcher().Watch(ctx, mode, req, interval)
		if errors.Is(err, context.Canceled) {
			fmt.Println("Stopped.")
			return nil
		}
		return err
	},
}

func init() {
	addPassFlags(watchCmd)
	watchCmd.Flags().String("interval", "", "Polling interval (overrides POLLING_INTERVAL, e.g. 5m)")
	watchCmd.Flags().Bool("no-notify", false, "Disable desktop notifications")
}

// WatchCmd returns the watch command.
func WatchCmd() *cobra.Command {
	return watchCmd
}
