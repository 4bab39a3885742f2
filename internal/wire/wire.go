// Package wire provides dependency injection for the tickdup application.
// It creates singleton services with lazy initialization.
package wire

import (
	"io"
	"log"
	"os"
	"sync"

	"github.com/example/tickdup/internal/adapters/notify"
	"github.com/example/tickdup/internal/adapters/sqlite"
	"github.com/example/tickdup/internal/adapters/statefile"
	"github.com/example/tickdup/internal/adapters/ticktick"
	"github.com/example/tickdup/internal/app"
	"github.com/example/tickdup/internal/config"
	"github.com/example/tickdup/internal/db"
	"github.com/example/tickdup/internal/ports/primary"
	"github.com/example/tickdup/internal/ports/secondary"
)

var (
	cfg      *config.Config
	gateway  secondary.TaskGateway
	service  primary.AutomationService
	watcher  *app.Watcher
	logger   *log.Logger
	verbose  bool
	noNotify bool
	once     sync.Once
)

// SetVerbose enables pass-level log output. Must be called before the
// first service accessor.
func SetVerbose(v bool) { verbose = v }

// SetNoNotify disables desktop notifications. Must be called before the
// first service accessor.
func SetNoNotify(v bool) { noNotify = v }

// Config returns the loaded configuration.
func Config() *config.Config {
	once.Do(initServices)
	return cfg
}

// Gateway returns the singleton TaskGateway instance.
func Gateway() secondary.TaskGateway {
	once.Do(initServices)
	return gateway
}

// AutomationService returns the singleton AutomationService instance.
func AutomationService() primary.AutomationService {
	once.Do(initServices)
	return service
}

// Watcher returns the singleton Watcher instance.
func Watcher() *app.Watcher {
	once.Do(initServices)
	return watcher
}

// Logger returns the shared logger.
func Logger() *log.Logger {
	once.Do(initServices)
	return logger
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	out := io.Discard
	if verbose {
		out = os.Stderr
	}
	logger = log.New(out, "", log.LstdFlags)

	// Warnings (corrupt state, failed notifications) always surface.
	warnLogger := log.New(os.Stderr, "", log.LstdFlags)

	dir, err := config.DefaultDir()
	if err != nil {
		log.Fatalf("failed to resolve config directory: %v", err)
	}

	cfg, err = config.Load(dir)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Run history is best-effort bookkeeping: a broken database degrades
	// to "no history", it never blocks a pass.
	var recorder secondary.RunRecorder
	dbPath, err := db.DefaultPath()
	if err == nil {
		database, err := db.Open(dbPath)
		if err != nil {
			warnLogger.Printf("warning: run history disabled: %v", err)
		} else {
			recorder = sqlite.NewRunRepository(database)
		}
	}

	store := statefile.NewStore(cfg.StateDir, warnLogger)
	gateway = ticktick.NewClient(cfg.AccessToken)
	service = app.NewReconcilerService(gateway, store, store, recorder, logger)

	var notifier secondary.Notifier = notify.NopNotifier{}
	if !noNotify {
		notifier = notify.NewDesktopNotifier(warnLogger)
	}
	watcher = app.NewWatcher(service, notifier, logger)
}
