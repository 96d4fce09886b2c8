package cli

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rpgshelf/shelf/internal/catalog"
	"github.com/rpgshelf/shelf/internal/config"
	"github.com/rpgshelf/shelf/internal/display"
	"github.com/rpgshelf/shelf/internal/logging"
	"github.com/rpgshelf/shelf/internal/paths"
	"github.com/rpgshelf/shelf/internal/sqlite"
	"github.com/rpgshelf/shelf/internal/uistate"
	"github.com/rpgshelf/shelf/pkg/types"
)

// app is the state of one CLI invocation. Settings, stores and the domain
// service are opened lazily by the commands that need them.
type app struct {
	flags   rootFlags
	started bool

	configDir string
	dataDir   string
	settings  *config.Settings
	logger    *zap.Logger
	closeLog  func()

	report  *sqlite.BootstrapReport
	backend *sqlite.Backend
	svc     *catalog.Service
	shell   *uistate.Shell
}

// loadSettings resolves the config dir, reads config.yaml and builds the
// logger. Console logging stays quiet so command output is not mixed with
// progress messages.
func (a *app) loadSettings() error {
	if a.settings != nil {
		return nil
	}
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	settings, err := config.Load(configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, settings.DataDir)
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}

	logger, closeLog, err := logging.New(logging.Options{
		Level: settings.LogLevel,
		File:  settings.LogFile,
		Quiet: true,
	})
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	a.configDir = configDir
	a.dataDir = dataDir
	a.settings = settings
	a.logger = logger
	a.closeLog = closeLog
	a.shell = uistate.NewShell(a.flags.dark || settings.Dark(), display.Detect(settings))
	return nil
}

// open bootstraps the data dir and attaches the stores. Bootstrap failures
// are logged and kept in the report; they never stop the command.
func (a *app) open(ctx context.Context) error {
	if a.svc != nil {
		return nil
	}
	if err := a.loadSettings(); err != nil {
		return err
	}

	legacyDir, err := paths.ResolveLegacyDir(a.settings.LegacyDir)
	if err != nil {
		a.logger.Warn("legacy dir unavailable, skipping migration", zap.Error(err))
		legacyDir = ""
	}
	report, err := sqlite.Bootstrap(ctx, sqlite.BootstrapOptions{
		DataDir:   a.dataDir,
		LegacyDir: legacyDir,
		Logger:    a.logger,
	})
	if err != nil {
		return fmt.Errorf("bootstrap stores: %w", err)
	}
	a.report = report

	backend := sqlite.NewBackend(a.logger)
	if err := backend.Attach(types.Config{Backend: types.BackendSQLite, DataDir: a.dataDir}); err != nil {
		return fmt.Errorf("attach stores: %w", err)
	}
	for name, err := range backend.Unavailable() {
		a.logger.Warn("store unavailable", zap.String("store", name), zap.Error(err))
	}

	a.backend = backend
	a.svc = catalog.NewService(backend, a.logger)
	return nil
}

func (a *app) close() {
	if a.backend != nil {
		if err := a.backend.Detach(); err != nil && a.logger != nil {
			a.logger.Warn("detach stores", zap.Error(err))
		}
		a.backend = nil
		a.svc = nil
	}
	if a.closeLog != nil {
		a.closeLog()
		a.closeLog = nil
	}
}
