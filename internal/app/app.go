package app

import (
	"io"
	"log/slog"

	"github.com/vk/recordrt/internal/config"
	"github.com/vk/recordrt/internal/record"
	"github.com/vk/recordrt/internal/recordtype"
	"github.com/vk/recordrt/internal/shape"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	loader  config.Loader
	factory *record.Factory
}

// NewApp is the constructor for the main application. Rendered records are
// written to outW and logs to logW. Each App gets its own registries, so
// records built by different Apps never share shapes.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	shapes := shape.NewRegistry(logger)
	types := recordtype.NewRegistry(shapes, logger)
	factory := record.NewFactory(
		record.WithTypes(types),
		record.WithLogger(logger),
		record.WithKeyChecks(cfg.CheckKeys),
	)
	logger.Debug("Record factory created.", "check_keys", cfg.CheckKeys)

	return &App{
		outW:    outW,
		logger:  logger,
		loader:  loader,
		factory: factory,
	}
}

// Factory returns the application's record factory. This is primarily for testing.
func (a *App) Factory() *record.Factory {
	return a.factory
}
