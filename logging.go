package blaster

import (
	"github.com/gekko3d/blaster/logging"
)

type Logger = logging.Logger

type DefaultLogger = logging.DefaultLogger

func NewDefaultLogger(prefix string, debug bool) *DefaultLogger {
	return logging.NewDefaultLogger(prefix, debug)
}

func NewNopLogger() Logger { return logging.NewNopLogger() }

// LoggingModule installs a default logger as a resource.
type LoggingModule struct {
	Prefix string
	Debug  bool
}

func (m LoggingModule) Install(app *App, cmd *Commands) {
	logger := NewDefaultLogger(m.Prefix, m.Debug)
	app.addResources(logger)
}

// Logger returns the first Logger resource if present, otherwise a no-op logger.
// Safe to call at any time; never returns nil.
func (app *App) Logger() Logger {
	if app == nil {
		return NewNopLogger()
	}
	if l, ok := Resource[DefaultLogger](app); ok {
		return l
	}
	for _, r := range app.resources {
		if l, ok := r.(Logger); ok {
			return l
		}
	}
	return NewNopLogger()
}
