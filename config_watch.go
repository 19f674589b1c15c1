package blaster

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// ConfigReloads hands configs parsed by the watcher goroutine to the game
// loop. Only the newest pending config is kept.
type ConfigReloads struct {
	ch chan Config
	// forceDebug keeps debug logging on across reloads, set by --debug.
	forceDebug bool

	// Changed is true for the frame in which a reload was applied.
	Changed bool
}

func NewConfigReloads() *ConfigReloads {
	return &ConfigReloads{ch: make(chan Config, 1)}
}

// Push never blocks; a config still pending is replaced.
func (r *ConfigReloads) Push(cfg Config) {
	for {
		select {
		case r.ch <- cfg:
			return
		default:
		}
		select {
		case <-r.ch:
		default:
		}
	}
}

func (r *ConfigReloads) poll() (Config, bool) {
	select {
	case cfg := <-r.ch:
		return cfg, true
	default:
		return Config{}, false
	}
}

// WatchConfig reloads path whenever it is written and passes valid configs to
// onChange from the watcher goroutine. Invalid files are logged and skipped.
// The watch stops when ctx is done.
func WatchConfig(ctx context.Context, path string, logger Logger, onChange func(Config)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch config %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch config %s: %w", path, err)
	}
	// Editors often replace the file, so watch the directory.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch config %s: %w", path, err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				cfg, err := LoadConfig(abs)
				if err != nil {
					logger.Warnf("config reload skipped: %v", err)
					continue
				}
				logger.Infof("config reloaded from %s", abs)
				onChange(cfg)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Errorf("config watcher: %v", err)
			}
		}
	}()
	return nil
}

// ConfigModule publishes the Config resource and, when Watch is set, applies
// edits of Path at the start of the next frame.
type ConfigModule struct {
	Config Config
	Path   string
	Watch  bool
	// Debug keeps debug logging on whatever a reloaded file says.
	Debug bool
}

func (mod ConfigModule) Install(app *App, cmd *Commands) {
	cfg := mod.Config
	cfg.Log.Debug = cfg.Log.Debug || mod.Debug
	reloads := NewConfigReloads()
	reloads.forceDebug = mod.Debug
	cmd.AddResources(&cfg, reloads)
	cmd.UseSystem(System(configReloadSystem).InStage(Prelude))

	if !mod.Watch || mod.Path == "" {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	if err := WatchConfig(ctx, mod.Path, app.Logger(), reloads.Push); err != nil {
		cancel()
		app.Logger().Warnf("config hot reload disabled: %v", err)
		return
	}
	app.onShutdown(cancel)
}

func configReloadSystem(cfg *Config, reloads *ConfigReloads, cmd *Commands) {
	reloads.Changed = false
	next, ok := reloads.poll()
	if !ok {
		return
	}
	next.Log.Debug = next.Log.Debug || reloads.forceDebug
	*cfg = next
	reloads.Changed = true
	cmd.Logger().SetDebug(next.Log.Debug)
}
