package sprinkles

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/zoobzio/capitan"
	"go.uber.org/zap"

	"github.com/agiangrant/sprinkles/atomfile"
	"github.com/agiangrant/sprinkles/atoms"
)

const defaultDebounce = 100 * time.Millisecond

// ErrNoFiles is returned by Open when no configuration file is given.
var ErrNoFiles = errors.New("no atom configuration files")

// Registry serves the resolver built from a set of configuration files and
// replaces it when they change. Readers never block.
type Registry struct {
	current atomic.Pointer[atoms.Atoms]
	paths   []string

	logger   *zap.Logger
	debounce time.Duration

	// reloadMu serializes reloads; readers only touch current.
	reloadMu sync.Mutex
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithDebounce sets how long Watch waits for writes to settle before
// reloading.
func WithDebounce(d time.Duration) Option {
	return func(r *Registry) {
		if d > 0 {
			r.debounce = d
		}
	}
}

// Open loads paths in order and returns a Registry serving their merged
// configuration.
func Open(paths []string, opts ...Option) (*Registry, error) {
	if len(paths) == 0 {
		return nil, ErrNoFiles
	}
	r := &Registry{
		paths:    slices.Clone(paths),
		logger:   zap.NewNop(),
		debounce: defaultDebounce,
	}
	for _, opt := range opts {
		opt(r)
	}

	a, err := r.load()
	if err != nil {
		return nil, err
	}
	r.current.Store(a)
	r.logger.Info("Atom configuration loaded",
		zap.Strings("files", r.paths),
		zap.Int("properties", len(a.Properties())))
	return r, nil
}

// Paths returns the configuration files in merge order.
func (r *Registry) Paths() []string { return slices.Clone(r.paths) }

// Atoms returns the current resolver.
func (r *Registry) Atoms() *atoms.Atoms { return r.current.Load() }

// Resolve resolves props with the current resolver.
func (r *Registry) Resolve(props map[string]any) (string, error) {
	return r.current.Load().Resolve(props)
}

// Classes returns the class list of props with the current resolver.
func (r *Registry) Classes(props map[string]any) ([]string, error) {
	return r.current.Load().Classes(props)
}

// Reload rebuilds the resolver from disk. On failure the current resolver is
// kept and the error returned.
func (r *Registry) Reload(ctx context.Context) error {
	return r.reload(ctx, "")
}

func (r *Registry) reload(ctx context.Context, trigger string) error {
	r.reloadMu.Lock()
	defer r.reloadMu.Unlock()

	a, err := r.load()
	if err != nil {
		r.logger.Error("Atom configuration reload failed, keeping previous",
			zap.String("path", trigger),
			zap.Error(err))
		capitan.Emit(ctx, RegistryReloadFailed,
			KeyPath.Field(trigger),
			KeyError.Field(err.Error()),
		)
		return err
	}

	r.current.Store(a)
	r.logger.Info("Atom configuration reloaded",
		zap.String("path", trigger),
		zap.Int("properties", len(a.Properties())))
	capitan.Emit(ctx, RegistryReloaded,
		KeyPath.Field(trigger),
		KeyFiles.Field(len(r.paths)),
		KeyProperties.Field(len(a.Properties())),
	)
	return nil
}

func (r *Registry) load() (*atoms.Atoms, error) {
	configs, err := atomfile.LoadAll(r.paths...)
	if err != nil {
		return nil, err
	}
	a, err := atoms.New(configs...)
	if err != nil {
		return nil, fmt.Errorf("failed to merge atom configuration: %w", err)
	}
	return a, nil
}

// Watch reloads the registry whenever one of its files is written, created
// or renamed into place, until ctx is done. Directories are watched rather
// than files so editors that replace files on save are picked up.
func (r *Registry) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	files := make(map[string]struct{}, len(r.paths))
	for _, p := range r.paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", p, err)
		}
		files[abs] = struct{}{}
	}
	dirs := make(map[string]struct{})
	for f := range files {
		dir := filepath.Dir(f)
		if _, ok := dirs[dir]; ok {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
		dirs[dir] = struct{}{}
	}

	capitan.Emit(ctx, RegistryWatchStarted,
		KeyFiles.Field(len(files)),
		KeyDebounce.Field(r.debounce),
	)
	r.logger.Debug("Watching atom configuration", zap.Int("dirs", len(dirs)), zap.Duration("debounce", r.debounce))
	defer func() {
		capitan.Emit(context.WithoutCancel(ctx), RegistryWatchStopped)
		r.logger.Debug("Stopped watching atom configuration")
	}()

	var (
		timer   *time.Timer
		fire    <-chan time.Time
		trigger string
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			if _, ok := files[abs]; !ok {
				continue
			}
			trigger = event.Name
			if timer == nil {
				timer = time.NewTimer(r.debounce)
			} else {
				timer.Reset(r.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			// Failures are logged and signalled; watching continues.
			_ = r.reload(ctx, trigger)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.logger.Warn("File watcher error", zap.Error(err))
		}
	}
}
