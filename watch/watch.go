// Package watch triggers a callback when schema sources on disk change.
// Events are debounced so editor save bursts produce one regeneration.
package watch

import (
	"context"
	"log"
	"os"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 250 * time.Millisecond

// Watcher observes paths and invokes the callback with the changed
// paths after the debounce window closes.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration
	logger   *log.Logger
	onChange func(paths []string)
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the debounce window.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *log.Logger) Option {
	return func(w *Watcher) { w.logger = l }
}

// New returns a watcher invoking onChange for each settled batch of
// changes.
func New(onChange func(paths []string), opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fsw:      fsw,
		debounce: defaultDebounce,
		logger:   log.New(os.Stderr, "", log.LstdFlags),
		onChange: onChange,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Add registers a file or directory to observe.
func (w *Watcher) Add(path string) error { return w.fsw.Add(path) }

// Close releases the underlying watcher.
func (w *Watcher) Close() error { return w.fsw.Close() }

// Run blocks until the context is cancelled, dispatching debounced
// change batches to the callback.
func (w *Watcher) Run(ctx context.Context) error {
	var (
		pending = make(map[string]struct{})
		timer   = time.NewTimer(w.debounce)
	)
	if !timer.Stop() {
		<-timer.C
	}
	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			pending[ev.Name] = struct{}{}
			timer.Reset(w.debounce)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Printf("watch: %v", err)
		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			sort.Strings(paths)
			pending = make(map[string]struct{})
			w.onChange(paths)
		}
	}
}
