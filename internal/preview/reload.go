package preview

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/zjrosen/wdl/internal/compiler"
	"github.com/zjrosen/wdl/internal/log"
	"github.com/zjrosen/wdl/internal/watcher"
)

// Reloader recompiles a source file whenever it changes on disk. Results
// reach the preview through the compiler's broker.
type Reloader struct {
	path     string
	compiler *compiler.Compiler
	debounce time.Duration

	mu      sync.Mutex
	watcher *watcher.Watcher
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewReloader returns a Reloader for path. A debounce of 0 uses
// watcher.DefaultDebounce.
func NewReloader(path string, c *compiler.Compiler, debounce time.Duration) *Reloader {
	return &Reloader{path: path, compiler: c, debounce: debounce}
}

// Start compiles the file once, then again after every change until ctx is
// done or Stop is called.
func (r *Reloader) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.watcher != nil {
		return fmt.Errorf("reloader already started")
	}

	w, err := watcher.New(watcher.Config{Path: r.path, Debounce: r.debounce})
	if err != nil {
		return err
	}
	changes, err := w.Start()
	if err != nil {
		_ = w.Stop()
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	r.watcher = w
	r.cancel = cancel
	r.done = make(chan struct{})

	r.Reload(ctx)
	go r.loop(ctx, changes)
	return nil
}

func (r *Reloader) loop(ctx context.Context, changes <-chan struct{}) {
	defer close(r.done)
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-changes:
			if !ok {
				return
			}
			log.Debug(log.CatWatcher, "source changed", "path", r.path)
			r.Reload(ctx)
		}
	}
}

// Reload reads and compiles the file now. A read failure is published like
// any other failed compile would be, so the preview can show it.
func (r *Reloader) Reload(ctx context.Context) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		log.ErrorErr(log.CatWatcher, "read failed", err, "path", r.path)
		r.compiler.Fail(r.path, fmt.Errorf("reading %s: %w", r.path, err))
		return
	}
	_, _ = r.compiler.Compile(ctx, r.path, string(data))
}

// Stop ends the watch loop and waits for it to exit.
func (r *Reloader) Stop() {
	r.mu.Lock()
	w, cancel, done := r.watcher, r.cancel, r.done
	r.watcher = nil
	r.mu.Unlock()
	if w == nil {
		return
	}
	cancel()
	if err := w.Stop(); err != nil {
		log.ErrorErr(log.CatWatcher, "stop failed", err, "path", r.path)
	}
	<-done
}
