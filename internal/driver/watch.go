package driver

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch compiles files once, then recompiles a file each time it is
// written or recreated, waiting opts.Debounce for the writes to settle.
// Every result is passed to fn from the calling goroutine. Watch returns
// nil when ctx is cancelled.
//
// The parent directories are watched rather than the files, so editors
// that save by renaming a temporary file are still seen.
func Watch(ctx context.Context, files []string, opts Options, fn func(*Unit)) error {
	log := opts.logger()

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer w.Close()

	names := make(map[string]string) // absolute path -> name as given
	dirs := make(map[string]bool)
	for _, name := range files {
		abs, err := filepath.Abs(name)
		if err != nil {
			return fmt.Errorf("watch %s: %w", name, err)
		}
		names[abs] = name
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}

	units, err := CompileFiles(ctx, files, opts)
	if err != nil {
		return err
	}
	for _, u := range units {
		fn(u)
	}

	done := make(chan struct{})
	defer close(done)
	ready := make(chan string)
	timers := make(map[string]*time.Timer)
	defer func() {
		for _, t := range timers {
			t.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			name, ok := names[filepath.Clean(ev.Name)]
			if !ok {
				continue
			}
			log.Debug("change", "file", name, "op", ev.Op.String())
			if t := timers[name]; t != nil {
				t.Stop()
			}
			timers[name] = time.AfterFunc(opts.Debounce, func() {
				select {
				case ready <- name:
				case <-done:
				}
			})

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", "err", err)

		case name := <-ready:
			delete(timers, name)
			u, err := CompileFile(ctx, name, opts)
			if err != nil {
				// The file may be gone between the event and the read.
				log.Warn("recompile failed", "file", name, "err", err)
				continue
			}
			fn(u)
		}
	}
}
