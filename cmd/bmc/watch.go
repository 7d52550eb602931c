package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/rgonek/block-markdown-converter/internal/logfields"
	"github.com/rgonek/block-markdown-converter/mdconverter"
)

const blocksSuffix = ".blocks.json"

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Dir      string        `arg:"" type:"existingdir" help:"Directory containing Markdown files."`
	Debounce time.Duration `default:"300ms" help:"Quiet period before a changed file is converted."`
}

func (c *WatchCmd) Run(rt *runtime) error {
	conv, err := mdconverter.New(rt.parse)
	if err != nil {
		return fmt.Errorf("invalid parse config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := newDirWatcher(c.Dir, conv, c.Debounce)
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.convertExisting(); err != nil {
		return err
	}
	return w.Run(ctx)
}

// dirWatcher converts Markdown files in one directory to block JSON files
// next to them, debouncing bursts of events per file.
type dirWatcher struct {
	dir      string
	conv     *mdconverter.Converter
	watcher  *fsnotify.Watcher
	debounce time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer
	wg     sync.WaitGroup
}

func newDirWatcher(dir string, conv *mdconverter.Converter, debounce time.Duration) (*dirWatcher, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory: %w", err)
	}

	return &dirWatcher{
		dir:      absDir,
		conv:     conv,
		debounce: debounce,
		timers:   make(map[string]*time.Timer),
	}, nil
}

// Run watches the directory until ctx is done.
func (w *dirWatcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	w.watcher = watcher

	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", w.dir, err)
	}
	slog.Info("Watching for Markdown changes", logfields.File(w.dir))

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isMarkdownFile(event.Name) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				slog.Debug("Markdown change detected", logfields.File(event.Name), slog.String("op", event.Op.String()))
				w.schedule(event.Name)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("Watcher error", logfields.Error(err))
		}
	}
}

// Close stops pending conversions and releases the watcher.
func (w *dirWatcher) Close() error {
	w.mu.Lock()
	for path, timer := range w.timers {
		if timer.Stop() {
			w.wg.Done()
		}
		delete(w.timers, path)
	}
	w.mu.Unlock()
	w.wg.Wait()

	if w.watcher != nil {
		return w.watcher.Close()
	}
	return nil
}

// schedule converts path once no further events arrive for it within the
// debounce window.
func (w *dirWatcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.timers[path]; ok && timer.Stop() {
		w.wg.Done()
	}

	w.wg.Add(1)
	var timer *time.Timer
	timer = time.AfterFunc(w.debounce, func() {
		defer w.wg.Done()

		w.mu.Lock()
		if w.timers[path] == timer {
			delete(w.timers, path)
		}
		w.mu.Unlock()

		if err := convertMarkdownFile(w.conv, path); err != nil {
			slog.Error("Conversion failed", logfields.File(path), logfields.Error(err))
		}
	})
	w.timers[path] = timer
}

func (w *dirWatcher) convertExisting() error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return fmt.Errorf("read directory %s: %w", w.dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !isMarkdownFile(entry.Name()) {
			continue
		}
		path := filepath.Join(w.dir, entry.Name())
		if err := convertMarkdownFile(w.conv, path); err != nil {
			slog.Error("Conversion failed", logfields.File(path), logfields.Error(err))
		}
	}
	return nil
}

func isMarkdownFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".md" || ext == ".markdown"
}

// blocksPath returns the output file for a Markdown file: notes.md becomes
// notes.blocks.json.
func blocksPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + blocksSuffix
}

func convertMarkdownFile(conv *mdconverter.Converter, path string) error {
	data, err := readInput(path, nil)
	if err != nil {
		return err
	}

	result, err := conv.Convert(string(data))
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(result.Blocks, "", "  ")
	if err != nil {
		return fmt.Errorf("encode blocks: %w", err)
	}

	target := blocksPath(path)
	if err := os.WriteFile(target, append(out, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}
	slog.Info("Converted", logfields.File(path), slog.String("output", target), slog.Int("blocks", len(result.Blocks)))
	return nil
}
