package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/urfave/cli/v2"

	"github.com/jaimade/watch-docs/internal/scanner"
)

const watchDebounce = 500 * time.Millisecond

var watchCommand = &cli.Command{
	Name:      "watch",
	Usage:     "Re-run analyze on DIR whenever a file changes",
	ArgsUsage: "DIR",
	Action: func(c *cli.Context) error {
		dir, err := requireDirArg(c)
		if err != nil {
			return err
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("watch: create fsnotify watcher: %w", err)
		}
		defer watcher.Close()

		cfg, err := loadProjectConfig(dir)
		if err != nil {
			return err
		}
		if err := addWatchDirs(watcher, dir, cfg.ScannerOptions(nil)); err != nil {
			return fmt.Errorf("watch: %w", err)
		}

		runOnce := func() {
			a, err := newAnalyzer(dir, 0)
			if err != nil {
				fmt.Fprintf(c.App.ErrWriter, "watch: %v\n", err)
				return
			}
			fmt.Fprintln(c.App.Writer, renderAnalysisText(a))
			fmt.Fprintln(c.App.Writer, "---")
		}
		runOnce()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

		var timer *time.Timer
		for {
			select {
			case <-sigCh:
				return nil
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(watchDebounce, runOnce)
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				fmt.Fprintf(c.App.ErrWriter, "watch: fsnotify error: %v\n", err)
			}
		}
	},
}

// addWatchDirs recursively registers every non-ignored directory under root
// with watcher.
func addWatchDirs(watcher *fsnotify.Watcher, root string, opts scanner.Options) error {
	ignore := make(map[string]struct{}, len(scanner.DefaultIgnoreDirs)+len(opts.IgnoreDirs))
	for k := range scanner.DefaultIgnoreDirs {
		ignore[k] = struct{}{}
	}
	for k := range opts.IgnoreDirs {
		ignore[k] = struct{}{}
	}

	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		if path != root && scanner.ShouldIgnoreDir(filepath.Base(path), ignore) {
			return filepath.SkipDir
		}
		if addErr := watcher.Add(path); addErr != nil {
			return nil
		}
		return nil
	})
}
