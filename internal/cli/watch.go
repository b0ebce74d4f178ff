// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/littlefisher666/swagger-docgen/internal/config"
	"github.com/littlefisher666/swagger-docgen/internal/logging"
)

var (
	watchDebounce int
	watchOnChange string
)

var watchCmd = &cobra.Command{
	Use:   "watch [paths...]",
	Short: "Watch descriptors and regenerate the document on change",
	Long: `Watch for descriptor and doc source changes and regenerate the Swagger
document.

The document is generated once on start, then again after every burst of
changes to files the source or docs patterns select. Press Ctrl+C to stop.

Example:
  docgen watch                          # Watch the configured source paths
  docgen watch ./descriptors            # Watch specific paths
  docgen watch --debounce 1000          # Wait 1s before regenerating
  docgen watch --on-change "make docs"  # Run command after regeneration`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().IntVar(&watchDebounce, "debounce", 0, "debounce duration in milliseconds (default: watch.debounce)")
	watchCmd.Flags().StringVar(&watchOnChange, "on-change", "", "shell command to run after regeneration")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Apply command-line overrides
	if len(args) > 0 {
		cfg.Source.Paths = args
	}
	if watchDebounce > 0 {
		cfg.Watch.Debounce = watchDebounce
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}

	printVerbose("Watch configuration:")
	printVerbose("  Debounce: %dms", cfg.Watch.Debounce)
	if watchOnChange != "" {
		printVerbose("  On change: %s", watchOnChange)
	}
	printVerbose("  Paths: %s", strings.Join(cfg.Source.Paths, ", "))

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	dirs, err := watchDirs(cfg)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	rebuild := func() {
		if err := regenerate(ctx, cfg, logger); err != nil {
			logger.Error("regeneration failed", "error", err)
			return
		}
		if watchOnChange != "" {
			runOnChange(ctx, watchOnChange, logger)
		}
	}

	rebuild()
	printInfo("Watching for changes in: %s", strings.Join(cfg.Source.Paths, ", "))
	printInfo("Press Ctrl+C to stop")

	loop := &watchLoop{
		debounce: time.Duration(cfg.Watch.Debounce) * time.Millisecond,
		matches:  watchMatcher(cfg),
		onChange: rebuild,
		onDir: func(dir string) {
			if err := watcher.Add(dir); err != nil {
				logger.Warn("failed to watch new directory", "path", dir, "error", err)
			}
		},
		logger: logger,
	}
	loop.run(ctx, watcher.Events, watcher.Errors)

	return nil
}

// watchDirs returns the directories to register for source and, when
// enabled, doc sources.
func watchDirs(cfg *config.Config) ([]string, error) {
	dirs, err := sourceScanner(cfg).WatchDirs(cfg.Source.Paths)
	if err != nil {
		return nil, fmt.Errorf("failed to list source directories: %w", err)
	}
	if cfg.Docs.Enabled {
		docDirs, err := docScanner(cfg).WatchDirs(cfg.Docs.Paths)
		if err != nil {
			return nil, fmt.Errorf("failed to list doc directories: %w", err)
		}
		dirs = append(dirs, docDirs...)
	}
	return dirs, nil
}

func watchMatcher(cfg *config.Config) func(string) bool {
	src := sourceScanner(cfg)
	if !cfg.Docs.Enabled {
		return src.Matches
	}
	docs := docScanner(cfg)
	return func(path string) bool {
		return src.Matches(path) || docs.Matches(path)
	}
}

func regenerate(ctx context.Context, cfg *config.Config, logger logging.Logger) error {
	start := time.Now()
	doc, err := buildDocument(ctx, cfg, logger)
	if err != nil {
		return err
	}
	written, err := writeDocument(cfg, doc)
	if err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	printInfo("Regenerated %s in %s", strings.Join(written, ", "), time.Since(start).Round(time.Millisecond))
	return nil
}

func runOnChange(ctx context.Context, command string, logger logging.Logger) {
	c := exec.CommandContext(ctx, "sh", "-c", command)
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		logger.Warn("on-change command failed", "command", command, "error", err)
	}
}

// watchLoop debounces file events into onChange calls.
type watchLoop struct {
	debounce time.Duration
	matches  func(path string) bool
	onChange func()
	onDir    func(dir string)
	logger   logging.Logger
}

// run blocks until ctx is done or events is closed.
func (l *watchLoop) run(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error) {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Create) && l.onDir != nil {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					l.onDir(event.Name)
					continue
				}
			}
			if event.Op == fsnotify.Chmod || !l.matches(event.Name) {
				continue
			}
			l.logger.Debug("file changed", "file", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(l.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(l.debounce)
			}
			fire = timer.C

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			l.logger.Warn("watch error", "error", err)

		case <-fire:
			fire = nil
			l.onChange()
		}
	}
}
