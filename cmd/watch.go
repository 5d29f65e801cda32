package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/toyinlola/coreiq/pkg/cli"
)

// watchDebounce collapses the burst of events an editor emits on save.
const watchDebounce = 150 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Re-score an assessment every time it is saved",
	Long: `Watch prints a report for the document, then prints a fresh report
whenever the file changes on disk. Stop with Ctrl-C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	return watchDocument(cmd.Context(), cmd.OutOrStdout(), cfg, args[0])
}

// watchDocument renders path once and again after each change until ctx ends.
// The parent directory is watched so editors that replace the file on save
// are still seen.
func watchDocument(ctx context.Context, w io.Writer, cfg *cli.Config, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch: watch %s: %w", dir, err)
	}

	f := selectFormatter(cfg.Output.Format)
	render := func() {
		// Failures are reported and the watch continues; the next save may fix them.
		if err := scoreOne(w, f, cfg, path); err != nil {
			slog.Error("re-score failed", "path", path, "error", err)
		}
	}
	render()

	target := filepath.Clean(path)
	var timer *time.Timer
	fire := make(chan struct{}, 1)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			slog.Info("watch stopped", "path", path)
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target || !isChange(event) {
				continue
			}
			slog.Debug("document changed", "path", path, "op", event.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case <-fire:
			render()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", "error", err)
		}
	}
}

func isChange(event fsnotify.Event) bool {
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}
