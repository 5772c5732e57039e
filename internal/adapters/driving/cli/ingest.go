package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/deskmate/internal/logger"
)

var ingestWatch bool

// Delay between a filesystem event and re-ingestion, so editors that
// write in multiple bursts trigger a single pass.
const ingestDebounce = 500 * time.Millisecond

var ingestCmd = &cobra.Command{
	Use:   "ingest [directory]",
	Short: "Index policy and FAQ documents for search",
	Long: `Chunks, embeds and indexes every .txt and .md file in the given
directory. With --watch the directory is monitored and re-ingested
whenever a document changes.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolVarP(&ingestWatch, "watch", "w", false, "re-ingest when files change")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	dir := args[0]

	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	ctx := context.Background()

	count, err := ingestService.IngestDirectory(ctx, dir)
	if err != nil {
		return fmt.Errorf("ingesting %s: %w", dir, err)
	}
	cmd.Printf("Indexed %d chunks from %s\n", count, dir)

	if !ingestWatch {
		return nil
	}

	return watchAndIngest(ctx, cmd, dir)
}

// watchAndIngest re-runs directory ingestion whenever a document file
// changes, until interrupted.
func watchAndIngest(ctx context.Context, cmd *cobra.Command, dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching %s for changes (Ctrl-C to stop)\n", dir)

	var timer *time.Timer
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isDocumentEvent(event) {
				continue
			}
			logger.Debug("Change detected: %s", event.Name)
			if timer == nil {
				timer = time.NewTimer(ingestDebounce)
			} else {
				timer.Reset(ingestDebounce)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			count, err := ingestService.IngestDirectory(ctx, dir)
			if err != nil {
				logger.Warn("Re-ingestion failed: %v", err)
				continue
			}
			cmd.Printf("Re-indexed %d chunks from %s\n", count, dir)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// isDocumentEvent reports whether the event concerns an indexable
// document. Chmod-only events are ignored.
func isDocumentEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	ext := strings.ToLower(filepath.Ext(event.Name))
	return ext == ".txt" || ext == ".md"
}
