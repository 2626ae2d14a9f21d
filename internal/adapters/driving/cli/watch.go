package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ff-labs/fff-go/internal/adapters/driving/watcher"
)

var watchDebounce = watcher.DefaultDebounce

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep the index in step with the working tree",
	Long: `Runs the finder and watches the base path until interrupted.
Changes to the git index, HEAD or refs refresh git status; files created,
removed or renamed at the top level trigger a rescan, unless the root
.gitignore excludes them.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watcher.DefaultDebounce, "collect events for this long before acting")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	finder, err := requireFinder()
	if err != nil {
		return err
	}

	return withSession(cmd, func(ctx context.Context) error {
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		w, err := watcher.New(finder, services.Session.BasePath(), watcher.WithDebounce(watchDebounce))
		if err != nil {
			return err
		}

		newPrinter(cmd).Printf("Watching %s (ctrl+c to stop)\n", w.Root())
		if err := w.Run(ctx); err != nil {
			return fmt.Errorf("watch failed: %w", err)
		}
		return nil
	})
}
