package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ff-labs/fff-go/internal/core/domain"
)

var trackQuery string

var trackCmd = &cobra.Command{
	Use:   "track [path]",
	Short: "Record that a file was opened",
	Long: `Records an access to path for frecency ranking. With --query, also
records that the query led to the file.`,
	Args: cobra.ExactArgs(1),
	RunE: runTrack,
}

var historyCmd = &cobra.Command{
	Use:   "history [offset]",
	Short: "Print a query from the search history",
	Long:  `Prints the query offset steps back in history; 0 is the most recent.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistory,
}

var refreshGitCmd = &cobra.Command{
	Use:   "refresh-git",
	Short: "Refresh git status for indexed files",
	Args:  cobra.NoArgs,
	RunE:  runRefreshGit,
}

var reindexCmd = &cobra.Command{
	Use:   "reindex [path]",
	Short: "Rebuild the index, optionally at a new path",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runReindex,
}

func init() {
	trackCmd.Flags().StringVarP(&trackQuery, "query", "q", "", "query that led to the file")
	rootCmd.AddCommand(trackCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(refreshGitCmd)
	rootCmd.AddCommand(reindexCmd)
}

func runTrack(cmd *cobra.Command, args []string) error {
	path := domain.ParseCompletionValue(args[0])

	return withSession(cmd, func(ctx context.Context) error {
		if err := services.Session.Select(ctx, trackQuery, path); err != nil {
			return fmt.Errorf("track failed: %w", err)
		}
		newPrinter(cmd).Printf("Tracked %s\n", path)
		return nil
	})
}

func runHistory(cmd *cobra.Command, args []string) error {
	finder, err := requireFinder()
	if err != nil {
		return err
	}
	offset := 0
	if len(args) == 1 {
		offset, err = strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("%w: offset must be an integer", domain.ErrInvalidInput)
		}
	}

	return withSession(cmd, func(ctx context.Context) error {
		query, err := finder.HistoricalQuery(ctx, offset)
		if err != nil {
			return fmt.Errorf("history failed: %w", err)
		}
		p := newPrinter(cmd)
		if query == nil {
			p.Println(p.style(mutedStyle, fmt.Sprintf("No query at offset %d.", offset)))
			return nil
		}
		p.Println(*query)
		return nil
	})
}

func runRefreshGit(cmd *cobra.Command, _ []string) error {
	finder, err := requireFinder()
	if err != nil {
		return err
	}

	return withSession(cmd, func(ctx context.Context) error {
		n, err := finder.RefreshGitStatus(ctx)
		if err != nil {
			return fmt.Errorf("refresh failed: %w", err)
		}
		newPrinter(cmd).Printf("Refreshed git status for %d files\n", n)
		return nil
	})
}

func runReindex(cmd *cobra.Command, args []string) error {
	finder, err := requireFinder()
	if err != nil {
		return err
	}

	return withSession(cmd, func(ctx context.Context) error {
		target := services.Session.BasePath()
		if len(args) == 1 {
			if target, err = filepath.Abs(args[0]); err != nil {
				return err
			}
		}
		if err := finder.Reindex(ctx, target); err != nil {
			return fmt.Errorf("reindex failed: %w", err)
		}
		newPrinter(cmd).Printf("Reindexing %s\n", target)
		return nil
	})
}
