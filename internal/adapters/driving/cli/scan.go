package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var scanWait time.Duration

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Rescan the base path",
	Long: `Triggers a rescan of the base path and prints the scan progress.
With --wait, blocks until the scan finishes or the wait expires. An
expired wait does not stop the scan.`,
	Args: cobra.NoArgs,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().DurationVar(&scanWait, "wait", 0, "wait up to this long for the scan to finish")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, _ []string) error {
	finder, err := requireFinder()
	if err != nil {
		return err
	}

	return withSession(cmd, func(ctx context.Context) error {
		if err := finder.ScanFiles(ctx); err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}

		p := newPrinter(cmd)
		if scanWait > 0 {
			done, err := finder.WaitForScan(ctx, scanWait)
			if err != nil {
				return fmt.Errorf("wait for scan: %w", err)
			}
			if done {
				p.Println("Scan finished.")
			} else {
				p.Printf("Scan still running after %s.\n", scanWait)
			}
		}

		progress, err := finder.ScanProgress(ctx)
		if err != nil {
			return fmt.Errorf("scan progress: %w", err)
		}
		state := "idle"
		if progress.IsScanning {
			state = "scanning"
		}
		p.Printf("%d files scanned (%s)\n", progress.ScannedFilesCount, state)
		return nil
	})
}
