package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ff-labs/fff-go/internal/core/domain"
	"github.com/ff-labs/fff-go/internal/logger"
)

var (
	healthJSON   bool
	healthNoInit bool
)

var healthCmd = &cobra.Command{
	Use:   "health [test-path]",
	Short: "Check the native engine",
	Long: `Reports the engine version, git detection, index state and the
frecency and query history databases. The report is produced even when the
finder cannot be initialized.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHealth,
}

func init() {
	healthCmd.Flags().BoolVar(&healthJSON, "json", false, "output the report as JSON")
	healthCmd.Flags().BoolVar(&healthNoInit, "no-init", false, "do not initialize the finder first")
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, args []string) error {
	finder, err := requireFinder()
	if err != nil {
		return err
	}
	testPath := ""
	if len(args) == 1 {
		testPath = args[0]
	}

	report := func(ctx context.Context) error {
		health, err := finder.HealthCheck(ctx, testPath)
		if err != nil {
			return fmt.Errorf("health check failed: %w", err)
		}
		if healthJSON {
			return printJSON(cmd, health)
		}
		outputHealth(newPrinter(cmd), health)
		return nil
	}

	if healthNoInit {
		return report(commandContext(cmd))
	}
	if err := withSession(cmd, report); err != nil {
		if finder.IsInitialized() {
			return err
		}
		logger.Warn("%v", err)
		return report(commandContext(cmd))
	}
	return nil
}

func outputHealth(p *printer, h *domain.HealthCheck) {
	p.Printf("fff %s\n\n", h.Version)

	git := "not available"
	switch {
	case h.Git.Error != "":
		git = p.style(errorStyle, "error: "+h.Git.Error)
	case h.Git.Available && h.Git.RepositoryFound:
		git = fmt.Sprintf("libgit2 %s, repository at %s", h.Git.Libgit2Version, h.Git.Workdir)
	case h.Git.Available:
		git = fmt.Sprintf("libgit2 %s, no repository", h.Git.Libgit2Version)
	}
	p.Printf("%-14s %s\n", "git:", git)

	index := "not initialized"
	fp := h.FilePicker
	switch {
	case fp.Error != "":
		index = p.style(errorStyle, "error: "+fp.Error)
	case fp.Initialized:
		index = "initialized at " + fp.BasePath
		if fp.IndexedFiles != nil {
			index += fmt.Sprintf(", %d files", *fp.IndexedFiles)
		}
		if fp.IsScanning != nil && *fp.IsScanning {
			index += ", scanning"
		}
	}
	p.Printf("%-14s %s\n", "index:", index)

	p.Printf("%-14s %s\n", "frecency:", describeDB(p, h.Frecency))
	p.Printf("%-14s %s\n", "query history:", describeDB(p, h.QueryTracker))
}

func describeDB(p *printer, db domain.DBComponentHealth) string {
	switch {
	case db.Error != "":
		return p.style(errorStyle, "error: "+db.Error)
	case !db.Initialized:
		return "not initialized"
	case db.DBHealthcheck != nil:
		return fmt.Sprintf("%s (%d bytes)", db.DBHealthcheck.Path, db.DBHealthcheck.DiskSize)
	default:
		return "initialized"
	}
}
