package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var platformJSON bool

var platformCmd = &cobra.Command{
	Use:   "platform",
	Short: "Show how the native library is resolved",
	Long: `Prints the target triple of this host, the platform package that
provides the native library, the library file name, where it was found and
whether it loads.`,
	Args: cobra.NoArgs,
	RunE: runPlatform,
}

func init() {
	platformCmd.Flags().BoolVar(&platformJSON, "json", false, "output the report as JSON")
	rootCmd.AddCommand(platformCmd)
}

func runPlatform(cmd *cobra.Command, _ []string) error {
	if services == nil || services.Platform == nil {
		return errors.New("platform service not configured")
	}

	report := services.Platform.Report(commandContext(cmd))
	if platformJSON {
		return printJSON(cmd, report)
	}

	p := newPrinter(cmd)
	target := report.Target
	if report.TargetError != "" {
		target = p.style(errorStyle, report.TargetError)
		if report.Target != "" {
			target = report.Target + " (" + target + ")"
		}
	}
	p.Printf("%-10s %s\n", "target:", target)
	p.Printf("%-10s %s\n", "package:", orNone(report.PackageName))
	p.Printf("%-10s %s\n", "library:", report.LibraryFilename)
	p.Printf("%-10s %s\n", "found at:", orNone(report.BinaryPath))

	loads := "no"
	if report.Available {
		loads = "yes"
	}
	p.Printf("%-10s %s\n", "loads:", loads)
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
