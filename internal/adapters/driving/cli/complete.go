package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	completeLimit  int
	completeQuoted bool
	completeJSON   bool
)

var completeCmd = &cobra.Command{
	Use:   "complete [prefix]",
	Short: "Complete an @path prompt token",
	Long: `Prints completion values for a prompt prefix, best first, one per line.
Values are @path, or @"path" when --quoted is set or the path has a space.
A leading @ and opening quote on the prefix are accepted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runComplete,
}

func init() {
	completeCmd.Flags().IntVarP(&completeLimit, "limit", "n", 20, "maximum number of completions")
	completeCmd.Flags().BoolVar(&completeQuoted, "quoted", false, "always quote completion values")
	completeCmd.Flags().BoolVar(&completeJSON, "json", false, "output suggestions as JSON")
	rootCmd.AddCommand(completeCmd)
}

func runComplete(cmd *cobra.Command, args []string) error {
	prefix := ""
	if len(args) == 1 {
		prefix = args[0]
	}
	query, quoted := parsePrefix(prefix)
	quoted = quoted || completeQuoted

	return withSession(cmd, func(ctx context.Context) error {
		suggestions, err := services.Session.Suggest(ctx, query, quoted, completeLimit)
		if err != nil {
			return fmt.Errorf("complete failed: %w", err)
		}

		if completeJSON {
			return printJSON(cmd, suggestions)
		}
		p := newPrinter(cmd)
		for _, s := range suggestions {
			p.Println(s.Value)
		}
		return nil
	})
}

// parsePrefix strips a leading @ and an opening quote from a prompt prefix.
func parsePrefix(prefix string) (string, bool) {
	if len(prefix) > 0 && prefix[0] == '@' {
		prefix = prefix[1:]
	}
	if len(prefix) > 0 && prefix[0] == '"' {
		return prefix[1:], true
	}
	return prefix, false
}
