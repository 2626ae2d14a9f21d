package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ff-labs/fff-go/internal/core/domain"
)

var (
	searchLimit       int
	searchPage        int
	searchCurrentFile string
	searchJSON        bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Fuzzy-find files by name",
	Long: `Runs a fuzzy file name search over the index.
Results are ranked by match quality, frecency and git status. A query may
end in :line or :line:col to carry a cursor location through.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (default: search.page_size)")
	searchCmd.Flags().IntVar(&searchPage, "page", 0, "zero-based page index")
	searchCmd.Flags().StringVar(&searchCurrentFile, "current-file", "", "file being edited, ranked lower")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	finder, err := requireFinder()
	if err != nil {
		return err
	}

	limit := searchLimit
	if limit <= 0 && services.Settings != nil {
		limit = services.Settings.Load().SearchPageSize
	}

	opts := domain.SearchOptions{
		PageIndex:   searchPage,
		PageSize:    limit,
		CurrentFile: searchCurrentFile,
	}

	return withSession(cmd, func(ctx context.Context) error {
		result, err := finder.Search(ctx, args[0], opts)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}

		if searchJSON {
			return printJSON(cmd, result)
		}
		outputSearchTable(newPrinter(cmd), result)
		return nil
	})
}

func outputSearchTable(p *printer, result *domain.SearchResult) {
	if len(result.Items) == 0 {
		p.Println("No files found.")
		return
	}

	for i, item := range result.Items {
		var score int64
		if i < len(result.Scores) {
			score = result.Scores[i].Total
		}
		path := displayPath(item.RelativePath, item.Path)

		line := fmt.Sprintf("%6d  %s", score, p.style(pathStyle, path))
		if item.GitStatus != "" && item.GitStatus != "clean" {
			line += "  " + p.style(mutedStyle, item.GitStatus)
		}
		p.Println(line)
	}

	p.Println()
	p.Printf("%d of %d files matched\n", result.TotalMatched, result.TotalFiles)
	if loc := result.Location; loc != nil {
		p.Printf("location: %s\n", formatLocation(loc))
	}
}

func formatLocation(loc *domain.Location) string {
	switch loc.Type {
	case domain.LocationLine:
		return fmt.Sprintf("line %d", loc.Line)
	case domain.LocationPosition:
		return fmt.Sprintf("line %d, col %d", loc.Line, loc.Col)
	case domain.LocationRange:
		if loc.Start != nil && loc.End != nil {
			return fmt.Sprintf("%d:%d to %d:%d", loc.Start.Line, loc.Start.Col, loc.End.Line, loc.End.Col)
		}
	}
	return loc.Type
}

// displayPath prefers the path relative to the indexed root.
func displayPath(relative, absolute string) string {
	if relative != "" {
		return domain.NormalizePath(relative)
	}
	return absolute
}
