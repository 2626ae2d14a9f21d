package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ff-labs/fff-go/internal/core/domain"
)

var (
	grepMode      string
	grepLimit     int
	grepCursor    string
	grepSmartCase bool
	grepJSON      bool
)

var grepCmd = &cobra.Command{
	Use:   "grep [query]",
	Short: "Search file contents",
	Long: `Searches file contents one page at a time.

When more matches remain, a cursor token is printed. Pass it back with
--cursor and the same query to fetch the next page. Tokens expire after
storage.cursor_ttl_hours.`,
	Args: cobra.ExactArgs(1),
	RunE: runGrep,
}

func init() {
	grepCmd.Flags().StringVarP(&grepMode, "mode", "m", "", "plain, regex or fuzzy (default: grep.mode)")
	grepCmd.Flags().IntVarP(&grepLimit, "limit", "n", 0, "maximum matches per page (default: grep.page_limit)")
	grepCmd.Flags().StringVar(&grepCursor, "cursor", "", "cursor token from a previous page")
	grepCmd.Flags().BoolVar(&grepSmartCase, "smart-case", true, "ignore case unless the query has uppercase")
	grepCmd.Flags().BoolVar(&grepJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(grepCmd)
}

// grepOutput is the JSON form of a page.
type grepOutput struct {
	*domain.GrepResult
	NextCursor string `json:"nextCursor,omitempty"`
}

func runGrep(cmd *cobra.Command, args []string) error {
	if services == nil || services.Grep == nil {
		return errors.New("grep pager not configured")
	}
	query := args[0]

	opts := domain.GrepOptions{
		Mode:      domain.GrepMode(grepMode),
		PageLimit: grepLimit,
	}
	if !opts.Mode.IsValid() {
		return fmt.Errorf("%w: mode must be plain, regex or fuzzy", domain.ErrInvalidInput)
	}
	if cmd.Flags().Changed("smart-case") {
		opts.SmartCase = &grepSmartCase
	}
	if services.Settings != nil {
		settings := services.Settings.Load()
		if opts.Mode == "" && grepCursor == "" {
			opts.Mode = settings.GrepMode
		}
		if opts.PageLimit <= 0 {
			opts.PageLimit = settings.GrepPageLimit
		}
		if settings.GrepTimeBudgetMs > 0 {
			opts.TimeBudgetMs = domain.Ptr(settings.GrepTimeBudgetMs)
		}
	}

	return withSession(cmd, func(ctx context.Context) error {
		page, err := services.Grep.Page(ctx, query, opts, grepCursor)
		if err != nil {
			return fmt.Errorf("grep failed: %w", err)
		}

		if grepJSON {
			return printJSON(cmd, grepOutput{GrepResult: page.Result, NextCursor: page.NextToken})
		}
		outputGrepLines(newPrinter(cmd), query, page)
		return nil
	})
}

func outputGrepLines(p *printer, query string, page *domain.GrepPage) {
	result := page.Result
	if result.RegexFallbackError != "" {
		p.Println(p.style(errorStyle, "invalid regex, matched as plain text: "+result.RegexFallbackError))
	}
	if len(result.Items) == 0 {
		p.Println("No matches found.")
	}

	for _, m := range result.Items {
		path := displayPath(m.RelativePath, m.Path)
		p.Printf("%s:%d:%d: %s\n",
			p.style(pathStyle, path), m.LineNumber, m.Col,
			highlight(p, m.LineContent, m.MatchRanges))
	}

	if page.NextToken != "" {
		p.Println()
		p.Println(p.style(mutedStyle, fmt.Sprintf(
			"%d files searched; more results: fff grep %q --cursor %s",
			result.TotalFilesSearched, query, page.NextToken)))
	}
}

// highlight styles the matched byte ranges of line. Ranges outside the line
// or overlapping a previous range are ignored.
func highlight(p *printer, line string, ranges [][2]int) string {
	if !p.color || len(ranges) == 0 {
		return line
	}

	var b strings.Builder
	last := 0
	for _, r := range ranges {
		start, end := r[0], r[1]
		if start < last || end > len(line) || start >= end {
			continue
		}
		b.WriteString(line[last:start])
		b.WriteString(matchStyle.Render(line[start:end]))
		last = end
	}
	b.WriteString(line[last:])
	return b.String()
}
