package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ff-labs/fff-go/internal/core/domain"
)

// defaultSearchLimit is the page size used when the client sends none.
const defaultSearchLimit = 20

// SearchFilesInput is the input schema for the search_files tool.
type SearchFilesInput struct {
	Query       string `json:"query" jsonschema:"fuzzy file name query, optionally suffixed with :line or :line:col"`
	Limit       int    `json:"limit,omitempty" jsonschema:"maximum number of files to return (default 20)"`
	Page        int    `json:"page,omitempty" jsonschema:"zero-based page index"`
	CurrentFile string `json:"current_file,omitempty" jsonschema:"path of the file being edited, ranked lower"`
}

// SearchFilesOutput is the output schema for the search_files tool.
type SearchFilesOutput struct {
	Files        []FileOutput     `json:"files"`
	TotalMatched int              `json:"total_matched"`
	TotalFiles   int              `json:"total_files"`
	Location     *domain.Location `json:"location,omitempty"`
}

// FileOutput is a single ranked file.
type FileOutput struct {
	Path      string `json:"path"`
	Score     int64  `json:"score"`
	GitStatus string `json:"git_status,omitempty"`
}

// LiveGrepInput is the input schema for the live_grep tool.
type LiveGrepInput struct {
	Query     string `json:"query" jsonschema:"text or pattern to search for in file contents"`
	Mode      string `json:"mode,omitempty" jsonschema:"plain, regex or fuzzy (default plain)"`
	Limit     int    `json:"limit,omitempty" jsonschema:"maximum matches per page"`
	SmartCase *bool  `json:"smart_case,omitempty" jsonschema:"case-insensitive unless the query has uppercase"`
	Cursor    string `json:"cursor,omitempty" jsonschema:"next_cursor from a previous call with the same query"`
}

// LiveGrepOutput is the output schema for the live_grep tool.
type LiveGrepOutput struct {
	Matches            []MatchOutput `json:"matches"`
	TotalMatched       int           `json:"total_matched"`
	TotalFilesSearched int           `json:"total_files_searched"`
	NextCursor         string        `json:"next_cursor,omitempty"`
	RegexFallbackError string        `json:"regex_fallback_error,omitempty"`
}

// MatchOutput is a single matching line.
type MatchOutput struct {
	Path    string `json:"path"`
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Content string `json:"content"`
}

// HealthCheckInput is the input schema for the health_check tool.
type HealthCheckInput struct {
	TestPath string `json:"test_path,omitempty" jsonschema:"directory used to probe git detection"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_files",
		Description: "Fuzzy-find files by name in the indexed tree",
	}, s.handleSearchFiles)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "live_grep",
		Description: "Search file contents, one page at a time",
	}, s.handleLiveGrep)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "health_check",
		Description: "Report engine version, git detection, index and database state",
	}, s.handleHealthCheck)
}

// handleSearchFiles handles the search_files tool invocation.
func (s *Server) handleSearchFiles(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchFilesInput,
) (*mcp.CallToolResult, SearchFilesOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	result, err := s.ports.Finder.Search(ctx, input.Query, domain.SearchOptions{
		PageIndex:   input.Page,
		PageSize:    limit,
		CurrentFile: input.CurrentFile,
	})
	if err != nil {
		return nil, SearchFilesOutput{}, fmt.Errorf("search_files: %w", err)
	}

	output := SearchFilesOutput{
		Files:        make([]FileOutput, len(result.Items)),
		TotalMatched: result.TotalMatched,
		TotalFiles:   result.TotalFiles,
		Location:     result.Location,
	}
	for i, item := range result.Items {
		output.Files[i] = FileOutput{
			Path:      displayPath(item.RelativePath, item.Path),
			GitStatus: item.GitStatus,
		}
		if i < len(result.Scores) {
			output.Files[i].Score = result.Scores[i].Total
		}
	}

	return nil, output, nil
}

// handleLiveGrep handles the live_grep tool invocation.
func (s *Server) handleLiveGrep(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input LiveGrepInput,
) (*mcp.CallToolResult, LiveGrepOutput, error) {
	opts := domain.GrepOptions{
		Mode:      domain.GrepMode(input.Mode),
		PageLimit: input.Limit,
		SmartCase: input.SmartCase,
	}

	page, err := s.ports.Grep.Page(ctx, input.Query, opts, input.Cursor)
	if err != nil {
		return nil, LiveGrepOutput{}, fmt.Errorf("live_grep: %w", err)
	}

	result := page.Result
	output := LiveGrepOutput{
		Matches:            make([]MatchOutput, len(result.Items)),
		TotalMatched:       result.TotalMatched,
		TotalFilesSearched: result.TotalFilesSearched,
		NextCursor:         page.NextToken,
		RegexFallbackError: result.RegexFallbackError,
	}
	for i, m := range result.Items {
		output.Matches[i] = MatchOutput{
			Path:    displayPath(m.RelativePath, m.Path),
			Line:    m.LineNumber,
			Col:     m.Col,
			Content: m.LineContent,
		}
	}

	return nil, output, nil
}

// handleHealthCheck handles the health_check tool invocation.
func (s *Server) handleHealthCheck(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input HealthCheckInput,
) (*mcp.CallToolResult, domain.HealthCheck, error) {
	health, err := s.ports.Finder.HealthCheck(ctx, input.TestPath)
	if err != nil {
		return nil, domain.HealthCheck{}, fmt.Errorf("health_check: %w", err)
	}
	return nil, *health, nil
}

// displayPath prefers the path relative to the indexed root.
func displayPath(relative, absolute string) string {
	if relative != "" {
		return domain.NormalizePath(relative)
	}
	return absolute
}
