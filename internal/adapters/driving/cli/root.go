// Package cli implements the fff command line.
//
// Commands are package-level cobra commands registered in init(). Services
// are injected once through SetServices before Execute runs; commands that
// need a running engine start a session on the base path and stop it on
// exit.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ff-labs/fff-go/internal/core/ports/driving"
	"github.com/ff-labs/fff-go/internal/logger"
)

// version is overridden at build time.
var version = "dev"

// Services holds the driving ports the commands use.
type Services struct {
	Finder   driving.FileFinder
	Session  driving.Session
	Settings driving.SettingsService
	Platform driving.PlatformService

	// Grep pages live grep with cursors that survive between invocations.
	Grep driving.GrepPager

	// MCPGrep pages live grep for the MCP server. Its cursors only need to
	// live as long as the server.
	MCPGrep driving.GrepPager
}

var services *Services

var (
	verbose  bool
	basePath string
)

var rootCmd = &cobra.Command{
	Use:   "fff",
	Short: "Fast file finder",
	Long: `fff drives the native fff search engine: fuzzy file search ranked by
frecency and git status, live grep over file contents, and prompt-style
@path completion.

The native library is located from the matching @ff-labs/fff-bun-<target>
package under node_modules, or from FFF_LIBRARY_PATH.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
	rootCmd.PersistentFlags().StringVar(&basePath, "base-path", "", "directory to index (default: config, then the working directory)")
}

// SetServices injects the services used by all commands.
func SetServices(s *Services) {
	services = s
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// commandContext returns the context of cmd, never nil.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// resolveBasePath picks the directory to index: --base-path, then the
// configured base path, then the working directory.
func resolveBasePath() (string, error) {
	path := basePath
	if path == "" && services != nil && services.Settings != nil {
		path = services.Settings.Load().BasePath
	}
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve base path: %w", err)
		}
		path = wd
	}
	return filepath.Abs(path)
}

// withSession starts a session on the base path, runs fn and stops the
// session again.
func withSession(cmd *cobra.Command, fn func(ctx context.Context) error) error {
	if services == nil || services.Session == nil {
		return errors.New("session not configured")
	}
	ctx := commandContext(cmd)

	base, err := resolveBasePath()
	if err != nil {
		return err
	}
	if err := services.Session.Start(ctx, base); err != nil {
		return fmt.Errorf("start finder on %s: %w", base, err)
	}
	defer func() {
		if err := services.Session.Stop(context.WithoutCancel(ctx)); err != nil {
			logger.Warn("stop finder: %v", err)
		}
	}()

	return fn(ctx)
}

// requireFinder returns the configured finder.
func requireFinder() (driving.FileFinder, error) {
	if services == nil || services.Finder == nil {
		return nil, errors.New("file finder not configured")
	}
	return services.Finder, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Styles applied when stdout is a terminal.
var (
	pathStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	matchStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF")).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8"))
)

// printer writes command output, styled only on a terminal.
type printer struct {
	w     io.Writer
	color bool
}

func newPrinter(cmd *cobra.Command) *printer {
	w := cmd.OutOrStdout()
	return &printer{w: w, color: isTerminal(w)}
}

func (p *printer) style(s lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return s.Render(text)
}

func (p *printer) Printf(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
}

func (p *printer) Println(args ...any) {
	fmt.Fprintln(p.w, args...)
}
