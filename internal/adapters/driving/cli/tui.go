package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ff-labs/fff-go/internal/adapters/driving/tui"
)

var pickLimit int

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Pick a file interactively",
	Long: `Opens an interactive picker on the terminal. Type to filter, use the
arrow keys or ctrl+p/ctrl+n to move, enter to pick and esc to cancel.

The picked completion value is printed to stdout and the pick is recorded
for frecency ranking, so the picker composes with shell substitution:

  vim "$(fff pick | sed 's/^@//')"`,
	Args: cobra.NoArgs,
	RunE: runPick,
}

func init() {
	pickCmd.Flags().IntVarP(&pickLimit, "limit", "n", tui.DefaultLimit, "number of suggestions shown")
	rootCmd.AddCommand(pickCmd)
}

func runPick(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("pick needs an interactive terminal")
	}

	return withSession(cmd, func(ctx context.Context) error {
		app, err := tui.NewApp(&tui.Ports{Session: services.Session}, pickLimit)
		if err != nil {
			return fmt.Errorf("failed to create picker: %w", err)
		}
		app.WithContext(ctx)

		// The picker draws on stderr so stdout carries only the result.
		program := tea.NewProgram(app, tea.WithContext(ctx), tea.WithOutput(os.Stderr))
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("picker error: %w", err)
		}

		chosen := app.Chosen()
		if chosen == nil {
			return nil
		}
		if err := app.Err(); err != nil {
			newPrinter(cmd).Println(fmt.Sprintf("warning: %v", err))
		}
		fmt.Fprintln(cmd.OutOrStdout(), chosen.Value)
		return nil
	})
}
