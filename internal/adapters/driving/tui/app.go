// Package tui provides an interactive file picker built on Bubbletea.
// The query is completed through a driving.Session as the user types; the
// picked suggestion is tracked and returned to the caller.
package tui

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ff-labs/fff-go/internal/adapters/driving/tui/keymap"
	"github.com/ff-labs/fff-go/internal/adapters/driving/tui/messages"
	"github.com/ff-labs/fff-go/internal/adapters/driving/tui/styles"
	"github.com/ff-labs/fff-go/internal/core/domain"
)

// DefaultLimit is the number of suggestions shown when none is configured.
const DefaultLimit = 10

// App is the picker model. It implements tea.Model.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap
	input  textinput.Model

	limit       int
	suggestions []domain.Suggestion
	selected    int
	chosen      *domain.Suggestion
	err         error

	width    int
	height   int
	quitting bool
}

// NewApp creates a picker showing up to limit suggestions.
func NewApp(ports *Ports, limit int) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	ti := textinput.New()
	ti.Placeholder = "type to find a file..."
	ti.Prompt = "@"
	ti.CharLimit = 256
	ti.Width = 60
	ti.Focus()

	return &App{
		ports:  ports,
		ctx:    context.Background(),
		styles: styles.DefaultStyles(),
		keymap: keymap.DefaultKeyMap(),
		input:  ti,
		limit:  limit,
		width:  80,
		height: 24,
	}, nil
}

// WithContext sets the context used for session calls.
func (a *App) WithContext(ctx context.Context) *App {
	if ctx != nil {
		a.ctx = ctx
	}
	return a
}

// Chosen returns the picked suggestion, nil when the user quit.
func (a *App) Chosen() *domain.Suggestion {
	return a.chosen
}

// Err returns the last suggestion or tracking error.
func (a *App) Err() error {
	return a.err
}

// Suggestions returns the suggestions currently listed.
func (a *App) Suggestions() []domain.Suggestion {
	return a.suggestions
}

// Selected returns the index of the highlighted suggestion.
func (a *App) Selected() int {
	return a.selected
}

// Init loads the initial suggestions for an empty query.
func (a *App) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, a.suggest(""))
}

// Update handles messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.input.Width = max(10, msg.Width-8)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case messages.SuggestionsLoaded:
		// Drop replies for queries the user has already typed past.
		if msg.Query != a.input.Value() {
			return a, nil
		}
		a.err = msg.Err
		a.suggestions = msg.Suggestions
		if a.selected >= len(a.suggestions) {
			a.selected = max(0, len(a.suggestions)-1)
		}
		return a, nil

	case messages.SelectionRecorded:
		picked := msg.Suggestion
		a.chosen = &picked
		a.err = msg.Err
		a.quitting = true
		return a, tea.Quit
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keymap.Quit):
		a.quitting = true
		return a, tea.Quit

	case key.Matches(msg, a.keymap.Up):
		if a.selected > 0 {
			a.selected--
		}
		return a, nil

	case key.Matches(msg, a.keymap.Down):
		if a.selected < len(a.suggestions)-1 {
			a.selected++
		}
		return a, nil

	case key.Matches(msg, a.keymap.Select):
		if len(a.suggestions) == 0 {
			return a, nil
		}
		return a, a.pick(a.suggestions[a.selected])
	}

	before := a.input.Value()
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	if after := a.input.Value(); after != before {
		a.selected = 0
		return a, tea.Batch(cmd, a.suggest(after))
	}
	return a, cmd
}

// suggest returns a command that fetches completions for raw. A leading
// quote asks for quoted completion values.
func (a *App) suggest(raw string) tea.Cmd {
	ctx := a.ctx
	session := a.ports.Session
	limit := a.limit
	return func() tea.Msg {
		query, quoted := parseQuery(raw)
		suggestions, err := session.Suggest(ctx, query, quoted, limit)
		return messages.SuggestionsLoaded{Query: raw, Suggestions: suggestions, Err: err}
	}
}

func (a *App) pick(s domain.Suggestion) tea.Cmd {
	ctx := a.ctx
	session := a.ports.Session
	query, _ := parseQuery(a.input.Value())
	return func() tea.Msg {
		err := session.Select(ctx, query, s.Path)
		return messages.SelectionRecorded{Suggestion: s, Err: err}
	}
}

// parseQuery strips an opening quote from the typed prefix.
func parseQuery(raw string) (string, bool) {
	if strings.HasPrefix(raw, `"`) {
		return strings.Trim(raw, `"`), true
	}
	return raw, false
}

// View renders the picker.
func (a *App) View() string {
	if a.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(a.styles.Title.Render("fff"))
	b.WriteString("\n")
	b.WriteString(a.styles.InputField.Render(a.input.View()))
	b.WriteString("\n")

	if len(a.suggestions) == 0 {
		b.WriteString(a.styles.Muted.Render("  no matches"))
		b.WriteString("\n")
	}
	for i, s := range a.suggestions {
		if i == a.selected {
			b.WriteString(a.styles.Selected.Render("> " + s.Path))
		} else {
			b.WriteString("  " + a.styles.Path.Render(s.Path))
		}
		b.WriteString("  " + a.styles.Score.Render(strconv.Itoa(s.Score)) + "\n")
	}

	if a.err != nil {
		b.WriteString(a.styles.Error.Render("error: " + a.err.Error()))
		b.WriteString("\n")
	}

	help := make([]string, 0, 4)
	for _, binding := range a.keymap.ShortHelp() {
		h := binding.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	b.WriteString(a.styles.Help.Render(strings.Join(help, " • ")))

	return lipgloss.NewStyle().MaxWidth(a.width).Render(b.String())
}
