package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/valter-silva-au/todos/internal/core"
	"github.com/valter-silva-au/todos/pkg/models"
)

// defaultInputWidth applies until the first WindowSizeMsg arrives.
const defaultInputWidth = 48

type uiModel struct {
	store core.TaskStore
	input textinput.Model

	// Derived from the store after every intent.
	items  []core.ViewItem
	active int
	filter models.FilterMode

	cursor int
	width  int
	err    error
}

// Style definitions.
var (
	uiTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	uiInputStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	uiCursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	uiCompletedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true)
	uiActiveStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	uiFilterStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1)
	uiSelectedFilterStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color("62")).
				Padding(0, 1)

	uiErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	uiHelpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func newUIModel(store core.TaskStore, cfg models.UIConfig) uiModel {
	input := textinput.New()
	input.Placeholder = cfg.Placeholder
	input.CharLimit = cfg.CharLimit
	input.Prompt = "❯ "
	input.Width = defaultInputWidth
	input.Focus()

	m := uiModel{store: store, input: input}
	m.refresh()
	return m
}

func (m uiModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m uiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if msg.Width > 8 {
			m.input.Width = msg.Width - 8
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			return m, tea.Quit
		case "enter":
			if m.store.Add(m.input.Value()) {
				m.input.Reset()
				m.cursor = len(m.items)
			}
		case "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "ctrl+t":
			if item, ok := m.selected(); ok {
				m.err = m.store.ToggleCompleted(item.Index, !item.Task.IsCompleted)
			}
		case "ctrl+d", "delete":
			if item, ok := m.selected(); ok {
				m.err = m.store.Delete(item.Index)
			}
		case "ctrl+a":
			m.store.SetFilter(models.FilterAll)
		case "ctrl+e":
			m.store.SetFilter(models.FilterActive)
		case "ctrl+o":
			m.store.SetFilter(models.FilterCompleted)
		case "tab":
			m.store.SetFilter(nextFilter(m.filter))
		case "ctrl+x":
			m.store.ClearCompleted()
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m uiModel) View() string {
	var b strings.Builder

	b.WriteString(uiTitleStyle.Render(" todos "))
	b.WriteString("\n\n")
	b.WriteString(uiInputStyle.Render(m.input.View()))
	b.WriteString("\n\n")

	for i, item := range m.items {
		b.WriteString(m.renderRow(i, item))
		b.WriteString("\n")
	}
	if len(m.items) > 0 {
		b.WriteString("\n")
	}

	b.WriteString(m.renderFooter())
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(uiErrorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(uiHelpStyle.Render("enter: add | ↑/↓: move | ctrl+t: toggle | ctrl+d: delete | tab: filter | ctrl+x: clear completed | esc: quit"))
	return b.String()
}

func (m uiModel) renderRow(i int, item core.ViewItem) string {
	cursor := "  "
	if i == m.cursor {
		cursor = uiCursorStyle.Render("> ")
	}

	box := "[ ]"
	style := uiActiveStyle
	if item.Task.IsCompleted {
		box = "[x]"
		style = uiCompletedStyle
	}
	return fmt.Sprintf("%s%s %s", cursor, box, style.Render(item.Task.TaskName))
}

func (m uiModel) renderFooter() string {
	filters := make([]string, 0, len(models.FilterModes()))
	for _, mode := range models.FilterModes() {
		style := uiFilterStyle
		if mode == m.filter {
			style = uiSelectedFilterStyle
		}
		filters = append(filters, style.Render(string(mode)))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		itemsLeft(m.active),
		"   ",
		strings.Join(filters, " "),
		"   ",
		uiFilterStyle.Render("Clear completed"),
	)
}

// refresh re-derives the visible rows from the store and keeps the cursor
// on a valid row.
func (m *uiModel) refresh() {
	m.items = m.store.IndexedView()
	m.active = m.store.ActiveCount()
	m.filter = m.store.Filter()

	if m.cursor >= len(m.items) {
		m.cursor = len(m.items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m uiModel) selected() (core.ViewItem, bool) {
	if len(m.items) == 0 {
		return core.ViewItem{}, false
	}
	return m.items[m.cursor], true
}

func nextFilter(mode models.FilterMode) models.FilterMode {
	modes := models.FilterModes()
	for i, candidate := range modes {
		if candidate == mode {
			return modes[(i+1)%len(modes)]
		}
	}
	return models.FilterAll
}

func itemsLeft(n int) string {
	if n == 1 {
		return "1 item left"
	}
	return fmt.Sprintf("%d items left", n)
}

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive task list",
	Long: `Open the interactive task list in the terminal.

Type a task and press enter to add it. Use the arrow keys to select a task,
ctrl+t to toggle it, and ctrl+d to delete it. ctrl+a, ctrl+e and ctrl+o show
All, Active and Completed tasks (tab cycles); ctrl+x clears completed tasks.`,
	Args: cobra.NoArgs,
	RunE: runUI,
}

func runUI(cmd *cobra.Command, args []string) error {
	store, err := newSessionStore()
	if err != nil {
		return err
	}

	cfg := currentConfig()
	var opts []tea.ProgramOption
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}

	p := tea.NewProgram(newUIModel(store, cfg.UI), opts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running task list: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(uiCmd)
}
