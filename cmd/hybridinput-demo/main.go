// Demo program exercising the validating text inputs: an email field with a
// debounced remote availability check, a chip-based tag field, and a number
// field with a live character counter.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"hybridsel/internal/config"
	"hybridsel/internal/debug"
	"hybridsel/internal/ui"
	"hybridsel/internal/ui/theme"
)

const (
	focusEmail = iota
	focusTags
	focusBudget
	focusCount
)

type model struct {
	email  *ui.Input
	tags   *ui.Input
	budget *ui.Input

	focus int
	log   []string
}

func initialModel() model {
	email := ui.NewInput("email").
		WithLabel("Email").
		WithPlaceholder("you@example.com").
		WithType(ui.InputEmail).
		WithRequired(true).
		WithWidth(44).
		WithHelper("Used for shift notifications only.")
	if url := config.GetString(config.KeyCheckURL); url != "" {
		email.WithCheckURL(url).WithDebounce(config.DebounceInterval())
	}

	tags := ui.NewInput("tags").
		WithLabel("Tags").
		WithPlaceholder("Add a tag and press enter…").
		WithMulti(",").
		WithWidth(44).
		WithLengthRange(2, 20).
		WithHelper("Comma or enter commits a tag.")

	budget := ui.NewInput("budget").
		WithLabel("Budget").
		WithPlaceholder("0.00").
		WithType(ui.InputNumber).
		WithWidth(44).
		WithLengthRange(0, 10).
		WithCounter(true)

	m := model{email: email, tags: tags, budget: budget}
	m.email.Focus()
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+n":
			m.cycleFocus()
			return m, nil
		}

	case ui.ChangeMsg:
		m.addLog(fmt.Sprintf("%s -> %v", msg.Name, msg.Value))

	case ui.AddMsg:
		m.addLog(fmt.Sprintf("%s += %v", msg.Name, msg.Value))

	case ui.RemoveMsg:
		m.addLog(fmt.Sprintf("%s -= %v", msg.Name, msg.Value))

	case ui.ValidateMsg:
		if !msg.Valid {
			m.addLog(fmt.Sprintf("%s invalid: %s", msg.Name, msg.Message))
		}

	case ui.ErrorMsg:
		m.addLog(fmt.Sprintf("%s: %v", msg.Name, msg.Err))
	}

	var cmds []tea.Cmd
	cmds = append(cmds, m.email.Update(msg))
	cmds = append(cmds, m.tags.Update(msg))
	cmds = append(cmds, m.budget.Update(msg))
	return m, tea.Batch(cmds...)
}

func (m *model) cycleFocus() {
	m.current().Blur()
	m.focus = (m.focus + 1) % focusCount
	m.current().Focus()
}

func (m *model) current() *ui.Input {
	switch m.focus {
	case focusTags:
		return m.tags
	case focusBudget:
		return m.budget
	}
	return m.email
}

func (m *model) addLog(entry string) {
	m.log = append(m.log, entry)
	if len(m.log) > 6 {
		m.log = m.log[1:]
	}
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	logStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

func (m model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Contact Details"))
	b.WriteString("\n\n")
	b.WriteString(m.email.View())
	b.WriteString("\n\n")
	b.WriteString(m.tags.View())
	b.WriteString("\n\n")
	b.WriteString(m.budget.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter commit • esc revert • ctrl+n next field • ctrl+c quit"))

	if len(m.log) > 0 {
		b.WriteString("\n\n")
		for _, entry := range m.log {
			b.WriteString(logStyle.Render("  " + entry))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func main() {
	debugFlag := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	if err := config.Initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if err := debug.Init(*debugFlag); err != nil {
		fmt.Fprintf(os.Stderr, "debug log: %v\n", err)
	}
	defer debug.Close()

	if name := config.GetString(config.KeyTheme); !theme.SetTheme(name) {
		debug.Logf("unknown theme %q, keeping default", name)
	}

	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v", err)
		os.Exit(1)
	}
}
