// Demo program exercising the select controls: a portal-style site picker
// and a plain select sharing one sync group, plus a multi-select crew picker
// with create-new. A detail pane renders the selected site's markdown notes.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"hybridsel/internal/config"
	"hybridsel/internal/debug"
	"hybridsel/internal/recent"
	"hybridsel/internal/ui"
	"hybridsel/internal/ui/theme"
)

var siteOptions = []map[string]any{
	{"id": "s1", "label": "Oakwood Plaza", "group": "North", "icon": "🏢",
		"description": "## Oakwood Plaza\n\n- 12 floors, 2 elevators\n- Boiler room access via **loading dock**\n- On-call contact: facilities desk"},
	{"id": "s2", "label": "Harbor Point", "group": "North", "icon": "🏗", "badge": "new",
		"description": "## Harbor Point\n\nNewly onboarded site. HVAC schedule *pending*."},
	{"id": "s3", "label": "Cedar Court", "group": "South", "icon": "🏬",
		"description": "## Cedar Court\n\nRoof membrane replaced in 2024; inspect drains quarterly."},
	{"id": "s4", "label": "Millside Depot", "group": "South",
		"description": "## Millside Depot\n\nShared key box at the gate. Sprinkler test every March."},
	{"id": "s5", "label": "Central Annex",
		"description": "## Central Annex\n\nUngrouped satellite office, visits by appointment."},
}

var crewOptions = []map[string]any{
	{"id": "c1", "label": "North Crew", "icon": "🔧"},
	{"id": "c2", "label": "South Crew", "icon": "🔧"},
	{"id": "c3", "label": "Electrical", "icon": "⚡"},
	{"id": "c4", "label": "Plumbing", "icon": "🚿"},
}

const (
	focusSite = iota
	focusMirror
	focusCrew
	focusCount
)

// siteRect is where View lays the site combo out; Overlay recomputes the
// dropdown placement from it every frame.
var siteRect = ui.Rect{X: 2, Y: 4, W: 44, H: 3}

type model struct {
	site   *ui.AdvancedCombo
	mirror *ui.Select
	crew   *ui.Select

	focus  int
	width  int
	height int
	detail string
	log    []string
}

func initialModel(store ui.RecentStore) model {
	site := ui.NewAdvancedCombo("site")
	site.WithLabel("Site").
		WithPlaceholder("Type to search sites…").
		WithWidth(44).
		WithShowRecent(true).
		WithClearable(true).
		WithSyncGroup("sites")
	site.SetRect(siteRect)

	mirror := ui.NewSelect("site-mirror").
		WithLabel("Site (synced)").
		WithPlaceholder("Kept in sync via the group").
		WithWidth(44).
		WithMode(ui.ModeEnhanced).
		WithSyncGroup("sites")

	crew := ui.NewSelect("crew").
		WithLabel("Crews").
		WithPlaceholder("Assign crews…").
		WithWidth(44).
		WithMultiple(true).
		WithAllowCreate(true, "Create crew %q").
		WithOptions(crewOptions)

	if store != nil {
		site.WithRecentStore(store)
		crew.WithRecentStore(store)
	}
	if url := config.GetString(config.KeyDemoDataURL); url != "" {
		site.WithDataURL(url).
			WithMinSearchLength(config.GetInt(config.KeyMinSearchLen)).
			WithDebounce(config.DebounceInterval())
	}

	// The combo owns the group's options; the mirror catches up on register.
	site.SetOptions(siteOptions)

	m := model{site: site, mirror: mirror, crew: crew}
	m.site.Focus()
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+n":
			m.cycleFocus()
			return m, nil
		case "ctrl+y":
			m.yankSelection()
			return m, nil
		}

	case ui.ChangeMsg:
		m.onChange(msg)

	case ui.CreateMsg:
		m.addLog(fmt.Sprintf("created %q on %s", msg.Option.Label, msg.Name))

	case ui.LoadMsg:
		m.addLog(fmt.Sprintf("%s: %d remote options for %q", msg.Name, msg.Count, msg.SearchTerm))

	case ui.ErrorMsg:
		m.addLog(fmt.Sprintf("%s: %v", msg.Name, msg.Err))
	}

	var cmds []tea.Cmd
	cmds = append(cmds, m.site.Update(msg))
	cmds = append(cmds, m.mirror.Update(msg))
	cmds = append(cmds, m.crew.Update(msg))

	// Tab lets a control release focus; pick up the baton.
	if !m.focused().Focused() {
		m.cycleFocus()
	}
	return m, tea.Batch(cmds...)
}

func (m *model) onChange(msg ui.ChangeMsg) {
	switch msg.Name {
	case "site":
		if msg.Cleared || len(msg.Selected) == 0 {
			m.detail = ""
			m.addLog("site cleared")
			return
		}
		m.addLog(fmt.Sprintf("site -> %s", msg.Selected[0].Label))
		m.detail = renderDetail(msg.Selected[0].Description)
	case "crew":
		labels := make([]string, 0, len(msg.Selected))
		for _, opt := range msg.Selected {
			labels = append(labels, opt.Label)
		}
		m.addLog("crews: " + strings.Join(labels, ", "))
	}
}

func renderDetail(markdown string) string {
	if markdown == "" {
		return ""
	}
	rendered, err := glamour.Render(markdown, "dark")
	if err != nil {
		debug.Logf("glamour: %v", err)
		return markdown
	}
	return rendered
}

func (m *model) yankSelection() {
	var labels []string
	for _, opt := range m.site.Selected() {
		labels = append(labels, opt.Label)
	}
	for _, opt := range m.crew.Selected() {
		labels = append(labels, opt.Label)
	}
	if len(labels) == 0 {
		return
	}
	text := strings.Join(labels, ", ")
	if err := clipboard.WriteAll(text); err != nil {
		m.addLog(fmt.Sprintf("clipboard: %v", err))
		return
	}
	m.addLog(fmt.Sprintf("yanked %q", text))
}

func (m *model) cycleFocus() {
	m.focused().Blur()
	m.focus = (m.focus + 1) % focusCount
	switch m.focus {
	case focusSite:
		m.site.Focus()
	case focusMirror:
		m.mirror.Focus()
	case focusCrew:
		m.crew.Focus()
	}
}

type focusable interface {
	Focused() bool
	Blur()
}

func (m *model) focused() focusable {
	switch m.focus {
	case focusMirror:
		return m.mirror
	case focusCrew:
		return m.crew
	}
	return m.site
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

	detailStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

func (m model) View() string {
	var left strings.Builder
	left.WriteString(titleStyle.Render("Site & Crew Assignment"))
	left.WriteString("\n\n")
	left.WriteString(m.site.View())
	left.WriteString("\n\n")
	left.WriteString(m.mirror.View())
	left.WriteString("\n\n")
	left.WriteString(m.crew.View())
	left.WriteString("\n")
	left.WriteString(helpStyle.Render("↓ open • type to filter • enter select • ctrl+n next field • ctrl+y yank • ctrl+c quit"))

	if len(m.log) > 0 {
		left.WriteString("\n\n")
		for _, entry := range m.log {
			left.WriteString(logStyle.Render("  " + entry))
			left.WriteString("\n")
		}
	}

	frame := left.String()
	if m.detail != "" {
		pane := detailStyle.Width(46).Render(m.detail)
		frame = lipgloss.JoinHorizontal(lipgloss.Top, frame, "  ", pane)
	}

	// The site dropdown escapes its layout box onto the full frame.
	return m.site.Overlay(frame)
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

	var store ui.RecentStore
	if path, err := config.RecentDBPath(); err == nil {
		if s, err := recent.Open(path); err == nil {
			defer func() { _ = s.Close() }()
			store = s
		} else {
			debug.Logf("recent store: %v", err)
		}
	}

	p := tea.NewProgram(initialModel(store), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v", err)
		os.Exit(1)
	}
}
