package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"hybridsel/internal/option"
)

// The controls communicate with their host program through typed messages,
// each tagged with the control's Name so a program hosting several controls
// can route them.

// ChangeMsg is sent whenever the committed selection changes.
type ChangeMsg struct {
	Name     string
	Value    any             // single mode: the selected value (nil when cleared)
	Values   []any           // multi mode: all selected values in order
	Selected []option.Option // the full selected options
	Cleared  bool            // true when the change came from clear()
	IsNew    bool            // true when the selection is a freshly created option
}

// OpenMsg is sent when a dropdown opens.
type OpenMsg struct {
	Name string
}

// CloseMsg is sent when a dropdown closes.
type CloseMsg struct {
	Name string
}

// InputMsg is sent when the search or input text changes.
type InputMsg struct {
	Name string
	Term string
}

// LoadMsg is sent when remote options have arrived and replaced the set.
type LoadMsg struct {
	Name       string
	SearchTerm string
	Count      int
}

// ErrorMsg is sent on a genuine remote failure. The prior option set is
// retained, so the control stays usable.
type ErrorMsg struct {
	Name string
	Err  error
}

// CreateMsg is sent when allow-create synthesizes a new option.
type CreateMsg struct {
	Name   string
	Option option.Option
}

// ValidateMsg is sent when an input finishes validating, locally or via its
// check endpoint.
type ValidateMsg struct {
	Name        string
	Valid       bool
	Message     string
	Suggestions []string
}

// AddMsg is sent when a multi-value input commits a value.
type AddMsg struct {
	Name  string
	Value string
}

// RemoveMsg is sent when a multi-value input removes a value.
type RemoveMsg struct {
	Name  string
	Value string
}

// searchTickMsg fires when the search debounce window elapses. Stale ticks
// (seq mismatch) are dropped, so only the latest keystroke triggers a fetch.
type searchTickMsg struct {
	name string
	seq  int
	term string
}

// checkTickMsg is the input-validation counterpart of searchTickMsg.
type checkTickMsg struct {
	name  string
	seq   int
	value string
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
