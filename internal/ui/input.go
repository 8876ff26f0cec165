package ui

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"hybridsel/internal/debug"
	"hybridsel/internal/remote"
)

// InputType selects the built-in format validation.
type InputType int

const (
	InputText InputType = iota
	InputEmail
	InputTel
	InputNumber
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	telPattern   = regexp.MustCompile(`^\+?[0-9()\-\s.]{3,}$`)
)

// Input is a validating text input with optional multi-value chips and a
// debounced remote check endpoint.
type Input struct {
	// Configuration
	Name        string
	Label       string
	Placeholder string
	Helper      string
	Width       int
	Required    bool
	MinLength   int
	MaxLength   int
	Type        InputType
	Multi       bool
	Separator   string
	ShowCounter bool
	Disabled    bool
	ReadOnly    bool

	pattern  *regexp.Regexp
	debounce time.Duration
	fetcher  *remote.Fetcher
	checkSeq int

	// State
	textInput   textinput.Model
	chips       ChipList
	values      []string
	original    string // Esc revert point
	errText     string
	remoteValid *bool
	suggestions []string
	focused     bool
}

// NewInput creates an input with the given control name.
func NewInput(name string) *Input {
	ti := textinput.New()
	ti.CharLimit = 200

	i := &Input{
		Name:      name,
		Width:     40,
		Separator: ",",
		debounce:  DefaultDebounce,
		textInput: ti,
		chips:     NewChipList(name),
	}
	i.textInput.Width = i.Width - 4
	return i
}

// WithLabel sets the field label.
func (i *Input) WithLabel(label string) *Input {
	i.Label = label
	return i
}

// WithPlaceholder sets the placeholder text.
func (i *Input) WithPlaceholder(p string) *Input {
	i.Placeholder = p
	i.textInput.Placeholder = p
	return i
}

// WithHelper sets the helper text under the control.
func (i *Input) WithHelper(helper string) *Input {
	i.Helper = helper
	return i
}

// WithWidth sets the display width.
func (i *Input) WithWidth(w int) *Input {
	i.Width = w
	i.textInput.Width = w - 4
	i.chips = i.chips.WithWidth(w - 4)
	return i
}

// WithRequired marks the input required.
func (i *Input) WithRequired(required bool) *Input {
	i.Required = required
	return i
}

// WithLengthRange bounds the accepted value length in runes. Zero means
// unbounded on that side.
func (i *Input) WithLengthRange(minLen, maxLen int) *Input {
	i.MinLength = minLen
	i.MaxLength = maxLen
	if maxLen > 0 {
		i.textInput.CharLimit = maxLen
	}
	return i
}

// WithPattern adds a regular-expression format check. A pattern that does
// not compile is ignored and logged.
func (i *Input) WithPattern(pattern string) *Input {
	re, err := regexp.Compile(pattern)
	if err != nil {
		debug.Logf("input %s: bad pattern %q: %v", i.Name, pattern, err)
		return i
	}
	i.pattern = re
	return i
}

// WithType selects a built-in format validation.
func (i *Input) WithType(t InputType) *Input {
	i.Type = t
	return i
}

// WithMulti turns on multi-value mode. Typing the separator commits the
// pending value, as does Enter.
func (i *Input) WithMulti(separator string) *Input {
	i.Multi = true
	if separator != "" {
		i.Separator = separator
	}
	return i
}

// WithCounter shows a character counter under the control.
func (i *Input) WithCounter(show bool) *Input {
	i.ShowCounter = show
	return i
}

// WithCheckURL configures a remote validation endpoint.
func (i *Input) WithCheckURL(url string) *Input {
	i.fetcher = remote.NewFetcher(url)
	return i
}

// WithDebounce overrides the remote check debounce.
func (i *Input) WithDebounce(d time.Duration) *Input {
	if d > 0 {
		i.debounce = d
	}
	return i
}

// WithDisabled disables all interaction.
func (i *Input) WithDisabled(disabled bool) *Input {
	i.Disabled = disabled
	return i
}

// WithReadOnly blocks edits while rendering the value.
func (i *Input) WithReadOnly(ro bool) *Input {
	i.ReadOnly = ro
	return i
}

// Init implements the component convention.
func (i *Input) Init() tea.Cmd {
	return nil
}

// Update routes messages into the input.
func (i *Input) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !i.focused || i.Disabled || i.ReadOnly {
			return nil
		}
		if i.chips.InNavigationMode() {
			var cmd tea.Cmd
			i.chips, cmd = i.chips.Update(msg)
			return cmd
		}
		return i.handleKey(msg)

	case checkTickMsg:
		if msg.name != i.Name || msg.seq != i.checkSeq {
			return nil
		}
		if i.fetcher.HasSource() && msg.value != "" {
			return i.fetcher.CheckCmd(i.Name, msg.value)
		}
		return nil

	case remote.CheckResultMsg:
		if msg.Name != i.Name {
			return nil
		}
		i.remoteValid = msg.Valid
		i.suggestions = msg.Suggestions
		valid := msg.Valid == nil || *msg.Valid
		if !valid && msg.Message != "" {
			i.errText = msg.Message
		}
		return emit(ValidateMsg{
			Name:        i.Name,
			Valid:       valid && i.errText == "",
			Message:     msg.Message,
			Suggestions: msg.Suggestions,
		})

	case remote.FailedMsg:
		if msg.Name != i.Name {
			return nil
		}
		// A broken check endpoint never blocks the user.
		debug.Logf("input %s: check endpoint: %v", i.Name, msg.Err)
		return emit(ErrorMsg{Name: i.Name, Err: msg.Err})

	case ChipRemovedMsg:
		if msg.Owner != i.Name {
			return nil
		}
		return i.removeValue(msg.Label)

	case ChipNavExitMsg:
		if msg.Owner != i.Name {
			return nil
		}
		if msg.Reason == ChipNavExitTyping {
			i.textInput.SetValue(i.textInput.Value() + string(msg.Character))
			i.textInput.CursorEnd()
			return i.onTextChanged()
		}
		return nil

	case chipFlashClearMsg:
		var cmd tea.Cmd
		i.chips, cmd = i.chips.Update(msg)
		return cmd
	}

	if i.focused {
		var cmd tea.Cmd
		i.textInput, cmd = i.textInput.Update(msg)
		return cmd
	}
	return nil
}

func (i *Input) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		return i.commit()

	case tea.KeyEsc:
		// Revert to the last committed value.
		i.textInput.SetValue(i.original)
		i.textInput.CursorEnd()
		i.errText = ""
		i.remoteValid = nil
		i.suggestions = nil
		return nil

	case tea.KeyBackspace:
		if i.Multi && i.textInput.Value() == "" && i.chips.EnterNavigation() {
			return nil
		}

	case tea.KeyLeft:
		if i.Multi && i.textInput.Value() == "" && i.chips.EnterNavigation() {
			return nil
		}

	case tea.KeyRunes:
		// In multi mode the separator commits instead of inserting.
		if i.Multi && len(msg.Runes) == 1 && string(msg.Runes) == i.Separator {
			return i.commit()
		}
	}

	before := i.textInput.Value()
	var cmd tea.Cmd
	i.textInput, cmd = i.textInput.Update(msg)
	if i.textInput.Value() == before {
		return cmd
	}
	return tea.Batch(cmd, i.onTextChanged())
}

func (i *Input) onTextChanged() tea.Cmd {
	value := i.textInput.Value()
	i.errText = i.validate(value)
	i.remoteValid = nil
	i.suggestions = nil

	cmds := []tea.Cmd{emit(InputMsg{Name: i.Name, Term: value})}
	if i.fetcher.HasSource() && i.errText == "" && value != "" {
		i.checkSeq++
		seq := i.checkSeq
		name := i.Name
		cmds = append(cmds, tea.Tick(i.debounce, func(time.Time) tea.Msg {
			return checkTickMsg{name: name, seq: seq, value: value}
		}))
	}
	return tea.Batch(cmds...)
}

// commit validates and accepts the pending text: multi mode appends a chip,
// single mode records it as the committed value.
func (i *Input) commit() tea.Cmd {
	value := strings.TrimSpace(i.textInput.Value())

	if i.Multi {
		if value == "" {
			return nil
		}
		if i.errText = i.validate(value); i.errText != "" {
			return emit(ValidateMsg{Name: i.Name, Valid: false, Message: i.errText})
		}
		for _, existing := range i.values {
			if strings.EqualFold(existing, value) {
				return i.chips.Flash(existing)
			}
		}
		i.values = append(i.values, value)
		i.syncChips()
		i.textInput.SetValue("")
		return tea.Batch(
			emit(AddMsg{Name: i.Name, Value: value}),
			i.changeCmd(),
		)
	}

	if i.errText = i.validate(value); i.errText != "" {
		return emit(ValidateMsg{Name: i.Name, Valid: false, Message: i.errText})
	}
	i.original = value
	return tea.Batch(
		emit(ValidateMsg{Name: i.Name, Valid: true}),
		i.changeCmd(),
	)
}

func (i *Input) removeValue(value string) tea.Cmd {
	for idx, existing := range i.values {
		if strings.EqualFold(existing, value) {
			i.values = append(i.values[:idx], i.values[idx+1:]...)
			i.syncChips()
			return tea.Batch(
				emit(RemoveMsg{Name: i.Name, Value: existing}),
				i.changeCmd(),
			)
		}
	}
	return nil
}

func (i *Input) changeCmd() tea.Cmd {
	msg := ChangeMsg{Name: i.Name}
	if i.Multi {
		for _, v := range i.values {
			msg.Values = append(msg.Values, v)
		}
	} else {
		if i.original != "" {
			msg.Value = i.original
		}
	}
	return emit(msg)
}

// validate returns the first failing rule's message, or "".
func (i *Input) validate(value string) string {
	runes := len([]rune(value))
	if value == "" {
		if i.Required {
			return "This field is required"
		}
		return ""
	}
	if i.MinLength > 0 && runes < i.MinLength {
		return fmt.Sprintf("Must be at least %d characters", i.MinLength)
	}
	if i.MaxLength > 0 && runes > i.MaxLength {
		return fmt.Sprintf("Must be at most %d characters", i.MaxLength)
	}
	if i.pattern != nil && !i.pattern.MatchString(value) {
		return "Invalid format"
	}
	switch i.Type {
	case InputEmail:
		if !emailPattern.MatchString(value) {
			return "Invalid email address"
		}
	case InputTel:
		if !telPattern.MatchString(value) {
			return "Invalid phone number"
		}
	case InputNumber:
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return "Must be a number"
		}
	}
	return ""
}

func (i *Input) syncChips() {
	chips := make([]Chip, 0, len(i.values))
	for _, v := range i.values {
		chips = append(chips, Chip{ID: v, Label: v})
	}
	i.chips.SetChips(chips)
}

// Value returns the committed single value.
func (i *Input) Value() string {
	if i.Multi {
		return strings.Join(i.values, i.Separator)
	}
	return i.original
}

// Values returns the committed multi values in order.
func (i *Input) Values() []string {
	out := make([]string, len(i.values))
	copy(out, i.values)
	return out
}

// SetValue seeds the committed value. Multi mode splits on the separator.
func (i *Input) SetValue(value string) {
	if i.Multi {
		i.values = nil
		for _, part := range strings.Split(value, i.Separator) {
			part = strings.TrimSpace(part)
			if part != "" && i.validate(part) == "" {
				i.values = append(i.values, part)
			}
		}
		i.syncChips()
		return
	}
	i.original = value
	i.textInput.SetValue(value)
	i.textInput.CursorEnd()
}

// PendingValue returns the uncommitted text, for testing.
func (i *Input) PendingValue() string {
	return i.textInput.Value()
}

// ErrorText returns the current inline validation message.
func (i *Input) ErrorText() string {
	return i.errText
}

// Suggestions returns the check endpoint's latest suggestions.
func (i *Input) Suggestions() []string {
	return i.suggestions
}

// Valid reports whether the current text passes every local rule and the
// last remote check, if any.
func (i *Input) Valid() bool {
	if i.errText != "" {
		return false
	}
	if i.remoteValid != nil && !*i.remoteValid {
		return false
	}
	return true
}

// Focus focuses the input and returns the cursor blink command.
func (i *Input) Focus() tea.Cmd {
	i.focused = true
	return i.textInput.Focus()
}

// Blur removes focus.
func (i *Input) Blur() {
	i.focused = false
	i.textInput.Blur()
	i.chips.ExitNavigation()
}

// Focused returns whether the input is focused.
func (i *Input) Focused() bool {
	return i.focused
}
