package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"hybridsel/internal/debug"
	"hybridsel/internal/option"
	"hybridsel/internal/recent"
	"hybridsel/internal/remote"
	"hybridsel/internal/syncgroup"
)

// SelectState represents the dropdown state machine.
type SelectState int

const (
	// SelectClosed - focused or not, dropdown closed.
	SelectClosed SelectState = iota
	// SelectBrowsing - dropdown open, search empty.
	SelectBrowsing
	// SelectFiltering - dropdown open, search text active.
	SelectFiltering
)

// SelectMode chooses the interaction style.
type SelectMode int

const (
	// ModeCombobox - typing directly into the always-visible input filters.
	ModeCombobox SelectMode = iota
	// ModeEnhanced - the control opens first, then exposes a search box.
	ModeEnhanced
)

// RecentStore is the persistence surface a Select needs for recent
// selections. *recent.Store satisfies it; tests use in-memory fakes.
type RecentStore interface {
	Load(name string) ([]string, error)
	Record(name, id string) ([]string, error)
}

// DefaultDebounce is the pause after the last keystroke before a remote
// search is issued.
const DefaultDebounce = 300 * time.Millisecond

type rowKind int

const (
	rowOption rowKind = iota
	rowHeader
	rowCreate
)

// listRow is one rendered dropdown line: an option, a group/recent header,
// or the create-new affordance.
type listRow struct {
	kind  rowKind
	opt   option.Option
	title string
}

func (r listRow) selectable() bool {
	switch r.kind {
	case rowHeader:
		return false
	case rowOption:
		return !r.opt.Disabled
	}
	return true
}

// Select is a single- or multi-select control with optional search,
// create-new, recent history, remote data and sync-group membership.
// It is pointer-shaped so a sync group can hold a stable reference to it.
type Select struct {
	// Configuration (set at creation via the With* builders)
	Name        string
	Label       string
	Placeholder string
	Width       int
	MaxVisible  int
	Multiple    bool
	Searchable  bool
	Clearable   bool
	AllowCreate bool
	ShowRecent  bool
	Disabled    bool
	ReadOnly    bool
	Required    bool
	EmptyText   string
	CreateText  string // rendered with the search term, e.g. "Create %q"
	Mode        SelectMode
	Fields      option.Fields

	minSearchLength int
	debounce        time.Duration
	fetcher         *remote.Fetcher
	recents         RecentStore
	registry        *syncgroup.Registry
	syncGroup       string

	// State
	state          SelectState
	textInput      textinput.Model
	options        *option.Set
	rows           []listRow
	selectedIDs    []string
	chips          ChipList
	highlightIndex int
	scrollOffset   int
	focused        bool
	loading        bool
	errorText      string
	recentIDs      []string
	searchSeq      int
}

// NewSelect creates an empty select with the given control name.
func NewSelect(name string) *Select {
	ti := textinput.New()
	ti.CharLimit = 100

	s := &Select{
		Name:           name,
		Width:          40,
		MaxVisible:     5,
		Searchable:     true,
		EmptyText:      "No matches",
		CreateText:     "Create %q",
		Fields:         option.DefaultFields,
		debounce:       DefaultDebounce,
		textInput:      ti,
		options:        option.NewSet(nil, option.DefaultFields),
		chips:          NewChipList(name),
		highlightIndex: -1,
		registry:       syncgroup.Default(),
	}
	s.textInput.Width = s.Width - 4
	return s
}

// WithOptions sets the option set from raw records.
func (s *Select) WithOptions(raw []map[string]any) *Select {
	s.options = option.NewSet(raw, s.Fields)
	s.rebuildRows()
	return s
}

// WithLabel sets the field label rendered above the control.
func (s *Select) WithLabel(label string) *Select {
	s.Label = label
	return s
}

// WithPlaceholder sets the placeholder text.
func (s *Select) WithPlaceholder(p string) *Select {
	s.Placeholder = p
	s.textInput.Placeholder = p
	return s
}

// WithWidth sets the display width.
func (s *Select) WithWidth(w int) *Select {
	s.Width = w
	s.textInput.Width = w - 4
	s.chips = s.chips.WithWidth(w - 4)
	return s
}

// WithMaxVisible sets the maximum visible dropdown rows.
func (s *Select) WithMaxVisible(n int) *Select {
	s.MaxVisible = n
	return s
}

// WithMultiple switches to multi-select (toggle) behavior.
func (s *Select) WithMultiple(multiple bool) *Select {
	s.Multiple = multiple
	return s
}

// WithSearchable controls whether typing filters the list.
func (s *Select) WithSearchable(searchable bool) *Select {
	s.Searchable = searchable
	return s
}

// WithClearable enables clearing the whole selection with ctrl+x.
func (s *Select) WithClearable(clearable bool) *Select {
	s.Clearable = clearable
	return s
}

// WithAllowCreate enables creating options that are not in the set. An empty
// label keeps the default affordance text.
func (s *Select) WithAllowCreate(allow bool, createText string) *Select {
	s.AllowCreate = allow
	if createText != "" {
		s.CreateText = createText
	}
	return s
}

// WithShowRecent shows the recent-selection section above the list.
func (s *Select) WithShowRecent(show bool) *Select {
	s.ShowRecent = show
	return s
}

// WithMode sets the interaction mode.
func (s *Select) WithMode(mode SelectMode) *Select {
	s.Mode = mode
	return s
}

// WithFields remaps the raw record field names.
func (s *Select) WithFields(f option.Fields) *Select {
	s.Fields = f
	return s
}

// WithDisabled disables all interaction.
func (s *Select) WithDisabled(disabled bool) *Select {
	s.Disabled = disabled
	return s
}

// WithReadOnly blocks opening while still rendering the value.
func (s *Select) WithReadOnly(ro bool) *Select {
	s.ReadOnly = ro
	return s
}

// WithRequired marks the control required (rendered as *).
func (s *Select) WithRequired(required bool) *Select {
	s.Required = required
	return s
}

// WithDataURL configures a remote option source.
func (s *Select) WithDataURL(url string) *Select {
	s.fetcher = remote.NewFetcher(url).WithMinSearchLength(s.minSearchLength)
	return s
}

// WithMinSearchLength sets the minimum term length before a remote search.
func (s *Select) WithMinSearchLength(n int) *Select {
	s.minSearchLength = n
	if s.fetcher != nil {
		s.fetcher = s.fetcher.WithMinSearchLength(n)
	}
	return s
}

// WithDebounce overrides the remote search debounce.
func (s *Select) WithDebounce(d time.Duration) *Select {
	if d > 0 {
		s.debounce = d
	}
	return s
}

// WithRecentStore attaches a recent-selection store and loads the history.
// Store failures degrade to an empty history.
func (s *Select) WithRecentStore(store RecentStore) *Select {
	s.recents = store
	if store != nil {
		ids, err := store.Load(s.Name)
		if err != nil {
			debug.Logf("recent history for %s unavailable: %v", s.Name, err)
		} else {
			s.recentIDs = ids
		}
	}
	return s
}

// WithRegistry overrides the process-wide sync registry, used by tests.
func (s *Select) WithRegistry(r *syncgroup.Registry) *Select {
	s.registry = r
	return s
}

// WithSyncGroup joins a sync group. Joining a second group migrates the
// membership.
func (s *Select) WithSyncGroup(group string) *Select {
	if group == s.syncGroup {
		return s
	}
	if s.syncGroup != "" {
		s.registry.Migrate(s, s.syncGroup, group)
	} else if group != "" {
		s.registry.Register(s, group)
	}
	s.syncGroup = group
	return s
}

// Detach leaves the sync group and aborts any in-flight fetch. Call it when
// the control is removed from the program.
func (s *Select) Detach() {
	if s.syncGroup != "" {
		s.registry.Unregister(s, s.syncGroup)
		s.syncGroup = ""
	}
	s.fetcher.Abort()
}

// ApplySyncSnapshot replaces the option set with a sibling's published raw
// records. Selected ids are kept; a later snapshot may restore their options.
func (s *Select) ApplySyncSnapshot(raw []map[string]any) {
	s.options = option.NewSet(raw, s.Fields)
	s.rebuildRows()
	s.clampHighlight()
	s.syncChips()
}

// HasRemoteSource reports whether a data URL is configured.
func (s *Select) HasRemoteSource() bool {
	return s.fetcher.HasSource()
}

// RefreshCmd re-fetches the full option set from the remote source.
func (s *Select) RefreshCmd() tea.Cmd {
	if !s.HasRemoteSource() {
		return nil
	}
	return s.fetcher.RefreshCmd(s.Name)
}

// Init implements the component convention.
func (s *Select) Init() tea.Cmd {
	return nil
}

// Update routes messages into the control and returns follow-up commands.
func (s *Select) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !s.focused || s.Disabled {
			return nil
		}
		if s.chips.InNavigationMode() {
			var cmd tea.Cmd
			s.chips, cmd = s.chips.Update(msg)
			return cmd
		}
		return s.handleKey(msg)

	case searchTickMsg:
		if msg.name != s.Name || msg.seq != s.searchSeq {
			return nil // superseded by a later keystroke
		}
		if s.fetcher.HasSource() {
			s.loading = true
			return s.fetcher.FetchCmd(s.Name, msg.term)
		}
		return nil

	case remote.ResultMsg:
		if msg.Name != s.Name {
			return nil
		}
		s.loading = false
		s.errorText = ""
		s.options = option.NewSet(msg.Raw, s.Fields)
		s.rebuildRows()
		s.clampHighlight()
		return emit(LoadMsg{Name: s.Name, SearchTerm: msg.SearchTerm, Count: s.options.Len()})

	case remote.FailedMsg:
		if msg.Name != s.Name {
			return nil
		}
		// Prior options are retained so the control stays usable.
		s.loading = false
		s.errorText = msg.Err.Error()
		return emit(ErrorMsg{Name: s.Name, Err: msg.Err})

	case ChipRemovedMsg:
		if msg.Owner != s.Name {
			return nil
		}
		return s.deselect(msg.ID)

	case ChipNavExitMsg:
		if msg.Owner != s.Name {
			return nil
		}
		if msg.Reason == ChipNavExitTyping && s.Searchable {
			s.textInput.SetValue(s.textInput.Value() + string(msg.Character))
			s.textInput.CursorEnd()
			return s.onSearchChanged()
		}
		return nil

	case chipFlashClearMsg:
		var cmd tea.Cmd
		s.chips, cmd = s.chips.Update(msg)
		return cmd
	}

	if s.focused {
		var cmd tea.Cmd
		s.textInput, cmd = s.textInput.Update(msg)
		return cmd
	}
	return nil
}

func (s *Select) handleKey(msg tea.KeyMsg) tea.Cmd {
	if s.Clearable && msg.Type == tea.KeyCtrlX {
		return s.Clear()
	}

	switch s.state {
	case SelectClosed:
		return s.handleClosedKey(msg)
	case SelectBrowsing, SelectFiltering:
		return s.handleOpenKey(msg)
	}
	return nil
}

func (s *Select) handleClosedKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyDown, tea.KeyUp:
		// Lazy open on intent.
		return s.open()

	case tea.KeySpace:
		return s.open()

	case tea.KeyBackspace, tea.KeyLeft:
		if s.Multiple && s.textInput.Value() == "" && s.chips.EnterNavigation() {
			return nil
		}
		return nil

	case tea.KeyRunes:
		if !s.Searchable || s.Mode != ModeCombobox {
			return nil
		}
		var cmd tea.Cmd
		s.textInput, cmd = s.textInput.Update(msg)
		open := s.open()
		return tea.Batch(cmd, open, s.onSearchChanged())
	}
	return nil
}

func (s *Select) handleOpenKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyUp:
		s.moveHighlight(-1)
		return nil

	case tea.KeyDown:
		s.moveHighlight(1)
		return nil

	case tea.KeyHome:
		s.highlightFirst()
		return nil

	case tea.KeyEnd:
		s.highlightLast()
		return nil

	case tea.KeyEnter:
		return s.selectHighlighted()

	case tea.KeyTab:
		// Select then release focus for natural progression.
		cmd := s.selectHighlighted()
		closeCmd := s.close()
		s.Blur()
		return tea.Batch(cmd, closeCmd)

	case tea.KeyEsc:
		return s.close()

	case tea.KeyRunes, tea.KeyBackspace, tea.KeySpace:
		if !s.Searchable {
			return nil
		}
		if msg.Type == tea.KeySpace {
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}}
		}
		before := s.textInput.Value()
		var cmd tea.Cmd
		s.textInput, cmd = s.textInput.Update(msg)
		if s.textInput.Value() == before {
			return cmd
		}
		return tea.Batch(cmd, s.onSearchChanged())
	}
	return nil
}

// open transitions Closed -> Browsing. Disabled and readonly controls stay
// closed.
func (s *Select) open() tea.Cmd {
	if s.Disabled || s.ReadOnly || s.state != SelectClosed {
		return nil
	}
	s.state = SelectBrowsing
	s.errorText = ""
	s.rebuildRows()
	s.highlightFirst()
	s.scrollOffset = 0
	s.adjustScrollOffset()
	return emit(OpenMsg{Name: s.Name})
}

// close transitions back to Closed, clearing the transient search.
func (s *Select) close() tea.Cmd {
	if s.state == SelectClosed {
		return nil
	}
	s.state = SelectClosed
	s.textInput.SetValue("")
	s.loading = false
	s.rebuildRows()
	s.scrollOffset = 0
	return emit(CloseMsg{Name: s.Name})
}

// onSearchChanged recomputes rows for the new term, emits InputMsg and arms
// the remote debounce. The highlight resets to -1 on every input change:
// nothing is implicitly selected until the user arrows into the list, and
// Enter on an unhighlighted list routes to create-new.
func (s *Select) onSearchChanged() tea.Cmd {
	term := s.textInput.Value()
	if term == "" {
		if s.state == SelectFiltering {
			s.state = SelectBrowsing
		}
	} else if s.state == SelectBrowsing {
		s.state = SelectFiltering
	}
	s.rebuildRows()
	s.highlightIndex = -1
	s.scrollOffset = 0

	cmds := []tea.Cmd{emit(InputMsg{Name: s.Name, Term: term})}
	if s.fetcher.HasSource() {
		s.searchSeq++
		seq := s.searchSeq
		name := s.Name
		cmds = append(cmds, tea.Tick(s.debounce, func(time.Time) tea.Msg {
			return searchTickMsg{name: name, seq: seq, term: term}
		}))
	}
	return tea.Batch(cmds...)
}

// rebuildRows recomputes the visible dropdown rows: recents and grouping when
// not searching, a flat filtered list (plus the create affordance) otherwise.
func (s *Select) rebuildRows() {
	term := strings.TrimSpace(s.textInput.Value())
	s.rows = s.rows[:0]

	if term == "" {
		if s.ShowRecent && len(s.recentIDs) > 0 {
			var recents []listRow
			for _, id := range s.recentIDs {
				if opt, ok := s.options.Get(id); ok && !opt.Disabled {
					recents = append(recents, listRow{kind: rowOption, opt: opt})
				}
			}
			if len(recents) > 0 {
				s.rows = append(s.rows, listRow{kind: rowHeader, title: "Recent"})
				s.rows = append(s.rows, recents...)
			}
		}
		if s.options.HasGroups() {
			ungrouped, groups := s.options.Grouped()
			for _, opt := range ungrouped {
				s.rows = append(s.rows, listRow{kind: rowOption, opt: opt})
			}
			for _, g := range groups {
				s.rows = append(s.rows, listRow{kind: rowHeader, title: g.Name})
				for _, opt := range g.Options {
					s.rows = append(s.rows, listRow{kind: rowOption, opt: opt})
				}
			}
		} else {
			for _, opt := range s.options.All() {
				s.rows = append(s.rows, listRow{kind: rowOption, opt: opt})
			}
		}
		return
	}

	// Grouping is suspended while searching: flat matches only.
	for _, opt := range s.options.All() {
		if containsFold(opt.Label, term) || containsFold(opt.Description, term) {
			s.rows = append(s.rows, listRow{kind: rowOption, opt: opt})
		}
	}
	if s.AllowCreate && !s.hasLabel(term) {
		s.rows = append(s.rows, listRow{kind: rowCreate, title: term})
	}
}

func (s *Select) hasLabel(label string) bool {
	for _, opt := range s.options.All() {
		if equalFold(opt.Label, label) {
			return true
		}
	}
	return false
}

func (s *Select) highlightFirst() {
	for i, r := range s.rows {
		if r.selectable() {
			s.highlightIndex = i
			s.adjustScrollOffset()
			return
		}
	}
	s.highlightIndex = -1
}

func (s *Select) highlightLast() {
	for i := len(s.rows) - 1; i >= 0; i-- {
		if s.rows[i].selectable() {
			s.highlightIndex = i
			s.adjustScrollOffset()
			return
		}
	}
	s.highlightIndex = -1
}

// moveHighlight steps to the next selectable row, clamped at the ends.
func (s *Select) moveHighlight(delta int) {
	if len(s.rows) == 0 {
		s.highlightIndex = -1
		return
	}
	i := s.highlightIndex
	for {
		i += delta
		if i < 0 || i >= len(s.rows) {
			return
		}
		if s.rows[i].selectable() {
			s.highlightIndex = i
			s.adjustScrollOffset()
			return
		}
	}
}

func (s *Select) clampHighlight() {
	if s.highlightIndex >= len(s.rows) {
		s.highlightLast()
	}
}

// adjustScrollOffset keeps the highlighted row inside the visible window.
func (s *Select) adjustScrollOffset() {
	if s.highlightIndex >= 0 && s.highlightIndex < s.scrollOffset {
		s.scrollOffset = s.highlightIndex
	}
	if s.highlightIndex >= s.scrollOffset+s.MaxVisible {
		s.scrollOffset = s.highlightIndex - s.MaxVisible + 1
	}
	if s.scrollOffset < 0 {
		s.scrollOffset = 0
	}
	maxOffset := len(s.rows) - s.MaxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.scrollOffset > maxOffset {
		s.scrollOffset = maxOffset
	}
}

// selectHighlighted activates the highlighted row; with nothing highlighted
// it falls through to create-new when allowed.
func (s *Select) selectHighlighted() tea.Cmd {
	if s.highlightIndex >= 0 && s.highlightIndex < len(s.rows) {
		r := s.rows[s.highlightIndex]
		switch r.kind {
		case rowCreate:
			return s.createFromSearch()
		case rowOption:
			return s.toggle(r.opt)
		}
	}
	if s.AllowCreate && strings.TrimSpace(s.textInput.Value()) != "" {
		return s.createFromSearch()
	}
	return s.close()
}

// toggle applies the selection engine: single mode replaces the set and
// closes; multi mode toggles membership and keeps the dropdown open.
func (s *Select) toggle(opt option.Option) tea.Cmd {
	if opt.Disabled {
		return nil
	}
	var cmds []tea.Cmd
	if s.Multiple {
		if s.isSelected(opt.ID) {
			s.removeID(opt.ID)
		} else {
			s.selectedIDs = append(s.selectedIDs, opt.ID)
		}
		s.clearSearch()
	} else {
		s.selectedIDs = []string{opt.ID}
		cmds = append(cmds, s.close())
	}
	s.recordRecent(opt.ID)
	s.syncChips()
	cmds = append(cmds, s.changeCmd(false, opt.IsNew))
	return tea.Batch(cmds...)
}

func (s *Select) deselect(id string) tea.Cmd {
	if !s.isSelected(id) {
		return nil
	}
	s.removeID(id)
	s.syncChips()
	return s.changeCmd(false, false)
}

// createFromSearch synthesizes a new option from the search text, selects it
// and publishes the grown option set to the sync group. The id is generated
// here, before normalization, so the published raw record carries it and
// every sibling normalizes the created option to the same id.
func (s *Select) createFromSearch() tea.Cmd {
	label := strings.TrimSpace(s.textInput.Value())
	if !s.AllowCreate || label == "" {
		return nil
	}
	raw := map[string]any{"id": uuid.NewString(), "label": label, "value": label}
	opt := option.Normalize(raw, s.Fields)
	opt.IsNew = true
	s.options.Add(opt)

	cmds := []tea.Cmd{emit(CreateMsg{Name: s.Name, Option: opt})}
	if s.syncGroup != "" {
		s.registry.Publish(s.syncGroup, s.rawOptions(), s)
	}
	cmds = append(cmds, s.toggle(opt))
	return tea.Batch(cmds...)
}

// Clear empties the selection and search state.
func (s *Select) Clear() tea.Cmd {
	s.selectedIDs = nil
	s.clearSearch()
	s.syncChips()
	return s.changeCmd(true, false)
}

func (s *Select) clearSearch() {
	s.textInput.SetValue("")
	if s.state == SelectFiltering {
		s.state = SelectBrowsing
	}
	s.rebuildRows()
	s.highlightFirst()
	s.scrollOffset = 0
	s.adjustScrollOffset()
}

func (s *Select) recordRecent(id string) {
	s.recentIDs = recent.Push(s.recentIDs, id)
	if s.recents == nil {
		return
	}
	if ids, err := s.recents.Record(s.Name, id); err != nil {
		// Storage trouble degrades to the in-memory history.
		debug.Logf("recent store for %s: %v", s.Name, err)
	} else if ids != nil {
		s.recentIDs = ids
	}
}

func (s *Select) changeCmd(cleared, isNew bool) tea.Cmd {
	selected := s.Selected()
	msg := ChangeMsg{Name: s.Name, Selected: selected, Cleared: cleared, IsNew: isNew}
	if s.Multiple {
		for _, opt := range selected {
			msg.Values = append(msg.Values, opt.Value)
		}
	} else if len(selected) > 0 {
		msg.Value = selected[0].Value
	}
	return emit(msg)
}

// SetOptions replaces the option set programmatically and publishes it to
// the sync group, mirroring assignment of the options property.
func (s *Select) SetOptions(raw []map[string]any) {
	s.options = option.NewSet(raw, s.Fields)
	s.rebuildRows()
	s.clampHighlight()
	s.syncChips()
	if s.syncGroup != "" {
		s.registry.Publish(s.syncGroup, raw, s)
	}
}

// SetValue sets the selection by value (matched first) or id. Unmatched
// inputs are silently dropped. Extra values are ignored in single mode.
func (s *Select) SetValue(values ...any) {
	var ids []string
	for _, v := range values {
		if opt, ok := s.findByValue(v); ok {
			if !contains(ids, opt.ID) {
				ids = append(ids, opt.ID)
			}
			continue
		}
		if id, ok := v.(string); ok {
			if opt, found := s.options.Get(id); found && !contains(ids, opt.ID) {
				ids = append(ids, opt.ID)
			}
		}
	}
	if !s.Multiple && len(ids) > 1 {
		ids = ids[:1]
	}
	s.selectedIDs = ids
	s.syncChips()
}

func (s *Select) findByValue(v any) (option.Option, bool) {
	for _, opt := range s.options.All() {
		if option.ValueEqual(opt.Value, v) {
			return opt, true
		}
	}
	return option.Option{}, false
}

// Value returns the single-mode selected value, or nil.
func (s *Select) Value() any {
	selected := s.Selected()
	if len(selected) == 0 {
		return nil
	}
	return selected[0].Value
}

// Values returns all selected values in selection order.
func (s *Select) Values() []any {
	selected := s.Selected()
	values := make([]any, 0, len(selected))
	for _, opt := range selected {
		values = append(values, opt.Value)
	}
	return values
}

// Selected returns the selected options in selection order. Ids whose option
// is currently absent (e.g. a narrowed remote set) are skipped.
func (s *Select) Selected() []option.Option {
	selected := make([]option.Option, 0, len(s.selectedIDs))
	for _, id := range s.selectedIDs {
		if opt, ok := s.options.Get(id); ok {
			selected = append(selected, opt)
		}
	}
	return selected
}

// Options returns the current option set.
func (s *Select) Options() []option.Option {
	return s.options.All()
}

func (s *Select) rawOptions() []map[string]any {
	all := s.options.All()
	raw := make([]map[string]any, 0, len(all))
	for _, opt := range all {
		if opt.Original != nil {
			raw = append(raw, opt.Original)
			continue
		}
		raw = append(raw, map[string]any{"id": opt.ID, "label": opt.Label, "value": opt.Value, "group": opt.Group})
	}
	return raw
}

func (s *Select) isSelected(id string) bool {
	return contains(s.selectedIDs, id)
}

func (s *Select) removeID(id string) {
	for i, existing := range s.selectedIDs {
		if existing == id {
			s.selectedIDs = append(s.selectedIDs[:i], s.selectedIDs[i+1:]...)
			return
		}
	}
}

func (s *Select) syncChips() {
	if !s.Multiple {
		return
	}
	selected := s.Selected()
	chips := make([]Chip, 0, len(selected))
	for _, opt := range selected {
		chips = append(chips, Chip{ID: opt.ID, Label: opt.Label, Icon: opt.Icon})
	}
	s.chips.SetChips(chips)
}

func contains(ids []string, id string) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}

// Focus focuses the control and returns the cursor blink command.
func (s *Select) Focus() tea.Cmd {
	s.focused = true
	return s.textInput.Focus()
}

// Blur removes focus and closes the dropdown without emitting CloseMsg.
func (s *Select) Blur() {
	s.focused = false
	s.state = SelectClosed
	s.textInput.SetValue("")
	s.textInput.Blur()
	s.chips.ExitNavigation()
	s.rebuildRows()
	s.scrollOffset = 0
}

// Focused returns whether the control is focused.
func (s *Select) Focused() bool {
	return s.focused
}

// IsOpen returns whether the dropdown is visible.
func (s *Select) IsOpen() bool {
	return s.state != SelectClosed
}

// State returns the current state for testing.
func (s *Select) State() SelectState {
	return s.state
}

// HighlightIndex returns the current highlight index for testing.
func (s *Select) HighlightIndex() int {
	return s.highlightIndex
}

// ScrollOffset returns the first visible row index for testing.
func (s *Select) ScrollOffset() int {
	return s.scrollOffset
}

// InputValue returns the current search text for testing.
func (s *Select) InputValue() string {
	return s.textInput.Value()
}

// RecentIDs returns the in-memory recent history, newest first.
func (s *Select) RecentIDs() []string {
	return s.recentIDs
}

// Loading reports whether a remote search is outstanding.
func (s *Select) Loading() bool {
	return s.loading
}

// ErrorText returns the inline error line, empty when healthy.
func (s *Select) ErrorText() string {
	return s.errorText
}
