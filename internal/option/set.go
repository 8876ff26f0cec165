package option

// Set holds normalized options keyed by id while preserving insertion order.
// Grouped views keep ungrouped options first and groups in first-seen order.
type Set struct {
	order []string
	byID  map[string]Option
}

// NewSet normalizes the given records into a fresh Set.
func NewSet(raws []map[string]any, f Fields) *Set {
	s := &Set{byID: make(map[string]Option, len(raws))}
	for _, opt := range NormalizeAll(raws, f) {
		s.Add(opt)
	}
	return s
}

// Add inserts an option, replacing any existing option with the same id
// without disturbing its position.
func (s *Set) Add(opt Option) {
	if s.byID == nil {
		s.byID = make(map[string]Option)
	}
	if _, exists := s.byID[opt.ID]; !exists {
		s.order = append(s.order, opt.ID)
	}
	s.byID[opt.ID] = opt
}

// Get returns the option with the given id.
func (s *Set) Get(id string) (Option, bool) {
	opt, ok := s.byID[id]
	return opt, ok
}

// Has reports whether the set contains the id.
func (s *Set) Has(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// Len returns the number of options.
func (s *Set) Len() int {
	return len(s.order)
}

// All returns the options in insertion order.
func (s *Set) All() []Option {
	opts := make([]Option, 0, len(s.order))
	for _, id := range s.order {
		opts = append(opts, s.byID[id])
	}
	return opts
}

// Group is a named run of options sharing a group label.
type Group struct {
	Name    string
	Options []Option
}

// Grouped splits the set into ungrouped options followed by groups in
// first-seen order.
func (s *Set) Grouped() (ungrouped []Option, groups []Group) {
	index := make(map[string]int)
	for _, id := range s.order {
		opt := s.byID[id]
		if opt.Group == "" {
			ungrouped = append(ungrouped, opt)
			continue
		}
		i, ok := index[opt.Group]
		if !ok {
			i = len(groups)
			index[opt.Group] = i
			groups = append(groups, Group{Name: opt.Group})
		}
		groups[i].Options = append(groups[i].Options, opt)
	}
	return ungrouped, groups
}

// HasGroups reports whether any option carries a group label.
func (s *Set) HasGroups() bool {
	for _, id := range s.order {
		if s.byID[id].Group != "" {
			return true
		}
	}
	return false
}
