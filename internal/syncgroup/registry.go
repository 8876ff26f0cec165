// Package syncgroup keeps multiple hybrid controls that share a group name in
// agreement about their option set. The registry lives for the whole program
// session, holds the latest snapshot per group, and fans option updates out to
// every member except the one that published.
package syncgroup

import (
	tea "github.com/charmbracelet/bubbletea"

	"hybridsel/internal/debug"
)

// Member is a control instance that participates in a sync group.
type Member interface {
	// ApplySyncSnapshot replaces the member's option set without triggering
	// another publish.
	ApplySyncSnapshot(options []map[string]any)
	// HasRemoteSource reports whether the member fetches options over HTTP.
	HasRemoteSource() bool
	// RefreshCmd returns a command that re-fetches the member's options with
	// an empty search term.
	RefreshCmd() tea.Cmd
}

// Snapshot is the latest published option set for a group.
type Snapshot struct {
	Version int
	Options []map[string]any
}

// Registry tracks group membership and snapshots. Broadcast is synchronous;
// the TUI event loop is single threaded so no locking is needed, only a
// re-entrancy guard per group.
type Registry struct {
	groups       map[string]map[Member]struct{}
	snapshots    map[string]Snapshot
	broadcasting map[string]struct{}
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		groups:       make(map[string]map[Member]struct{}),
		snapshots:    make(map[string]Snapshot),
		broadcasting: make(map[string]struct{}),
	}
}

// defaultRegistry serves the common case of one registry per process.
var defaultRegistry = NewRegistry()

// Default returns the process-wide registry.
func Default() *Registry {
	return defaultRegistry
}

// Register adds a member to a group. If a snapshot already exists the member
// catches up immediately.
func (r *Registry) Register(m Member, group string) {
	if group == "" || m == nil {
		return
	}
	members, ok := r.groups[group]
	if !ok {
		members = make(map[Member]struct{})
		r.groups[group] = members
	}
	members[m] = struct{}{}

	if snap, ok := r.snapshots[group]; ok && len(snap.Options) > 0 {
		apply(m, snap.Options)
	}
}

// Unregister removes a member, dropping the group entry when it empties.
func (r *Registry) Unregister(m Member, group string) {
	if group == "" {
		return
	}
	members, ok := r.groups[group]
	if !ok {
		return
	}
	delete(members, m)
	if len(members) == 0 {
		delete(r.groups, group)
	}
}

// Migrate moves a member between groups, used when a control's group changes
// while mounted.
func (r *Registry) Migrate(m Member, oldGroup, newGroup string) {
	r.Unregister(m, oldGroup)
	r.Register(m, newGroup)
}

// Publish stores a new snapshot and applies it to every member of the group
// except source. A publish that arrives while the same group is already
// broadcasting is dropped, which stops publish storms when members react to
// a sync update by publishing again.
func (r *Registry) Publish(group string, options []map[string]any, source Member) {
	if group == "" {
		return
	}
	if _, busy := r.broadcasting[group]; busy {
		return
	}
	r.broadcasting[group] = struct{}{}
	defer delete(r.broadcasting, group)

	snap := Snapshot{
		Version: r.snapshots[group].Version + 1,
		Options: append([]map[string]any(nil), options...),
	}
	r.snapshots[group] = snap

	for m := range r.groups[group] {
		if m == source {
			continue
		}
		apply(m, options)
	}
}

// Refresh re-syncs every member of a group. With a payload the payload is
// applied directly; members with a remote source contribute a re-fetch
// command; everyone else re-applies the stored snapshot. The returned command
// batches the collected fetches (nil when there is nothing to run).
func (r *Registry) Refresh(group string, payload []map[string]any) tea.Cmd {
	members, ok := r.groups[group]
	if !ok {
		return nil
	}

	var cmds []tea.Cmd
	for m := range members {
		switch {
		case payload != nil:
			apply(m, payload)
		case m.HasRemoteSource():
			if cmd := m.RefreshCmd(); cmd != nil {
				cmds = append(cmds, cmd)
			}
		default:
			if snap, ok := r.snapshots[group]; ok {
				apply(m, snap.Options)
			}
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Snapshot returns the stored snapshot for a group.
func (r *Registry) Snapshot(group string) (Snapshot, bool) {
	snap, ok := r.snapshots[group]
	return snap, ok
}

// Groups lists the active group names.
func (r *Registry) Groups() []string {
	names := make([]string, 0, len(r.groups))
	for name := range r.groups {
		names = append(names, name)
	}
	return names
}

// MemberCount returns the number of members in a group.
func (r *Registry) MemberCount(group string) int {
	return len(r.groups[group])
}

// apply isolates a member's snapshot handler so one panicking member cannot
// abort the broadcast to its siblings.
func apply(m Member, options []map[string]any) {
	defer func() {
		if rec := recover(); rec != nil {
			debug.Logf("syncgroup: member snapshot handler panicked: %v", rec)
		}
	}()
	m.ApplySyncSnapshot(options)
}
