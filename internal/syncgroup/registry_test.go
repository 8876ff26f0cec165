package syncgroup

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

type fakeMember struct {
	applied    [][]map[string]any
	remote     bool
	refreshed  int
	onApply    func(m *fakeMember, options []map[string]any)
	panicApply bool
}

func (m *fakeMember) ApplySyncSnapshot(options []map[string]any) {
	if m.panicApply {
		panic("member exploded")
	}
	m.applied = append(m.applied, options)
	if m.onApply != nil {
		m.onApply(m, options)
	}
}

func (m *fakeMember) HasRemoteSource() bool { return m.remote }

func (m *fakeMember) RefreshCmd() tea.Cmd {
	m.refreshed++
	return func() tea.Msg { return nil }
}

func sampleOptions(labels ...string) []map[string]any {
	opts := make([]map[string]any, 0, len(labels))
	for i, l := range labels {
		opts = append(opts, map[string]any{"id": i + 1, "label": l})
	}
	return opts
}

func TestPublishExcludesSource(t *testing.T) {
	r := NewRegistry()
	source := &fakeMember{}
	sibling := &fakeMember{}
	other := &fakeMember{}
	r.Register(source, "crews")
	r.Register(sibling, "crews")
	r.Register(other, "crews")

	opts := sampleOptions("Day Shift", "Night Shift")
	r.Publish("crews", opts, source)

	if len(source.applied) != 0 {
		t.Fatalf("source received its own publish %d times", len(source.applied))
	}
	if len(sibling.applied) != 1 || len(other.applied) != 1 {
		t.Fatalf("expected each sibling to receive exactly one snapshot, got %d and %d",
			len(sibling.applied), len(other.applied))
	}
	if len(sibling.applied[0]) != 2 {
		t.Fatalf("expected 2 options in snapshot, got %d", len(sibling.applied[0]))
	}
}

func TestPublishIncrementsVersion(t *testing.T) {
	r := NewRegistry()
	m := &fakeMember{}
	r.Register(m, "g")

	r.Publish("g", sampleOptions("a"), nil)
	r.Publish("g", sampleOptions("a", "b"), nil)

	snap, ok := r.Snapshot("g")
	if !ok {
		t.Fatal("expected snapshot to exist")
	}
	if snap.Version != 2 {
		t.Fatalf("expected version 2, got %d", snap.Version)
	}
	if len(snap.Options) != 2 {
		t.Fatalf("expected 2 options in stored snapshot, got %d", len(snap.Options))
	}
}

func TestRegisterCatchesUpFromSnapshot(t *testing.T) {
	r := NewRegistry()
	early := &fakeMember{}
	r.Register(early, "g")
	r.Publish("g", sampleOptions("a"), early)

	late := &fakeMember{}
	r.Register(late, "g")

	if len(late.applied) != 1 {
		t.Fatalf("expected late joiner to catch up once, got %d applies", len(late.applied))
	}
}

func TestReentrantPublishIsDropped(t *testing.T) {
	r := NewRegistry()

	var echo *fakeMember
	echo = &fakeMember{
		onApply: func(_ *fakeMember, options []map[string]any) {
			// A member that reacts to a sync update by publishing again must
			// not trigger a second synchronous broadcast.
			r.Publish("g", options, echo)
		},
	}
	quiet := &fakeMember{}
	source := &fakeMember{}
	r.Register(echo, "g")
	r.Register(quiet, "g")
	r.Register(source, "g")

	r.Publish("g", sampleOptions("a"), source)

	if got := len(quiet.applied); got != 1 {
		t.Fatalf("expected exactly one snapshot at the quiet member, got %d", got)
	}
	snap, _ := r.Snapshot("g")
	if snap.Version != 1 {
		t.Fatalf("expected re-entrant publish to be dropped, version = %d", snap.Version)
	}
}

func TestPanickingMemberDoesNotStopBroadcast(t *testing.T) {
	r := NewRegistry()
	bad := &fakeMember{panicApply: true}
	good := &fakeMember{}
	r.Register(bad, "g")
	r.Register(good, "g")

	r.Publish("g", sampleOptions("a"), nil)

	if len(good.applied) != 1 {
		t.Fatalf("expected healthy member to receive snapshot despite sibling panic, got %d", len(good.applied))
	}
}

func TestUnregisterDropsEmptyGroup(t *testing.T) {
	r := NewRegistry()
	m := &fakeMember{}
	r.Register(m, "g")
	if r.MemberCount("g") != 1 {
		t.Fatalf("expected 1 member, got %d", r.MemberCount("g"))
	}

	r.Unregister(m, "g")
	if r.MemberCount("g") != 0 {
		t.Fatalf("expected group to be dropped, got %d members", r.MemberCount("g"))
	}
	if len(r.Groups()) != 0 {
		t.Fatalf("expected no groups, got %v", r.Groups())
	}
}

func TestMigrateMovesMembership(t *testing.T) {
	r := NewRegistry()
	m := &fakeMember{}
	r.Register(m, "old")
	r.Migrate(m, "old", "new")

	if r.MemberCount("old") != 0 {
		t.Fatalf("expected old group to be empty")
	}
	if r.MemberCount("new") != 1 {
		t.Fatalf("expected member in new group")
	}
}

func TestRefreshPrefersPayloadThenRemote(t *testing.T) {
	r := NewRegistry()
	static := &fakeMember{}
	remote := &fakeMember{remote: true}
	r.Register(static, "g")
	r.Register(remote, "g")
	r.Publish("g", sampleOptions("stored"), nil)
	static.applied = nil
	remote.applied = nil

	// Payload applies to everyone, no fetches.
	if cmd := r.Refresh("g", sampleOptions("fresh")); cmd != nil {
		t.Fatal("expected no command when payload given")
	}
	if len(static.applied) != 1 || len(remote.applied) != 1 {
		t.Fatalf("expected payload applied to both members, got %d and %d",
			len(static.applied), len(remote.applied))
	}

	// Without payload: remote member re-fetches, static re-applies snapshot.
	static.applied = nil
	remote.applied = nil
	cmd := r.Refresh("g", nil)
	if cmd == nil {
		t.Fatal("expected a batched refresh command for the remote member")
	}
	if remote.refreshed != 1 {
		t.Fatalf("expected one refresh command collected, got %d", remote.refreshed)
	}
	if len(static.applied) != 1 {
		t.Fatalf("expected static member to re-apply stored snapshot, got %d applies", len(static.applied))
	}
	if len(remote.applied) != 0 {
		t.Fatalf("remote member should not re-apply the stale snapshot")
	}
}

func TestPublishToUnknownOrEmptyGroupIsNoOp(t *testing.T) {
	r := NewRegistry()
	r.Publish("", sampleOptions("a"), nil)
	if _, ok := r.Snapshot(""); ok {
		t.Fatal("empty group name must not store a snapshot")
	}

	r.Publish("ghost", sampleOptions("a"), nil)
	snap, ok := r.Snapshot("ghost")
	if !ok || snap.Version != 1 {
		t.Fatal("publishing to a group with no members still stores the snapshot for late joiners")
	}
}
