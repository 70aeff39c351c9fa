package curriculum

import (
	"testing"
)

func TestDefault_Count(t *testing.T) {
	if got := Default().Len(); got != 11 {
		t.Errorf("got %d modules, want 11", got)
	}
}

func TestInfo_Exists(t *testing.T) {
	m, ok := Default().Info("converter")
	if !ok {
		t.Fatal("converter should be registered")
	}
	if m.Title != "Number Converter" {
		t.Errorf("got title %q, want %q", m.Title, "Number Converter")
	}
	if m.Order != 3 {
		t.Errorf("got order %d, want 3", m.Order)
	}
	if len(m.Prerequisites) != 2 || m.Prerequisites[0] != "binary" || m.Prerequisites[1] != "hex" {
		t.Errorf("got prerequisites %v, want [binary hex]", m.Prerequisites)
	}
}

func TestInfo_NotFound(t *testing.T) {
	if _, ok := Default().Info("doesNotExist"); ok {
		t.Fatal("expected unknown module to be absent")
	}
}

func TestInfo_ReturnsCopy(t *testing.T) {
	m, _ := Default().Info("code")
	m.Prerequisites[0] = "tampered"

	again, _ := Default().Info("code")
	if again.Prerequisites[0] != "binary" {
		t.Errorf("registry was mutated through a returned descriptor: %v", again.Prerequisites)
	}
}

func TestPrerequisites(t *testing.T) {
	tests := []struct {
		id   string
		want []string
	}{
		{"binary", []string{}},
		{"hex", []string{"binary"}},
		{"ascii", []string{"binary", "converter"}},
		{"code", []string{"binary", "memory", "ascii"}},
		{"doesNotExist", []string{}},
	}
	for _, tt := range tests {
		got := Default().Prerequisites(tt.id)
		if got == nil {
			t.Errorf("Prerequisites(%q) returned nil, want empty slice", tt.id)
			continue
		}
		if len(got) != len(tt.want) {
			t.Errorf("Prerequisites(%q) = %v, want %v", tt.id, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Prerequisites(%q)[%d] = %q, want %q", tt.id, i, got[i], tt.want[i])
			}
		}
	}
}

func TestDependents(t *testing.T) {
	deps := Default().Dependents("binary")
	want := []string{"hex", "converter", "ascii", "memory", "storage", "computer", "logic", "code"}
	if len(deps) != len(want) {
		t.Fatalf("binary: got %d dependents, want %d", len(deps), len(want))
	}
	for i, d := range deps {
		if d.ID != want[i] {
			t.Errorf("dependent %d: got %q, want %q", i, d.ID, want[i])
		}
	}

	if deps := Default().Dependents("code"); len(deps) != 0 {
		t.Errorf("code should have no dependents, got %d", len(deps))
	}
}

func TestAll_SortedByOrder(t *testing.T) {
	all := Default().All()
	for i := 1; i < len(all); i++ {
		if all[i].Order < all[i-1].Order {
			t.Errorf("module %q (order %d) appears after %q (order %d)",
				all[i].ID, all[i].Order, all[i-1].ID, all[i-1].Order)
		}
	}
	if all[0].ID != "binary" || all[len(all)-1].ID != "code" {
		t.Errorf("got first %q last %q, want binary and code", all[0].ID, all[len(all)-1].ID)
	}
}

func TestRoots(t *testing.T) {
	roots := Default().Roots()
	want := []string{"binary", "profile", "internet"}
	if len(roots) != len(want) {
		t.Fatalf("got %d roots, want %d", len(roots), len(want))
	}
	for i, r := range roots {
		if r.ID != want[i] {
			t.Errorf("root %d: got %q, want %q", i, r.ID, want[i])
		}
		if len(r.Prerequisites) != 0 {
			t.Errorf("root module %q has prerequisites: %v", r.ID, r.Prerequisites)
		}
	}
}

func TestTopologicalOrder(t *testing.T) {
	topo := Default().TopologicalOrder()
	if len(topo) != 11 {
		t.Fatalf("got %d modules in topo order, want 11", len(topo))
	}

	posMap := make(map[string]int, len(topo))
	for i, m := range topo {
		posMap[m.ID] = i
	}

	for _, m := range topo {
		for _, prereqID := range m.Prerequisites {
			prereqPos, ok := posMap[prereqID]
			if !ok {
				t.Errorf("prerequisite %q of %q not found in topo order", prereqID, m.ID)
				continue
			}
			if prereqPos >= posMap[m.ID] {
				t.Errorf("module %q (pos %d) appears before prerequisite %q (pos %d)",
					m.ID, posMap[m.ID], prereqID, prereqPos)
			}
		}
	}
}

func TestNew_EmptyRegistry(t *testing.T) {
	r, err := New(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Len() != 0 {
		t.Errorf("got %d modules, want 0", r.Len())
	}
	if got := r.Prerequisites("binary"); len(got) != 0 {
		t.Errorf("got %v, want no prerequisites", got)
	}
}

func TestNew_CopiesInput(t *testing.T) {
	modules := []Module{
		{ID: "a", Order: 1, Title: "A"},
		{ID: "b", Order: 2, Title: "B", Prerequisites: []string{"a"}},
	}
	r, err := New(modules)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	modules[1].Prerequisites[0] = "zzz"
	modules[0].Title = "changed"

	if got := r.Prerequisites("b"); got[0] != "a" {
		t.Errorf("registry shares prerequisite storage with caller: %v", got)
	}
	if got := r.Title("a"); got != "A" {
		t.Errorf("got title %q, want %q", got, "A")
	}
}

func TestStateLabels(t *testing.T) {
	tests := []struct {
		state State
		label string
		wire  string
	}{
		{StateLocked, "Locked", "locked"},
		{StateUnlocked, "Unlocked", "unlocked"},
		{StateCompleted, "Completed", "completed"},
	}
	for _, tt := range tests {
		if got := tt.state.Label(); got != tt.label {
			t.Errorf("Label() = %q, want %q", got, tt.label)
		}
		if got := tt.state.String(); got != tt.wire {
			t.Errorf("String() = %q, want %q", got, tt.wire)
		}
		if tt.state.Icon() == "?" {
			t.Errorf("state %v has no icon", tt.state)
		}
	}
}
