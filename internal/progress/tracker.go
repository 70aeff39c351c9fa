package progress

import (
	"context"
	"errors"
	"fmt"

	"github.com/learninglab/bitlab/internal/curriculum"
)

// ErrUnknownModule is returned when a mutation names a module that is not
// in the registry.
var ErrUnknownModule = errors.New("unknown module")

// ModuleStatus is a module together with the learner's standing on it.
type ModuleStatus struct {
	Module  curriculum.Module `json:"module"`
	State   curriculum.State  `json:"state"`
	Missing []string          `json:"missing"`
}

// Summary is the learner's overall progress.
type Summary struct {
	Completed  int                 `json:"completed"`
	Total      int                 `json:"total"`
	Percentage int                 `json:"percentage"`
	Next       []curriculum.Module `json:"next"`
}

// Tracker answers prerequisite and progress questions by combining the
// module registry with the completion store. Every answer is recomputed
// from the persisted set; nothing is cached.
type Tracker struct {
	registry   *curriculum.Registry
	completion *CompletionStore
}

// NewTracker creates a Tracker.
func NewTracker(registry *curriculum.Registry, completion *CompletionStore) *Tracker {
	return &Tracker{registry: registry, completion: completion}
}

// Registry returns the module registry the tracker evaluates against.
func (t *Tracker) Registry() *curriculum.Registry {
	return t.registry
}

// ModuleInfo returns the descriptor for id, if registered.
func (t *Tracker) ModuleInfo(id string) (curriculum.Module, bool) {
	return t.registry.Info(id)
}

// CompletedModules returns the completed module IDs.
func (t *Tracker) CompletedModules(ctx context.Context) []string {
	return t.completion.Completed(ctx)
}

// MarkModuleComplete records id as completed. Unknown IDs are rejected so
// the persisted set only ever holds registered modules.
func (t *Tracker) MarkModuleComplete(ctx context.Context, id string) error {
	if !t.registry.Has(id) {
		return fmt.Errorf("%w: %q", ErrUnknownModule, id)
	}
	return t.completion.MarkComplete(ctx, id)
}

// ResetProgress clears every completion.
func (t *Tracker) ResetProgress(ctx context.Context) error {
	return t.completion.Reset(ctx)
}

// HasCompletedPrerequisites reports whether every prerequisite of id is
// completed. It is vacuously true for modules without prerequisites and
// for unknown IDs.
func (t *Tracker) HasCompletedPrerequisites(ctx context.Context, id string) bool {
	return hasAll(t.registry.Prerequisites(id), t.completedSet(ctx))
}

// MissingPrerequisites returns the titles of the unmet prerequisites of id,
// in the registry's declared order. Prerequisites without a descriptor are
// omitted.
func (t *Tracker) MissingPrerequisites(ctx context.Context, id string) []string {
	return t.missing(id, t.completedSet(ctx))
}

// ProgressPercentage returns round(100 * completed / registered), counting
// only completed IDs that are registered. An empty registry yields 0.
func (t *Tracker) ProgressPercentage(ctx context.Context) int {
	return percentage(t.countCompleted(t.completedSet(ctx)), t.registry.Len())
}

// State returns the learner-facing state of a module.
func (t *Tracker) State(ctx context.Context, id string) curriculum.State {
	return t.state(id, t.completedSet(ctx))
}

// Status returns the module, its state and missing prerequisites.
// ok is false for unknown modules.
func (t *Tracker) Status(ctx context.Context, id string) (ModuleStatus, bool) {
	m, ok := t.registry.Info(id)
	if !ok {
		return ModuleStatus{}, false
	}
	done := t.completedSet(ctx)
	return t.status(m, done), true
}

// Journey returns every module in display order with its status.
func (t *Tracker) Journey(ctx context.Context) []ModuleStatus {
	done := t.completedSet(ctx)
	modules := t.registry.All()
	out := make([]ModuleStatus, 0, len(modules))
	for _, m := range modules {
		out = append(out, t.status(m, done))
	}
	return out
}

// Summary returns overall progress and the unlocked modules still to do.
func (t *Tracker) Summary(ctx context.Context) Summary {
	done := t.completedSet(ctx)
	count := t.countCompleted(done)
	s := Summary{
		Completed:  count,
		Total:      t.registry.Len(),
		Percentage: percentage(count, t.registry.Len()),
		Next:       []curriculum.Module{},
	}
	for _, m := range t.registry.All() {
		if t.state(m.ID, done) == curriculum.StateUnlocked {
			s.Next = append(s.Next, m)
		}
	}
	return s
}

func (t *Tracker) status(m curriculum.Module, done map[string]bool) ModuleStatus {
	return ModuleStatus{
		Module:  m,
		State:   t.state(m.ID, done),
		Missing: t.missing(m.ID, done),
	}
}

func (t *Tracker) state(id string, done map[string]bool) curriculum.State {
	switch {
	case done[id]:
		return curriculum.StateCompleted
	case hasAll(t.registry.Prerequisites(id), done):
		return curriculum.StateUnlocked
	default:
		return curriculum.StateLocked
	}
}

func (t *Tracker) missing(id string, done map[string]bool) []string {
	titles := []string{}
	for _, prereqID := range t.registry.Prerequisites(id) {
		if done[prereqID] {
			continue
		}
		if m, ok := t.registry.Info(prereqID); ok {
			titles = append(titles, m.Title)
		}
	}
	return titles
}

func (t *Tracker) countCompleted(done map[string]bool) int {
	n := 0
	for id := range done {
		if t.registry.Has(id) {
			n++
		}
	}
	return n
}

func (t *Tracker) completedSet(ctx context.Context) map[string]bool {
	ids := t.completion.Completed(ctx)
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func hasAll(ids []string, set map[string]bool) bool {
	for _, id := range ids {
		if !set[id] {
			return false
		}
	}
	return true
}

// percentage rounds half up; inputs are non-negative.
func percentage(part, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*part + total) / (2 * total)
}
