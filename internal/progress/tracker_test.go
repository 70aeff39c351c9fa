package progress

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learninglab/bitlab/internal/curriculum"
	"github.com/learninglab/bitlab/internal/store"
)

func newScenarioTracker(t *testing.T) *Tracker {
	t.Helper()
	reg, err := curriculum.New([]curriculum.Module{
		{ID: "binary", Order: 1, Title: "Binary Game"},
		{ID: "hex", Order: 2, Title: "Hex Colors", Prerequisites: []string{"binary"}},
		{ID: "converter", Order: 3, Title: "Number Converter", Prerequisites: []string{"binary", "hex"}},
	})
	require.NoError(t, err)
	return NewTracker(reg, NewCompletionStore(store.NewMemory()))
}

func newDefaultTracker() *Tracker {
	return NewTracker(curriculum.Default(), NewCompletionStore(store.NewMemory()))
}

func TestScenario_ConverterUnlocksStepByStep(t *testing.T) {
	tr := newScenarioTracker(t)
	ctx := context.Background()

	assert.False(t, tr.HasCompletedPrerequisites(ctx, "converter"))
	assert.Equal(t, []string{"Binary Game", "Hex Colors"}, tr.MissingPrerequisites(ctx, "converter"))

	require.NoError(t, tr.MarkModuleComplete(ctx, "binary"))
	assert.False(t, tr.HasCompletedPrerequisites(ctx, "converter"))
	assert.Equal(t, []string{"Hex Colors"}, tr.MissingPrerequisites(ctx, "converter"))

	require.NoError(t, tr.MarkModuleComplete(ctx, "hex"))
	assert.True(t, tr.HasCompletedPrerequisites(ctx, "converter"))
	assert.Equal(t, []string{}, tr.MissingPrerequisites(ctx, "converter"))
}

func TestMissingPrerequisites_DeclaredOrder(t *testing.T) {
	tr := newDefaultTracker()
	ctx := context.Background()

	// code declares binary, memory, ascii.
	assert.Equal(t,
		[]string{"Binary Game", "Memory Visualizer", "ASCII Explorer"},
		tr.MissingPrerequisites(ctx, "code"))

	require.NoError(t, tr.MarkModuleComplete(ctx, "memory"))
	assert.Equal(t,
		[]string{"Binary Game", "ASCII Explorer"},
		tr.MissingPrerequisites(ctx, "code"))
}

func TestHasCompletedPrerequisites_RootsAlwaysTrue(t *testing.T) {
	tr := newDefaultTracker()
	ctx := context.Background()

	check := func() {
		for _, m := range tr.Registry().Roots() {
			assert.True(t, tr.HasCompletedPrerequisites(ctx, m.ID), "root %q", m.ID)
			assert.Empty(t, tr.MissingPrerequisites(ctx, m.ID), "root %q", m.ID)
		}
	}

	check()
	for _, id := range []string{"binary", "hex", "internet"} {
		require.NoError(t, tr.MarkModuleComplete(ctx, id))
		check()
	}
	require.NoError(t, tr.ResetProgress(ctx))
	check()
}

func TestUnknownModule(t *testing.T) {
	tr := newDefaultTracker()
	ctx := context.Background()

	assert.Empty(t, tr.Registry().Prerequisites("doesNotExist"))
	assert.True(t, tr.HasCompletedPrerequisites(ctx, "doesNotExist"))
	assert.Empty(t, tr.MissingPrerequisites(ctx, "doesNotExist"))

	_, ok := tr.ModuleInfo("doesNotExist")
	assert.False(t, ok)
	_, ok = tr.Status(ctx, "doesNotExist")
	assert.False(t, ok)

	err := tr.MarkModuleComplete(ctx, "doesNotExist")
	assert.ErrorIs(t, err, ErrUnknownModule)
	assert.Empty(t, tr.CompletedModules(ctx))
}

func TestProgressPercentage_ElevenModules(t *testing.T) {
	tr := newDefaultTracker()
	ctx := context.Background()
	require.Equal(t, 11, tr.Registry().Len())

	assert.Equal(t, 0, tr.ProgressPercentage(ctx))

	require.NoError(t, tr.MarkModuleComplete(ctx, "binary"))
	assert.Equal(t, 9, tr.ProgressPercentage(ctx))

	for _, m := range tr.Registry().All() {
		require.NoError(t, tr.MarkModuleComplete(ctx, m.ID))
	}
	assert.Equal(t, 100, tr.ProgressPercentage(ctx))
}

func TestProgressPercentage_Monotonic(t *testing.T) {
	tr := newDefaultTracker()
	ctx := context.Background()

	prev := tr.ProgressPercentage(ctx)
	satisfied := map[string]bool{}
	for _, m := range tr.Registry().TopologicalOrder() {
		require.NoError(t, tr.MarkModuleComplete(ctx, m.ID))

		got := tr.ProgressPercentage(ctx)
		assert.GreaterOrEqual(t, got, prev, "after completing %q", m.ID)
		prev = got

		for _, other := range tr.Registry().All() {
			now := tr.HasCompletedPrerequisites(ctx, other.ID)
			if satisfied[other.ID] {
				assert.True(t, now, "%q went from unlocked to locked after completing %q", other.ID, m.ID)
			}
			satisfied[other.ID] = now
		}
	}
}

func TestProgressPercentage_IgnoresUnregisteredIDs(t *testing.T) {
	kv := store.NewMemory()
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, store.KeyCompletedModules, `["binary","retired-lesson"]`))

	tr := NewTracker(curriculum.Default(), NewCompletionStore(kv))
	assert.Equal(t, 9, tr.ProgressPercentage(ctx))
}

func TestProgressPercentage_EmptyRegistry(t *testing.T) {
	reg, err := curriculum.New(nil)
	require.NoError(t, err)
	tr := NewTracker(reg, NewCompletionStore(store.NewMemory()))
	assert.Equal(t, 0, tr.ProgressPercentage(context.Background()))
}

func TestPercentage_RoundsHalfUp(t *testing.T) {
	tests := []struct {
		part, total, want int
	}{
		{0, 11, 0},
		{1, 11, 9},
		{1, 8, 13}, // 12.5
		{3, 8, 38}, // 37.5
		{2, 3, 67},
		{1, 3, 33},
		{11, 11, 100},
		{5, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, percentage(tt.part, tt.total), "percentage(%d, %d)", tt.part, tt.total)
	}
}

func TestResetThenEmpty(t *testing.T) {
	tr := newDefaultTracker()
	ctx := context.Background()

	require.NoError(t, tr.MarkModuleComplete(ctx, "binary"))
	require.NoError(t, tr.MarkModuleComplete(ctx, "hex"))
	require.NoError(t, tr.ResetProgress(ctx))

	assert.Empty(t, tr.CompletedModules(ctx))
	assert.Equal(t, 0, tr.ProgressPercentage(ctx))
	assert.Equal(t, curriculum.StateLocked, tr.State(ctx, "hex"))
	assert.Equal(t, curriculum.StateUnlocked, tr.State(ctx, "binary"))
}

func TestState(t *testing.T) {
	tr := newScenarioTracker(t)
	ctx := context.Background()

	assert.Equal(t, curriculum.StateUnlocked, tr.State(ctx, "binary"))
	assert.Equal(t, curriculum.StateLocked, tr.State(ctx, "hex"))

	require.NoError(t, tr.MarkModuleComplete(ctx, "binary"))
	assert.Equal(t, curriculum.StateCompleted, tr.State(ctx, "binary"))
	assert.Equal(t, curriculum.StateUnlocked, tr.State(ctx, "hex"))
	assert.Equal(t, curriculum.StateLocked, tr.State(ctx, "converter"))
}

func TestState_CompletedWithoutPrerequisites(t *testing.T) {
	// "Continue anyway" lets a learner finish a module early.
	tr := newScenarioTracker(t)
	ctx := context.Background()

	require.NoError(t, tr.MarkModuleComplete(ctx, "converter"))
	assert.Equal(t, curriculum.StateCompleted, tr.State(ctx, "converter"))
	assert.False(t, tr.HasCompletedPrerequisites(ctx, "converter"))
}

func TestJourney(t *testing.T) {
	tr := newScenarioTracker(t)
	ctx := context.Background()
	require.NoError(t, tr.MarkModuleComplete(ctx, "binary"))

	j := tr.Journey(ctx)
	require.Len(t, j, 3)
	assert.Equal(t, "binary", j[0].Module.ID)
	assert.Equal(t, curriculum.StateCompleted, j[0].State)
	assert.Equal(t, curriculum.StateUnlocked, j[1].State)
	assert.Equal(t, curriculum.StateLocked, j[2].State)
	assert.Equal(t, []string{"Hex Colors"}, j[2].Missing)
}

func TestSummary(t *testing.T) {
	tr := newDefaultTracker()
	ctx := context.Background()

	s := tr.Summary(ctx)
	assert.Equal(t, 0, s.Completed)
	assert.Equal(t, 11, s.Total)
	assert.Equal(t, 0, s.Percentage)
	var next []string
	for _, m := range s.Next {
		next = append(next, m.ID)
	}
	assert.Equal(t, []string{"binary", "profile", "internet"}, next)

	require.NoError(t, tr.MarkModuleComplete(ctx, "binary"))
	s = tr.Summary(ctx)
	assert.Equal(t, 1, s.Completed)
	assert.Equal(t, 9, s.Percentage)
	next = next[:0]
	for _, m := range s.Next {
		next = append(next, m.ID)
	}
	assert.Equal(t, []string{"hex", "profile", "memory", "storage", "logic", "internet"}, next)
}

func TestTracker_PersistsAcrossRestarts(t *testing.T) {
	kv := store.NewMemory()
	ctx := context.Background()

	first := NewTracker(curriculum.Default(), NewCompletionStore(kv))
	require.NoError(t, first.MarkModuleComplete(ctx, "binary"))

	second := NewTracker(curriculum.Default(), NewCompletionStore(kv))
	assert.Equal(t, []string{"binary"}, second.CompletedModules(ctx))
	assert.True(t, second.HasCompletedPrerequisites(ctx, "hex"))
}
