package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/learninglab/bitlab/internal/store"
)

// Option configures a CompletionStore.
type Option func(*CompletionStore)

// WithLogger sets the logger used to report swallowed storage failures.
func WithLogger(l *zap.Logger) Option {
	return func(c *CompletionStore) {
		if l != nil {
			c.logger = l
		}
	}
}

// CompletionStore persists the set of completed module IDs for this device.
// It exclusively owns the completedModules key.
type CompletionStore struct {
	mu     sync.Mutex
	kv     store.KV
	logger *zap.Logger
}

// NewCompletionStore creates a CompletionStore on top of kv.
func NewCompletionStore(kv store.KV, opts ...Option) *CompletionStore {
	c := &CompletionStore{kv: kv, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Completed returns the completed module IDs in the order they were completed.
// Absent, unreadable or corrupt data yields an empty set; this is best-effort
// local state, so the failure is logged and never returned.
func (c *CompletionStore) Completed(ctx context.Context) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx)
}

// IsCompleted reports whether id is in the completed set.
func (c *CompletionStore) IsCompleted(ctx context.Context, id string) bool {
	return slices.Contains(c.Completed(ctx), id)
}

// MarkComplete adds id to the completed set and persists it before returning.
// Marking an already completed module is a no-op.
func (c *CompletionStore) MarkComplete(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	completed := c.load(ctx)
	if slices.Contains(completed, id) {
		return nil
	}
	completed = append(completed, id)

	data, err := json.Marshal(completed)
	if err != nil {
		return fmt.Errorf("encode completed modules: %w", err)
	}
	if err := c.kv.Set(ctx, store.KeyCompletedModules, string(data)); err != nil {
		return fmt.Errorf("mark %q complete: %w", id, err)
	}
	return nil
}

// Reset clears all completion state. Resetting an empty store is a no-op.
func (c *CompletionStore) Reset(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.kv.Delete(ctx, store.KeyCompletedModules); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	return nil
}

// load reads and normalizes the persisted set. Callers hold c.mu.
func (c *CompletionStore) load(ctx context.Context) []string {
	raw, ok, err := c.kv.Get(ctx, store.KeyCompletedModules)
	if err != nil {
		c.logger.Warn("read completed modules; treating as empty", zap.Error(err))
		return []string{}
	}
	if !ok {
		return []string{}
	}
	ids, err := decodeCompleted([]byte(raw))
	if err != nil {
		c.logger.Warn("corrupt completed modules; treating as empty",
			zap.String("key", store.KeyCompletedModules),
			zap.Error(err),
		)
		return []string{}
	}
	return ids
}

// decodeCompleted parses the persisted JSON array of module IDs.
// Empty IDs and duplicates are dropped, keeping first occurrence order.
func decodeCompleted(data []byte) ([]string, error) {
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode completed modules: %w", err)
	}
	ids := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, id := range raw {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}
