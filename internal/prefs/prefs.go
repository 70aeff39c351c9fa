// Package prefs stores the learner's device-local preferences: theme,
// display name and game high scores. Values live next to the completion set
// in the same key-value store and share its stance on bad data: anything
// absent or unreadable decodes to the default.
package prefs

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/learninglab/bitlab/internal/store"
)

// MaxHighScores is the number of leaderboard entries kept.
const MaxHighScores = 10

// ErrEmptyName is returned when a blank learner name is saved.
var ErrEmptyName = errors.New("learner name is empty")

// HighScore is one leaderboard entry.
type HighScore struct {
	Name  string    `json:"name"`
	Game  string    `json:"game"`
	Score int       `json:"score"`
	At    time.Time `json:"at"`
}

// Service reads and writes preferences.
type Service struct {
	mu     sync.Mutex
	kv     store.KV
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a preferences service on top of kv.
func NewService(kv store.KV, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{kv: kv, logger: logger, now: time.Now}
}

// DarkMode reports whether the dark theme is enabled. Defaults to false.
func (s *Service) DarkMode(ctx context.Context) bool {
	raw, ok := s.get(ctx, store.KeyDarkMode)
	if !ok {
		return false
	}
	on, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		s.logger.Warn("corrupt dark mode flag; using default", zap.String("value", raw))
		return false
	}
	return on
}

// SetDarkMode persists the theme flag.
func (s *Service) SetDarkMode(ctx context.Context, on bool) error {
	if err := s.kv.Set(ctx, store.KeyDarkMode, strconv.FormatBool(on)); err != nil {
		return fmt.Errorf("save dark mode: %w", err)
	}
	return nil
}

// LearnerName returns the saved name, or "" if none.
func (s *Service) LearnerName(ctx context.Context) string {
	raw, _ := s.get(ctx, store.KeyLearnerName)
	return raw
}

// SetLearnerName saves name after trimming surrounding whitespace.
func (s *Service) SetLearnerName(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if err := s.kv.Set(ctx, store.KeyLearnerName, name); err != nil {
		return fmt.Errorf("save learner name: %w", err)
	}
	return nil
}

// ClearLearnerName forgets the saved name.
func (s *Service) ClearLearnerName(ctx context.Context) error {
	if err := s.kv.Delete(ctx, store.KeyLearnerName); err != nil {
		return fmt.Errorf("clear learner name: %w", err)
	}
	return nil
}

// HighScores returns the leaderboard, best first.
func (s *Service) HighScores(ctx context.Context) []HighScore {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadScores(ctx)
}

// RecordHighScore adds an entry and keeps the best MaxHighScores.
// It reports whether the entry made the leaderboard.
func (s *Service) RecordHighScore(ctx context.Context, hs HighScore) (bool, error) {
	hs.Name = strings.TrimSpace(hs.Name)
	if hs.Name == "" {
		return false, ErrEmptyName
	}
	if hs.At.IsZero() {
		hs.At = s.now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	scores := append(s.loadScores(ctx), hs)
	sortScores(scores)
	if len(scores) > MaxHighScores {
		scores = scores[:MaxHighScores]
	}
	if !slices.Contains(scores, hs) {
		return false, nil
	}

	data, err := json.Marshal(scores)
	if err != nil {
		return false, fmt.Errorf("encode high scores: %w", err)
	}
	if err := s.kv.Set(ctx, store.KeyHighScores, string(data)); err != nil {
		return false, fmt.Errorf("save high scores: %w", err)
	}
	return true, nil
}

// loadScores reads the leaderboard. Callers hold s.mu.
func (s *Service) loadScores(ctx context.Context) []HighScore {
	raw, ok := s.get(ctx, store.KeyHighScores)
	if !ok {
		return []HighScore{}
	}
	var scores []HighScore
	if err := json.Unmarshal([]byte(raw), &scores); err != nil {
		s.logger.Warn("corrupt high scores; using default", zap.Error(err))
		return []HighScore{}
	}
	if scores == nil {
		scores = []HighScore{}
	}
	sortScores(scores)
	return scores
}

func (s *Service) get(ctx context.Context, key string) (string, bool) {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		s.logger.Warn("read preference; using default", zap.String("key", key), zap.Error(err))
		return "", false
	}
	return raw, ok
}

// sortScores orders by score descending, then earliest first.
func sortScores(scores []HighScore) {
	slices.SortStableFunc(scores, func(a, b HighScore) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return a.At.Compare(b.At)
	})
}
