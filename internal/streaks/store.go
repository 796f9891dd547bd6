// Package streaks counts completed study sessions per class name.
package streaks

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/verte-zerg/studypick/internal/kv"
	"github.com/verte-zerg/studypick/internal/model"
)

// Key is the kv key holding the serialized streak map.
const Key = "streaks"

// Store reads and grows per-class counters. Counters never decrease. They are
// keyed by class name, so classes sharing a name share a streak.
type Store struct {
	kv kv.Store
}

// New returns a Store backed by the given kv store.
func New(store kv.Store) *Store {
	return &Store{kv: store}
}

// Get returns the streak for name, or 0 when none is recorded.
func (s *Store) Get(ctx context.Context, name string) (int, error) {
	counts, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	return counts[name], nil
}

// Increment adds one to the streak for name and persists the full map.
func (s *Store) Increment(ctx context.Context, name string) (int, error) {
	counts, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	counts[name]++
	data, err := json.Marshal(counts)
	if err != nil {
		return 0, fmt.Errorf("failed to encode streaks: %w", err)
	}
	if err := s.kv.Write(ctx, Key, string(data)); err != nil {
		return 0, fmt.Errorf("failed to save streaks: %w", err)
	}
	return counts[name], nil
}

// All returns every recorded streak, highest first, ties by name.
func (s *Store) All(ctx context.Context) ([]model.StreakEntry, error) {
	counts, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]model.StreakEntry, 0, len(counts))
	for name, count := range counts {
		entries = append(entries, model.StreakEntry{Name: name, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count == entries[j].Count {
			return entries[i].Name < entries[j].Name
		}
		return entries[i].Count > entries[j].Count
	})
	return entries, nil
}

func (s *Store) load(ctx context.Context) (map[string]int, error) {
	raw, ok, err := s.kv.Read(ctx, Key)
	if err != nil {
		return nil, fmt.Errorf("failed to load streaks: %w", err)
	}
	counts := map[string]int{}
	if !ok || strings.TrimSpace(raw) == "" {
		return counts, nil
	}
	if err := json.Unmarshal([]byte(raw), &counts); err != nil {
		return nil, fmt.Errorf("failed to decode streaks: %w", err)
	}
	return counts, nil
}
