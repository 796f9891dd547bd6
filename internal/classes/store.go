// Package classes keeps the tracked classes and expires them once their exam has passed.
package classes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/verte-zerg/studypick/internal/clock"
	"github.com/verte-zerg/studypick/internal/kv"
	"github.com/verte-zerg/studypick/internal/model"
)

// Key is the kv key holding the serialized class list.
const Key = "classes"

// Input is raw, unvalidated class input as typed by the user.
type Input struct {
	Name       string
	NextTest   string
	Confidence string
}

type classJSON struct {
	Name       string `json:"name"`
	NextTest   string `json:"nextTest"`
	Confidence int    `json:"confidence"`
}

// Store is the durable, ordered collection of classes. Records are shared by
// pointer, so a session keeps reading the same record the store holds.
type Store struct {
	kv      kv.Store
	clock   clock.Clock
	records []*model.ClassRecord
	pinned  *model.ClassRecord
}

// Open loads the class list from the kv store. A missing key is an empty list.
func Open(ctx context.Context, store kv.Store, clk clock.Clock) (*Store, error) {
	s := &Store{kv: store, clock: clk}
	if err := s.reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// reload replaces the in-memory list with the stored one, so writes made by
// another process since the last call are not overwritten. Records that are
// unchanged keep their pointers, which keeps the pinned record bound.
func (s *Store) reload(ctx context.Context) error {
	raw, ok, err := s.kv.Read(ctx, Key)
	if err != nil {
		return fmt.Errorf("failed to load classes: %w", err)
	}
	var items []classJSON
	if ok && strings.TrimSpace(raw) != "" {
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			return fmt.Errorf("failed to decode classes: %w", err)
		}
	}
	loaded := make([]*model.ClassRecord, 0, len(items))
	for _, item := range items {
		rec, err := decode(item)
		if err != nil {
			return fmt.Errorf("failed to decode class %q: %w", item.Name, err)
		}
		loaded = append(loaded, rec)
	}
	s.records = reuse(s.records, loaded, s.pinned)
	return nil
}

func decode(item classJSON) (*model.ClassRecord, error) {
	if strings.TrimSpace(item.Name) == "" {
		return nil, errors.New("empty name")
	}
	date, err := parseDate(item.NextTest)
	if err != nil {
		return nil, err
	}
	if item.Confidence < model.MinConfidence || item.Confidence > model.MaxConfidence {
		return nil, fmt.Errorf("confidence %d outside [%d,%d]", item.Confidence, model.MinConfidence, model.MaxConfidence)
	}
	return &model.ClassRecord{Name: item.Name, NextTest: date, Confidence: item.Confidence}, nil
}

// reuse swaps each loaded record for an equal one from prev. The pinned record
// is matched first.
func reuse(prev, loaded []*model.ClassRecord, pinned *model.ClassRecord) []*model.ClassRecord {
	used := make(map[*model.ClassRecord]bool, len(prev))
	if pinned != nil {
		for i, rec := range loaded {
			if sameRecord(rec, pinned) {
				loaded[i] = pinned
				used[pinned] = true
				break
			}
		}
	}
	for i, rec := range loaded {
		if used[rec] {
			continue
		}
		for _, old := range prev {
			if !used[old] && sameRecord(rec, old) {
				loaded[i] = old
				used[old] = true
				break
			}
		}
	}
	return loaded
}

func sameRecord(a, b *model.ClassRecord) bool {
	return a.Name == b.Name && a.NextTest.Equal(b.NextTest) && a.Confidence == b.Confidence
}

// Validate checks raw input and builds a record from it.
func Validate(in Input) (*model.ClassRecord, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	dateText := strings.TrimSpace(in.NextTest)
	if dateText == "" {
		return nil, &ValidationError{Field: "next test date", Reason: "must not be empty"}
	}
	date, err := parseDate(dateText)
	if err != nil {
		return nil, &ValidationError{Field: "next test date", Reason: fmt.Sprintf("expected YYYY-MM-DD, got %q", dateText)}
	}
	confidence, err := strconv.Atoi(strings.TrimSpace(in.Confidence))
	if err != nil || confidence < model.MinConfidence || confidence > model.MaxConfidence {
		return nil, &ValidationError{Field: "confidence", Reason: fmt.Sprintf("must be an integer from %d to %d", model.MinConfidence, model.MaxConfidence)}
	}
	return &model.ClassRecord{Name: name, NextTest: date, Confidence: confidence}, nil
}

// Add validates the input, appends the class and persists the list.
func (s *Store) Add(ctx context.Context, in Input) (*model.ClassRecord, error) {
	rec, err := Validate(in)
	if err != nil {
		return nil, err
	}
	if err := s.reload(ctx); err != nil {
		return nil, err
	}
	next := append(append([]*model.ClassRecord(nil), s.records...), rec)
	if err := s.save(ctx, next); err != nil {
		return nil, err
	}
	s.records = next
	return rec, nil
}

// Remove deletes the class at index of the current stored list and persists it.
func (s *Store) Remove(ctx context.Context, index int) error {
	if err := s.reload(ctx); err != nil {
		return err
	}
	if index < 0 || index >= len(s.records) {
		return &IndexError{Index: index, Len: len(s.records)}
	}
	if s.pinned != nil && s.records[index] == s.pinned {
		return ErrPinned
	}
	next := make([]*model.ClassRecord, 0, len(s.records)-1)
	next = append(next, s.records[:index]...)
	next = append(next, s.records[index+1:]...)
	if err := s.save(ctx, next); err != nil {
		return err
	}
	s.records = next
	return nil
}

// List drops classes whose exam date is before today, persists the purge and
// returns the remaining classes in insertion order.
func (s *Store) List(ctx context.Context) ([]*model.ClassRecord, error) {
	if err := s.reload(ctx); err != nil {
		return nil, err
	}
	today := startOfDay(s.clock.Now())
	kept := make([]*model.ClassRecord, 0, len(s.records))
	for _, rec := range s.records {
		if rec != s.pinned && Expired(rec, today) {
			continue
		}
		kept = append(kept, rec)
	}
	if len(kept) != len(s.records) {
		if err := s.save(ctx, kept); err != nil {
			return nil, err
		}
		s.records = kept
	}
	return append([]*model.ClassRecord(nil), s.records...), nil
}

// Pin protects rec from removal and expiry until Unpin.
func (s *Store) Pin(rec *model.ClassRecord) {
	s.pinned = rec
}

// Unpin releases the pinned class, if any.
func (s *Store) Unpin() {
	s.pinned = nil
}

// Expired reports whether the exam date falls before the given day.
func Expired(rec *model.ClassRecord, today time.Time) bool {
	return rec.NextTest.Before(startOfDay(today))
}

func (s *Store) save(ctx context.Context, records []*model.ClassRecord) error {
	items := make([]classJSON, 0, len(records))
	for _, rec := range records {
		items = append(items, classJSON{
			Name:       rec.Name,
			NextTest:   rec.NextTest.Format(model.DateLayout),
			Confidence: rec.Confidence,
		})
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode classes: %w", err)
	}
	if err := s.kv.Write(ctx, Key, string(data)); err != nil {
		return fmt.Errorf("failed to save classes: %w", err)
	}
	return nil
}

func parseDate(value string) (time.Time, error) {
	return time.ParseInLocation(model.DateLayout, value, time.Local)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
