package selector_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/studypick/internal/model"
	"github.com/verte-zerg/studypick/internal/selector"
)

var today = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

func class(name string, days, confidence int) *model.ClassRecord {
	return &model.ClassRecord{
		Name:       name,
		NextTest:   today.AddDate(0, 0, days),
		Confidence: confidence,
	}
}

type fixedDraw float64

func (f fixedDraw) Float64() float64 { return float64(f) }

func TestSelectEmpty(t *testing.T) {
	_, err := selector.Select(nil, today, fixedDraw(0))
	assert.ErrorIs(t, err, selector.ErrEmptySet)

	_, err = selector.SelectAt([]*model.ClassRecord{}, today, 0)
	assert.ErrorIs(t, err, selector.ErrEmptySet)
}

func TestWeightScenario(t *testing.T) {
	algebra := class("Algebra", 2, 3)
	history := class("History", 30, 9)

	assert.InDelta(t, 1.0/3+7, selector.Weight(algebra, today), 1e-9)
	assert.InDelta(t, 1.0/31+1, selector.Weight(history, today), 1e-9)

	classes := []*model.ClassRecord{algebra, history}
	got, err := selector.SelectAt(classes, today, 0)
	require.NoError(t, err)
	assert.Same(t, algebra, got)

	got, err = selector.SelectAt(classes, today, 8.0)
	require.NoError(t, err)
	assert.Same(t, history, got)
}

func TestSelectUsesDrawScaledByTotal(t *testing.T) {
	algebra := class("Algebra", 2, 3)
	history := class("History", 30, 9)
	classes := []*model.ClassRecord{algebra, history}

	got, err := selector.Select(classes, today, fixedDraw(0.1))
	require.NoError(t, err)
	assert.Same(t, algebra, got)

	got, err = selector.Select(classes, today, fixedDraw(0.99))
	require.NoError(t, err)
	assert.Same(t, history, got)
}

func TestSelectFallsBackToLast(t *testing.T) {
	classes := []*model.ClassRecord{class("A", 1, 5), class("B", 1, 5)}
	got, err := selector.SelectAt(classes, today, 1e9)
	require.NoError(t, err)
	assert.Same(t, classes[1], got)
}

func TestWeightMonotonicity(t *testing.T) {
	low := class("X", 5, 2)
	high := class("X", 5, 8)
	assert.Greater(t, selector.Weight(low, today), selector.Weight(high, today),
		"lower confidence should weigh more")

	soon := class("Y", 1, 5)
	later := class("Y", 20, 5)
	assert.Greater(t, selector.Weight(soon, today), selector.Weight(later, today),
		"sooner exam should weigh more")
}

func TestPastExamClampsToZeroDays(t *testing.T) {
	past := class("Old", -3, 10)
	assert.Equal(t, 0.0, selector.DaysUntil(past, today))
	assert.InDelta(t, 1.0, selector.Weight(past, today), 1e-9)
}

func TestSelectDeterministicWithSeed(t *testing.T) {
	classes := []*model.ClassRecord{class("A", 3, 5), class("B", 3, 5), class("C", 3, 5)}
	first, err := selector.Select(classes, today, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	second, err := selector.Select(classes, today, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestSelectCoverage(t *testing.T) {
	classes := []*model.ClassRecord{
		class("Algebra", 2, 3),
		class("History", 30, 9),
		class("Biology", 90, 10),
		class("Chemistry", 0, 1),
	}
	seen := map[*model.ClassRecord]int{}
	src := selector.NewSource()
	for i := 0; i < 20000; i++ {
		got, err := selector.Select(classes, today, src)
		require.NoError(t, err)
		seen[got]++
	}
	for _, c := range classes {
		assert.Positive(t, seen[c], "%s was never selected", c.Name)
	}
}
