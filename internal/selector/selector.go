// Package selector picks the next class to study with a weighted random draw.
package selector

import (
	"errors"
	"math/rand"
	"time"

	"github.com/verte-zerg/studypick/internal/model"
)

// ErrEmptySet is returned when there is nothing to select from.
var ErrEmptySet = errors.New("no classes to select from")

// Source yields uniform draws in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// NewSource returns a Source seeded with the current time.
func NewSource() Source {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// DaysUntil returns the fractional days from now until the exam, floored at zero.
func DaysUntil(c *model.ClassRecord, now time.Time) float64 {
	days := c.NextTest.Sub(now).Hours() / 24
	if days < 0 {
		return 0
	}
	return days
}

// Weight favors sooner exams and lower confidence. It is always > 0 for
// confidence in [1,10].
func Weight(c *model.ClassRecord, now time.Time) float64 {
	return 1/(DaysUntil(c, now)+1) + float64(10-c.Confidence)
}

// Weights returns the weight of every class in order.
func Weights(classes []*model.ClassRecord, now time.Time) []float64 {
	weights := make([]float64, len(classes))
	for i, c := range classes {
		weights[i] = Weight(c, now)
	}
	return weights
}

// Select draws one class with probability proportional to its weight.
func Select(classes []*model.ClassRecord, now time.Time, rnd Source) (*model.ClassRecord, error) {
	if len(classes) == 0 {
		return nil, ErrEmptySet
	}
	total := 0.0
	for _, w := range Weights(classes, now) {
		total += w
	}
	return SelectAt(classes, now, rnd.Float64()*total)
}

// SelectAt returns the first class whose cumulative weight reaches r.
// Rounding can leave r above the final sum; the last class is returned then.
func SelectAt(classes []*model.ClassRecord, now time.Time, r float64) (*model.ClassRecord, error) {
	if len(classes) == 0 {
		return nil, ErrEmptySet
	}
	acc := 0.0
	for i, w := range Weights(classes, now) {
		acc += w
		if acc >= r {
			return classes[i], nil
		}
	}
	return classes[len(classes)-1], nil
}
