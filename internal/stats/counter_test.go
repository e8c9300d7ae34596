package stats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sumidera/panostat/internal/stats"
)

// TestCounter_MostCommon verifies descending count order with an
// ascending key tiebreak.
func TestCounter_MostCommon(t *testing.T) {
	t.Parallel()

	counter := stats.Counter{"b": 2, "a": 2, "c": 5, "d": 1}

	entries := counter.MostCommon(0)
	assert.Equal(t, []stats.Entry{
		{Key: "c", Count: 5},
		{Key: "a", Count: 2},
		{Key: "b", Count: 2},
		{Key: "d", Count: 1},
	}, entries)
}

// TestCounter_MostCommonTopK verifies truncation to the first k entries.
func TestCounter_MostCommonTopK(t *testing.T) {
	t.Parallel()

	counter := stats.Counter{"a": 1, "b": 2, "c": 3}

	entries := counter.MostCommon(2)
	assert.Equal(t, []stats.Entry{
		{Key: "c", Count: 3},
		{Key: "b", Count: 2},
	}, entries)
}

// TestCounter_Clone verifies clones are independent.
func TestCounter_Clone(t *testing.T) {
	t.Parallel()

	counter := stats.Counter{"a": 1}
	clone := counter.Clone()

	clone.Inc("a")
	clone.Inc("b")

	assert.Equal(t, stats.Counter{"a": 1}, counter)
	assert.Equal(t, stats.Counter{"a": 2, "b": 1}, clone)
}

// TestCounter_Total sums all counts.
func TestCounter_Total(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, stats.Counter{}.Total())
	assert.Equal(t, 6, stats.Counter{"a": 1, "b": 2, "c": 3}.Total())
}
