package stats

import (
	"cmp"
	"maps"
	"slices"
)

// Counter tracks occurrence counts per string key.
type Counter map[string]int

// Inc records one occurrence of key.
func (c Counter) Inc(key string) {
	c[key]++
}

// Total returns the sum of all counts.
func (c Counter) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}

	return total
}

// Clone returns an independent copy.
func (c Counter) Clone() Counter {
	return maps.Clone(c)
}

// Entry is one key/count pair in most-common order.
type Entry struct {
	Key   string
	Count int
}

// MostCommon returns entries ordered by descending count, ties broken by
// ascending key so output is deterministic. k <= 0 returns all entries.
func (c Counter) MostCommon(k int) []Entry {
	entries := make([]Entry, 0, len(c))
	for key, n := range c {
		entries = append(entries, Entry{Key: key, Count: n})
	}

	slices.SortFunc(entries, func(a, b Entry) int {
		if a.Count != b.Count {
			return cmp.Compare(b.Count, a.Count)
		}

		return cmp.Compare(a.Key, b.Key)
	})

	if k > 0 && len(entries) > k {
		entries = entries[:k]
	}

	return entries
}
