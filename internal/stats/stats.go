// Package stats folds annotation records into corpus-wide descriptive
// statistics in a single pass: frequency counters plus the per-image
// box-count history. Memory stays proportional to the number of distinct
// keys, not the corpus size.
package stats

import (
	"errors"
	"math"
	"slices"

	"github.com/sumidera/panostat/internal/dataset"
)

// ErrNoSamples is returned by Summary before any Update call: mean,
// median, min and max over an empty box-count history are undefined.
var ErrNoSamples = errors.New("no samples accumulated")

// Stats accumulates running statistics over a stream of annotation
// records. Not safe for concurrent use; a single consuming pass owns it.
type Stats struct {
	imageStatus   Counter
	conditions    Counter
	toothIDs      Counter
	boxesPerImage []int
	totalBoxes    int
}

// New returns an empty accumulator.
func New() *Stats {
	return &Stats{
		imageStatus: Counter{},
		conditions:  Counter{},
		toothIDs:    Counter{},
	}
}

// Update folds one annotation record into the running counters. The
// record's object count becomes one entry of the box-count history;
// present tooth IDs, true-valued conditions and non-empty image-status
// labels feed the three frequency counters.
func (s *Stats) Update(ann dataset.Annotation) {
	objs := ann.Objects()

	s.boxesPerImage = append(s.boxesPerImage, len(objs))
	s.totalBoxes += len(objs)

	for _, obj := range objs {
		if obj.ToothID != nil {
			s.toothIDs.Inc(obj.ToothID.String())
		}

		for name, applies := range obj.Conditions {
			if applies {
				s.conditions.Inc(name)
			}
		}

		if obj.ImageStatus != "" {
			s.imageStatus.Inc(obj.ImageStatus)
		}
	}
}

// BoxStats are descriptive statistics of the per-image box-count history.
type BoxStats struct {
	Mean   float64 `json:"mean"   yaml:"mean"`
	Median float64 `json:"median" yaml:"median"`
	Min    int     `json:"min"    yaml:"min"`
	Max    int     `json:"max"    yaml:"max"`
}

// Summary is an immutable snapshot of the accumulated statistics.
type Summary struct {
	Images        int      `json:"images"          yaml:"images"`
	Boxes         int      `json:"boxes"           yaml:"boxes"`
	BoxesPerImage BoxStats `json:"boxes_per_image" yaml:"boxes_per_image"`
	ImageStatus   Counter  `json:"image_status"    yaml:"image_status"`
	Conditions    Counter  `json:"conditions"      yaml:"conditions"`
	ToothIDs      Counter  `json:"tooth_ids"       yaml:"tooth_ids"`
}

// Summary returns the snapshot. It never mutates the accumulator, so
// repeated calls with no intervening Update return equal snapshots; the
// counters are independent copies.
func (s *Stats) Summary() (Summary, error) {
	if len(s.boxesPerImage) == 0 {
		return Summary{}, ErrNoSamples
	}

	return Summary{
		Images: len(s.boxesPerImage),
		Boxes:  s.totalBoxes,
		BoxesPerImage: BoxStats{
			Mean:   round2(mean(s.boxesPerImage)),
			Median: median(s.boxesPerImage),
			Min:    slices.Min(s.boxesPerImage),
			Max:    slices.Max(s.boxesPerImage),
		},
		ImageStatus: s.imageStatus.Clone(),
		Conditions:  s.conditions.Clone(),
		ToothIDs:    s.toothIDs.Clone(),
	}, nil
}

func mean(xs []int) float64 {
	sum := 0
	for _, x := range xs {
		sum += x
	}

	return float64(sum) / float64(len(xs))
}

// median uses the midpoint-average rule for even-length histories.
func median(xs []int) float64 {
	sorted := slices.Clone(xs)
	slices.Sort(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return float64(sorted[mid])
	}

	return float64(sorted[mid-1]+sorted[mid]) / 2
}

const roundPrecision = 100

func round2(v float64) float64 {
	return math.Round(v*roundPrecision) / roundPrecision
}
