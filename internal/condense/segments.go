package condense

import "sort"

// Segment is a maximal merged, padded time range of the source media to
// retain. A built segment list is sorted ascending and pairwise disjoint.
type Segment struct {
	Start float64
	End   float64
}

// Duration returns the segment length in seconds.
func (s Segment) Duration() float64 {
	return s.End - s.Start
}

// BuildSegments pads each interval symmetrically by padding seconds,
// clamped to [0, total], and merges overlapping or touching results into
// the final dialogue timeline. An empty input yields ErrNoDialogue.
func BuildSegments(intervals []Interval, padding, total float64) ([]Segment, error) {
	if len(intervals) == 0 {
		return nil, Wrap(ErrNoDialogue, "segments", "nothing survived filtering", nil)
	}

	padded := make([]Interval, 0, len(intervals))
	for _, iv := range intervals {
		start := iv.Start - padding
		if start < 0 {
			start = 0
		}
		end := iv.End + padding
		if total > 0 && end > total {
			end = total
		}
		if end > start {
			padded = append(padded, Interval{Start: start, End: end})
		}
	}
	if len(padded) == 0 {
		return nil, Wrap(ErrNoDialogue, "segments", "padding clamped every interval away", nil)
	}

	// Upstream emits sorted intervals, but clipping and clamping can
	// reorder; sort again before sweeping.
	sort.SliceStable(padded, func(i, j int) bool {
		return padded[i].Start < padded[j].Start
	})

	segments := []Segment{{Start: padded[0].Start, End: padded[0].End}}
	for _, iv := range padded[1:] {
		last := &segments[len(segments)-1]
		if iv.Start <= last.End {
			// Overlapping or touching: extend the open segment.
			if iv.End > last.End {
				last.End = iv.End
			}
			continue
		}
		segments = append(segments, Segment{Start: iv.Start, End: iv.End})
	}
	return segments, nil
}

// CondensedDuration sums the length of all segments.
func CondensedDuration(segments []Segment) float64 {
	var total float64
	for _, s := range segments {
		total += s.Duration()
	}
	return total
}

// RemapTime maps an absolute source time onto the condensed timeline: the
// sum of segment overlap up to that point. A time inside a removed gap
// lands at the condensed start of the nearest following segment.
func RemapTime(segments []Segment, t float64) float64 {
	var elapsed float64
	for _, s := range segments {
		if t <= s.Start {
			return elapsed
		}
		if t < s.End {
			return elapsed + (t - s.Start)
		}
		elapsed += s.Duration()
	}
	return elapsed
}
