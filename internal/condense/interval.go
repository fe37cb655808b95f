package condense

// Interval is a time range in seconds with Start < End. Intervals are
// never mutated in place; transformations produce new values.
type Interval struct {
	Start float64
	End   float64
}

// Duration returns the interval length in seconds.
func (iv Interval) Duration() float64 {
	return iv.End - iv.Start
}

// Overlaps reports whether the two intervals share any time, including a
// single touching point.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start <= other.End && other.Start <= iv.End
}

// Contains reports whether other lies entirely within iv.
func (iv Interval) Contains(other Interval) bool {
	return iv.Start <= other.Start && other.End <= iv.End
}

// Subtract removes the overlap with cut from iv, returning the zero, one,
// or two remainders that have positive duration.
func (iv Interval) Subtract(cut Interval) []Interval {
	if cut.End <= iv.Start || cut.Start >= iv.End {
		return []Interval{iv}
	}
	var out []Interval
	if cut.Start > iv.Start {
		out = append(out, Interval{Start: iv.Start, End: cut.Start})
	}
	if cut.End < iv.End {
		out = append(out, Interval{Start: cut.End, End: iv.End})
	}
	return out
}
