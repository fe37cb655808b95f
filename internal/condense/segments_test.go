package condense

import (
	"errors"
	"math"
	"testing"
)

func TestBuildSegmentsMergesWithPadding(t *testing.T) {
	intervals := []Interval{{1, 3}, {2, 4}, {10, 11}}
	segments, err := BuildSegments(intervals, 0.5, 20)
	if err != nil {
		t.Fatalf("BuildSegments: %v", err)
	}
	want := []Segment{{0.5, 4.5}, {9.5, 11.5}}
	if len(segments) != len(want) {
		t.Fatalf("segments = %v, want %v", segments, want)
	}
	for i := range want {
		if segments[i] != want[i] {
			t.Errorf("segment %d = %v, want %v", i, segments[i], want[i])
		}
	}
	if d := CondensedDuration(segments); math.Abs(d-6.0) > 1e-9 {
		t.Errorf("CondensedDuration = %v, want 6.0", d)
	}
}

func TestBuildSegmentsClampsToMediaBounds(t *testing.T) {
	segments, err := BuildSegments([]Interval{{0.2, 1}, {19, 19.8}}, 1.0, 20)
	if err != nil {
		t.Fatal(err)
	}
	want := []Segment{{0, 2}, {18, 20}}
	for i := range want {
		if segments[i] != want[i] {
			t.Errorf("segment %d = %v, want %v", i, segments[i], want[i])
		}
	}
}

func TestBuildSegmentsTouchingMerge(t *testing.T) {
	// Abutting intervals merge into one segment.
	segments, err := BuildSegments([]Interval{{1, 3}, {3, 5}}, 0, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(segments) != 1 || segments[0] != (Segment{1, 5}) {
		t.Errorf("segments = %v, want [{1 5}]", segments)
	}
}

func TestBuildSegmentsContainment(t *testing.T) {
	segments, err := BuildSegments([]Interval{{1, 10}, {2, 3}, {4, 6}}, 0, 20)
	if err != nil {
		t.Fatal(err)
	}
	if len(segments) != 1 || segments[0] != (Segment{1, 10}) {
		t.Errorf("segments = %v, want [{1 10}]", segments)
	}
}

func TestBuildSegmentsDisjointAndOrdered(t *testing.T) {
	intervals := []Interval{{5, 7}, {1, 2}, {6, 9}, {13, 14}, {2.5, 3}}
	segments, err := BuildSegments(intervals, 0.25, 30)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(segments); i++ {
		if segments[i].Start <= segments[i-1].End {
			t.Errorf("segments %d and %d overlap or touch: %v", i-1, i, segments)
		}
	}
	for _, s := range segments {
		if s.End <= s.Start {
			t.Errorf("degenerate segment %v", s)
		}
	}
}

func TestBuildSegmentsPaddingMonotonicity(t *testing.T) {
	intervals := []Interval{{1, 3}, {8, 9}, {15, 18}}
	small, err := BuildSegments(intervals, 0.5, 60)
	if err != nil {
		t.Fatal(err)
	}
	large, err := BuildSegments(intervals, 2.0, 60)
	if err != nil {
		t.Fatal(err)
	}
	if CondensedDuration(large) < CondensedDuration(small) {
		t.Errorf("more padding shrank the condensed duration: %v < %v",
			CondensedDuration(large), CondensedDuration(small))
	}
}

func TestBuildSegmentsIdempotentRemerge(t *testing.T) {
	segments, err := BuildSegments([]Interval{{1, 3}, {2, 4}, {10, 11}}, 0.5, 20)
	if err != nil {
		t.Fatal(err)
	}
	asIntervals := make([]Interval, len(segments))
	for i, s := range segments {
		asIntervals[i] = Interval{Start: s.Start, End: s.End}
	}
	again, err := BuildSegments(asIntervals, 0, 20)
	if err != nil {
		t.Fatal(err)
	}
	if len(again) != len(segments) {
		t.Fatalf("re-merge changed segment count: %v vs %v", again, segments)
	}
	for i := range segments {
		if again[i] != segments[i] {
			t.Errorf("segment %d changed on re-merge: %v vs %v", i, again[i], segments[i])
		}
	}
}

func TestBuildSegmentsNoDialogue(t *testing.T) {
	_, err := BuildSegments(nil, 0.5, 20)
	if !errors.Is(err, ErrNoDialogue) {
		t.Fatalf("err = %v, want ErrNoDialogue", err)
	}
}

func TestRemapTime(t *testing.T) {
	segments := []Segment{{0.5, 4.5}, {9.5, 11.5}}
	tests := []struct {
		name string
		t    float64
		want float64
	}{
		{"before first segment", 0, 0},
		{"first segment start", 0.5, 0},
		{"inside first segment", 2.5, 2},
		{"first segment end", 4.5, 4},
		{"inside gap maps to next start", 7, 4},
		{"second segment start", 9.5, 4},
		{"inside second segment", 10.5, 5},
		{"past the last segment", 15, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RemapTime(segments, tt.t); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("RemapTime(%v) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}
}
