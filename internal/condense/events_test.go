package condense

import (
	"errors"
	"testing"

	"github.com/welpo/shuku/internal/subtitles"
)

func TestCompileSkipPatternsAnchoring(t *testing.T) {
	patterns, err := CompileSkipPatterns([]string{`\([^)]*\)`})
	if err != nil {
		t.Fatalf("CompileSkipPatterns: %v", err)
	}
	if !patterns[0].MatchString("(laughs)") {
		t.Error("full-line match should hit")
	}
	if patterns[0].MatchString("Wait, (laughs)") {
		t.Error("substring must not match: patterns are anchored")
	}
}

func TestCompileSkipPatternsInvalid(t *testing.T) {
	if _, err := CompileSkipPatterns([]string{`[unclosed`}); err == nil {
		t.Fatal("expected error for invalid pattern")
	}
}

func TestNormalizeEventsFiltering(t *testing.T) {
	patterns, err := CompileSkipPatterns([]string{`\([^)]*\)`, `♪.*`})
	if err != nil {
		t.Fatal(err)
	}
	events := []subtitles.Event{
		{Start: 1, End: 3, Text: "Hello."},
		{Start: 4, End: 6, Text: "(laughs)"},
		{Start: 7, End: 9, Text: "Wait, (laughs)"},
		{Start: 10, End: 12, Text: "♪ opening theme ♪"},
		{Start: 13, End: 13, Text: "zero duration"},
		{Start: 14, End: 16, Text: `{\i1}(sobs){\i0}`},
	}
	got, err := NormalizeEvents(events, patterns)
	if err != nil {
		t.Fatalf("NormalizeEvents: %v", err)
	}
	want := []Interval{{1, 3}, {7, 9}}
	if len(got) != len(want) {
		t.Fatalf("intervals = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("interval %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestNormalizeEventsMatchesPlainText(t *testing.T) {
	// Pattern matching must see stripped text, not markup.
	patterns, err := CompileSkipPatterns([]string{`\[.*\]`})
	if err != nil {
		t.Fatal(err)
	}
	events := []subtitles.Event{
		{Start: 0, End: 2, Text: "<i>[door slams]</i>"},
		{Start: 3, End: 5, Text: "<i>Actual dialogue</i>"},
	}
	got, err := NormalizeEvents(events, patterns)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != (Interval{3, 5}) {
		t.Errorf("intervals = %v, want [{3 5}]", got)
	}
}

func TestNormalizeEventsInvalidTiming(t *testing.T) {
	events := []subtitles.Event{{Start: 5, End: 4, Text: "backwards"}}
	_, err := NormalizeEvents(events, nil)
	if !errors.Is(err, ErrInvalidTiming) {
		t.Fatalf("err = %v, want ErrInvalidTiming", err)
	}
}

func TestNormalizeEventsSortsByStart(t *testing.T) {
	events := []subtitles.Event{
		{Start: 10, End: 11, Text: "late"},
		{Start: 1, End: 2, Text: "early"},
		{Start: 1, End: 4, Text: "early tie keeps input order"},
	}
	got, err := NormalizeEvents(events, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := []Interval{{1, 2}, {1, 4}, {10, 11}}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("interval %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestNormalizeEventsNoPatterns(t *testing.T) {
	events := []subtitles.Event{{Start: 0, End: 1, Text: "(kept: no patterns configured)"}}
	got, err := NormalizeEvents(events, nil)
	if err != nil || len(got) != 1 {
		t.Fatalf("got %v, %v", got, err)
	}
}
