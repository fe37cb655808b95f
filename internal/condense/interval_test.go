package condense

import "testing"

func TestIntervalSubtract(t *testing.T) {
	cut := Interval{10, 20}
	tests := []struct {
		name string
		in   Interval
		want []Interval
	}{
		{"disjoint before", Interval{1, 5}, []Interval{{1, 5}}},
		{"disjoint after", Interval{25, 30}, []Interval{{25, 30}}},
		{"left overlap", Interval{5, 15}, []Interval{{5, 10}}},
		{"right overlap", Interval{15, 25}, []Interval{{20, 25}}},
		{"contained", Interval{12, 18}, nil},
		{"surrounds", Interval{5, 25}, []Interval{{5, 10}, {20, 25}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Subtract(cut)
			if len(got) != len(tt.want) {
				t.Fatalf("Subtract = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("remainder %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestIntervalOverlapsClosed(t *testing.T) {
	a := Interval{1, 5}
	if !a.Overlaps(Interval{5, 8}) {
		t.Error("touching intervals overlap under closed comparison")
	}
	if a.Overlaps(Interval{6, 8}) {
		t.Error("disjoint intervals must not overlap")
	}
}
