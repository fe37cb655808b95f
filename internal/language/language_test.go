package language

import "testing"

func TestCanonical(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// 2-letter codes pass through
		{"en", "en"},
		{"EN", "en"},
		{"ja", "ja"},
		// 3-letter codes convert
		{"eng", "en"},
		{"jpn", "ja"},
		{"fra", "fr"},
		{"fre", "fr"},
		{"deu", "de"},
		{"ger", "de"},
		{"zho", "zh"},
		{"chi", "zh"},
		// Nonstandard forms
		{"jp", "ja"},
		{"JP", "ja"},
		{"japanese", "ja"},
		{"English", "en"},
		// Unknown codes pass through lowercased
		{"qaa", "qaa"},
		{" xx ", "xx"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Canonical(tt.input); got != tt.expected {
				t.Errorf("Canonical(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestEquivalent(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"jp", "jpn", true},
		{"jpn", "ja", true},
		{"ja", "japanese", true},
		{"eng", "en", true},
		{"fre", "fra", true},
		{"en", "ja", false},
		{"", "en", false},
		{"en", "", false},
		{"qaa", "qaa", true},
	}
	for _, tt := range tests {
		if got := Equivalent(tt.a, tt.b); got != tt.want {
			t.Errorf("Equivalent(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestToISO3(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"ja", "jpn"},
		{"jp", "jpn"},
		{"en", "eng"},
		{"fr", "fra"},
		{"xyz", "xyz"},
		{"q", "und"},
		{"", "und"},
	}
	for _, tt := range tests {
		if got := ToISO3(tt.input); got != tt.expected {
			t.Errorf("ToISO3(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName("jpn"); got != "Japanese" {
		t.Errorf("DisplayName(jpn) = %q, want Japanese", got)
	}
	if got := DisplayName(""); got != "Unknown" {
		t.Errorf("DisplayName(empty) = %q, want Unknown", got)
	}
	if got := DisplayName("qaa"); got != "QAA" {
		t.Errorf("DisplayName(qaa) = %q, want QAA", got)
	}
}

func TestNormalizeList(t *testing.T) {
	got := NormalizeList([]string{"jpn", "jp", "ja", "", "ENG", "en"})
	want := []string{"ja", "en"}
	if len(got) != len(want) {
		t.Fatalf("NormalizeList = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("NormalizeList[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
