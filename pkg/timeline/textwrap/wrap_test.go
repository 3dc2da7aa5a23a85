package textwrap

import (
	"strings"
	"testing"
)

// runeWidth measures one unit per rune, so maxWidth reads as a column
// count in these tests.
func runeWidth(line string) float64 {
	return float64(len([]rune(line)))
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxWidth float64
		want     []string
	}{
		{
			name:     "fits on one line",
			text:     "hello world",
			maxWidth: 20,
			want:     []string{"hello world"},
		},
		{
			name:     "breaks between words",
			text:     "the quick brown fox jumps",
			maxWidth: 10,
			want:     []string{"the quick", "brown fox", "jumps"},
		},
		{
			name:     "one word per line",
			text:     "alpha beta gamma",
			maxWidth: 5,
			want:     []string{"alpha", "beta", "gamma"},
		},
		{
			name:     "overlong word kept unsplit",
			text:     "a incomprehensibilities b",
			maxWidth: 6,
			want:     []string{"a", "incomprehensibilities", "b"},
		},
		{
			name:     "leading overlong word",
			text:     "incomprehensibilities then short",
			maxWidth: 10,
			want:     []string{"incomprehensibilities", "then short"},
		},
		{
			name:     "collapses whitespace runs",
			text:     "  spaced   out\twords \n here ",
			maxWidth: 11,
			want:     []string{"spaced out", "words here"},
		},
		{
			name:     "empty text",
			text:     "",
			maxWidth: 10,
			want:     nil,
		},
		{
			name:     "whitespace only",
			text:     "   \t\n  ",
			maxWidth: 10,
			want:     nil,
		},
		{
			name:     "exact fit is kept",
			text:     "ab cd",
			maxWidth: 5,
			want:     []string{"ab cd"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.text, tt.maxWidth, runeWidth)
			if len(got) != len(tt.want) {
				t.Fatalf("Wrap() = %q, want %q", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("line %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

// Wrapping must preserve the word sequence exactly: no word dropped,
// none duplicated.
func TestWrapPreservesWords(t *testing.T) {
	texts := []string{
		"a short line",
		"the quick brown fox jumps over the lazy dog",
		"incomprehensibilities a b c incomprehensibilities",
		"one",
	}
	for _, text := range texts {
		for _, width := range []float64{1, 4, 9, 25, 100} {
			lines := Wrap(text, width, runeWidth)
			joined := strings.Join(lines, " ")
			want := strings.Join(strings.Fields(text), " ")
			if joined != want {
				t.Errorf("Wrap(%q, %v) lost words: got %q, want %q", text, width, joined, want)
			}
		}
	}
}

// Every committed line except a single overlong word fits maxWidth.
func TestWrapWidthInvariant(t *testing.T) {
	text := "some reasonably varied words including incomprehensibilities and short bits"
	for _, width := range []float64{5, 8, 12, 30} {
		for _, line := range Wrap(text, width, runeWidth) {
			if runeWidth(line) > width && strings.Contains(line, " ") {
				t.Errorf("multi-word line %q exceeds width %v", line, width)
			}
		}
	}
}

func TestLineCount(t *testing.T) {
	if got := LineCount("the quick brown fox jumps", 10, runeWidth); got != 3 {
		t.Errorf("LineCount = %d, want 3", got)
	}
	if got := LineCount("", 10, runeWidth); got != 0 {
		t.Errorf("LineCount on empty = %d, want 0", got)
	}
}

func TestCharWidth(t *testing.T) {
	m := CharWidth(7.5)
	if got := m("abcd"); got != 30 {
		t.Errorf("CharWidth(7.5)(abcd) = %v, want 30", got)
	}
	// Rune count, not byte count.
	if got := m("héllo"); got != 37.5 {
		t.Errorf("CharWidth(7.5)(héllo) = %v, want 37.5", got)
	}
}
