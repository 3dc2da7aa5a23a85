package state

import (
	"testing"

	"github.com/amandersonyou/impact-timeline/pkg/timeline/layout"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		count      int
		initial    int
		wantActive int
	}{
		{"starts at zero", 5, 0, 0},
		{"starts at none", 5, None, None},
		{"out of range falls back to none", 5, 9, None},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.count, tt.initial)
			if s.Active() != tt.wantActive {
				t.Errorf("Active() = %d, want %d", s.Active(), tt.wantActive)
			}
		})
	}
}

// Active index moving to 2 marks 0 and 1 as past, 2 active, none future.
func TestScrollTransitionScenario(t *testing.T) {
	s := New(3, 0)

	s, changed := s.WithActive(2)
	if !changed {
		t.Fatal("WithActive(2) should report a change")
	}

	want := []Emphasis{EmphasisPast, EmphasisPast, EmphasisActive}
	for i, lvl := range s.Levels() {
		if lvl != want[i] {
			t.Errorf("milestone %d emphasis = %s, want %s", i, lvl, want[i])
		}
	}
}

func TestTransitionIdempotent(t *testing.T) {
	s := New(4, 1)

	same, changed := s.WithActive(1)
	if changed {
		t.Error("re-entering the same active index should be a no-op")
	}
	if same != s {
		t.Error("no-op transition should return an identical state")
	}

	if _, changed := s.WithActive(-1); changed {
		t.Error("negative index should be ignored")
	}
	if _, changed := s.WithActive(4); changed {
		t.Error("out-of-range index should be ignored")
	}
}

// Hovering milestone 0 while active is 2 emphasizes only 0; un-hover
// restores the active=2 pattern exactly.
func TestHoverExcursionScenario(t *testing.T) {
	s := New(3, 0)
	s, _ = s.WithActive(2)
	before := s.Levels()

	hovered, changed := s.WithHover(0)
	if !changed {
		t.Fatal("WithHover(0) should report a change")
	}
	want := []Emphasis{EmphasisActive, EmphasisFuture, EmphasisFuture}
	for i, lvl := range hovered.Levels() {
		if lvl != want[i] {
			t.Errorf("hovered: milestone %d emphasis = %s, want %s", i, lvl, want[i])
		}
	}
	if hovered.Active() != 2 {
		t.Errorf("scroll-active index lost during hover: %d", hovered.Active())
	}

	restored, changed := hovered.WithoutHover()
	if !changed {
		t.Fatal("WithoutHover should report a change")
	}
	for i, lvl := range restored.Levels() {
		if lvl != before[i] {
			t.Errorf("restored: milestone %d emphasis = %s, want %s", i, lvl, before[i])
		}
	}
}

func TestHoverNoop(t *testing.T) {
	s := New(3, 1)
	if _, changed := s.WithoutHover(); changed {
		t.Error("WithoutHover with no hover should be a no-op")
	}
	s, _ = s.WithHover(2)
	if _, changed := s.WithHover(2); changed {
		t.Error("re-hovering the same index should be a no-op")
	}
}

func TestActiveDuringHover(t *testing.T) {
	// Scroll updates arriving during a hover excursion land in the
	// underlying state and win after un-hover.
	s := New(4, 0)
	s, _ = s.WithHover(3)
	s, changed := s.WithActive(2)
	if !changed {
		t.Fatal("active update during hover should apply")
	}
	s, _ = s.WithoutHover()
	if s.EmphasisFor(2) != EmphasisActive {
		t.Error("active index set during hover should survive un-hover")
	}
}

func TestEmphasisNoneActive(t *testing.T) {
	s := New(3, None)
	for i, lvl := range s.Levels() {
		if lvl != EmphasisFuture {
			t.Errorf("milestone %d emphasis = %s, want future with no active", i, lvl)
		}
	}
}

func TestOpacityOrdering(t *testing.T) {
	if !(EmphasisActive.Opacity() > EmphasisPast.Opacity()) {
		t.Error("active opacity should exceed past")
	}
	if !(EmphasisPast.Opacity() > EmphasisFuture.Opacity()) {
		t.Error("past opacity should exceed future")
	}
	if EmphasisFuture.Opacity() <= 0 {
		t.Error("future opacity should stay nonzero-visible or minimal but non-negative")
	}
}

func TestNearestCenter(t *testing.T) {
	results := []layout.Result{
		{Index: 0, Y: 100},
		{Index: 1, Y: 500},
		{Index: 2, Y: 900},
	}

	tests := []struct {
		name           string
		scroll         float64
		viewportHeight float64
		want           int
	}{
		{"top of page", 0, 300, 0},
		{"middle milestone centered", 350, 300, 1},
		{"bottom", 800, 300, 2},
		{"tie resolves to earlier", 0, 600, 0}, // center 300, equidistant from 100 and 500
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NearestCenter(results, tt.scroll, tt.viewportHeight); got != tt.want {
				t.Errorf("NearestCenter = %d, want %d", got, tt.want)
			}
		})
	}

	if got := NearestCenter(nil, 0, 300); got != None {
		t.Errorf("NearestCenter(empty) = %d, want None", got)
	}
}
