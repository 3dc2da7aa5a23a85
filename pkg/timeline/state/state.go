// Package state implements the scroll-driven emphasis state machine.
//
// One milestone is "active" at a time: the one whose rendered position is
// nearest the vertical center of the viewport. Milestones before it are
// "past", milestones after it "future". Hover is an orthogonal transient
// override: while a milestone is hovered it alone is fully emphasized,
// and un-hovering restores the exact scroll-computed pattern.
//
// TimelineState is an immutable value. Transitions return a new state,
// which keeps the machine trivially idempotent and free of ambient
// mutable globals: the composition root owns the current value and
// threads it through.
package state

import (
	"math"

	"github.com/amandersonyou/impact-timeline/pkg/timeline/layout"
)

// Emphasis is a discrete visual weight applied to a milestone.
type Emphasis int

const (
	// EmphasisFuture is the minimal weight for not-yet-reached milestones.
	EmphasisFuture Emphasis = iota
	// EmphasisPast is the lowered-but-nonzero weight for passed milestones.
	EmphasisPast
	// EmphasisActive is the full weight for the active (or hovered) milestone.
	EmphasisActive
)

// String returns the emphasis name.
func (e Emphasis) String() string {
	switch e {
	case EmphasisActive:
		return "active"
	case EmphasisPast:
		return "past"
	default:
		return "future"
	}
}

// Opacity returns the display opacity for the emphasis level.
func (e Emphasis) Opacity() float64 {
	switch e {
	case EmphasisActive:
		return 1.0
	case EmphasisPast:
		return 0.55
	default:
		return 0.15
	}
}

// None marks the absence of an active or hovered index.
const None = -1

// TimelineState is the complete interaction state for a rendered
// timeline. The zero value is unusable; construct with New.
type TimelineState struct {
	count  int
	active int
	hover  int
}

// New creates a state for count milestones with the given initial active
// index (use None for no initial emphasis).
func New(count, initialActive int) TimelineState {
	s := TimelineState{count: count, active: None, hover: None}
	if initialActive >= 0 && initialActive < count {
		s.active = initialActive
	}
	return s
}

// Count returns the number of milestones tracked.
func (s TimelineState) Count() int { return s.count }

// Active returns the scroll-computed active index, or None.
func (s TimelineState) Active() int { return s.active }

// Hovered returns the hover-override index, or None.
func (s TimelineState) Hovered() int { return s.hover }

// WithActive returns the state with the active index set. Out-of-range
// indices are ignored. The second result reports whether the state
// actually changed; re-entering the same active index is a no-op.
func (s TimelineState) WithActive(i int) (TimelineState, bool) {
	if i < 0 || i >= s.count || i == s.active {
		return s, false
	}
	s.active = i
	return s, true
}

// WithHover returns the state with the hover override applied.
// The scroll-active index is retained underneath the override.
func (s TimelineState) WithHover(i int) (TimelineState, bool) {
	if i < 0 || i >= s.count || i == s.hover {
		return s, false
	}
	s.hover = i
	return s, true
}

// WithoutHover clears the hover override, restoring the pure
// scroll-computed emphasis pattern.
func (s TimelineState) WithoutHover() (TimelineState, bool) {
	if s.hover == None {
		return s, false
	}
	s.hover = None
	return s, true
}

// EmphasisFor returns the emphasis level for milestone i.
//
// While a hover override is in effect, the hovered milestone is active
// and every other milestone is future (minimal), regardless of the
// scroll state. Otherwise the pattern is a pure function of the active
// index: before it past, at it active, after it future.
func (s TimelineState) EmphasisFor(i int) Emphasis {
	if s.hover != None {
		if i == s.hover {
			return EmphasisActive
		}
		return EmphasisFuture
	}
	if s.active == None {
		return EmphasisFuture
	}
	switch {
	case i < s.active:
		return EmphasisPast
	case i == s.active:
		return EmphasisActive
	default:
		return EmphasisFuture
	}
}

// Levels returns the emphasis for every milestone index in order.
func (s TimelineState) Levels() []Emphasis {
	out := make([]Emphasis, s.count)
	for i := range out {
		out[i] = s.EmphasisFor(i)
	}
	return out
}

// NearestCenter returns the index of the milestone whose y-coordinate is
// closest to the viewport's vertical center, or None for an empty slice.
// Ties resolve to the earlier milestone.
func NearestCenter(results []layout.Result, scrollOffset, viewportHeight float64) int {
	if len(results) == 0 {
		return None
	}
	center := scrollOffset + viewportHeight/2

	best := 0
	bestDist := math.Abs(results[0].Y - center)
	for i := 1; i < len(results); i++ {
		if d := math.Abs(results[i].Y - center); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
