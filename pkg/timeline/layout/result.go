package layout

// Side is the horizontal placement of a milestone relative to the axis.
type Side int

const (
	// SideRight holds even-indexed milestones (0-based sorted order).
	SideRight Side = iota
	// SideLeft holds odd-indexed milestones.
	SideLeft
)

// String returns the side name.
func (s Side) String() string {
	if s == SideLeft {
		return "left"
	}
	return "right"
}

// SideFor returns the side for a milestone at the given sorted index.
func SideFor(index int) Side {
	if index%2 == 0 {
		return SideRight
	}
	return SideLeft
}

// Result is the computed layout for a single milestone.
//
// Y (and EndY for spans) are pixel offsets on the compressed vertical
// axis. Title and description are pre-wrapped into lines bounded by
// WrapWidth; DescriptionYOffset positions the description below the
// title so multi-line titles never overlap it.
type Result struct {
	Index              int
	Y                  float64
	EndY               float64 // meaningful only when Span is true
	Span               bool
	Side               Side
	TitleLines         []string
	DescriptionLines   []string
	DescriptionYOffset float64
	WrapWidth          float64
}

// equal reports whether two results are identical, line for line.
func (r Result) equal(o Result) bool {
	if r.Index != o.Index || r.Y != o.Y || r.EndY != o.EndY || r.Span != o.Span ||
		r.Side != o.Side || r.DescriptionYOffset != o.DescriptionYOffset ||
		r.WrapWidth != o.WrapWidth ||
		len(r.TitleLines) != len(o.TitleLines) ||
		len(r.DescriptionLines) != len(o.DescriptionLines) {
		return false
	}
	for i := range r.TitleLines {
		if r.TitleLines[i] != o.TitleLines[i] {
			return false
		}
	}
	for i := range r.DescriptionLines {
		if r.DescriptionLines[i] != o.DescriptionLines[i] {
			return false
		}
	}
	return true
}
