// Package timescale maps calendar dates onto a non-uniformly compressed
// vertical pixel axis.
//
// The axis is piecewise linear: each calendar year is one segment with an
// independently configured pixel length, and consecutive segments are
// separated by a fixed gap. Within a segment, a date's position is its
// exact day-based fraction of the calendar year (leap-year aware), so the
// mapping is monotonic within every segment and across segment joints.
//
// A span crossing a year boundary is kinked at the joint rather than
// linear in elapsed time. That is intentional: the axis itself is
// non-uniform, and both endpoints are mapped independently.
package timescale

import (
	"time"

	"github.com/amandersonyou/impact-timeline/pkg/errors"
)

// YearSegment is one contiguous vertical run on the axis representing a
// single calendar year.
type YearSegment struct {
	Year   int
	Length float64 // pixel length of the segment
}

// Scale is a monotonic piecewise-linear mapping from calendar dates to
// pixel offsets. It is immutable after construction and safe for
// concurrent use.
type Scale struct {
	segments []YearSegment
	starts   []float64 // cumulative start offset per segment
	gap      float64
}

// New builds a scale from ordered year segments and a fixed inter-segment
// gap. Segments must cover consecutive ascending years with positive
// lengths.
func New(segments []YearSegment, gap float64) (*Scale, error) {
	if len(segments) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidSegments, "no year segments configured")
	}
	if gap < 0 {
		return nil, errors.New(errors.ErrCodeInvalidSegments, "negative segment gap %.1f", gap)
	}

	starts := make([]float64, len(segments))
	for i, seg := range segments {
		if seg.Length <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidSegments,
				"segment %d has non-positive length %.1f", seg.Year, seg.Length)
		}
		if i > 0 {
			if seg.Year != segments[i-1].Year+1 {
				return nil, errors.New(errors.ErrCodeInvalidSegments,
					"segments must cover consecutive years: %d follows %d",
					seg.Year, segments[i-1].Year)
			}
			starts[i] = starts[i-1] + segments[i-1].Length + gap
		}
	}

	segs := make([]YearSegment, len(segments))
	copy(segs, segments)
	return &Scale{segments: segs, starts: starts, gap: gap}, nil
}

// Uniform builds a scale covering [firstYear, lastYear] where every year
// has the same pixel length.
func Uniform(firstYear, lastYear int, length, gap float64) (*Scale, error) {
	if lastYear < firstYear {
		return nil, errors.New(errors.ErrCodeInvalidSegments,
			"last year %d precedes first year %d", lastYear, firstYear)
	}
	segs := make([]YearSegment, 0, lastYear-firstYear+1)
	for y := firstYear; y <= lastYear; y++ {
		segs = append(segs, YearSegment{Year: y, Length: length})
	}
	return New(segs, gap)
}

// FirstYear returns the first covered calendar year.
func (s *Scale) FirstYear() int { return s.segments[0].Year }

// LastYear returns the last covered calendar year.
func (s *Scale) LastYear() int { return s.segments[len(s.segments)-1].Year }

// Gap returns the fixed inter-segment gap in pixels.
func (s *Scale) Gap() float64 { return s.gap }

// Segments returns a copy of the configured year segments.
func (s *Scale) Segments() []YearSegment {
	out := make([]YearSegment, len(s.segments))
	copy(out, s.segments)
	return out
}

// SegmentStart returns the cumulative pixel offset at which the given
// year's segment begins.
func (s *Scale) SegmentStart(year int) (float64, error) {
	idx := year - s.FirstYear()
	if idx < 0 || idx >= len(s.segments) {
		return 0, s.outOfRange(year)
	}
	return s.starts[idx], nil
}

// Height returns the total pixel height of the axis, from the start of
// the first segment to the end of the last.
func (s *Scale) Height() float64 {
	last := len(s.segments) - 1
	return s.starts[last] + s.segments[last].Length
}

// Position maps a calendar date to its pixel offset on the axis.
//
// Dates outside the configured year range are rejected with a
// DATE_OUT_OF_RANGE error; the scale never clamps or extrapolates.
func (s *Scale) Position(date time.Time) (float64, error) {
	year := date.Year()
	idx := year - s.FirstYear()
	if idx < 0 || idx >= len(s.segments) {
		return 0, s.outOfRange(year)
	}

	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	nextYearStart := time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC)
	frac := float64(date.Sub(yearStart)) / float64(nextYearStart.Sub(yearStart))

	return s.starts[idx] + frac*s.segments[idx].Length, nil
}

// Span maps both endpoints of a date range independently. The pixel
// extent is endY-y; spans crossing a year joint inherit the axis kink.
func (s *Scale) Span(start, end time.Time) (y, endY float64, err error) {
	y, err = s.Position(start)
	if err != nil {
		return 0, 0, err
	}
	endY, err = s.Position(end)
	if err != nil {
		return 0, 0, err
	}
	return y, endY, nil
}

func (s *Scale) outOfRange(year int) error {
	return errors.New(errors.ErrCodeDateOutOfRange,
		"year %d outside configured range %d-%d", year, s.FirstYear(), s.LastYear())
}
