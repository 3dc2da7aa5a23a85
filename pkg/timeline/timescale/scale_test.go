package timescale

import (
	"math"
	"testing"
	"time"

	"github.com/amandersonyou/impact-timeline/pkg/errors"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// compressed returns the 2021-2026 window with a short first year,
// matching the default configuration.
func compressed(t *testing.T) *Scale {
	t.Helper()
	s, err := New([]YearSegment{
		{Year: 2021, Length: 150},
		{Year: 2022, Length: 1100},
		{Year: 2023, Length: 1100},
		{Year: 2024, Length: 1100},
		{Year: 2025, Length: 1100},
		{Year: 2026, Length: 1100},
	}, 100)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name     string
		segments []YearSegment
		gap      float64
	}{
		{
			name:     "empty segments",
			segments: nil,
			gap:      100,
		},
		{
			name:     "negative gap",
			segments: []YearSegment{{Year: 2021, Length: 150}},
			gap:      -1,
		},
		{
			name:     "zero length",
			segments: []YearSegment{{Year: 2021, Length: 0}},
			gap:      100,
		},
		{
			name: "year hole",
			segments: []YearSegment{
				{Year: 2021, Length: 150},
				{Year: 2023, Length: 1100},
			},
			gap: 100,
		},
		{
			name: "descending years",
			segments: []YearSegment{
				{Year: 2022, Length: 150},
				{Year: 2021, Length: 1100},
			},
			gap: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.segments, tt.gap); !errors.Is(err, errors.ErrCodeInvalidSegments) {
				t.Errorf("New() error = %v, want INVALID_SEGMENTS", err)
			}
		})
	}
}

func TestSegmentStarts(t *testing.T) {
	s := compressed(t)

	tests := []struct {
		year int
		want float64
	}{
		{2021, 0},
		{2022, 250},  // 150 + 100 gap
		{2023, 1450}, // 250 + 1100 + 100
		{2026, 5050},
	}

	for _, tt := range tests {
		got, err := s.SegmentStart(tt.year)
		if err != nil {
			t.Fatalf("SegmentStart(%d): %v", tt.year, err)
		}
		if got != tt.want {
			t.Errorf("SegmentStart(%d) = %v, want %v", tt.year, got, tt.want)
		}
	}

	if _, err := s.SegmentStart(2020); !errors.Is(err, errors.ErrCodeDateOutOfRange) {
		t.Errorf("SegmentStart(2020) error = %v, want DATE_OUT_OF_RANGE", err)
	}
}

func TestPositionScenario(t *testing.T) {
	s := compressed(t)

	// 2021-03-01 is day 59 of a 365-day year in a 150px segment.
	got, err := s.Position(date(2021, time.March, 1))
	if err != nil {
		t.Fatalf("Position: %v", err)
	}
	want := 150 * (59.0 / 365.0)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Position(2021-03-01) = %v, want %v", got, want)
	}

	// 2022-06-15 is day 165 of a 365-day year; segment starts at 250.
	got, err = s.Position(date(2022, time.June, 15))
	if err != nil {
		t.Fatalf("Position: %v", err)
	}
	want = 250 + 1100*(165.0/365.0)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Position(2022-06-15) = %v, want %v", got, want)
	}
}

func TestPositionLeapYear(t *testing.T) {
	s := compressed(t)

	// 2024 is a leap year: July 1 is day 182 of 366, not 181 of 365.
	got, err := s.Position(date(2024, time.July, 1))
	if err != nil {
		t.Fatalf("Position: %v", err)
	}
	start, _ := s.SegmentStart(2024)
	want := start + 1100*(182.0/366.0)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Position(2024-07-01) = %v, want %v", got, want)
	}
}

func TestPositionBoundaries(t *testing.T) {
	s := compressed(t)

	// Year start lands exactly on the segment start.
	for _, year := range []int{2021, 2022, 2026} {
		got, err := s.Position(date(year, time.January, 1))
		if err != nil {
			t.Fatalf("Position(%d-01-01): %v", year, err)
		}
		start, _ := s.SegmentStart(year)
		if got != start {
			t.Errorf("Position(%d-01-01) = %v, want segment start %v", year, got, start)
		}
	}

	// The last instant of a year approaches start+length but stays below
	// the next segment's start (the gap separates them).
	got, err := s.Position(date(2022, time.December, 31))
	if err != nil {
		t.Fatalf("Position: %v", err)
	}
	start2022, _ := s.SegmentStart(2022)
	start2023, _ := s.SegmentStart(2023)
	if got <= start2022 || got >= start2022+1100 {
		t.Errorf("Position(2022-12-31) = %v, want within (%v, %v)", got, start2022, start2022+1100)
	}
	if got >= start2023 {
		t.Errorf("Position(2022-12-31) = %v crossed into next segment at %v", got, start2023)
	}
}

func TestPositionMonotonic(t *testing.T) {
	s := compressed(t)

	prev := -1.0
	for d := date(2021, time.January, 1); d.Year() <= 2026; d = d.AddDate(0, 0, 11) {
		got, err := s.Position(d)
		if err != nil {
			t.Fatalf("Position(%s): %v", d.Format("2006-01-02"), err)
		}
		if got <= prev {
			t.Fatalf("Position(%s) = %v not increasing after %v", d.Format("2006-01-02"), got, prev)
		}
		prev = got
	}
}

func TestPositionOutOfRange(t *testing.T) {
	s := compressed(t)

	for _, d := range []time.Time{
		date(2020, time.December, 31),
		date(2027, time.January, 1),
	} {
		if _, err := s.Position(d); !errors.Is(err, errors.ErrCodeDateOutOfRange) {
			t.Errorf("Position(%s) error = %v, want DATE_OUT_OF_RANGE", d.Format("2006-01-02"), err)
		}
	}
}

func TestSpan(t *testing.T) {
	s := compressed(t)

	y, endY, err := s.Span(date(2022, time.March, 1), date(2023, time.March, 1))
	if err != nil {
		t.Fatalf("Span: %v", err)
	}
	if endY <= y {
		t.Errorf("Span endY %v should exceed y %v", endY, y)
	}

	// Both endpoints are the independently mapped positions.
	wantY, _ := s.Position(date(2022, time.March, 1))
	wantEnd, _ := s.Position(date(2023, time.March, 1))
	if y != wantY || endY != wantEnd {
		t.Errorf("Span = (%v, %v), want (%v, %v)", y, endY, wantY, wantEnd)
	}

	if _, _, err := s.Span(date(2022, time.March, 1), date(2030, time.January, 1)); !errors.Is(err, errors.ErrCodeDateOutOfRange) {
		t.Errorf("Span out-of-range error = %v, want DATE_OUT_OF_RANGE", err)
	}
}

func TestHeight(t *testing.T) {
	s := compressed(t)
	// 150 + 5*1100 lengths + 5*100 gaps
	if want := 6150.0; s.Height() != want {
		t.Errorf("Height() = %v, want %v", s.Height(), want)
	}
}

func TestUniform(t *testing.T) {
	s, err := Uniform(2021, 2023, 500, 50)
	if err != nil {
		t.Fatalf("Uniform: %v", err)
	}
	if s.FirstYear() != 2021 || s.LastYear() != 2023 {
		t.Errorf("Uniform range = %d-%d, want 2021-2023", s.FirstYear(), s.LastYear())
	}
	if want := 1600.0; s.Height() != want {
		t.Errorf("Height() = %v, want %v", s.Height(), want)
	}

	if _, err := Uniform(2023, 2021, 500, 50); !errors.Is(err, errors.ErrCodeInvalidSegments) {
		t.Errorf("Uniform inverted range error = %v, want INVALID_SEGMENTS", err)
	}
}
