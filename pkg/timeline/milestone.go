// Package timeline defines the milestone data model and dataset loading.
//
// A dataset is an ordered collection of dated milestones. Milestones are
// immutable after load: loaders parse, validate, and sort once, and every
// downstream consumer (layout, state, rendering) works on the sorted slice.
// The sort order doubles as the display order and determines which side of
// the axis a milestone lands on.
package timeline

import (
	"sort"
	"time"

	"github.com/amandersonyou/impact-timeline/pkg/errors"
)

// Milestone is a single dated event on the timeline.
//
// EndDate is optional: the zero time means the milestone is a point event.
// When EndDate is set and strictly after Date, the milestone is a span and
// is rendered as an extent instead of a point.
type Milestone struct {
	Date        time.Time
	EndDate     time.Time
	Title       string
	Description string
	Category    string
}

// IsSpan reports whether the milestone covers a date range rather than a
// single point. An EndDate equal to Date is treated as a point event.
func (m Milestone) IsSpan() bool {
	return !m.EndDate.IsZero() && m.EndDate.After(m.Date)
}

// Validate checks the milestone's internal invariants.
func (m Milestone) Validate() error {
	if m.Date.IsZero() {
		return errors.New(errors.ErrCodeInvalidDate, "milestone %q has no date", m.Title)
	}
	if m.Title == "" {
		return errors.New(errors.ErrCodeInvalidInput, "milestone at %s has no title", m.Date.Format("2006-01-02"))
	}
	if !m.EndDate.IsZero() && m.EndDate.Before(m.Date) {
		return errors.New(errors.ErrCodeEndBeforeStart,
			"milestone %q ends %s before it starts %s",
			m.Title, m.EndDate.Format("2006-01-02"), m.Date.Format("2006-01-02"))
	}
	return nil
}

// Dataset is an immutable, date-sorted collection of milestones.
type Dataset struct {
	Milestones []Milestone
}

// NewDataset validates, sorts, and wraps a slice of milestones.
// The input slice is not retained. An empty input yields an EMPTY_DATASET
// error: callers must surface this before any layout is attempted.
func NewDataset(ms []Milestone) (*Dataset, error) {
	if len(ms) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyDataset, "no milestones in dataset")
	}

	sorted := make([]Milestone, len(ms))
	copy(sorted, ms)
	for _, m := range sorted {
		if err := m.Validate(); err != nil {
			return nil, err
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	return &Dataset{Milestones: sorted}, nil
}

// Len returns the number of milestones.
func (d *Dataset) Len() int { return len(d.Milestones) }

// YearRange returns the first and last calendar years touched by the
// dataset, including span end dates.
func (d *Dataset) YearRange() (first, last int) {
	if len(d.Milestones) == 0 {
		return 0, 0
	}
	first = d.Milestones[0].Date.Year()
	last = first
	for _, m := range d.Milestones {
		if y := m.Date.Year(); y > last {
			last = y
		}
		if m.IsSpan() {
			if y := m.EndDate.Year(); y > last {
				last = y
			}
		}
	}
	return first, last
}
