package timeline

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/amandersonyou/impact-timeline/pkg/errors"
)

// LoadOptions controls dataset loading behavior.
type LoadOptions struct {
	// Strict makes the loader fail on the first malformed row instead of
	// skipping it with a warning.
	Strict bool

	// Logger receives warnings about skipped rows. Nil discards them.
	Logger func(format string, args ...any)
}

func (o LoadOptions) warnf(format string, args ...any) {
	if o.Logger != nil {
		o.Logger(format, args...)
	}
}

// dateFormats are the accepted calendar date layouts, tried in order.
var dateFormats = []string{
	"2006-01-02",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
}

// ParseDate parses a calendar date in any accepted layout.
// The result is normalized to UTC midnight.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, errors.New(errors.ErrCodeInvalidDate, "unparsable date %q", s)
}

// LoadFile loads a dataset from a CSV or YAML file, dispatching on the
// file extension (.yaml/.yml for YAML, everything else CSV).
func LoadFile(path string, opts LoadOptions) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "dataset %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open dataset %s", path)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(f, opts)
	default:
		return LoadCSV(f, opts)
	}
}

// LoadCSV loads a dataset from tabular CSV input.
//
// The first record is a header; column matching is case-insensitive.
// Required columns: date, title, description. Optional: endDate (absent by
// default) and category (defaults to "General" when absent or empty).
//
// Malformed rows (unparsable dates, missing required fields) are skipped
// with a warning unless opts.Strict is set, in which case the first bad
// row aborts the load.
func LoadCSV(r io.Reader, opts LoadOptions) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.New(errors.ErrCodeEmptyDataset, "no milestones in dataset")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read CSV header")
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"date", "title", "description"} {
		if _, ok := cols[required]; !ok {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "missing required column %q", required)
		}
	}

	field := func(record []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var ms []Milestone
	for row := 2; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read CSV row %d", row)
		}

		m, err := milestoneFromFields(
			field(record, "date"),
			field(record, "enddate"),
			field(record, "title"),
			field(record, "description"),
			field(record, "category"),
		)
		if err != nil {
			if opts.Strict {
				return nil, errors.Wrap(errors.GetCode(err), err, "row %d", row)
			}
			opts.warnf("skipping row %d: %s", row, errors.UserMessage(err))
			continue
		}
		ms = append(ms, m)
	}

	return NewDataset(ms)
}

// milestoneFromFields builds and validates a milestone from raw string
// fields shared by the CSV and YAML loaders.
func milestoneFromFields(date, endDate, title, description, category string) (Milestone, error) {
	d, err := ParseDate(date)
	if err != nil {
		return Milestone{}, err
	}

	m := Milestone{
		Date:        d,
		Title:       title,
		Description: description,
		Category:    category,
	}
	if m.Category == "" {
		m.Category = DefaultCategory
	}
	if endDate != "" {
		end, err := ParseDate(endDate)
		if err != nil {
			return Milestone{}, err
		}
		m.EndDate = end
	}

	if err := m.Validate(); err != nil {
		return Milestone{}, err
	}
	return m, nil
}
