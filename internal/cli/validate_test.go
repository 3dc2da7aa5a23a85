package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/amandersonyou/impact-timeline/pkg/errors"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestValidateAcceptsInWindowDataset(t *testing.T) {
	csv := writeFixture(t, "ok.csv", `date,endDate,title,description,category
2021-03-01,,Founded,The beginning,Founding
2022-06-15,2022-08-01,Series,Summer series,
`)
	cfg := writeFixture(t, "config.toml", "")

	c := New(os.Stderr, LogInfo)
	if err := c.runValidate(csv, cfg); err != nil {
		t.Errorf("runValidate: %v", err)
	}
}

func TestValidateRejectsOutOfWindowPoint(t *testing.T) {
	csv := writeFixture(t, "late.csv", `date,endDate,title,description,category
2021-03-01,,Founded,The beginning,Founding
2027-01-10,,Too late,Beyond the window,
`)
	cfg := writeFixture(t, "config.toml", "")

	c := New(os.Stderr, LogInfo)
	err := c.runValidate(csv, cfg)
	if !errors.Is(err, errors.ErrCodeDateOutOfRange) {
		t.Errorf("runValidate = %v, want DATE_OUT_OF_RANGE", err)
	}
}

func TestValidateRejectsSpanEndingOutsideWindow(t *testing.T) {
	// The start date fits the default 2021-2026 window but the end date
	// does not; render would reject this span, so validate must too.
	csv := writeFixture(t, "overhang.csv", `date,endDate,title,description,category
2026-06-01,2027-03-01,Overhang,Runs past the last configured year,
`)
	cfg := writeFixture(t, "config.toml", "")

	c := New(os.Stderr, LogInfo)
	err := c.runValidate(csv, cfg)
	if !errors.Is(err, errors.ErrCodeDateOutOfRange) {
		t.Errorf("runValidate = %v, want DATE_OUT_OF_RANGE for span end", err)
	}
}

func TestValidateWithoutConfigSkipsWindowCheck(t *testing.T) {
	csv := writeFixture(t, "late.csv", `date,endDate,title,description,category
2030-01-01,,Far future,No window to check against,
`)

	c := New(os.Stderr, LogInfo)
	if err := c.runValidate(csv, ""); err != nil {
		t.Errorf("runValidate without config: %v", err)
	}
}
