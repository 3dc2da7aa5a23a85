package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amandersonyou/impact-timeline/pkg/config"
	"github.com/amandersonyou/impact-timeline/pkg/errors"
	"github.com/amandersonyou/impact-timeline/pkg/timeline"
)

// validateCommand creates the validate command for checking a dataset
// without rendering anything.
func (c *CLI) validateCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a milestone dataset for errors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(args[0], configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML config file")
	return cmd
}

// runValidate loads the dataset strictly and reports what it found. With
// a config, it additionally checks every date against the configured
// axis window.
func (c *CLI) runValidate(input, configPath string) error {
	ds, err := timeline.LoadFile(input, timeline.LoadOptions{Strict: true})
	if err != nil {
		printError("%s", errors.UserMessage(err))
		return err
	}

	first, last := ds.YearRange()
	printSuccess("Dataset is valid")
	printKeyValue("Milestones", fmt.Sprintf("%d", ds.Len()))
	printKeyValue("Years", fmt.Sprintf("%d-%d", first, last))

	categories := map[string]int{}
	spans := 0
	for _, m := range ds.Milestones {
		categories[m.Category]++
		if m.IsSpan() {
			spans++
		}
	}
	printKeyValue("Spans", fmt.Sprintf("%d", spans))
	for name, n := range categories {
		printDetail("%-32s %d", name, n)
	}

	if configPath == "" {
		return nil
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	scale, err := cfg.Axis.Scale()
	if err != nil {
		return err
	}

	outOfRange := 0
	for i, m := range ds.Milestones {
		// Spans must fit both endpoints, matching what render positions.
		perr := func() error {
			if m.IsSpan() {
				_, _, err := scale.Span(m.Date, m.EndDate)
				return err
			}
			_, err := scale.Position(m.Date)
			return err
		}()
		if perr != nil {
			label := m.Date.Format("2006-01-02")
			if m.IsSpan() {
				label += " to " + m.EndDate.Format("2006-01-02")
			}
			printWarning("milestone %d (%s) outside axis window %d-%d",
				i, label, scale.FirstYear(), scale.LastYear())
			outOfRange++
		}
	}
	if outOfRange > 0 {
		return errors.New(errors.ErrCodeDateOutOfRange,
			"%d milestone(s) outside the configured axis window", outOfRange)
	}
	printSuccess("All dates fit the %d-%d axis window", scale.FirstYear(), scale.LastYear())
	return nil
}
