package timeline

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/amandersonyou/impact-timeline/pkg/errors"
)

// yamlDataset is the YAML dataset file structure.
//
//	milestones:
//	  - date: 2021-01-15
//	    title: Company founded
//	    description: Incorporated in Delaware.
//	    category: Founding
//	  - date: 2022-03-01
//	    endDate: 2022-06-30
//	    title: First grant period
//	    description: Seed grant awarded.
type yamlDataset struct {
	Milestones []yamlMilestone `yaml:"milestones"`
}

type yamlMilestone struct {
	Date        string `yaml:"date"`
	EndDate     string `yaml:"endDate"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Category    string `yaml:"category"`
}

// LoadYAML loads a dataset from a YAML document.
// Row handling follows the same skip-with-warning vs. strict policy as
// LoadCSV.
func LoadYAML(r io.Reader, opts LoadOptions) (*Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read YAML dataset")
	}

	var doc yamlDataset
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse YAML dataset")
	}

	var ms []Milestone
	for i, ym := range doc.Milestones {
		m, err := milestoneFromFields(ym.Date, ym.EndDate, ym.Title, ym.Description, ym.Category)
		if err != nil {
			if opts.Strict {
				return nil, errors.Wrap(errors.GetCode(err), err, "milestone %d", i)
			}
			opts.warnf("skipping milestone %d: %s", i, errors.UserMessage(err))
			continue
		}
		ms = append(ms, m)
	}

	return NewDataset(ms)
}
