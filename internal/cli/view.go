package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// viewCommand creates the view command for browsing a timeline
// interactively in the terminal.
func (c *CLI) viewCommand() *cobra.Command {
	var configPath string
	var strict bool

	cmd := &cobra.Command{
		Use:   "view [file]",
		Short: "Browse a timeline interactively in the terminal",
		Long: `Browse a milestone timeline in a scrollable terminal view.

Scrolling drives emphasis: the milestone nearest the viewport center is
fully emphasized, earlier milestones are dimmed, later ones nearly
invisible. Moving the cursor over a milestone temporarily emphasizes it
alone; leaving it restores the scroll-derived pattern.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := c.buildTimeline(args[0], configPath, 0, strict)
			if err != nil {
				return err
			}

			p := tea.NewProgram(newViewModel(run), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML config file")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on malformed dataset rows")

	return cmd
}
