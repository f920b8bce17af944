package cmd

import (
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/missionmap/internal/planfile"
	"github.com/felixgeelhaar/missionmap/internal/tui"
)

var reviewCmd = &cobra.Command{
	Use:   "review FILE",
	Short: "Review a mission document interactively",
	Long: `Open a mission document in an interactive terminal view with a task
list, per-task detail, the execution order and the utilization table.

The view reloads automatically when the document changes on disk.

Keys:
  j/k, up/down   move through the task list
  enter/l        open the task detail
  esc/h          close the detail
  tab/v          cycle tasks, execution order and utilization views
  q              quit

Example:
  missionmap review mission.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: instrument("review", runReview),
}

func init() {
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, args []string) error {
	path := args[0]

	doc, err := planfile.Load(path)
	if err != nil {
		return err
	}
	if err := doc.Validate(); err != nil {
		return err
	}

	return tui.RunReview(doc, path)
}
