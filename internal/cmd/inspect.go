package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/missionmap/internal/domain"
	"github.com/felixgeelhaar/missionmap/internal/planfile"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Show the analysis views of a mission document",
	Long: `Render the analytical views of a mission document: the critical path,
bottleneck tasks, parallel groups, the per-profile utilization table
and any capacity conflicts.

Without section flags every section is shown. With one or more flags
only the named sections are rendered.

Examples:
  missionmap inspect mission.yaml
  missionmap inspect --critical-path mission.yaml
  missionmap inspect --utilization --conflicts mission.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: instrument("inspect", runInspect),
}

var (
	inspectCriticalPath bool
	inspectBottlenecks  bool
	inspectUtilization  bool
	inspectConflicts    bool
)

var (
	inspectTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	inspectSectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	inspectLabelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	inspectOkStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	inspectWarnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

func init() {
	inspectCmd.Flags().BoolVar(&inspectCriticalPath, "critical-path", false, "show only the critical path")
	inspectCmd.Flags().BoolVar(&inspectBottlenecks, "bottlenecks", false, "show only the bottleneck tasks")
	inspectCmd.Flags().BoolVar(&inspectUtilization, "utilization", false, "show only the utilization table")
	inspectCmd.Flags().BoolVar(&inspectConflicts, "conflicts", false, "show only the capacity conflicts")

	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	doc, err := planfile.Load(args[0])
	if err != nil {
		return err
	}
	if err := doc.Validate(); err != nil {
		return err
	}

	all := !inspectCriticalPath && !inspectBottlenecks && !inspectUtilization && !inspectConflicts

	sections := []string{renderInspectHeader(doc)}
	if all || inspectCriticalPath {
		sections = append(sections, renderCriticalPath(doc))
	}
	if all || inspectBottlenecks {
		sections = append(sections, renderBottlenecks(doc))
	}
	if all {
		sections = append(sections, renderParallelGroups(doc))
	}
	if all || inspectUtilization {
		sections = append(sections, renderUtilizationTable(doc))
	}
	if all || inspectConflicts {
		sections = append(sections, renderConflicts(doc))
	}

	fmt.Println(strings.Join(sections, "\n"))
	return nil
}

func renderInspectHeader(doc *planfile.Document) string {
	var b strings.Builder
	b.WriteString(inspectTitleStyle.Render("Mission Document") + "\n")
	b.WriteString(inspectLabelStyle.Render("ID:") + " " + doc.ID + "\n")
	b.WriteString(inspectLabelStyle.Render("Created:") + " " + doc.CreatedAt.Format(time.RFC3339) + "\n")
	b.WriteString(inspectLabelStyle.Render("Domain:") + " " + displayDomain(doc.Analysis.Domain) +
		" (" + string(doc.Analysis.EffectiveComplexity()) + ")\n")
	b.WriteString(inspectLabelStyle.Render("Plan:") + " " +
		fmt.Sprintf("%d tasks, total effort %s", len(doc.Mission.Tasks), doc.Mission.TotalEffort) + "\n")
	return b.String()
}

func renderCriticalPath(doc *planfile.Document) string {
	var b strings.Builder
	b.WriteString(inspectSectionStyle.Render("Critical Path") + "\n")

	if len(doc.TaskGraph.CriticalPath) == 0 {
		b.WriteString("  (empty graph)\n")
		return b.String()
	}

	for i, id := range doc.TaskGraph.CriticalPath {
		effort := ""
		if task, ok := doc.TaskGraph.TaskByID(id); ok && task.Effort != "" {
			effort = fmt.Sprintf("  [%s]", task.Effort)
		}
		b.WriteString(fmt.Sprintf("  %2d. %s%s\n", i+1, id, effort))
	}
	return b.String()
}

func renderBottlenecks(doc *planfile.Document) string {
	var b strings.Builder
	b.WriteString(inspectSectionStyle.Render("Bottlenecks") + "\n")

	if len(doc.TaskGraph.Bottlenecks) == 0 {
		b.WriteString("  (none detected)\n")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("  %-32s %6s %7s\n", "task", "score", "fan-in"))
	for _, bn := range doc.TaskGraph.Bottlenecks {
		b.WriteString(fmt.Sprintf("  %-32s %6d %7d\n", bn.TaskID, bn.Score, bn.FanIn))
	}
	return b.String()
}

func renderParallelGroups(doc *planfile.Document) string {
	var b strings.Builder
	b.WriteString(inspectSectionStyle.Render("Parallel Groups") + "\n")

	if len(doc.Mission.ParallelGroups) == 0 {
		b.WriteString("  (no parallel work)\n")
		return b.String()
	}

	for _, g := range doc.Mission.ParallelGroups {
		b.WriteString(fmt.Sprintf("  %s (depth %d): %s\n", g.Label, g.Depth, joinTaskIDs(g.Tasks)))
	}
	return b.String()
}

func renderUtilizationTable(doc *planfile.Document) string {
	var b strings.Builder
	b.WriteString(inspectSectionStyle.Render("Utilization") + "\n")

	if len(doc.Mission.Utilization) == 0 {
		b.WriteString("  (no assignments)\n")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("  %-20s %6s %8s %9s %6s %-14s %s\n",
		"profile", "tasks", "effort", "peak/cap", "load", "efficiency", "verification"))
	for _, u := range doc.Mission.Utilization {
		b.WriteString(fmt.Sprintf("  %-20s %6d %7.1fd %5d/%-3d %5.0f%% %-14s %.0f%%\n",
			u.Profile, u.TaskCount, u.EffortDays, u.PeakLoad, u.Capacity,
			u.Percent, u.Efficiency, u.Compliance*100))
	}
	return b.String()
}

func renderConflicts(doc *planfile.Document) string {
	var b strings.Builder
	b.WriteString(inspectSectionStyle.Render("Capacity Conflicts") + "\n")

	if len(doc.Mission.Conflicts) == 0 {
		b.WriteString(inspectOkStyle.Render("  ✓ none") + "\n")
		return b.String()
	}

	for _, c := range doc.Mission.Conflicts {
		line := fmt.Sprintf("  ⚠ %s needs %d concurrent tasks in %s but caps at %d",
			c.Profile, c.Assigned, c.Group, c.Capacity)
		b.WriteString(inspectWarnStyle.Render(line) + "\n")
	}
	return b.String()
}

func joinTaskIDs(ids []domain.TaskID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, ", ")
}
