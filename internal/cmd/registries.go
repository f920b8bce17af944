package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/missionmap/internal/profiles"
	"github.com/felixgeelhaar/missionmap/internal/templates"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the loaded phase and task templates",
	Long: `List the domain templates and phase-type task templates the pipeline
will use: the embedded defaults, with any project overrides layered on
top.

Examples:
  missionmap templates
  missionmap templates --templates ./templates`,
	Args: cobra.NoArgs,
	RunE: instrument("templates", runTemplates),
}

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List the loaded resource profiles",
	Long: `List the resource profiles available for assignment: the embedded
defaults, with any project overrides merged on top.

Examples:
  missionmap profiles
  missionmap profiles --profiles team-profiles.yaml`,
	Args: cobra.NoArgs,
	RunE: instrument("profiles", runProfiles),
}

var (
	templatesDirFlag string
	profilesFileFlag string
)

func init() {
	templatesCmd.Flags().StringVar(&templatesDirFlag, "templates", "", "directory with phase and task template overrides")
	profilesCmd.Flags().StringVar(&profilesFileFlag, "profiles", "", "resource profile registry override file")

	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(profilesCmd)
}

func runTemplates(cmd *cobra.Command, args []string) error {
	paths := resolveInputPaths(templatesDirFlag, "", "")

	repo := templates.NewFileRepository(paths.TemplatesDir)
	phaseRegistry, err := repo.PhaseRegistry()
	if err != nil {
		return err
	}
	taskRegistry, err := repo.TaskRegistry()
	if err != nil {
		return err
	}

	fmt.Print(renderTemplatesList(phaseRegistry, taskRegistry))
	return nil
}

func runProfiles(cmd *cobra.Command, args []string) error {
	paths := resolveInputPaths("", profilesFileFlag, "")

	registry, err := loadProfileRegistry(paths.ProfilesFile)
	if err != nil {
		return err
	}

	fmt.Print(renderProfilesList(registry))
	return nil
}

func renderTemplatesList(phaseRegistry *templates.PhaseRegistry, taskRegistry *templates.TaskRegistry) string {
	var b strings.Builder

	b.WriteString(inspectSectionStyle.Render("Domain Templates") + "\n")
	for _, tmpl := range phaseRegistry.Domains {
		marker := " "
		if strings.EqualFold(tmpl.Domain, phaseRegistry.Default) {
			marker = "*"
		}
		b.WriteString(fmt.Sprintf("  %s %-14s %2d phases  %s\n",
			marker, tmpl.Domain, len(tmpl.Phases), tmpl.Description))
	}
	b.WriteString("  (* default domain)\n\n")

	b.WriteString(inspectSectionStyle.Render("Task Templates") + "\n")
	for _, tmpl := range taskRegistry.PhaseTypes {
		b.WriteString(fmt.Sprintf("    %-14s %2d tasks\n", tmpl.PhaseType, len(tmpl.Tasks)))
	}
	return b.String()
}

func renderProfilesList(registry *profiles.Registry) string {
	var b strings.Builder

	b.WriteString(inspectSectionStyle.Render("Resource Profiles") + "\n")
	for _, p := range registry.Profiles {
		verification := ""
		if p.VerificationExpertise {
			verification = "  [verification]"
		}
		b.WriteString(fmt.Sprintf("  %-20s complexity %d-%d, %d concurrent%s\n",
			p.Name, p.ComplexityMin, p.ComplexityMax, p.MaxConcurrent, verification))
		if len(p.Specializations) > 0 {
			b.WriteString(fmt.Sprintf("    %s\n", strings.Join(p.Specializations, ", ")))
		}
	}
	return b.String()
}
