package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/missionmap/internal/log"
	"github.com/felixgeelhaar/missionmap/internal/planfile"
)

var validateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Validate a mission document and check for drift",
	Long: `Check a mission document's structural invariants and compare its input
fingerprints against the currently loaded templates, profiles and
scoring weights.

Structural checks cover the envelope, task counts, dependency
references, the execution order and the utilization bounds. Drift
checks flag a document whose generation inputs have changed since it
was written; regenerating it today would produce a different plan.

Exit codes:
  0 - document is valid and matches its inputs
  3 - structural invariants are broken
  4 - inputs drifted since generation

Examples:
  missionmap validate mission.yaml
  missionmap validate --templates ./templates mission.yaml
  missionmap validate --profiles team-profiles.yaml mission.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: instrument("validate", runValidate),
}

var (
	validateTemplates string
	validateProfiles  string
	validateWeights   string
)

func init() {
	validateCmd.Flags().StringVar(&validateTemplates, "templates", "", "directory with phase and task template overrides")
	validateCmd.Flags().StringVar(&validateProfiles, "profiles", "", "resource profile registry override file")
	validateCmd.Flags().StringVar(&validateWeights, "weights", "", "scoring weights override file")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := args[0]

	doc, err := planfile.Load(path)
	if err != nil {
		return err
	}

	if err := doc.Validate(); err != nil {
		return err
	}

	in, err := loadInputs(resolveInputPaths(validateTemplates, validateProfiles, validateWeights))
	if err != nil {
		return err
	}
	in.Analysis = doc.Analysis

	if err := planfile.Drift(doc, in); err != nil {
		return err
	}

	log.DefaultLogger().Debug("document validated",
		"path", path,
		"tasks", len(doc.Mission.Tasks))

	fmt.Printf("✓ %s is valid and matches its inputs\n", path)
	return nil
}
