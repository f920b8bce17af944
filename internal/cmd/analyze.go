package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/missionmap/internal/analysis"
	"github.com/felixgeelhaar/missionmap/internal/errors"
	"github.com/felixgeelhaar/missionmap/internal/log"
	"github.com/felixgeelhaar/missionmap/internal/tui"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [description]",
	Short: "Classify a project description",
	Long: `Classify a project description into a domain, a complexity estimate and
the matched keywords, technologies and patterns.

Classification is the first pipeline stage. Save the result and feed it
to 'generate --analysis' to pin the classification across runs, or use
it on its own to check how a description will be interpreted.

Examples:
  missionmap analyze "a REST API with user accounts and payments"
  missionmap analyze --format json "cli tool for log analysis"
  missionmap analyze --probe . "add a billing module to this service"
  missionmap analyze --out analysis.yaml "mobile app with offline sync"`,
	Args: cobra.ArbitraryArgs,
	RunE: instrument("analyze", runAnalyze),
}

var (
	analyzeFormat string
	analyzeOut    string
	analyzeProbe  string
)

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "", "output format (yaml, json)")
	analyzeCmd.Flags().StringVar(&analyzeOut, "out", "", "write the result to a file instead of stdout")
	analyzeCmd.Flags().StringVar(&analyzeProbe, "probe", "", "project directory to probe for technology markers")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	description, err := resolveDescription(args)
	if err != nil {
		return err
	}

	result, err := classify(description)
	if err != nil {
		return err
	}
	result, err = enrichFromDir(result, analyzeProbe)
	if err != nil {
		return err
	}

	log.DefaultLogger().Debug("description classified",
		"domain", result.Domain,
		"complexity", string(result.Complexity))

	data, err := marshalAs(result, outputFormat(cmd, analyzeFormat))
	if err != nil {
		return err
	}
	return writeOutput(data, analyzeOut)
}

// classify runs the keyword analyzer and the refinement chain
func classify(description string) (analysis.Result, error) {
	result, err := analysis.NewKeywordAnalyzer().Analyze(description)
	if err != nil {
		return analysis.Result{}, err
	}
	return analysis.DefaultChain().Refine(result)
}

// resolveDescription joins the arguments into a description, prompting
// interactively when none were given. Outside a terminal the empty
// description flows through so the analyzer reports it.
func resolveDescription(args []string) (string, error) {
	description := strings.TrimSpace(strings.Join(args, " "))
	if description != "" || !tui.ShouldPrompt() {
		return description, nil
	}
	return tui.PromptForDescription()
}

// enrichFromDir merges technologies probed from a project directory
// into a classification. An empty dir is a no-op.
func enrichFromDir(result analysis.Result, dir string) (analysis.Result, error) {
	if dir == "" {
		return result, nil
	}
	probed, err := analysis.DetectStack(dir)
	if err != nil {
		return result, errors.NewFileNotFoundError(dir)
	}
	return analysis.MergeTechnologies(result, probed), nil
}

// outputFormat returns the --format value when set, otherwise the
// configured default
func outputFormat(cmd *cobra.Command, flagValue string) string {
	if cmd.Flags().Changed("format") {
		return flagValue
	}
	return currentSettings().OutputFormat
}
