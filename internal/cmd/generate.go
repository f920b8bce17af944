package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace"
	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/missionmap/internal/analysis"
	"github.com/felixgeelhaar/missionmap/internal/decompose"
	"github.com/felixgeelhaar/missionmap/internal/errors"
	"github.com/felixgeelhaar/missionmap/internal/log"
	"github.com/felixgeelhaar/missionmap/internal/mission"
	"github.com/felixgeelhaar/missionmap/internal/planfile"
	"github.com/felixgeelhaar/missionmap/internal/taskgraph"
	"github.com/felixgeelhaar/missionmap/internal/telemetry"
	"github.com/felixgeelhaar/missionmap/internal/tui"
)

var generateCmd = &cobra.Command{
	Use:   "generate [description]",
	Short: "Generate a mission document from a project description",
	Long: `Run the full planning pipeline: classify the description, decompose it
into phases, expand the phases into a task graph, inject verification
tasks, assign resource profiles and schedule everything into a mission
document.

The pipeline is deterministic. The saved document records a fingerprint
of every input, so 'missionmap validate' can detect when templates,
profiles or weights drift away from it.

Examples:
  missionmap generate "a REST API with user accounts and payments"
  missionmap generate --domain api --complexity high "billing service"
  missionmap generate --analysis analysis.yaml --out plans/
  missionmap generate --summary --templates ./templates "admin dashboard"`,
	Args: cobra.ArbitraryArgs,
	RunE: instrument("generate", runGenerate),
}

var (
	generateDomain     string
	generateComplexity string
	generateAnalysis   string
	generateProbe      string
	generateTemplates  string
	generateProfiles   string
	generateWeights    string
	generateOut        string
	generateFormat     string
	generateSummary    bool
)

func init() {
	generateCmd.Flags().StringVar(&generateDomain, "domain", "", "override the classified domain (api, web_app, cli, mobile_app, ...)")
	generateCmd.Flags().StringVar(&generateComplexity, "complexity", "", "override the classified complexity (trivial, low, medium, high, epic)")
	generateCmd.Flags().StringVar(&generateAnalysis, "analysis", "", "load a saved analysis instead of classifying a description")
	generateCmd.Flags().StringVar(&generateProbe, "probe", "", "project directory to probe for technology markers")
	generateCmd.Flags().StringVar(&generateTemplates, "templates", "", "directory with phase and task template overrides")
	generateCmd.Flags().StringVar(&generateProfiles, "profiles", "", "resource profile registry override file")
	generateCmd.Flags().StringVar(&generateWeights, "weights", "", "scoring weights override file")
	generateCmd.Flags().StringVar(&generateOut, "out", "mission.yaml", "output path for the mission document, or - for stdout")
	generateCmd.Flags().StringVar(&generateFormat, "format", "", "output format (yaml, json)")
	generateCmd.Flags().BoolVar(&generateSummary, "summary", false, "print a plan summary to stderr after writing")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	result, err := resolveAnalysis(args)
	if err != nil {
		return err
	}

	in, err := loadInputs(resolveInputPaths(generateTemplates, generateProfiles, generateWeights))
	if err != nil {
		return err
	}
	in.Analysis = result

	doc, err := runPipeline(cmd.Context(), in)
	if err != nil {
		return err
	}

	format := outputFormat(cmd, generateFormat)
	out := generateOut
	if !cmd.Flags().Changed("out") && currentSettings().PlanFile != "" {
		out = currentSettings().PlanFile
	}
	out = resolveOutPath(out, planName(result), format)

	proceed, err := confirmOverwrite(out)
	if err != nil {
		return err
	}
	if !proceed {
		fmt.Fprintln(os.Stderr, "Aborted, kept the existing document")
		return nil
	}

	if err := writeDocument(doc, out, format); err != nil {
		return err
	}

	telemetry.RecordPlan(cmd.Context(), len(doc.Mission.Tasks), len(doc.Mission.Conflicts))
	if out != "" && out != "-" {
		log.DefaultLogger().Info("mission document written",
			"path", out,
			"tasks", len(doc.Mission.Tasks),
			"conflicts", len(doc.Mission.Conflicts))
	}

	if generateSummary {
		printSummary(os.Stderr, doc)
	}
	return nil
}

// resolveAnalysis produces the pipeline input analysis from either a
// saved analysis file or a fresh classification, then applies the
// --domain and --complexity overrides
func resolveAnalysis(args []string) (analysis.Result, error) {
	var result analysis.Result

	if generateAnalysis != "" {
		loaded, err := loadAnalysisFile(generateAnalysis)
		if err != nil {
			return result, err
		}
		result = loaded
	} else {
		description, err := resolveDescription(args)
		if err != nil {
			return result, err
		}
		result, err = classify(description)
		if err != nil {
			return result, err
		}
	}

	result, err := enrichFromDir(result, generateProbe)
	if err != nil {
		return result, err
	}

	if generateDomain != "" {
		result.Domain = generateDomain
	}
	if generateComplexity != "" {
		label, err := analysis.ParseComplexity(generateComplexity)
		if err != nil {
			return result, errors.Wrap(errors.ErrCodeAnalysisInvalid,
				fmt.Sprintf("invalid --complexity value %q", generateComplexity), err)
		}
		result.Complexity = label
	}
	return result, nil
}

// confirmOverwrite asks before replacing an existing document when the
// command runs interactively. Non-interactive runs overwrite in place.
func confirmOverwrite(out string) (bool, error) {
	if out == "" || out == "-" || !tui.ShouldPrompt() {
		return true, nil
	}
	if _, err := os.Stat(out); err != nil {
		return true, nil
	}
	return tui.PromptForConfirmation(fmt.Sprintf("Overwrite %s?", out), true)
}

// loadAnalysisFile reads a saved analysis result
func loadAnalysisFile(path string) (analysis.Result, error) {
	var result analysis.Result

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return result, errors.NewFileNotFoundError(path)
		}
		return result, errors.Wrap(errors.ErrCodeFileReadFailed,
			fmt.Sprintf("failed to read analysis file %s", path), err)
	}

	if err := yaml.Unmarshal(data, &result); err != nil {
		return result, errors.NewFileUnmarshalError(path, "YAML", err)
	}
	if err := result.Validate(); err != nil {
		return result, errors.Wrap(errors.ErrCodeAnalysisInvalid,
			fmt.Sprintf("analysis file %s is not usable", path), err)
	}
	return result, nil
}

// runPipeline executes the planning stages in order and wraps the
// results into a document envelope
func runPipeline(ctx context.Context, in planfile.Inputs) (*planfile.Document, error) {
	_, span := telemetry.StartStageSpan(ctx, "decompose")
	dec, err := decompose.NewDecomposer(in.PhaseRegistry).Decompose(in.Analysis)
	endStage(span, err)
	if err != nil {
		return nil, err
	}

	_, span = telemetry.StartStageSpan(ctx, "taskgraph")
	graph, err := taskgraph.NewBuilder(in.TaskRegistry).Build(dec, in.Analysis)
	endStage(span, err)
	if err != nil {
		return nil, err
	}

	_, span = telemetry.StartStageSpan(ctx, "mission")
	plan, err := mission.NewGenerator(in.Profiles, in.Weights).Generate(graph)
	endStage(span, err)
	if err != nil {
		return nil, err
	}

	return planfile.NewDocument(in, dec, graph, plan)
}

// endStage closes a pipeline stage span with its outcome
func endStage(span trace.Span, err error) {
	if err != nil {
		telemetry.RecordError(span, err)
	} else {
		telemetry.RecordSuccess(span)
	}
	span.End()
}

// writeDocument persists the document. YAML files go through the
// repository; JSON and stdout render through the shared output path.
func writeDocument(doc *planfile.Document, out, format string) error {
	if out != "" && out != "-" && (format == "" || format == "yaml") {
		return planfile.Save(doc, out)
	}

	data, err := marshalAs(doc, format)
	if err != nil {
		return err
	}
	return writeOutput(data, out)
}

// planName derives a human name for slugged output files
func planName(result analysis.Result) string {
	if result.Domain == "" {
		return "mission"
	}
	return result.Domain + " mission"
}

// printSummary writes a short human summary of the generated plan
func printSummary(w io.Writer, doc *planfile.Document) {
	verification := 0
	for _, task := range doc.Mission.Tasks {
		if task.IsVerification() {
			verification++
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Domain:          %s\n", displayDomain(doc.Analysis.Domain))
	fmt.Fprintf(w, "Complexity:      %s\n", doc.Analysis.EffectiveComplexity())
	fmt.Fprintf(w, "Phases:          %d\n", len(doc.Decomposition.Phases))
	fmt.Fprintf(w, "Tasks:           %d (%d verification)\n", len(doc.Mission.Tasks), verification)
	fmt.Fprintf(w, "Total effort:    %s\n", doc.Mission.TotalEffort)
	fmt.Fprintf(w, "Parallel groups: %d\n", len(doc.Mission.ParallelGroups))
	if len(doc.Mission.Conflicts) > 0 {
		fmt.Fprintf(w, "Conflicts:       %d (see 'missionmap inspect --conflicts')\n", len(doc.Mission.Conflicts))
	}
}

// displayDomain renders the unclassified domain readably
func displayDomain(domain string) string {
	if domain == "" {
		return "(unclassified)"
	}
	return domain
}
