// Package client is the programmatic entry point for Go programs
// embedding missionmap as a library. It runs the same pipeline the
// CLI drives and returns the public types from pkg/missionmap/types.
package client

import (
	"fmt"
	"os"

	"github.com/felixgeelhaar/missionmap/internal/analysis"
	"github.com/felixgeelhaar/missionmap/internal/mission"
	"github.com/felixgeelhaar/missionmap/internal/planfile"
	"github.com/felixgeelhaar/missionmap/internal/profiles"
	"github.com/felixgeelhaar/missionmap/internal/templates"
	"github.com/felixgeelhaar/missionmap/pkg/missionmap/types"
)

// Options names where a client reads its generation inputs from.
// Empty fields fall back to the embedded registries and default
// scoring weights, matching the CLI defaults.
type Options struct {
	// TemplatesDir overrides the embedded phase and task template
	// registries. Each file present replaces its embedded counterpart
	// wholesale.
	TemplatesDir string

	// ProfilesFile overrides the embedded resource profiles. Profiles
	// merge over the defaults by name.
	ProfilesFile string

	// WeightsFile overrides individual scoring weights
	WeightsFile string
}

// Client runs the planning pipeline against one fixed set of
// registries. A client is safe for concurrent use; the loaded inputs
// are never mutated after New returns.
type Client struct {
	phases   *templates.PhaseRegistry
	tasks    *templates.TaskRegistry
	profiles *profiles.Registry
	weights  mission.Weights
}

// New loads the registries named in opts and returns a ready client
func New(opts Options) (*Client, error) {
	repo := templates.NewFileRepository(opts.TemplatesDir)
	phases, err := repo.PhaseRegistry()
	if err != nil {
		return nil, err
	}
	tasks, err := repo.TaskRegistry()
	if err != nil {
		return nil, err
	}

	registry, err := loadProfiles(opts.ProfilesFile)
	if err != nil {
		return nil, err
	}

	weights, err := loadWeights(opts.WeightsFile)
	if err != nil {
		return nil, err
	}

	return &Client{
		phases:   phases,
		tasks:    tasks,
		profiles: registry,
		weights:  weights,
	}, nil
}

// Analyze classifies a freeform project description into a domain,
// complexity level, and the signals that drove the call
func (c *Client) Analyze(description string) (types.Analysis, error) {
	result, err := analyzeDescription(description)
	if err != nil {
		return types.Analysis{}, err
	}
	return fromAnalysis(result), nil
}

// Plan classifies a description and generates the complete mission
// document: decomposition, task graph, and resourced schedule
func (c *Client) Plan(description string) (*types.Document, error) {
	result, err := analyzeDescription(description)
	if err != nil {
		return nil, err
	}
	return c.plan(result)
}

// PlanAnalysis generates a mission document from an analysis the
// caller already holds, bypassing classification
func (c *Client) PlanAnalysis(a types.Analysis) (*types.Document, error) {
	result := toAnalysis(a)
	if err := result.Validate(); err != nil {
		return nil, err
	}
	return c.plan(result)
}

// LoadDocument reads a saved mission document and checks its
// structural invariants
func (c *Client) LoadDocument(path string) (*types.Document, error) {
	doc, err := planfile.Load(path)
	if err != nil {
		return nil, err
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return fromDocument(doc)
}

// SaveDocument writes a mission document as YAML, creating parent
// directories as needed
func (c *Client) SaveDocument(doc *types.Document, path string) error {
	internal, err := toDocument(doc)
	if err != nil {
		return err
	}
	return planfile.Save(internal, path)
}

// plan runs the pipeline and wraps the results in a document envelope
func (c *Client) plan(a analysis.Result) (*types.Document, error) {
	dec, graph, generated, err := mission.Plan(a, c.phases, c.tasks, c.profiles, c.weights)
	if err != nil {
		return nil, err
	}

	doc, err := planfile.NewDocument(planfile.Inputs{
		Analysis:      a,
		PhaseRegistry: c.phases,
		TaskRegistry:  c.tasks,
		Profiles:      c.profiles,
		Weights:       c.weights,
	}, dec, graph, generated)
	if err != nil {
		return nil, err
	}
	return fromDocument(doc)
}

// analyzeDescription runs the keyword analyzer and the default
// refinement chain
func analyzeDescription(description string) (analysis.Result, error) {
	result, err := analysis.NewKeywordAnalyzer().Analyze(description)
	if err != nil {
		return analysis.Result{}, err
	}
	return analysis.DefaultChain().Refine(result)
}

func loadProfiles(path string) (*profiles.Registry, error) {
	if path == "" {
		return profiles.LoadRegistry()
	}
	return profiles.LoadRegistryFromFile(path)
}

// loadWeights reads a weights override. A path the caller named
// explicitly must exist.
func loadWeights(path string) (mission.Weights, error) {
	if path == "" {
		return mission.DefaultWeights(), nil
	}
	if _, err := os.Stat(path); err != nil {
		return mission.Weights{}, fmt.Errorf("weights file %s: %w", path, err)
	}
	return mission.LoadWeights(path)
}
