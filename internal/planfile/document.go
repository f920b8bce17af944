// Package planfile persists generated mission plans as YAML documents
// and detects drift between a saved document and the inputs that would
// regenerate it today.
package planfile

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/missionmap/internal/analysis"
	"github.com/felixgeelhaar/missionmap/internal/canonical"
	"github.com/felixgeelhaar/missionmap/internal/decompose"
	"github.com/felixgeelhaar/missionmap/internal/domain"
	"github.com/felixgeelhaar/missionmap/internal/errors"
	"github.com/felixgeelhaar/missionmap/internal/mission"
	"github.com/felixgeelhaar/missionmap/internal/profiles"
	"github.com/felixgeelhaar/missionmap/internal/taskgraph"
	"github.com/felixgeelhaar/missionmap/internal/templates"
)

// DocumentVersion marks the envelope schema this build writes
const DocumentVersion = "missionmap/v1"

// fingerprintScheme prefixes stored fingerprints so a future hash
// change stays distinguishable on disk
const fingerprintScheme = "blake3:"

// Inputs bundles everything mission generation depends on. Documents
// fingerprint each input separately so drift reports can name the
// section that changed.
type Inputs struct {
	Analysis      analysis.Result
	PhaseRegistry *templates.PhaseRegistry
	TaskRegistry  *templates.TaskRegistry
	Profiles      *profiles.Registry
	Weights       mission.Weights
}

// Fingerprints records the canonical hash of each generation input
type Fingerprints struct {
	Analysis       string `yaml:"analysis" json:"analysis"`
	PhaseTemplates string `yaml:"phase_templates" json:"phase_templates"`
	TaskTemplates  string `yaml:"task_templates" json:"task_templates"`
	Profiles       string `yaml:"profiles" json:"profiles"`
	Weights        string `yaml:"weights" json:"weights"`
}

// Document is the saved mission plan: identity metadata, the analysis
// snapshot, input fingerprints, and the three pipeline results
type Document struct {
	Version   string    `yaml:"version" json:"version"`
	ID        string    `yaml:"id" json:"id"`
	CreatedAt time.Time `yaml:"created_at" json:"created_at"`

	Analysis analysis.Result `yaml:"analysis" json:"analysis"`

	Fingerprints Fingerprints `yaml:"fingerprints" json:"fingerprints"`

	Decomposition *decompose.Result `yaml:"decomposition" json:"decomposition"`
	TaskGraph     *taskgraph.Result `yaml:"task_graph" json:"task_graph"`
	Mission       *mission.Result   `yaml:"mission" json:"mission"`
}

// NewDocument wraps the pipeline results in a fresh envelope. The
// results stay deterministic for identical inputs; the envelope id and
// timestamp identify this particular save.
func NewDocument(in Inputs, dec *decompose.Result, graph *taskgraph.Result, plan *mission.Result) (*Document, error) {
	prints, err := fingerprintInputs(in)
	if err != nil {
		return nil, err
	}

	return &Document{
		Version:       DocumentVersion,
		ID:            uuid.New().String(),
		CreatedAt:     time.Now().UTC(),
		Analysis:      in.Analysis,
		Fingerprints:  prints,
		Decomposition: dec,
		TaskGraph:     graph,
		Mission:       plan,
	}, nil
}

// Validate checks the structural invariants every well-formed document
// upholds, independent of the registries it was generated from
func (d *Document) Validate() error {
	if d.Version != DocumentVersion {
		return errors.NewDocumentInvalidError(fmt.Sprintf("unsupported version %q", d.Version))
	}
	if d.ID == "" {
		return errors.NewDocumentInvalidError("missing document id")
	}
	if d.Decomposition == nil || d.TaskGraph == nil || d.Mission == nil {
		return errors.NewDocumentInvalidError("missing pipeline results")
	}

	if d.TaskGraph.TaskCount != len(d.TaskGraph.Tasks) {
		return errors.NewDocumentInvalidError(fmt.Sprintf(
			"task count %d does not match %d tasks", d.TaskGraph.TaskCount, len(d.TaskGraph.Tasks)))
	}

	ids := make(map[domain.TaskID]bool, len(d.Mission.Tasks))
	for _, task := range d.Mission.Tasks {
		ids[task.ID] = true
	}

	for _, task := range d.Mission.Tasks {
		if err := task.Complexity.Validate(); err != nil {
			return errors.NewDocumentInvalidError(fmt.Sprintf("task %s: %v", task.ID, err))
		}
		for _, dep := range task.DependsOn {
			if !ids[dep] {
				return errors.NewDocumentInvalidError(fmt.Sprintf(
					"task %s depends on unknown task %s", task.ID, dep))
			}
		}
	}

	if len(d.Mission.Assignments) != len(d.Mission.Tasks) {
		return errors.NewDocumentInvalidError(fmt.Sprintf(
			"%d assignments for %d tasks", len(d.Mission.Assignments), len(d.Mission.Tasks)))
	}
	for _, a := range d.Mission.Assignments {
		if !ids[a.TaskID] {
			return errors.NewDocumentInvalidError(fmt.Sprintf("assignment for unknown task %s", a.TaskID))
		}
		if err := a.Priority.Validate(); err != nil {
			return errors.NewDocumentInvalidError(fmt.Sprintf("assignment %s: %v", a.TaskID, err))
		}
	}

	if err := d.validateExecutionOrder(ids); err != nil {
		return err
	}

	for _, u := range d.Mission.Utilization {
		if u.Percent < 0 || u.Percent > 100 {
			return errors.NewDocumentInvalidError(fmt.Sprintf(
				"utilization for %s out of range: %v", u.Profile, u.Percent))
		}
	}

	return nil
}

// validateExecutionOrder checks the order covers every task exactly
// once and never places a task before one of its dependencies
func (d *Document) validateExecutionOrder(ids map[domain.TaskID]bool) error {
	order := d.Mission.ExecutionOrder
	if len(order) != len(d.Mission.Tasks) {
		return errors.NewDocumentInvalidError(fmt.Sprintf(
			"execution order covers %d of %d tasks", len(order), len(d.Mission.Tasks)))
	}

	position := make(map[domain.TaskID]int, len(order))
	for i, id := range order {
		if !ids[id] {
			return errors.NewDocumentInvalidError(fmt.Sprintf("execution order names unknown task %s", id))
		}
		if _, dup := position[id]; dup {
			return errors.NewDocumentInvalidError(fmt.Sprintf("execution order repeats task %s", id))
		}
		position[id] = i
	}

	for _, task := range d.Mission.Tasks {
		for _, dep := range task.DependsOn {
			if position[dep] > position[task.ID] {
				return errors.NewDocumentInvalidError(fmt.Sprintf(
					"task %s scheduled before its dependency %s", task.ID, dep))
			}
		}
	}
	return nil
}

// fingerprintInputs hashes each generation input
func fingerprintInputs(in Inputs) (Fingerprints, error) {
	var prints Fingerprints
	var err error

	if prints.Analysis, err = fingerprint(in.Analysis); err != nil {
		return prints, err
	}
	if prints.PhaseTemplates, err = fingerprint(in.PhaseRegistry); err != nil {
		return prints, err
	}
	if prints.TaskTemplates, err = fingerprint(in.TaskRegistry); err != nil {
		return prints, err
	}
	if prints.Profiles, err = fingerprint(in.Profiles); err != nil {
		return prints, err
	}
	if prints.Weights, err = fingerprint(in.Weights); err != nil {
		return prints, err
	}
	return prints, nil
}

// fingerprint hashes one value under the scheme prefix
func fingerprint(v any) (string, error) {
	hash, err := canonical.Hash(v)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeFileMarshal, "failed to fingerprint input", err)
	}
	return fingerprintScheme + hash, nil
}
