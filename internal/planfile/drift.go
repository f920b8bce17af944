package planfile

import (
	"github.com/felixgeelhaar/missionmap/internal/errors"
)

// Drift compares the document's saved input fingerprints against
// fingerprints recomputed from the given inputs. A mismatch means
// regenerating today would produce a different plan; the error names
// every section that changed.
func Drift(doc *Document, in Inputs) error {
	current, err := fingerprintInputs(in)
	if err != nil {
		return err
	}

	var sections []string
	if doc.Fingerprints.Analysis != current.Analysis {
		sections = append(sections, "analysis")
	}
	if doc.Fingerprints.PhaseTemplates != current.PhaseTemplates {
		sections = append(sections, "phase_templates")
	}
	if doc.Fingerprints.TaskTemplates != current.TaskTemplates {
		sections = append(sections, "task_templates")
	}
	if doc.Fingerprints.Profiles != current.Profiles {
		sections = append(sections, "profiles")
	}
	if doc.Fingerprints.Weights != current.Weights {
		sections = append(sections, "weights")
	}

	if len(sections) > 0 {
		return errors.NewDriftDetectedError(sections)
	}
	return nil
}
