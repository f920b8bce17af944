package client

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/missionmap/internal/analysis"
	"github.com/felixgeelhaar/missionmap/internal/planfile"
	"github.com/felixgeelhaar/missionmap/pkg/missionmap/types"
)

func fromAnalysis(r analysis.Result) types.Analysis {
	return types.Analysis{
		Domain:       r.Domain,
		Complexity:   types.ComplexityLevel(r.Complexity),
		Keywords:     r.Keywords,
		Technologies: r.Technologies,
		Patterns:     r.Patterns,
	}
}

func toAnalysis(a types.Analysis) analysis.Result {
	return analysis.Result{
		Domain:       a.Domain,
		Complexity:   analysis.Complexity(a.Complexity),
		Keywords:     a.Keywords,
		Technologies: a.Technologies,
		Patterns:     a.Patterns,
	}
}

// fromDocument copies an internal document into its public shape. The
// public types carry the same yaml tags as their internal
// counterparts, so a marshal round trip transfers every field.
func fromDocument(doc *planfile.Document) (*types.Document, error) {
	var out types.Document
	if err := reencode(doc, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func toDocument(doc *types.Document) (*planfile.Document, error) {
	var out planfile.Document
	if err := reencode(doc, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func reencode(src, dst any) error {
	data, err := yaml.Marshal(src)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := yaml.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return nil
}
