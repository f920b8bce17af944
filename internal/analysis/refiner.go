package analysis

import "fmt"

// Refiner revises an analysis result before decomposition. Refiners run
// between classification and the pipeline, so an external reasoning agent
// can be slotted in without the pipeline knowing.
type Refiner interface {
	Refine(Result) (Result, error)
}

// Chain applies refiners in order, feeding each the previous output
type Chain []Refiner

// Refine implements Refiner
func (c Chain) Refine(r Result) (Result, error) {
	var err error
	for i, refiner := range c {
		r, err = refiner.Refine(r)
		if err != nil {
			return Result{}, fmt.Errorf("refiner %d: %w", i, err)
		}
	}
	return r, nil
}

// DefaultChain returns the refiners applied by the CLI when the caller
// supplies none
func DefaultChain() Chain {
	return Chain{
		NewDomainAliasRefiner(),
		NewTechnologyRefiner(),
	}
}

// domainAliases maps classifier outputs and common user phrasing onto the
// canonical domains the phase-template registry is keyed by
var domainAliases = map[string]string{
	"website":  "web",
	"webapp":   "web",
	"web_app":  "web",
	"frontend": "web",
	"rest":     "api",
	"backend":  "api",
	"service":  "api",
	"tool":     "cli",
	"terminal": "cli",
	"pipeline": "data",
	"etl":      "data",
	"devops":   "infra",
	"platform": "infra",
}

// DomainAliasRefiner normalizes domain aliases to canonical names
type DomainAliasRefiner struct{}

// NewDomainAliasRefiner creates a DomainAliasRefiner
func NewDomainAliasRefiner() *DomainAliasRefiner {
	return &DomainAliasRefiner{}
}

// Refine implements Refiner
func (d *DomainAliasRefiner) Refine(r Result) (Result, error) {
	if canonical, ok := domainAliases[r.Domain]; ok {
		r.Domain = canonical
	}
	return r, nil
}

// impliedKeywords maps a technology to the keywords its presence implies.
// Order within each list is preserved in the output.
var impliedKeywords = []struct {
	technology string
	keywords   []string
}{
	{technology: "postgres", keywords: []string{"database"}},
	{technology: "postgresql", keywords: []string{"database"}},
	{technology: "mysql", keywords: []string{"database"}},
	{technology: "mongodb", keywords: []string{"database"}},
	{technology: "redis", keywords: []string{"cache"}},
	{technology: "kafka", keywords: []string{"messaging", "streaming"}},
	{technology: "nats", keywords: []string{"messaging"}},
	{technology: "react", keywords: []string{"frontend"}},
	{technology: "vue", keywords: []string{"frontend"}},
	{technology: "kubernetes", keywords: []string{"orchestration"}},
	{technology: "terraform", keywords: []string{"provisioning"}},
}

// TechnologyRefiner enriches the keyword list with terms implied by the
// recognized technology stack
type TechnologyRefiner struct{}

// NewTechnologyRefiner creates a TechnologyRefiner
func NewTechnologyRefiner() *TechnologyRefiner {
	return &TechnologyRefiner{}
}

// Refine implements Refiner
func (t *TechnologyRefiner) Refine(r Result) (Result, error) {
	present := make(map[string]bool, len(r.Keywords))
	for _, kw := range r.Keywords {
		present[kw] = true
	}

	techs := make(map[string]bool, len(r.Technologies))
	for _, tech := range r.Technologies {
		techs[tech] = true
	}

	for _, entry := range impliedKeywords {
		if !techs[entry.technology] {
			continue
		}
		for _, kw := range entry.keywords {
			if !present[kw] {
				r.Keywords = append(r.Keywords, kw)
				present[kw] = true
			}
		}
	}

	return r, nil
}
