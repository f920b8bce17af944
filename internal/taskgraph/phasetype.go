package taskgraph

import (
	"strings"
)

// DefaultPhaseType is the bounded fallback when no rule matches a
// phase display name
const DefaultPhaseType = "general"

// keywordRule maps a display-name keyword to a phase type. Order
// matters: earlier rules win, so "Data Validation" normalizes to
// testing before the data rules can claim it.
type keywordRule struct {
	keyword   string
	phaseType string
}

var keywordRules = []keywordRule{
	{"design", "design"},
	{"architecture", "design"},
	{"planning", "design"},
	{"blueprint", "design"},

	{"research", "research"},
	{"discovery", "research"},
	{"assessment", "research"},
	{"investigation", "research"},

	{"test", "testing"},
	{"qa", "testing"},
	{"validation", "testing"},
	{"hardening", "testing"},

	{"deploy", "deployment"},
	{"release", "deployment"},
	{"rollout", "deployment"},
	{"launch", "deployment"},
	{"packaging", "deployment"},
	{"delivery", "deployment"},
	{"ship", "deployment"},

	{"frontend", "frontend"},
	{"ui", "frontend"},
	{"ux", "frontend"},
	{"app", "frontend"},
	{"screen", "frontend"},

	{"data", "data"},
	{"etl", "data"},
	{"pipeline", "data"},
	{"warehouse", "data"},
	{"analytics", "data"},

	{"backend", "backend"},
	{"service", "backend"},
	{"implementation", "backend"},
	{"integration", "backend"},
	{"core", "backend"},
	{"build", "backend"},

	{"infrastructure", "infra"},
	{"infra", "infra"},
	{"provision", "infra"},
	{"automation", "infra"},
	{"tooling", "infra"},
	{"platform", "infra"},
	{"ops", "infra"},
}

// NormalizePhaseType derives the task-template phase type from a phase
// display name. Resolution is exact match against the declared types
// first, then the keyword table in order, then the bounded default.
func NormalizePhaseType(name string, declared []string) string {
	lower := strings.ToLower(strings.TrimSpace(name))

	for _, typ := range declared {
		if lower == strings.ToLower(typ) {
			return typ
		}
	}

	for _, rule := range keywordRules {
		if containsWordish(lower, rule.keyword) {
			return rule.phaseType
		}
	}

	return DefaultPhaseType
}

// containsWordish matches a keyword at word starts, so "Testing" hits
// "test" but "latest" does not
func containsWordish(text, keyword string) bool {
	idx := 0
	for {
		pos := strings.Index(text[idx:], keyword)
		if pos < 0 {
			return false
		}
		abs := idx + pos
		if abs == 0 || !isWordChar(text[abs-1]) {
			return true
		}
		idx = abs + 1
		if idx >= len(text) {
			return false
		}
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
