package analysis

import (
	"strings"

	"github.com/felixgeelhaar/missionmap/internal/errors"
)

// Analyzer classifies a natural-language project description into a Result.
// Implementations must be deterministic: the same description always yields
// the same result.
type Analyzer interface {
	Analyze(description string) (Result, error)
}

// domainSignal maps a domain to the keywords that vote for it. Order is
// significant: earlier domains win score ties.
type domainSignal struct {
	domain   string
	keywords []string
}

var domainSignals = []domainSignal{
	{domain: "web", keywords: []string{"website", "web app", "webapp", "frontend", "browser", "dashboard", "landing page", "spa", "storefront"}},
	{domain: "api", keywords: []string{"api", "rest", "graphql", "endpoint", "microservice", "backend service", "grpc", "webhook"}},
	{domain: "cli", keywords: []string{"cli", "command line", "command-line", "terminal", "console tool", "script", "utility"}},
	{domain: "data", keywords: []string{"etl", "data pipeline", "analytics", "warehouse", "ingestion", "reporting", "batch processing"}},
	{domain: "mobile", keywords: []string{"mobile", "ios", "android", "app store", "smartphone"}},
	{domain: "infra", keywords: []string{"infrastructure", "kubernetes", "terraform", "provisioning", "devops", "deployment pipeline", "observability"}},
}

// knownTechnologies are recognized technology mentions, checked in order
var knownTechnologies = []string{
	"go", "golang", "python", "typescript", "javascript", "rust", "java",
	"react", "vue", "svelte", "node",
	"postgres", "postgresql", "mysql", "sqlite", "mongodb", "redis",
	"kafka", "nats", "rabbitmq",
	"docker", "kubernetes", "terraform",
	"aws", "gcp", "azure",
	"graphql", "grpc",
}

// knownPatterns are recognized solution patterns, checked in order
var knownPatterns = []struct {
	pattern  string
	triggers []string
}{
	{pattern: "crud", triggers: []string{"crud", "create read update", "manage records"}},
	{pattern: "realtime", triggers: []string{"realtime", "real-time", "real time", "live updates", "websocket"}},
	{pattern: "authentication", triggers: []string{"auth", "login", "signup", "sign up", "user accounts"}},
	{pattern: "payments", triggers: []string{"payment", "checkout", "billing", "subscription"}},
	{pattern: "search", triggers: []string{"search", "full-text", "autocomplete"}},
	{pattern: "notifications", triggers: []string{"notification", "email alerts", "push alerts"}},
	{pattern: "multi_tenant", triggers: []string{"multi-tenant", "multi tenant", "per-tenant", "tenancy"}},
}

// heavyTerms push the complexity estimate upward when present
var heavyTerms = []string{
	"distributed", "scalable", "high availability", "multi-tenant",
	"multi tenant", "realtime", "real-time", "migration", "integration",
	"compliance", "audit",
}

// KeywordAnalyzer classifies descriptions with keyword tables. It is the
// default Analyzer and does no I/O.
type KeywordAnalyzer struct{}

// NewKeywordAnalyzer creates a KeywordAnalyzer
func NewKeywordAnalyzer() *KeywordAnalyzer {
	return &KeywordAnalyzer{}
}

// Analyze classifies the description
func (a *KeywordAnalyzer) Analyze(description string) (Result, error) {
	text := strings.ToLower(strings.TrimSpace(description))
	if text == "" {
		return Result{}, errors.New(errors.ErrCodeAnalysisEmptyInput, "project description is empty").
			WithSuggestion("Provide a short description of what should be built")
	}

	result := Result{
		Domain:       classifyDomain(text),
		Keywords:     matchedKeywords(text),
		Technologies: matchedTechnologies(text),
		Patterns:     matchedPatterns(text),
	}
	result.Complexity = estimateComplexity(text, result)

	return result, nil
}

// classifyDomain picks the domain with the most keyword votes.
// Ties resolve to the earlier entry in the signal table; zero votes
// leave the domain unclassified.
func classifyDomain(text string) string {
	bestDomain := ""
	bestScore := 0

	for _, signal := range domainSignals {
		score := 0
		for _, kw := range signal.keywords {
			if strings.Contains(text, kw) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			bestDomain = signal.domain
		}
	}

	return bestDomain
}

// matchedKeywords collects every domain keyword present in the text,
// in table order
func matchedKeywords(text string) []string {
	var matched []string
	for _, signal := range domainSignals {
		for _, kw := range signal.keywords {
			if strings.Contains(text, kw) {
				matched = append(matched, kw)
			}
		}
	}
	return matched
}

// matchedTechnologies collects recognized technologies as whole words
func matchedTechnologies(text string) []string {
	words := tokenize(text)

	var matched []string
	for _, tech := range knownTechnologies {
		if words[tech] {
			matched = append(matched, tech)
		}
	}
	return matched
}

// matchedPatterns collects recognized solution patterns
func matchedPatterns(text string) []string {
	var matched []string
	for _, entry := range knownPatterns {
		for _, trigger := range entry.triggers {
			if strings.Contains(text, trigger) {
				matched = append(matched, entry.pattern)
				break
			}
		}
	}
	return matched
}

// estimateComplexity maps signal counts to a complexity label.
// Longer descriptions with more technologies, patterns, and heavy terms
// classify higher.
func estimateComplexity(text string, r Result) Complexity {
	score := 0

	words := len(strings.Fields(text))
	switch {
	case words > 60:
		score += 4
	case words > 30:
		score += 3
	case words > 15:
		score += 2
	case words > 6:
		score++
	}

	score += len(r.Technologies)
	score += len(r.Patterns)

	for _, term := range heavyTerms {
		if strings.Contains(text, term) {
			score += 2
		}
	}

	switch {
	case score <= 1:
		return ComplexityTrivial
	case score <= 4:
		return ComplexityLow
	case score <= 8:
		return ComplexityMedium
	case score <= 12:
		return ComplexityHigh
	default:
		return ComplexityEpic
	}
}

// tokenize splits text into a set of lowercase words with punctuation trimmed
func tokenize(text string) map[string]bool {
	words := make(map[string]bool)
	for _, field := range strings.Fields(text) {
		word := strings.Trim(field, ".,;:!?()[]{}\"'")
		if word != "" {
			words[word] = true
		}
	}
	return words
}
