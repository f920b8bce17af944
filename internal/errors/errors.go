package errors

import (
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Configuration errors (CONFIG-001 to CONFIG-099)
	ErrCodeTemplateNotFound ErrorCode = "CONFIG-001"
	ErrCodeTemplateInvalid  ErrorCode = "CONFIG-002"
	ErrCodeProfileNotFound  ErrorCode = "CONFIG-003"
	ErrCodeProfileInvalid   ErrorCode = "CONFIG-004"
	ErrCodeWeightsInvalid   ErrorCode = "CONFIG-005"
	ErrCodeSettingsInvalid  ErrorCode = "CONFIG-006"

	// Analysis errors (ANALYZE-001 to ANALYZE-099)
	ErrCodeAnalysisEmptyInput ErrorCode = "ANALYZE-001"
	ErrCodeAnalysisInvalid    ErrorCode = "ANALYZE-002"

	// Phase decomposition errors (PHASE-001 to PHASE-099)
	ErrCodePhaseInvalid    ErrorCode = "PHASE-001"
	ErrCodePhaseMissingDep ErrorCode = "PHASE-002"
	ErrCodePhaseCyclicDep  ErrorCode = "PHASE-003"

	// Task graph errors (TASK-001 to TASK-099)
	ErrCodeTaskGraphMissingInput ErrorCode = "TASK-001"
	ErrCodeTaskMissingDep        ErrorCode = "TASK-002"
	ErrCodeTaskCyclicDep         ErrorCode = "TASK-003"
	ErrCodeTaskInvalid           ErrorCode = "TASK-004"

	// Mission map errors (MISSION-001 to MISSION-099)
	ErrCodeMissionNoProfiles    ErrorCode = "MISSION-001"
	ErrCodeMissionMissingInput  ErrorCode = "MISSION-002"
	ErrCodeMissionUnschedulable ErrorCode = "MISSION-003"

	// Document and file I/O errors (FILE-001 to FILE-099)
	ErrCodeFileNotFound     ErrorCode = "FILE-001"
	ErrCodeFileReadFailed   ErrorCode = "FILE-002"
	ErrCodeFileWriteFailed  ErrorCode = "FILE-003"
	ErrCodeFileUnmarshal    ErrorCode = "FILE-004"
	ErrCodeFileMarshal      ErrorCode = "FILE-005"
	ErrCodeDocumentInvalid  ErrorCode = "FILE-006"
	ErrCodeDriftDetected    ErrorCode = "FILE-007"
	ErrCodeDirectoryFailed  ErrorCode = "FILE-008"
	ErrCodeDocumentNotFound ErrorCode = "FILE-009"
)

// MissionError represents an enhanced error with code, suggestions, and documentation
type MissionError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	DocsURL     string
	Cause       error
}

// Error implements the error interface
func (e *MissionError) Error() string {
	var b strings.Builder

	// Error code and message
	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	// Add cause if present
	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	// Add suggestions
	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	// Add documentation link
	if e.DocsURL != "" {
		b.WriteString(fmt.Sprintf("\n\nDocumentation: %s", e.DocsURL))
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *MissionError) Unwrap() error {
	return e.Cause
}

// New creates a new MissionError
func New(code ErrorCode, message string) *MissionError {
	return &MissionError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new MissionError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *MissionError {
	return &MissionError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *MissionError) WithSuggestion(suggestion string) *MissionError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *MissionError) WithSuggestions(suggestions ...string) *MissionError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// WithDocs adds a documentation URL to the error
func (e *MissionError) WithDocs(url string) *MissionError {
	e.DocsURL = url
	return e
}

// Common error constructors for frequently used errors

// NewTemplateInvalidError creates a template registry validation error
func NewTemplateInvalidError(details string) *MissionError {
	return New(ErrCodeTemplateInvalid, fmt.Sprintf("invalid template registry: %s", details)).
		WithSuggestion("Run 'missionmap templates' to inspect the loaded registries").
		WithSuggestion("Check the template YAML against the documented schema").
		WithDocs("https://github.com/felixgeelhaar/missionmap#templates")
}

// NewProfileInvalidError creates a resource profile validation error
func NewProfileInvalidError(details string) *MissionError {
	return New(ErrCodeProfileInvalid, fmt.Sprintf("invalid resource profile: %s", details)).
		WithSuggestion("Run 'missionmap profiles' to inspect the loaded profiles").
		WithSuggestion("Check specializations, complexity range, and capacity values").
		WithDocs("https://github.com/felixgeelhaar/missionmap#resource-profiles")
}

// NewSettingsError creates an error for an unusable CLI configuration
func NewSettingsError(details string, cause error) *MissionError {
	return Wrap(ErrCodeSettingsInvalid, fmt.Sprintf("invalid configuration: %s", details), cause).
		WithSuggestion("Check ~/.missionmap/config.yaml and .missionmap.yaml for typos").
		WithSuggestion("Settings can also be overridden with MISSIONMAP_* environment variables").
		WithDocs("https://github.com/felixgeelhaar/missionmap#configuration")
}

// NewPhaseMissingDepError creates an error for a phase dependency that
// references a phase missing from the decomposition
func NewPhaseMissingDepError(phaseID, depID string) *MissionError {
	return New(ErrCodePhaseMissingDep, fmt.Sprintf("phase %q depends on unknown phase %q", phaseID, depID)).
		WithSuggestion("Check the phase template for typos in dependency identifiers").
		WithSuggestion("Every dependency must name a phase defined in the same template")
}

// NewPhaseCycleError creates an error for a cyclic phase dependency
func NewPhaseCycleError(path []string) *MissionError {
	return New(ErrCodePhaseCyclicDep, fmt.Sprintf("cyclic phase dependency: %s", strings.Join(path, " -> "))).
		WithSuggestion("Remove one of the dependencies in the cycle").
		WithSuggestion("Phase graphs must be acyclic for scheduling to terminate")
}

// NewTaskGraphMissingInputError creates an error for a task graph request
// without a decomposition
func NewTaskGraphMissingInputError() *MissionError {
	return New(ErrCodeTaskGraphMissingInput, "task graph generation requires a phase decomposition").
		WithSuggestion("Run the phase decomposition stage first").
		WithSuggestion("Pass the DecompositionResult produced by the decomposer")
}

// NewTaskMissingDepError creates an error for a task dependency that
// references a task missing from the graph
func NewTaskMissingDepError(taskID, depID string) *MissionError {
	return New(ErrCodeTaskMissingDep, fmt.Sprintf("task %q depends on unknown task %q", taskID, depID)).
		WithSuggestion("Check the task template for typos in internal dependency suffixes").
		WithSuggestion("Every dependency must name a task present in the same graph")
}

// NewTaskCycleError creates an error for a cyclic task dependency
func NewTaskCycleError(path []string) *MissionError {
	return New(ErrCodeTaskCyclicDep, fmt.Sprintf("cyclic task dependency: %s", strings.Join(path, " -> "))).
		WithSuggestion("Remove one of the dependencies in the cycle").
		WithSuggestion("Task graphs must be acyclic for a valid execution order to exist")
}

// NewWeightsInvalidError creates a scoring weights validation error
func NewWeightsInvalidError(details string) *MissionError {
	return New(ErrCodeWeightsInvalid, fmt.Sprintf("invalid scoring weights: %s", details)).
		WithSuggestion("Bonuses must be zero or positive, penalties zero or negative").
		WithSuggestion("Remove the weights override file to fall back to the defaults")
}

// NewMissionNoProfilesError creates an error for mission generation
// without any resource profiles
func NewMissionNoProfilesError() *MissionError {
	return New(ErrCodeMissionNoProfiles, "mission map generation requires at least one resource profile").
		WithSuggestion("Provide a profile registry file with --profiles").
		WithSuggestion("Run 'missionmap profiles' to see the built-in defaults").
		WithDocs("https://github.com/felixgeelhaar/missionmap#resource-profiles")
}

// NewMissionMissingInputError creates an error for mission generation
// without a task graph
func NewMissionMissingInputError() *MissionError {
	return New(ErrCodeMissionMissingInput, "mission map generation requires a task graph").
		WithSuggestion("Run the task graph stage first").
		WithSuggestion("Pass the TaskGraphResult produced by the builder")
}

// NewUnschedulableError creates an error for a graph the scheduler cannot
// order. With cycles rejected at construction time this indicates a defect
// in the calling stage, not bad user input.
func NewUnschedulableError(remaining int) *MissionError {
	return New(ErrCodeMissionUnschedulable, fmt.Sprintf("no ready tasks but %d tasks remain unscheduled", remaining)).
		WithSuggestion("Validate the task graph before scheduling").
		WithSuggestion("Report this if the graph passed cycle detection")
}

// NewFileNotFoundError creates a file not found error
func NewFileNotFoundError(path string) *MissionError {
	return New(ErrCodeFileNotFound, fmt.Sprintf("file not found: %s", path)).
		WithSuggestion("Check if the file path is correct").
		WithSuggestion("Verify the file exists and you have read permissions")
}

// NewFileUnmarshalError creates an unmarshal error
func NewFileUnmarshalError(path string, format string, cause error) *MissionError {
	return Wrap(ErrCodeFileUnmarshal, fmt.Sprintf("failed to parse %s file: %s", format, path), cause).
		WithSuggestion("Check the file syntax and format").
		WithSuggestion(fmt.Sprintf("Ensure the file is valid %s", format))
}

// NewDriftDetectedError creates a drift detection error naming the
// configuration sections whose fingerprints no longer match
func NewDriftDetectedError(sections []string) *MissionError {
	return New(ErrCodeDriftDetected, fmt.Sprintf("mission document drift detected in: %s", strings.Join(sections, ", "))).
		WithSuggestion("Regenerate the mission with 'missionmap generate' to sync with current templates").
		WithSuggestion("Review recent changes to templates, profiles, or weights").
		WithDocs("https://github.com/felixgeelhaar/missionmap#drift-detection")
}

// NewDocumentInvalidError creates a mission document validation error
func NewDocumentInvalidError(details string) *MissionError {
	return New(ErrCodeDocumentInvalid, fmt.Sprintf("invalid mission document: %s", details)).
		WithSuggestion("Run 'missionmap validate <file>' to see all validation errors").
		WithSuggestion("Regenerate the document if it was edited by hand")
}
