package exitcode

import (
	stderrors "errors"
	"os"
	"strings"

	"github.com/felixgeelhaar/missionmap/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// ValidationError indicates invalid input data (bad dependencies, cycles, broken documents)
	ValidationError = 3

	// DriftDetected indicates a mission document no longer matches its configuration
	DriftDetected = 4

	// ConfigError indicates a missing or malformed registry or configuration file
	ConfigError = 5

	// Interrupted indicates the process was cancelled by SIGINT (128+2)
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	if err == nil {
		Exit(Success)
		return
	}

	code := DetermineExitCode(err)
	Exit(code)
}

// DetermineExitCode analyzes an error and returns the appropriate exit code.
// Coded MissionErrors are mapped by their code family; anything else falls
// back to message matching.
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	var missionErr *errors.MissionError
	if stderrors.As(err, &missionErr) {
		return codeForMissionError(missionErr.Code)
	}

	errMsg := strings.ToLower(err.Error())

	if strings.Contains(errMsg, "drift detected") {
		return DriftDetected
	}
	if strings.Contains(errMsg, "fingerprint mismatch") {
		return DriftDetected
	}

	if strings.Contains(errMsg, "unknown flag") || strings.Contains(errMsg, "invalid flag") ||
		strings.Contains(errMsg, "unknown command") || strings.Contains(errMsg, "invalid argument") {
		return UsageError
	}
	if strings.Contains(errMsg, "required flag") || strings.Contains(errMsg, "missing argument") ||
		strings.Contains(errMsg, "arg(s)") {
		return UsageError
	}

	return GeneralError
}

// codeForMissionError maps an error code family to a process exit code
func codeForMissionError(code errors.ErrorCode) int {
	s := string(code)
	switch {
	case code == errors.ErrCodeDriftDetected:
		return DriftDetected
	case strings.HasPrefix(s, "CONFIG-"):
		return ConfigError
	case strings.HasPrefix(s, "ANALYZE-"),
		strings.HasPrefix(s, "PHASE-"),
		strings.HasPrefix(s, "TASK-"),
		strings.HasPrefix(s, "MISSION-"):
		return ValidationError
	case code == errors.ErrCodeDocumentInvalid:
		return ValidationError
	default:
		return GeneralError
	}
}

// GetExitCodeDescription returns a human-readable description of an exit code
func GetExitCodeDescription(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid flags or arguments)"
	case ValidationError:
		return "Validation error (invalid input or graph)"
	case DriftDetected:
		return "Configuration drift detected"
	case ConfigError:
		return "Configuration error (missing or malformed registry)"
	case Interrupted:
		return "Interrupted"
	default:
		return "Unknown error"
	}
}
