package mission

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/missionmap/internal/domain"
	"github.com/felixgeelhaar/missionmap/internal/taskgraph"
)

// verificationSkipKeywords mark task names that already act as gates.
// Such tasks get no synthesized verification pair.
var verificationSkipKeywords = []string{
	"validate", "deploy", "verify", "check", "review", "audit",
}

// verificationEffortShare budgets a synthesized verification task
// relative to its implementation task's effort
const verificationEffortShare = 0.4

// Injector pairs every implementation task with a verification task,
// synthesizing the pairs that are missing. Inject is idempotent:
// re-running on an already paired graph changes nothing.
type Injector struct{}

// NewInjector creates an Injector
func NewInjector() *Injector {
	return &Injector{}
}

// Inject returns the task list with verification pairing applied.
// Every eligible task gains a dependency on its paired verification
// task; missing pairs are synthesized and appended after the input
// tasks, in the order their implementations appear.
func (in *Injector) Inject(tasks []taskgraph.Task) []taskgraph.Task {
	existing := make(map[domain.TaskID]bool, len(tasks))
	for _, task := range tasks {
		existing[task.ID] = true
	}

	paired := make([]taskgraph.Task, 0, len(tasks))
	var synthesized []taskgraph.Task

	for _, task := range tasks {
		if !needsVerification(task) {
			paired = append(paired, task)
			continue
		}

		verID := task.ID.VerificationID()
		if !existing[verID] {
			synthesized = append(synthesized, synthesizeVerification(task, verID))
			existing[verID] = true
		}
		paired = append(paired, task.WithAddedDependency(verID))
	}

	return append(paired, synthesized...)
}

// needsVerification reports whether a task takes the implementation
// side of a verification pairing. Verification tasks themselves and
// tasks whose names mark gate work are left alone.
func needsVerification(task taskgraph.Task) bool {
	if task.IsVerification() {
		return false
	}
	name := strings.ToLower(task.Name)
	for _, keyword := range verificationSkipKeywords {
		if strings.Contains(name, keyword) {
			return false
		}
	}
	return true
}

// synthesizeVerification derives the paired verification task: a
// dependency-free test task scoped to the implementation, at a fraction
// of its effort and one complexity point easier, floored at 1.
func synthesizeVerification(impl taskgraph.Task, verID domain.TaskID) taskgraph.Task {
	effort, err := impl.Effort.Scale(verificationEffortShare)
	if err != nil {
		effort = ""
	}

	return taskgraph.Task{
		ID:          verID,
		Name:        "Verify: " + impl.Name,
		Description: fmt.Sprintf("Write tests covering %q ahead of the implementation", impl.Name),
		Phase:       impl.Phase,
		PhaseType:   impl.PhaseType,
		Effort:      effort,
		Complexity:  (impl.Complexity - 1).Clamp(),
		Profile:     impl.Profile,
		Artifacts:   []string{fmt.Sprintf("test suite for %s", impl.ID)},
		Criteria: []string{
			"Must fail before implementation exists",
			fmt.Sprintf("Passes once %s is complete", impl.ID),
		},
	}
}
