package cmd

import (
	"strings"
	"testing"

	"github.com/felixgeelhaar/missionmap/internal/domain"
	"github.com/felixgeelhaar/missionmap/internal/mission"
	"github.com/felixgeelhaar/missionmap/internal/planfile"
	"github.com/felixgeelhaar/missionmap/internal/taskgraph"
)

func TestRenderInspectHeader(t *testing.T) {
	doc := testDocument(t)

	out := renderInspectHeader(doc)

	for _, want := range []string{"Mission Document", doc.ID, "api (medium)", "tasks, total effort"} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q:\n%s", want, out)
		}
	}
}

func TestRenderCriticalPath(t *testing.T) {
	doc := testDocument(t)
	if len(doc.TaskGraph.CriticalPath) == 0 {
		t.Fatal("expected a critical path in the generated document")
	}

	out := renderCriticalPath(doc)

	if !strings.Contains(out, "Critical Path") {
		t.Errorf("missing section title:\n%s", out)
	}
	if !strings.Contains(out, " 1. "+string(doc.TaskGraph.CriticalPath[0])) {
		t.Errorf("missing first path entry:\n%s", out)
	}
}

func TestRenderCriticalPathEmptyGraph(t *testing.T) {
	doc := &planfile.Document{TaskGraph: &taskgraph.Result{}}

	out := renderCriticalPath(doc)

	if !strings.Contains(out, "(empty graph)") {
		t.Errorf("empty graph placeholder missing:\n%s", out)
	}
}

func TestRenderBottlenecksNoneDetected(t *testing.T) {
	doc := &planfile.Document{TaskGraph: &taskgraph.Result{}}

	out := renderBottlenecks(doc)

	if !strings.Contains(out, "(none detected)") {
		t.Errorf("placeholder missing:\n%s", out)
	}
}

func TestRenderParallelGroups(t *testing.T) {
	doc := &planfile.Document{Mission: &mission.Result{
		ParallelGroups: []mission.ParallelGroup{
			{Label: "group-1", Depth: 2, Tasks: []domain.TaskID{"api_design_1", "api_design_2"}},
		},
	}}

	out := renderParallelGroups(doc)

	if !strings.Contains(out, "group-1 (depth 2): api_design_1, api_design_2") {
		t.Errorf("group line missing:\n%s", out)
	}
}

func TestRenderUtilizationTable(t *testing.T) {
	doc := testDocument(t)
	if len(doc.Mission.Utilization) == 0 {
		t.Fatal("expected utilization rows in the generated document")
	}

	out := renderUtilizationTable(doc)

	if !strings.Contains(out, "profile") || !strings.Contains(out, "peak/cap") {
		t.Errorf("table header missing:\n%s", out)
	}
	if !strings.Contains(out, doc.Mission.Utilization[0].Profile) {
		t.Errorf("first profile row missing:\n%s", out)
	}
}

func TestRenderConflicts(t *testing.T) {
	doc := &planfile.Document{Mission: &mission.Result{
		Conflicts: []mission.Conflict{
			{Profile: "backend_engineer", Group: "group-2", Assigned: 4, Capacity: 2},
		},
	}}

	out := renderConflicts(doc)

	if !strings.Contains(out, "backend_engineer needs 4 concurrent tasks in group-2 but caps at 2") {
		t.Errorf("conflict line missing:\n%s", out)
	}

	doc.Mission.Conflicts = nil
	out = renderConflicts(doc)
	if !strings.Contains(out, "none") {
		t.Errorf("expected the all-clear marker:\n%s", out)
	}
}

func TestJoinTaskIDs(t *testing.T) {
	got := joinTaskIDs([]domain.TaskID{"a", "b", "c"})
	if got != "a, b, c" {
		t.Errorf("joinTaskIDs = %q", got)
	}
	if joinTaskIDs(nil) != "" {
		t.Error("nil should join to an empty string")
	}
}
