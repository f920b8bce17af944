package taskgraph

import (
	"github.com/felixgeelhaar/missionmap/internal/domain"
)

// Depths returns, for every task, the longest path in edges from any
// root to that task. Roots sit at depth zero. The walk is memoized and
// cycle-guarded: an in-progress task counts as depth zero, which only
// matters for graphs that bypassed construction-time validation.
func Depths(tasks []Task) map[domain.TaskID]int {
	byID := make(map[domain.TaskID]Task, len(tasks))
	for _, task := range tasks {
		byID[task.ID] = task
	}

	memo := make(map[domain.TaskID]int, len(tasks))
	visiting := make(map[domain.TaskID]bool, len(tasks))

	var depthOf func(id domain.TaskID) int
	depthOf = func(id domain.TaskID) int {
		if d, ok := memo[id]; ok {
			return d
		}
		if visiting[id] {
			return 0
		}
		visiting[id] = true

		depth := 0
		for _, dep := range byID[id].DependsOn {
			if d := depthOf(dep) + 1; d > depth {
				depth = d
			}
		}

		visiting[id] = false
		memo[id] = depth
		return depth
	}

	for _, task := range tasks {
		depthOf(task.ID)
	}
	return memo
}

// depthCriticalPath reconstructs the longest dependency chain: start at
// the deepest task and walk back through dependencies one depth level
// at a time. Ties resolve to the lexicographically smaller id.
func depthCriticalPath(tasks []Task, depths map[domain.TaskID]int) []domain.TaskID {
	if len(tasks) == 0 {
		return nil
	}

	byID := make(map[domain.TaskID]Task, len(tasks))
	for _, task := range tasks {
		byID[task.ID] = task
	}

	var end domain.TaskID
	maxDepth := -1
	for _, task := range tasks {
		d := depths[task.ID]
		if d > maxDepth || (d == maxDepth && task.ID < end) {
			maxDepth = d
			end = task.ID
		}
	}

	reversed := []domain.TaskID{end}
	current := end
	for depth := maxDepth; depth > 0; depth-- {
		var next domain.TaskID
		for _, dep := range byID[current].DependsOn {
			if depths[dep] != depth-1 {
				continue
			}
			if next == "" || dep < next {
				next = dep
			}
		}
		if next == "" {
			break
		}
		reversed = append(reversed, next)
		current = next
	}

	path := make([]domain.TaskID, len(reversed))
	for i, id := range reversed {
		path[len(reversed)-1-i] = id
	}
	return path
}

// findBottlenecks scores every task on fan-in, critical-path membership
// and complexity. Fan-in of three or more scores 2, two scores 1;
// critical-path membership adds 2; complexity of four or more adds 1.
// A task qualifies at a score of 3.
func findBottlenecks(tasks []Task, criticalPath []domain.TaskID) []Bottleneck {
	fanIn := make(map[domain.TaskID]int, len(tasks))
	for _, task := range tasks {
		for _, dep := range task.DependsOn {
			fanIn[dep]++
		}
	}

	onPath := make(map[domain.TaskID]bool, len(criticalPath))
	for _, id := range criticalPath {
		onPath[id] = true
	}

	var bottlenecks []Bottleneck
	for _, task := range tasks {
		score := 0
		switch {
		case fanIn[task.ID] >= 3:
			score += 2
		case fanIn[task.ID] >= 2:
			score++
		}
		if onPath[task.ID] {
			score += 2
		}
		if task.Complexity.Int() >= 4 {
			score++
		}

		if score >= 3 {
			bottlenecks = append(bottlenecks, Bottleneck{
				TaskID: task.ID,
				Score:  score,
				FanIn:  fanIn[task.ID],
			})
		}
	}
	return bottlenecks
}

// parallelTaskGroups buckets tasks by depth and drops any task that
// depends on another task at its own depth. Buckets with at least two
// remaining members are parallel opportunities.
func parallelTaskGroups(tasks []Task, depths map[domain.TaskID]int) [][]domain.TaskID {
	maxDepth := 0
	for _, d := range depths {
		if d > maxDepth {
			maxDepth = d
		}
	}

	var groups [][]domain.TaskID
	for depth := 0; depth <= maxDepth; depth++ {
		var members []domain.TaskID
		for _, task := range tasks {
			if depths[task.ID] != depth {
				continue
			}
			if hasSameDepthDependency(task, depths) {
				continue
			}
			members = append(members, task.ID)
		}
		if len(members) >= 2 {
			groups = append(groups, members)
		}
	}
	return groups
}

func hasSameDepthDependency(task Task, depths map[domain.TaskID]int) bool {
	own := depths[task.ID]
	for _, dep := range task.DependsOn {
		if depths[dep] == own {
			return true
		}
	}
	return false
}
