package mission

import (
	"fmt"
	"sort"

	"github.com/felixgeelhaar/missionmap/internal/domain"
	"github.com/felixgeelhaar/missionmap/internal/errors"
	"github.com/felixgeelhaar/missionmap/internal/taskgraph"
)

// targetGroupSize bounds how many tasks one parallel group holds
const targetGroupSize = 3

// buildParallelGroups buckets tasks by dependency depth and splits each
// bucket into balanced chunks of at most targetGroupSize, hardest tasks
// first. Tasks that depend on another task at the same depth stay
// ungrouped; with depths derived from the dependency graph that cannot
// happen in a validated graph.
func buildParallelGroups(tasks []taskgraph.Task) []ParallelGroup {
	depths := taskgraph.Depths(tasks)

	byDepth := make(map[int][]taskgraph.Task)
	maxDepth := 0
	for _, task := range tasks {
		d := depths[task.ID]
		byDepth[d] = append(byDepth[d], task)
		if d > maxDepth {
			maxDepth = d
		}
	}

	var groups []ParallelGroup
	for depth := 0; depth <= maxDepth; depth++ {
		bucket := byDepth[depth]
		if len(bucket) == 0 {
			continue
		}

		candidates := make([]taskgraph.Task, 0, len(bucket))
		for _, task := range bucket {
			if hasSameDepthDependency(task, depths) {
				continue
			}
			candidates = append(candidates, task)
		}
		if len(candidates) == 0 {
			continue
		}

		sort.SliceStable(candidates, func(i, j int) bool {
			if candidates[i].Complexity != candidates[j].Complexity {
				return candidates[i].Complexity > candidates[j].Complexity
			}
			return candidates[i].ID < candidates[j].ID
		})

		for i, ids := range chunkTasks(candidates) {
			groups = append(groups, ParallelGroup{
				Label: fmt.Sprintf("group_%d_%d", depth, i),
				Depth: depth,
				Tasks: ids,
			})
		}
	}
	return groups
}

// hasSameDepthDependency reports whether the task depends on another
// task at its own depth
func hasSameDepthDependency(task taskgraph.Task, depths map[domain.TaskID]int) bool {
	for _, dep := range task.DependsOn {
		if d, ok := depths[dep]; ok && d == depths[task.ID] {
			return true
		}
	}
	return false
}

// chunkTasks splits candidates into balanced chunks no larger than the
// target group size. Sizes differ by at most one.
func chunkTasks(candidates []taskgraph.Task) [][]domain.TaskID {
	n := len(candidates)
	numChunks := (n + targetGroupSize - 1) / targetGroupSize
	base := n / numChunks
	extra := n % numChunks

	chunks := make([][]domain.TaskID, 0, numChunks)
	start := 0
	for i := 0; i < numChunks; i++ {
		size := base
		if i < extra {
			size++
		}

		ids := make([]domain.TaskID, 0, size)
		for _, task := range candidates[start : start+size] {
			ids = append(ids, task.ID)
		}
		chunks = append(chunks, ids)
		start += size
	}
	return chunks
}

// executionOrder produces a deterministic topological ordering. Each
// round places the whole ready frontier, verification tasks first,
// remaining ties broken lexicographically by identifier. An empty
// frontier with tasks remaining means the graph slipped past cycle
// validation, which is an error here rather than a silent workaround.
func executionOrder(tasks []taskgraph.Task) ([]domain.TaskID, error) {
	placed := make(map[domain.TaskID]bool, len(tasks))
	order := make([]domain.TaskID, 0, len(tasks))

	remaining := make([]taskgraph.Task, len(tasks))
	copy(remaining, tasks)

	for len(remaining) > 0 {
		frontier := make([]taskgraph.Task, 0, len(remaining))
		blocked := make([]taskgraph.Task, 0, len(remaining))
		for _, task := range remaining {
			if ready(task, placed) {
				frontier = append(frontier, task)
			} else {
				blocked = append(blocked, task)
			}
		}

		if len(frontier) == 0 {
			return nil, errors.NewUnschedulableError(len(remaining))
		}

		sort.SliceStable(frontier, func(i, j int) bool {
			iv, jv := frontier[i].IsVerification(), frontier[j].IsVerification()
			if iv != jv {
				return iv
			}
			return frontier[i].ID < frontier[j].ID
		})

		for _, task := range frontier {
			placed[task.ID] = true
			order = append(order, task.ID)
		}
		remaining = blocked
	}
	return order, nil
}

// ready reports whether every dependency of the task is placed
func ready(task taskgraph.Task, placed map[domain.TaskID]bool) bool {
	for _, dep := range task.DependsOn {
		if !placed[dep] {
			return false
		}
	}
	return true
}
