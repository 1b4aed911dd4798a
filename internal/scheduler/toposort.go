package scheduler

import "github.com/averhoef/thesisflow/internal/domain"

// orderedTask pairs a task proposal with its dependency depth (longest
// chain of predecessors within the phase).
type orderedTask struct {
	task  domain.TaskProposal
	depth int
}

// topoOrder sorts a phase's tasks so that every task follows all of its
// in-phase dependencies. The tie-break is stable: among ready tasks the
// one declared earliest in the proposal goes first. Returns a CycleError
// when the dependency graph has a cycle.
func topoOrder(phaseName string, tasks []domain.TaskProposal) ([]orderedTask, error) {
	index := make(map[string]int, len(tasks))
	for i, t := range tasks {
		index[t.Title] = i
	}

	indegree := make([]int, len(tasks))
	dependents := make([][]int, len(tasks))
	for i, t := range tasks {
		for _, dep := range t.DependsOn {
			j, ok := index[dep]
			if !ok {
				// Cross-phase dependency; already satisfied by phase order.
				continue
			}
			indegree[i]++
			dependents[j] = append(dependents[j], i)
		}
	}

	depth := make([]int, len(tasks))
	out := make([]orderedTask, 0, len(tasks))
	done := make([]bool, len(tasks))

	for len(out) < len(tasks) {
		next := -1
		for i := range tasks {
			if !done[i] && indegree[i] == 0 {
				next = i
				break
			}
		}
		if next == -1 {
			var cycle []string
			for i, t := range tasks {
				if !done[i] {
					cycle = append(cycle, t.Title)
				}
			}
			return nil, &CycleError{Phase: phaseName, Tasks: cycle}
		}

		done[next] = true
		out = append(out, orderedTask{task: tasks[next], depth: depth[next]})
		for _, d := range dependents[next] {
			indegree[d]--
			if depth[next]+1 > depth[d] {
				depth[d] = depth[next] + 1
			}
		}
	}

	return out, nil
}
