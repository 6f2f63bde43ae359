package scheduler

import "github.com/vk/dagjobs/internal/job"

// breadthFirst calls visit once per job reachable from entries, level by
// level, entries first.
func breadthFirst(entries []*job.Job, count int, visit func(*job.Job)) {
	seen := make([]bool, count)
	queue := make([]*job.Job, 0, count)
	for _, e := range entries {
		if !seen[e.Slot()] {
			seen[e.Slot()] = true
			queue = append(queue, e)
		}
	}
	for len(queue) > 0 {
		j := queue[0]
		queue = queue[1:]
		visit(j)
		for _, p := range j.Prerequisites() {
			if !seen[p.Slot()] {
				seen[p.Slot()] = true
				queue = append(queue, p)
			}
		}
	}
}

// executionOrder walks breadth-first from the entries and returns the
// recording reversed. A prerequisite is queued only after every one of its
// dependents has been dequeued, so the reversal places it before all of them.
func executionOrder(entries []*job.Job, count int) []*job.Job {
	// pending[slot] counts dependency edges into the job not yet walked.
	pending := make([]int, count)
	var all []*job.Job
	breadthFirst(entries, count, func(j *job.Job) {
		all = append(all, j)
	})
	for _, j := range all {
		for _, p := range j.Prerequisites() {
			pending[p.Slot()]++
		}
	}

	order := make([]*job.Job, 0, len(all))
	queue := append([]*job.Job(nil), entries...)
	for len(queue) > 0 {
		j := queue[0]
		queue = queue[1:]
		order = append(order, j)
		for _, p := range j.Prerequisites() {
			pending[p.Slot()]--
			if pending[p.Slot()] == 0 {
				queue = append(queue, p)
			}
		}
	}

	for i, k := 0, len(order)-1; i < k; i, k = i+1, k-1 {
		order[i], order[k] = order[k], order[i]
	}
	return order
}
