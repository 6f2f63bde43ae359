package dag

// frame is one level of the explicit DFS stack: a job slot and the position
// of the next prerequisite to examine.
type frame struct {
	slot int
	next int
}

// CheckCycles reports whether the prerequisite relation contains a cycle,
// returning a *CycleError if it does.
//
// It runs a three-colour depth-first search rooted at every entry job. A
// cyclic component may have no entry job at all ({A:[B], B:[A]}), so any id
// still unvisited afterwards is used as a root as well.
func (g *Graph) CheckCycles() error {
	colors := make([]color, len(g.ids))

	roots := make([]uint64, 0, len(g.entryIDs)+len(g.ids))
	roots = append(roots, g.entryIDs...)
	roots = append(roots, g.ids...)

	for _, id := range roots {
		slot := g.slots[id]
		if colors[slot] != white {
			continue
		}
		if path := g.visit(slot, colors); path != nil {
			return &CycleError{Path: path}
		}
	}
	return nil
}

// visit explores everything reachable from root with an explicit stack and
// returns the ids of the first cycle found, or nil.
func (g *Graph) visit(root int, colors []color) []uint64 {
	colors[root] = gray
	stack := []frame{{slot: root}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		reqs := g.adjacency[g.ids[top.slot]]
		if top.next == len(reqs) {
			colors[top.slot] = black
			stack = stack[:len(stack)-1]
			continue
		}

		req := g.slots[reqs[top.next]]
		top.next++

		switch colors[req] {
		case gray:
			return g.cyclePath(stack, req)
		case white:
			colors[req] = gray
			stack = append(stack, frame{slot: req})
		}
	}
	return nil
}

// cyclePath extracts the ids on the stack from the gray slot that closed the
// cycle up to the top of the stack.
func (g *Graph) cyclePath(stack []frame, closing int) []uint64 {
	start := 0
	for i, f := range stack {
		if f.slot == closing {
			start = i
			break
		}
	}
	path := make([]uint64, 0, len(stack)-start)
	for _, f := range stack[start:] {
		path = append(path, g.ids[f.slot])
	}
	return path
}
