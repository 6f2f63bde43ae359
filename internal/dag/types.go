package dag

// Graph is the adjacency structure of a job set. It is immutable once Build
// has returned.
type Graph struct {
	// adjacency maps a job id to its prerequisite ids, in declaration order.
	adjacency map[uint64][]uint64
	// ids holds every job id in declaration order; ids[slot] == id.
	ids []uint64
	// slots is the inverse of ids.
	slots map[uint64]int
	// entryIDs are the ids never listed as a prerequisite, in declaration order.
	entryIDs []uint64
}

// color is the three-state DFS marker used by cycle detection.
type color uint8

const (
	white color = iota // unvisited
	gray               // on the current DFS path
	black              // fully explored, no cycle beneath
)
