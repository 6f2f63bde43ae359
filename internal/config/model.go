package config

// JobDescriptor is the parsed declaration of one job: its id and the ids of
// the jobs whose results it requires. Descriptors are immutable once a
// loader has produced them.
type JobDescriptor struct {
	// ID is unique across a descriptor set.
	ID uint64
	// Requires lists prerequisite ids in declaration order. Empty means the
	// job has no prerequisites.
	Requires []uint64
}

// Clone returns a deep copy of the descriptor.
func (d JobDescriptor) Clone() JobDescriptor {
	reqs := make([]uint64, len(d.Requires))
	copy(reqs, d.Requires)
	return JobDescriptor{ID: d.ID, Requires: reqs}
}
