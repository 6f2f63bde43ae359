// Package dag builds the dependency graph of a job set from its descriptors.
// It records, for every job id, the ordered list of prerequisite ids, derives
// the entry jobs (ids that no other job requires) and checks the relation for
// cycles before anything is materialised or executed.
//
// Job ids are mapped onto dense slots 0..JobCount()-1 in declaration order,
// so traversals can use flat marker slices regardless of how sparse the
// configured ids are.
package dag
