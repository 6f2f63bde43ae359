// Package scheduler turns job descriptors into a validated jobs graph and runs
// it.
//
// A Scheduler is built in three steps: the descriptors are indexed into a
// dag.Graph, the graph is checked for cycles, and one job.Job is materialized
// per id with its prerequisites linked to the shared instances. Launch then
// runs every job exactly once, in an order where each prerequisite comes
// before its dependents, and stops at the first failure.
//
// Jobs run one at a time. Independent branches are not executed in parallel.
package scheduler
