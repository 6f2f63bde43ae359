// Package job defines the runtime vertex of a jobs graph: a job that knows its
// prerequisites, runs its work exactly once and caches the aggregated result.
package job
