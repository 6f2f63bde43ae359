// Package events carries the observational side of a run: a Sink is told
// when a job is launched, when its own value has been generated, when it
// completes and when it fails. Sinks never influence results.
package events
