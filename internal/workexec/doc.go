// Package workexec provides the capability that computes a job's own base
// value, independent of its prerequisites.
//
// Process runs one child process per job and reads the value back over the
// child's stdout, two bytes long: the units digit followed by the tens digit.
// Generate is the child side of that exchange. Random computes the same kind
// of value in-process.
package workexec
