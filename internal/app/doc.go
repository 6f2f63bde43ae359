// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the run lifecycle: load the job descriptors,
// build and validate the graph, run the jobs and print their results. It is
// decoupled from any specific entrypoint like a CLI.
package app
