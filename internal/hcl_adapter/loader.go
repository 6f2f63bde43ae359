package hcl_adapter

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/dagjobs/internal/config"
	"github.com/vk/dagjobs/internal/ctxlog"
	"github.com/vk/dagjobs/internal/fsutil"
)

// Loader is the HCL implementation of the config.Loader interface.
//
// A jobs file is a sequence of labelled job blocks:
//
//	job "fetch" { id = 0 }
//	job "merge" {
//	  id       = 2
//	  jobs_req = [job.fetch, 1]
//	}
//
// The path may also be a directory, in which case every .hcl file below it is
// loaded and labels may be referenced across files.
type Loader struct{}

// NewLoader creates a new HCL jobs loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every job block in path. Blocks are decoded in two passes: the
// first collects labels and ids, the second evaluates jobs_req with the labels
// in scope.
func (l *Loader) Load(ctx context.Context, path string) ([]config.JobDescriptor, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path", path)

	files, err := l.findHCLFiles(path)
	if err != nil {
		return nil, config.NewError(path, err)
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	var jobs []parsedJob
	labels := make(map[string]uint64)

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, config.NewError(file, fmt.Errorf("failed to parse HCL: %w", diags))
		}

		var root fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
			return nil, config.NewError(file, fmt.Errorf("failed to decode HCL: %w", diags))
		}

		for _, b := range root.Jobs {
			if _, exists := labels[b.Label]; exists {
				return nil, config.NewError(file, fmt.Errorf("job label %q declared more than once", b.Label))
			}
			labels[b.Label] = b.ID
			jobs = append(jobs, parsedJob{file: file, block: b})
		}
	}

	evalCtx := evalContext(labels)
	descriptors := make([]config.JobDescriptor, 0, len(jobs))
	for _, j := range jobs {
		reqs, err := decodeRequires(ctx, j.block.JobsReq, evalCtx)
		if err != nil {
			return nil, config.NewError(j.file, fmt.Errorf("job %q: %w", j.block.Label, err))
		}
		descriptors = append(descriptors, config.JobDescriptor{ID: j.block.ID, Requires: reqs})
	}

	logger.Debug("HCL loading complete.", "job_count", len(descriptors))
	return descriptors, nil
}

// findHCLFiles returns path itself when it is a file, or every .hcl file
// below it when it is a directory.
func (l *Loader) findHCLFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing path: %w", err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	files, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl files found")
	}
	return files, nil
}
