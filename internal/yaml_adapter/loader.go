// Package yaml_adapter loads job descriptors from YAML files.
package yaml_adapter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vk/dagjobs/internal/config"
	"github.com/vk/dagjobs/internal/ctxlog"
	"gopkg.in/yaml.v3"
)

// fileRoot mirrors the document layout:
//
//	jobs:
//	  - id: 0
//	  - id: 2
//	    jobsReq: [0, 1]
type fileRoot struct {
	Jobs []jobEntry `yaml:"jobs"`
}

type jobEntry struct {
	ID      *uint64  `yaml:"id"`
	JobsReq []uint64 `yaml:"jobsReq,omitempty"`
}

// Loader is the YAML implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new YAML jobs loader.
func NewLoader() *Loader {
	return &Loader{}
}

func (l *Loader) Load(ctx context.Context, path string) ([]config.JobDescriptor, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path", path)

	f, err := os.Open(path)
	if err != nil {
		return nil, config.NewError(path, err)
	}
	defer f.Close()

	var root fileRoot
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	err = dec.Decode(&root)
	switch {
	case errors.Is(err, io.EOF):
		// An empty file declares no jobs.
	case err != nil:
		return nil, config.NewError(path, fmt.Errorf("failed to decode YAML: %w", err))
	default:
		// A jobs file is a single document.
		var extra yaml.Node
		if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
			if err == nil {
				err = errors.New("unexpected additional document")
			}
			return nil, config.NewError(path, fmt.Errorf("failed to decode YAML: %w", err))
		}
	}

	descriptors := make([]config.JobDescriptor, 0, len(root.Jobs))
	for i, entry := range root.Jobs {
		if entry.ID == nil {
			return nil, config.NewError(path, fmt.Errorf("jobs[%d]: missing id", i))
		}
		descriptors = append(descriptors, config.JobDescriptor{ID: *entry.ID, Requires: entry.JobsReq})
	}

	logger.Debug("YAML loading complete.", "job_count", len(descriptors))
	return descriptors, nil
}
