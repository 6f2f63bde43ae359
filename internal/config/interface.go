package config

import "context"

// Loader is the interface for a format-specific job descriptor loader.
type Loader interface {
	// Load reads the configuration at path and translates it into job
	// descriptors, preserving declaration order. Any failure is reported as
	// an error matching ErrInvalid.
	Load(ctx context.Context, path string) ([]JobDescriptor, error)
}
