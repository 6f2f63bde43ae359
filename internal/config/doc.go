// Package config defines the format-agnostic job descriptor model, the
// Loader interface implemented by concrete file formats, and the
// configuration error taxonomy.
//
// The descriptors produced here are the single input of the `dag` package.
// Concrete loaders, such as for HCL or YAML, are provided in separate
// packages.
package config
