// Package hcl_adapter loads job descriptors from HCL files.
package hcl_adapter
