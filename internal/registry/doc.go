// Package registry is the catalogue of registered nodes.
//
// A Registry is populated once at startup, either from Go Modules or from
// an HCL catalogue, then frozen. After Freeze it is read-only and may be
// shared by any number of concurrent resolutions. Reloading node
// definitions means building a new Registry; each instance carries its own
// Epoch so callers can tell catalogues apart.
package registry
