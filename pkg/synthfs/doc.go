// Package synthfs applies rename plans through the synthfs operation
// pipeline. Each rename becomes one custom operation executed in plan order
// against a types.FS, so the same executor runs on the OS filesystem and on
// in-memory filesystems in tests.
package synthfs
