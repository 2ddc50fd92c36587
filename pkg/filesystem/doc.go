// Package filesystem implements types.FS on top of afero. The real
// filesystem is afero's OsFs; tests use a MemMapFs.
package filesystem
