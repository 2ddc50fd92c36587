// Package testutil provides utilities for testing frameseq components.
//
// Key components:
//   - NewTestFS: afero-backed in-memory filesystem
//   - TestEnvironment: a frames directory on either the in-memory or the real filesystem
//   - WriteFrames / ListNames: fixture helpers for frame folders
//
// Most tests should use EnvMemoryOnly; tests that need real rename
// semantics (symlinks, permissions) use EnvIsolated.
package testutil
