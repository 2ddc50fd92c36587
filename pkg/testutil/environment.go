package testutil

import (
	"path/filepath"
	"sort"
	"testing"

	"github.com/arthur-debert/frameseq/pkg/filesystem"
	"github.com/arthur-debert/frameseq/pkg/types"
	"github.com/stretchr/testify/require"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// TestEnvironment is a frames directory plus the filesystem holding it
type TestEnvironment struct {
	Dir  string
	FS   types.FS
	Type EnvType
	t    *testing.T
}

// NewTestEnvironment creates an empty frames directory
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{Type: envType, t: t}
	switch envType {
	case EnvIsolated:
		env.FS = filesystem.NewOS()
		env.Dir = filepath.Join(t.TempDir(), "frames")
	default:
		env.FS = NewTestFS()
		env.Dir = "/frames"
	}

	require.NoError(t, env.FS.MkdirAll(env.Dir, 0755))
	return env
}

// WriteFrames creates the named files in the environment directory.
// Each file's content is its own name, so renames can be traced.
func (e *TestEnvironment) WriteFrames(names ...string) {
	e.t.Helper()
	WriteFrames(e.t, e.FS, e.Dir, names...)
}

// Names returns the sorted names in the environment directory
func (e *TestEnvironment) Names() []string {
	e.t.Helper()
	return ListNames(e.t, e.FS, e.Dir)
}

// Content returns the content of a file in the environment directory
func (e *TestEnvironment) Content(name string) string {
	e.t.Helper()
	data, err := e.FS.ReadFile(filepath.Join(e.Dir, name))
	require.NoError(e.t, err)
	return string(data)
}

// Path joins name onto the environment directory
func (e *TestEnvironment) Path(name string) string {
	return filepath.Join(e.Dir, name)
}

// WriteFrames creates files in dir whose content is their own name
func WriteFrames(t *testing.T, fsys types.FS, dir string, names ...string) {
	t.Helper()
	require.NoError(t, fsys.MkdirAll(dir, 0755))
	for _, name := range names {
		require.NoError(t, fsys.WriteFile(filepath.Join(dir, name), []byte(name), 0644))
	}
}

// ListNames returns the sorted entry names of dir
func ListNames(t *testing.T, fsys types.FS, dir string) []string {
	t.Helper()
	entries, err := fsys.ReadDir(dir)
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names
}
