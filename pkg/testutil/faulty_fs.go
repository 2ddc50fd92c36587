package testutil

import (
	"errors"
	"io/fs"

	"github.com/arthur-debert/frameseq/pkg/types"
)

// ErrInjected is returned by FaultyFS for an injected failure
var ErrInjected = errors.New("injected failure")

// FaultyFS wraps a types.FS and fails selected renames
type FaultyFS struct {
	types.FS

	// FailRenameAt fails the Nth rename call (1-based); 0 disables it
	FailRenameAt int
	// FailRenameTo fails any rename whose target equals this path
	FailRenameTo string
	// FailReadDir makes every ReadDir call fail
	FailReadDir bool

	Renames int
}

// Rename counts calls and injects failures
func (f *FaultyFS) Rename(oldpath, newpath string) error {
	f.Renames++
	if f.FailRenameAt > 0 && f.Renames == f.FailRenameAt {
		return &fs.PathError{Op: "rename", Path: oldpath, Err: ErrInjected}
	}
	if f.FailRenameTo != "" && newpath == f.FailRenameTo {
		return &fs.PathError{Op: "rename", Path: oldpath, Err: ErrInjected}
	}
	return f.FS.Rename(oldpath, newpath)
}

// ReadDir optionally injects a failure
func (f *FaultyFS) ReadDir(name string) ([]fs.DirEntry, error) {
	if f.FailReadDir {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: ErrInjected}
	}
	return f.FS.ReadDir(name)
}
