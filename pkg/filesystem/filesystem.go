package filesystem

import (
	"io/fs"

	"github.com/arthur-debert/frameseq/pkg/types"
	"github.com/spf13/afero"
)

// frameFS adapts an afero.Fs to the operations frameseq needs
type frameFS struct {
	base afero.Fs
}

// NewOS returns the real filesystem
func NewOS() types.FS {
	return NewAferoFS(afero.NewOsFs())
}

// NewAferoFS wraps any afero filesystem, usually a MemMapFs in tests
func NewAferoFS(base afero.Fs) types.FS {
	return &frameFS{base: base}
}

func (f *frameFS) Stat(name string) (fs.FileInfo, error) {
	return f.base.Stat(name)
}

// ReadFile refuses directories the way os.ReadFile does
func (f *frameFS) ReadFile(name string) ([]byte, error) {
	info, err := f.base.Stat(name)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	return afero.ReadFile(f.base, name)
}

func (f *frameFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return afero.WriteFile(f.base, name, data, perm)
}

func (f *frameFS) MkdirAll(path string, perm fs.FileMode) error {
	return f.base.MkdirAll(path, perm)
}

// ReadDir lists entries sorted by name. Entry types come from lstat, so a
// symlink is reported as such and has to be resolved with Stat.
func (f *frameFS) ReadDir(name string) ([]fs.DirEntry, error) {
	infos, err := afero.ReadDir(f.base, name)
	if err != nil {
		return nil, err
	}
	entries := make([]fs.DirEntry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, fs.FileInfoToDirEntry(info))
	}
	return entries, nil
}

func (f *frameFS) Rename(oldpath, newpath string) error {
	return f.base.Rename(oldpath, newpath)
}

func (f *frameFS) Remove(name string) error {
	return f.base.Remove(name)
}
