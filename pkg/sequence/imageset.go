package sequence

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/frameseq/pkg/errors"
	"github.com/arthur-debert/frameseq/pkg/types"
)

// Extension is one of the recognized image extensions, lower case, without dot
type Extension string

const (
	ExtPNG  Extension = "png"
	ExtJPG  Extension = "jpg"
	ExtJPEG Extension = "jpeg"
)

// RecognizedExtensions is the fixed set of image extensions frameseq handles
var RecognizedExtensions = []Extension{ExtPNG, ExtJPG, ExtJPEG}

// ExtensionVote counts names containing each extension token. Counting is a
// case-insensitive substring match, so "png" and "jpeg" are counted
// independently and a name may count towards more than one token.
type ExtensionVote struct {
	PNG  int `json:"png"`
	JPG  int `json:"jpg"`
	JPEG int `json:"jpeg"`
}

// CountExtensions tallies the extension tokens found in names
func CountExtensions(names []string) ExtensionVote {
	var v ExtensionVote
	for _, name := range names {
		lower := strings.ToLower(name)
		if strings.Contains(lower, string(ExtPNG)) {
			v.PNG++
		}
		if strings.Contains(lower, string(ExtJPG)) {
			v.JPG++
		}
		if strings.Contains(lower, string(ExtJPEG)) {
			v.JPEG++
		}
	}
	return v
}

// Tied reports whether png and the combined jpg/jpeg count are equal and non-zero
func (v ExtensionVote) Tied() bool {
	combined := v.JPG + v.JPEG
	return v.PNG > 0 && v.PNG == combined
}

// Select picks the active extension: png when it outnumbers jpg and jpeg
// combined, otherwise jpg if present, otherwise jpeg if present. In strict
// mode a png/jpeg-family tie is an error instead of falling through to jpg.
func (v ExtensionVote) Select(strict bool) (Extension, error) {
	if strict && v.Tied() {
		return "", errors.Newf(errors.ErrAmbiguousExtension,
			"extension vote is tied: %d png against %d jpg/jpeg", v.PNG, v.JPG+v.JPEG).
			WithDetail("png", v.PNG).
			WithDetail("jpg", v.JPG).
			WithDetail("jpeg", v.JPEG)
	}

	switch {
	case v.PNG > v.JPG+v.JPEG:
		return ExtPNG, nil
	case v.JPG > 0:
		return ExtJPG, nil
	case v.JPEG > 0:
		return ExtJPEG, nil
	}
	return "", errors.New(errors.ErrNoRecognizedExtension, "no png, jpg or jpeg images found")
}

// HasExtension reports whether name's real extension equals ext, ignoring case
func HasExtension(name string, ext Extension) bool {
	return strings.EqualFold(strings.TrimPrefix(filepath.Ext(name), "."), string(ext))
}

// FilterByExtension returns the names carrying ext, sorted
func FilterByExtension(names []string, ext Extension) []string {
	var out []string
	for _, name := range names {
		if HasExtension(name, ext) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// listing is a single non-recursive read of a directory
type listing struct {
	// files holds regular files (symlinks resolved), sorted
	files []string
	// entries holds every entry name, including directories
	entries map[string]bool
}

func (l listing) has(name string) bool {
	return l.entries[name]
}

// checkDirectory verifies that dir exists and is a directory
func checkDirectory(fsys types.FS, dir string) error {
	if dir == "" {
		return errors.New(errors.ErrInvalidDirectory, "no directory given")
	}
	info, err := fsys.Stat(dir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrInvalidDirectory, "directory %s is not accessible", dir).
			WithDetail("directory", dir)
	}
	if !info.IsDir() {
		return errors.Newf(errors.ErrInvalidDirectory, "%s is not a directory", dir).
			WithDetail("directory", dir)
	}
	return nil
}

// listDirectory reads dir once and classifies its entries
func listDirectory(fsys types.FS, dir string) (listing, error) {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return listing{}, errors.Wrapf(err, errors.ErrInvalidDirectory, "cannot read directory %s", dir).
			WithDetail("directory", dir)
	}

	l := listing{entries: make(map[string]bool, len(entries))}
	for _, entry := range entries {
		name := entry.Name()
		l.entries[name] = true
		if isRegularFile(fsys, dir, entry) {
			l.files = append(l.files, name)
		}
	}
	sort.Strings(l.files)
	return l, nil
}

// withoutStaging drops temporaries left behind by an interrupted staged plan
func withoutStaging(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if !strings.HasSuffix(name, stagingSuffix) {
			out = append(out, name)
		}
	}
	return out
}

func isRegularFile(fsys types.FS, dir string, entry fs.DirEntry) bool {
	if entry.IsDir() {
		return false
	}
	if entry.Type()&fs.ModeSymlink != 0 {
		info, err := fsys.Stat(filepath.Join(dir, entry.Name()))
		return err == nil && info.Mode().IsRegular()
	}
	return entry.Type().IsRegular()
}

// ImageSet is the set of frames of the active extension in a directory
type ImageSet struct {
	Directory string        `json:"directory"`
	Extension Extension     `json:"extension"`
	Vote      ExtensionVote `json:"vote"`
	// Frames are the matching file names, sorted
	Frames []string `json:"frames"`

	listing listing
}

// ScanImageSet lists dir, votes on the extension and keeps the files of
// the winning type
func ScanImageSet(fsys types.FS, dir string, strict bool) (*ImageSet, error) {
	if err := checkDirectory(fsys, dir); err != nil {
		return nil, err
	}
	return scanImageSet(fsys, dir, strict)
}

func scanImageSet(fsys types.FS, dir string, strict bool) (*ImageSet, error) {
	l, err := listDirectory(fsys, dir)
	if err != nil {
		return nil, err
	}
	if len(l.files) == 0 {
		return nil, errors.Newf(errors.ErrNoRecognizedExtension, "directory %s contains no files", dir).
			WithDetail("directory", dir)
	}

	vote := CountExtensions(withoutStaging(l.files))
	ext, err := vote.Select(strict)
	if err != nil {
		return nil, err
	}

	frames := FilterByExtension(l.files, ext)
	if len(frames) == 0 {
		return nil, errors.Newf(errors.ErrNoRecognizedExtension, "no files with extension .%s in %s", ext, dir).
			WithDetail("directory", dir).
			WithDetail("extension", string(ext))
	}

	return &ImageSet{
		Directory: dir,
		Extension: ext,
		Vote:      vote,
		Frames:    frames,
		listing:   l,
	}, nil
}
