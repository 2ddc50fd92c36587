package sequence

import (
	"slices"

	"github.com/arthur-debert/frameseq/pkg/errors"
	"github.com/arthur-debert/frameseq/pkg/filesystem"
	"github.com/arthur-debert/frameseq/pkg/logging"
	"github.com/arthur-debert/frameseq/pkg/types"
	"github.com/rs/zerolog"
)

// RefreshStatus is the outcome of a refresh
type RefreshStatus string

const (
	// RefreshUpdated means the frame list changed
	RefreshUpdated RefreshStatus = "updated"
	// RefreshNoop means the bound frames already match the disk
	RefreshNoop RefreshStatus = "noop"
	// RefreshFinished means the anchor is the newest frame on disk
	RefreshFinished RefreshStatus = "finished"
)

// RefreshOptions configures a Refresh
type RefreshOptions struct {
	Directory string
	Frames    []string

	FileSystem types.FS
	Logger     *zerolog.Logger
}

// RefreshResult is the reconciled frame list
type RefreshResult struct {
	Status         RefreshStatus `json:"status"`
	Prefix         string        `json:"prefix"`
	Anchor         string        `json:"anchor"`
	AnchorReplaced bool          `json:"anchor_replaced"`
	Frames         []string      `json:"frames"`
	Added          []string      `json:"added"`
	Dropped        []string      `json:"dropped"`

	// Previous holds the frames the refresh started from
	Previous []string `json:"-"`
}

// Changed reports whether the caller has to store new frames. A settled
// updated or finished pass returns the frames it was given and is not a
// change.
func (r *RefreshResult) Changed() bool {
	return !slices.Equal(r.Frames, r.Previous)
}

// Refresh reconciles frames with the files now present in dir. The first
// frame is the anchor: it is kept, or replaced by the earliest candidate
// when deleted, and every candidate sorting after it is appended.
func Refresh(opts RefreshOptions) (*RefreshResult, error) {
	logger := logging.Resolve(opts.Logger, "sequence.refresh")
	fsys := opts.FileSystem
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	if len(opts.Frames) == 0 {
		return nil, errors.New(errors.ErrEmptyFrameList, "bound sequence has no frames")
	}
	if err := checkDirectory(fsys, opts.Directory); err != nil {
		return nil, err
	}

	prefix := FramePrefix(opts.Frames[0])

	l, err := listDirectory(fsys, opts.Directory)
	if err != nil {
		return nil, err
	}

	var candidates []string
	for _, name := range l.files {
		if FramePrefix(name) == prefix {
			candidates = append(candidates, name)
		}
	}
	if len(candidates) == 0 {
		return nil, errors.Newf(errors.ErrNoMatchingFrames, "no files in %s match %q", opts.Directory, prefix).
			WithDetail("directory", opts.Directory).
			WithDetail("prefix", prefix)
	}

	if slices.Equal(candidates, opts.Frames) {
		logger.Debug().Str("prefix", prefix).Int("frames", len(candidates)).Msg("Frames already up to date")
		return &RefreshResult{
			Status:   RefreshNoop,
			Prefix:   prefix,
			Anchor:   opts.Frames[0],
			Frames:   append([]string(nil), opts.Frames...),
			Previous: append([]string(nil), opts.Frames...),
		}, nil
	}

	anchor := opts.Frames[0]
	pos := slices.Index(candidates, anchor)
	replaced := false
	if pos < 0 {
		anchor = candidates[0]
		pos = 0
		replaced = true
	}

	frames := append([]string{anchor}, candidates[pos+1:]...)
	status := RefreshUpdated
	if pos == len(candidates)-1 {
		status = RefreshFinished
	}

	result := &RefreshResult{
		Status:         status,
		Prefix:         prefix,
		Anchor:         anchor,
		AnchorReplaced: replaced,
		Frames:         frames,
		Added:          difference(frames, opts.Frames),
		Dropped:        difference(opts.Frames, frames),
		Previous:       append([]string(nil), opts.Frames...),
	}

	logger.Debug().
		Str("prefix", prefix).
		Str("anchor", anchor).
		Bool("anchorReplaced", replaced).
		Str("status", string(status)).
		Int("added", len(result.Added)).
		Int("dropped", len(result.Dropped)).
		Msg("Refreshed frames")
	return result, nil
}

// RefreshSelection refreshes a host selection after checking that it is a
// bound image sequence.
func RefreshSelection(sel *Selection, opts RefreshOptions) (*RefreshResult, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}
	opts.Directory = sel.Directory
	opts.Frames = sel.Frames
	return Refresh(opts)
}

// difference returns the entries of a missing from b, in a's order
func difference(a, b []string) []string {
	seen := make(map[string]bool, len(b))
	for _, name := range b {
		seen[name] = true
	}
	var out []string
	for _, name := range a {
		if !seen[name] {
			out = append(out, name)
		}
	}
	return out
}
