package binding

import (
	"path/filepath"
	"time"

	"github.com/arthur-debert/frameseq/pkg/sequence"
	"github.com/arthur-debert/frameseq/pkg/types"
)

// DefaultFrameStart is the timeline frame a new binding starts at
const DefaultFrameStart = 1

// Binding is the persisted active sequence
type Binding struct {
	Kind       types.SourceKind `toml:"kind" json:"kind"`
	Directory  string           `toml:"directory" json:"directory"`
	FrameStart int              `toml:"frame_start" json:"frame_start"`
	Frames     []string         `toml:"frames" json:"frames"`
	UpdatedAt  time.Time        `toml:"updated_at" json:"updated_at"`
}

// New binds frames of dir as an image sequence
func New(dir string, frames []string) *Binding {
	return &Binding{
		Kind:       types.SourceImage,
		Directory:  dir,
		FrameStart: DefaultFrameStart,
		Frames:     append([]string(nil), frames...),
	}
}

// Selection converts the binding into the form the sequence operations
// expect. A nil binding yields a nil selection.
func (b *Binding) Selection() *sequence.Selection {
	if b == nil {
		return nil
	}
	return &sequence.Selection{
		Kind:      b.Kind,
		Directory: b.Directory,
		Frames:    append([]string(nil), b.Frames...),
	}
}

// FirstFramePath returns the absolute path of the first bound frame
func (b *Binding) FirstFramePath() string {
	if b == nil || len(b.Frames) == 0 {
		return ""
	}
	return filepath.Join(b.Directory, b.Frames[0])
}

// Trailing returns the last n frames; n <= 0 returns none
func (b *Binding) Trailing(n int) []string {
	if b == nil || n <= 0 {
		return nil
	}
	if n > len(b.Frames) {
		n = len(b.Frames)
	}
	return append([]string(nil), b.Frames[len(b.Frames)-n:]...)
}

// ApplyRefresh stores the frames of a refresh result. It reports whether
// the binding changed.
func (b *Binding) ApplyRefresh(result *sequence.RefreshResult) bool {
	if result == nil || !result.Changed() {
		return false
	}
	b.Frames = append([]string(nil), result.Frames...)
	return true
}

// ApplyResequence rebinds to the renamed frames of a resequence run
func (b *Binding) ApplyResequence(result *sequence.ResequenceResult) {
	if result == nil {
		return
	}
	b.Kind = types.SourceImage
	b.Directory = result.Directory
	b.Frames = append([]string(nil), result.Frames...)
}
