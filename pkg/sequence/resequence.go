package sequence

import (
	"context"
	"path/filepath"

	"github.com/arthur-debert/frameseq/pkg/errors"
	"github.com/arthur-debert/frameseq/pkg/filesystem"
	"github.com/arthur-debert/frameseq/pkg/logging"
	"github.com/arthur-debert/frameseq/pkg/synthfs"
	"github.com/arthur-debert/frameseq/pkg/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// stagingSuffix marks the temporary names used by staged plans
const stagingSuffix = ".frameseq-tmp"

// ResequenceOptions configures a Resequence run
type ResequenceOptions struct {
	// Directory to resequence; empty means the Selection's directory
	Directory string
	Selection *Selection

	// Padding is the index width; zero means DefaultPadding
	Padding    int
	StartIndex int
	// StrictVote fails on a png/jpg tie instead of applying the order rule
	StrictVote bool
	DryRun     bool
	// Rollback undoes applied renames when a later one fails
	Rollback bool

	FileSystem types.FS
	Logger     *zerolog.Logger
}

// ResequenceResult describes a planned or applied resequence
type ResequenceResult struct {
	Directory  string           `json:"directory"`
	Prefix     string           `json:"prefix"`
	Extension  Extension        `json:"extension"`
	Vote       ExtensionVote    `json:"vote"`
	FirstFrame string           `json:"first_frame"`
	Frames     []string         `json:"frames"`
	Plan       types.RenamePlan `json:"plan"`
	Applied    bool             `json:"applied"`
}

// Resequence renames the dominant image type in a directory into a
// contiguous zero-padded sequence. Every precondition is checked before the
// first rename.
func Resequence(ctx context.Context, opts ResequenceOptions) (*ResequenceResult, error) {
	logger := logging.Resolve(opts.Logger, "sequence.resequence")
	fsys := opts.FileSystem
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	padding := opts.Padding
	if padding == 0 {
		padding = DefaultPadding
	}
	if padding < 0 {
		return nil, errors.Newf(errors.ErrInvalidInput, "padding must be positive, got %d", opts.Padding)
	}
	if opts.StartIndex < 0 {
		return nil, errors.Newf(errors.ErrInvalidInput, "start index must not be negative, got %d", opts.StartIndex)
	}

	dir, err := ResolveDirectory(fsys, opts.Directory, opts.Selection)
	if err != nil {
		return nil, err
	}

	set, err := scanImageSet(fsys, dir, opts.StrictVote)
	if err != nil {
		return nil, err
	}
	vote, ext, members := set.Vote, set.Extension, set.Frames
	if vote.Tied() {
		logger.Warn().
			Int("png", vote.PNG).
			Int("jpg", vote.JPG).
			Int("jpeg", vote.JPEG).
			Str("selected", string(ext)).
			Msg("Extension vote is tied, applying order rule")
	}

	prefix := SequencePrefix(members)
	targets := make([]string, len(members))
	for i, name := range members {
		targets[i] = FrameName(prefix, opts.StartIndex+i, padding, filepath.Ext(name))
	}

	plan, err := planRenames(dir, members, targets, set.listing)
	if err != nil {
		return nil, err
	}

	result := &ResequenceResult{
		Directory:  dir,
		Prefix:     prefix,
		Extension:  ext,
		Vote:       vote,
		FirstFrame: filepath.Join(dir, targets[0]),
		Frames:     targets,
		Plan:       plan,
	}

	logger.Debug().
		Str("directory", dir).
		Str("prefix", prefix).
		Str("extension", string(ext)).
		Int("frames", len(members)).
		Int("renames", plan.Len()).
		Bool("staged", plan.Staged).
		Msg("Planned resequence")

	if opts.DryRun || plan.Empty() {
		return result, nil
	}

	executor := synthfs.NewRenameExecutor(synthfs.RenameExecutorOptions{
		FileSystem: fsys,
		Rollback:   opts.Rollback,
		Logger:     &logger,
	})
	if err := executor.Execute(ctx, &result.Plan); err != nil {
		return result, err
	}
	result.Applied = true

	logger.Info().
		Str("directory", dir).
		Int("renames", plan.Len()).
		Str("firstFrame", result.FirstFrame).
		Msg("Resequenced frames")
	return result, nil
}

// planRenames maps members onto targets. Unchanged names are skipped. A
// target held by an entry outside the set is a collision; a target held by
// a member that has not moved yet forces a staged plan through temporary
// names.
func planRenames(dir string, members, targets []string, l listing) (types.RenamePlan, error) {
	position := make(map[string]int, len(members))
	for i, name := range members {
		position[name] = i
	}

	var changed []int
	staged := false
	for i := range members {
		if members[i] == targets[i] {
			continue
		}
		changed = append(changed, i)

		k, isMember := position[targets[i]]
		switch {
		case isMember && k > i:
			staged = true
		case !isMember && l.has(targets[i]):
			return types.RenamePlan{}, errors.Newf(errors.ErrNameCollision,
				"cannot rename %s to %s: target already exists", members[i], targets[i]).
				WithDetail("directory", dir).
				WithDetail("from", members[i]).
				WithDetail("to", targets[i])
		}
	}

	plan := types.RenamePlan{Staged: staged}
	if !staged {
		for _, i := range changed {
			plan.Renames = append(plan.Renames, types.Rename{Dir: dir, From: members[i], To: targets[i], Status: types.StatusPending})
		}
		return plan, nil
	}

	// Temporary names carry a per-run token
	token := uuid.New().String()[:8]
	temps := make([]string, len(changed))
	for j, i := range changed {
		temps[j] = "." + targets[i] + "." + token + stagingSuffix
		if l.has(temps[j]) {
			return types.RenamePlan{}, errors.Newf(errors.ErrNameCollision,
				"cannot stage %s: temporary name %s already exists", members[i], temps[j]).
				WithDetail("directory", dir).
				WithDetail("from", members[i]).
				WithDetail("to", temps[j])
		}
		plan.Renames = append(plan.Renames, types.Rename{Dir: dir, From: members[i], To: temps[j], Status: types.StatusPending})
	}
	for j, i := range changed {
		plan.Renames = append(plan.Renames, types.Rename{Dir: dir, From: temps[j], To: targets[i], Status: types.StatusPending})
	}
	return plan, nil
}
