package sequence_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/frameseq/pkg/errors"
	"github.com/arthur-debert/frameseq/pkg/sequence"
	"github.com/arthur-debert/frameseq/pkg/testutil"
	"github.com/arthur-debert/frameseq/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resequence(t *testing.T, env *testutil.TestEnvironment, mutate ...func(*sequence.ResequenceOptions)) (*sequence.ResequenceResult, error) {
	t.Helper()
	opts := sequence.ResequenceOptions{
		Directory:  env.Dir,
		Padding:    4,
		FileSystem: env.FS,
		Rollback:   true,
	}
	for _, m := range mutate {
		m(&opts)
	}
	return sequence.Resequence(context.Background(), opts)
}

func TestResequence_RenamesIntoSequence(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteFrames("shot_c.png", "shot_a.png", "shot_b.png", "notes.txt")

	result, err := resequence(t, env)
	require.NoError(t, err)

	assert.True(t, result.Applied)
	assert.Equal(t, "shot_", result.Prefix)
	assert.Equal(t, sequence.ExtPNG, result.Extension)
	assert.Equal(t, env.Path("shot_0000.png"), result.FirstFrame)
	assert.Equal(t, []string{"shot_0000.png", "shot_0001.png", "shot_0002.png"}, result.Frames)
	assert.Equal(t, []string{"notes.txt", "shot_0000.png", "shot_0001.png", "shot_0002.png"}, env.Names())
	assert.False(t, result.Plan.Staged)
}

func TestResequence_PreservesOrder(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteFrames("take_b.png", "take_a.png", "take_c.png")

	_, err := resequence(t, env)
	require.NoError(t, err)

	assert.Equal(t, "take_a.png", env.Content("take_0000.png"))
	assert.Equal(t, "take_b.png", env.Content("take_0001.png"))
	assert.Equal(t, "take_c.png", env.Content("take_0002.png"))
}

func TestResequence_Idempotent(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteFrames("shot_a.png", "shot_b.png", "shot_c.png")

	first, err := resequence(t, env)
	require.NoError(t, err)
	names := env.Names()

	second, err := resequence(t, env)
	require.NoError(t, err)

	assert.True(t, second.Plan.Empty())
	assert.Equal(t, names, env.Names())
	assert.Equal(t, first.Frames, second.Frames)
	assert.Equal(t, first.FirstFrame, second.FirstFrame)
}

func TestResequence_ExtensionDominance(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteFrames("a.png", "b.png", "c.jpg")

	result, err := resequence(t, env)
	require.NoError(t, err)

	assert.Equal(t, sequence.ExtensionVote{PNG: 2, JPG: 1}, result.Vote)
	assert.Equal(t, []string{"0000.png", "0001.png", "c.jpg"}, env.Names())
	assert.Equal(t, "c.jpg", env.Content("c.jpg"))
}

func TestResequence_TieAppliesOrderRule(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteFrames("a.png", "b.jpg")

	result, err := resequence(t, env)
	require.NoError(t, err)

	assert.Equal(t, sequence.ExtJPG, result.Extension)
	assert.Equal(t, []string{"a.png", "b0000.jpg"}, env.Names())
}

func TestResequence_StrictTieFails(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteFrames("a.png", "b.jpg")

	_, err := resequence(t, env, func(o *sequence.ResequenceOptions) { o.StrictVote = true })
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrAmbiguousExtension))
	assert.Equal(t, []string{"a.png", "b.jpg"}, env.Names())
}

func TestResequence_JpegFiles(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteFrames("x1.jpeg", "x2.jpeg")

	result, err := resequence(t, env)
	require.NoError(t, err)

	assert.Equal(t, sequence.ExtJPEG, result.Extension)
	assert.Equal(t, []string{"x0000.jpeg", "x0001.jpeg"}, env.Names())
}

func TestResequence_KeepsExtensionCasing(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteFrames("A.PNG", "B.png")

	_, err := resequence(t, env)
	require.NoError(t, err)

	assert.Equal(t, []string{"0000.PNG", "0001.png"}, env.Names())
}

func TestResequence_PaddingAndStart(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteFrames("q.png", "r.png")

	result, err := resequence(t, env, func(o *sequence.ResequenceOptions) {
		o.Padding = 2
		o.StartIndex = 1
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"01.png", "02.png"}, env.Names())
	assert.Equal(t, env.Path("01.png"), result.FirstFrame)
}

func TestResequence_ZeroPaddingUsesDefault(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteFrames("q.png")

	_, err := resequence(t, env, func(o *sequence.ResequenceOptions) { o.Padding = 0 })
	require.NoError(t, err)
	assert.Equal(t, []string{"q0000.png"}, env.Names())
}

func TestResequence_InvalidOptions(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteFrames("q.png")

	_, err := resequence(t, env, func(o *sequence.ResequenceOptions) { o.Padding = -1 })
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	_, err = resequence(t, env, func(o *sequence.ResequenceOptions) { o.StartIndex = -1 })
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestResequence_FailsWithoutImages(t *testing.T) {
	tests := []struct {
		name  string
		setup func(env *testutil.TestEnvironment)
	}{
		{"empty directory", func(env *testutil.TestEnvironment) {}},
		{"no images", func(env *testutil.TestEnvironment) { env.WriteFrames("notes.txt", "clip.mov") }},
		{"only subdirectories", func(env *testutil.TestEnvironment) {
			require.NoError(t, env.FS.MkdirAll(env.Path("frames.png"), 0755))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
			tt.setup(env)
			before := env.Names()

			_, err := resequence(t, env)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrNoRecognizedExtension))
			assert.Equal(t, before, env.Names())
		})
	}
}

func TestResequence_InvalidDirectory(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteFrames("file.png")

	_, err := resequence(t, env, func(o *sequence.ResequenceOptions) { o.Directory = "/missing" })
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidDirectory))

	_, err = resequence(t, env, func(o *sequence.ResequenceOptions) { o.Directory = env.Path("file.png") })
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidDirectory))
}

func TestResequence_Selection(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteFrames("b.png", "a.png")

	t.Run("no selection", func(t *testing.T) {
		_, err := resequence(t, env, func(o *sequence.ResequenceOptions) { o.Directory = "" })
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidSelection))
	})

	t.Run("movie selection", func(t *testing.T) {
		_, err := resequence(t, env, func(o *sequence.ResequenceOptions) {
			o.Directory = ""
			o.Selection = &sequence.Selection{Kind: types.SourceMovie, Directory: env.Dir}
		})
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidSelection))
	})

	t.Run("selection with missing directory", func(t *testing.T) {
		_, err := resequence(t, env, func(o *sequence.ResequenceOptions) {
			o.Directory = ""
			o.Selection = &sequence.Selection{Kind: types.SourceImage, Directory: "/gone"}
		})
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidDirectory))
	})

	t.Run("image selection", func(t *testing.T) {
		result, err := resequence(t, env, func(o *sequence.ResequenceOptions) {
			o.Directory = ""
			o.Selection = &sequence.Selection{Kind: types.SourceImage, Directory: env.Dir, Frames: []string{"a.png", "b.png"}}
		})
		require.NoError(t, err)
		assert.Equal(t, env.Dir, result.Directory)
		assert.Equal(t, []string{"0000.png", "0001.png"}, env.Names())
	})
}

func TestResequence_StagesOverlappingTargets(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteFrames("f0000.png", "f0001.png", "f0002.png")

	result, err := resequence(t, env, func(o *sequence.ResequenceOptions) { o.StartIndex = 1 })
	require.NoError(t, err)

	assert.True(t, result.Plan.Staged)
	assert.Equal(t, 6, result.Plan.Len())
	assert.Equal(t, []string{"f0001.png", "f0002.png", "f0003.png"}, env.Names())
	assert.Equal(t, "f0000.png", env.Content("f0001.png"))
	assert.Equal(t, "f0001.png", env.Content("f0002.png"))
	assert.Equal(t, "f0002.png", env.Content("f0003.png"))
}

func TestResequence_StagingIgnoresLeftovers(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteFrames("f0000.png", "f0001.png", ".f0001.png.frameseq-tmp")

	result, err := resequence(t, env, func(o *sequence.ResequenceOptions) { o.StartIndex = 1 })
	require.NoError(t, err)

	assert.True(t, result.Plan.Staged)
	assert.Equal(t, []string{".f0001.png.frameseq-tmp", "f0001.png", "f0002.png"}, env.Names())
	for _, r := range result.Plan.Renames {
		assert.Equal(t, types.StatusApplied, r.Status)
	}
}

func TestResequence_StagingLeftoversDoNotVote(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteFrames("a.jpg", "b.jpg", "c.png",
		".a.png.1234abcd.frameseq-tmp", ".b.png.1234abcd.frameseq-tmp")

	result, err := resequence(t, env)
	require.NoError(t, err)

	assert.Equal(t, sequence.ExtJPG, result.Extension)
	assert.Equal(t, 1, result.Vote.PNG)
	assert.Equal(t, 2, result.Vote.JPG)
	names := env.Names()
	assert.Contains(t, names, ".a.png.1234abcd.frameseq-tmp")
	assert.Contains(t, names, ".b.png.1234abcd.frameseq-tmp")
	assert.Contains(t, names, "c.png")
}

func TestResequence_ShiftDownNeedsNoStaging(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteFrames("a_0001.png", "a_0002.png")

	result, err := resequence(t, env)
	require.NoError(t, err)

	assert.False(t, result.Plan.Staged)
	assert.Equal(t, []string{"a_0000.png", "a_0001.png"}, env.Names())
	assert.Equal(t, "a_0001.png", env.Content("a_0000.png"))
	assert.Equal(t, "a_0002.png", env.Content("a_0001.png"))
}

func TestResequence_CollisionLeavesDirectoryUntouched(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteFrames("s_a.png", "s_b.png")
	require.NoError(t, env.FS.MkdirAll(env.Path("s_0001.png"), 0755))
	before := env.Names()

	_, err := resequence(t, env)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNameCollision))
	assert.Equal(t, "s_0001.png", errors.GetErrorDetails(err)["to"])
	assert.Equal(t, before, env.Names())
}

func TestResequence_DryRun(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteFrames("b.png", "a.png")

	result, err := resequence(t, env, func(o *sequence.ResequenceOptions) { o.DryRun = true })
	require.NoError(t, err)

	assert.False(t, result.Applied)
	assert.Equal(t, 2, result.Plan.Len())
	for _, r := range result.Plan.Renames {
		assert.Equal(t, types.StatusPending, r.Status)
	}
	assert.Equal(t, []string{"a.png", "b.png"}, env.Names())
}

func TestResequence_RollbackOnFailure(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteFrames("a.png", "b.png", "c.png")
	faulty := &testutil.FaultyFS{FS: env.FS, FailRenameAt: 3}

	result, err := resequence(t, env, func(o *sequence.ResequenceOptions) { o.FileSystem = faulty })
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRenameFailed))
	require.NotNil(t, result)
	assert.False(t, result.Applied)
	assert.Equal(t, []string{"a.png", "b.png", "c.png"}, env.Names())
}

func TestResequence_NoRollback(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteFrames("a.png", "b.png", "c.png")
	faulty := &testutil.FaultyFS{FS: env.FS, FailRenameAt: 3}

	_, err := resequence(t, env, func(o *sequence.ResequenceOptions) {
		o.FileSystem = faulty
		o.Rollback = false
	})
	require.Error(t, err)
	assert.Equal(t, []string{"0000.png", "0001.png", "c.png"}, env.Names())
}

func TestResequence_OSFilesystem(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.WriteFrames("a.png", "c.png")

	outside := filepath.Join(filepath.Dir(env.Dir), "outside.png")
	require.NoError(t, os.WriteFile(outside, []byte("outside"), 0644))
	require.NoError(t, os.Symlink(outside, env.Path("b.png")))
	require.NoError(t, os.Symlink(filepath.Join(filepath.Dir(env.Dir), "missing.png"), env.Path("dangling.png")))

	result, err := resequence(t, env)
	require.NoError(t, err)

	assert.Equal(t, []string{"0000.png", "0001.png", "0002.png"}, result.Frames)
	assert.Equal(t, []string{"0000.png", "0001.png", "0002.png", "dangling.png"}, env.Names())
	assert.Equal(t, "outside", env.Content("0001.png"))
}
