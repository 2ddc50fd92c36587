package frameseq

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/arthur-debert/frameseq/pkg/binding"
	"github.com/arthur-debert/frameseq/pkg/filesystem"
	"github.com/arthur-debert/frameseq/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cliEnv struct {
	t           *testing.T
	frames      *testutil.TestEnvironment
	bindingFile string
}

type cliResult struct {
	stdout string
	stderr string
	code   int
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()

	frames := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	home := t.TempDir()
	bindingFile := filepath.Join(home, "data", "binding.toml")

	t.Setenv("FRAMESEQ_CONFIG_DIR", filepath.Join(home, "config"))
	t.Setenv("FRAMESEQ_DATA_DIR", filepath.Join(home, "data"))
	t.Setenv("FRAMESEQ_BINDING_FILE", bindingFile)
	t.Setenv("FRAMESEQ_PROJECT_ROOT", frames.Dir)
	t.Setenv("NO_COLOR", "1")

	return &cliEnv{t: t, frames: frames, bindingFile: bindingFile}
}

func (c *cliEnv) run(args ...string) cliResult {
	c.t.Helper()
	var stdout, stderr bytes.Buffer
	code := Run(args, &stdout, &stderr)
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), code: code}
}

func (c *cliEnv) store() *binding.Store {
	return binding.NewStore(filesystem.NewOS(), c.bindingFile)
}

func (c *cliEnv) binding() *binding.Binding {
	c.t.Helper()
	b, err := c.store().Load()
	require.NoError(c.t, err)
	return b
}

func TestResequence_RenamesDirectory(t *testing.T) {
	env := newCLIEnv(t)
	env.frames.WriteFrames("take3.png", "take7.png", "take12.png", "notes.txt")

	res := env.run("resequence", env.frames.Dir)
	require.Equal(t, 0, res.code, res.stderr)

	assert.Equal(t, []string{"notes.txt", "take0000.png", "take0001.png", "take0002.png"}, env.frames.Names())
	assert.Equal(t, "take12.png", env.frames.Content("take0000.png"))
	assert.Equal(t, "take7.png", env.frames.Content("take0002.png"))
	assert.Contains(t, res.stdout, "Renamed 3 files")
	assert.Nil(t, env.binding(), "resequence without --bind leaves the binding alone")
}

func TestResequence_DryRun(t *testing.T) {
	env := newCLIEnv(t)
	env.frames.WriteFrames("a1.png", "a5.png")

	res := env.run("resequence", "--dry-run", "--padding", "2", env.frames.Dir)
	require.Equal(t, 0, res.code, res.stderr)

	assert.Equal(t, []string{"a1.png", "a5.png"}, env.frames.Names())
	assert.Contains(t, res.stdout, "a00.png")
	assert.Contains(t, res.stdout, "Dry run: 2 files would be renamed")
}

func TestResequence_BindFlag(t *testing.T) {
	env := newCLIEnv(t)
	env.frames.WriteFrames("x_9.jpg", "x_10.jpg")

	res := env.run("resequence", "--bind", "--start", "1", env.frames.Dir)
	require.Equal(t, 0, res.code, res.stderr)

	b := env.binding()
	require.NotNil(t, b)
	assert.Equal(t, env.frames.Dir, b.Directory)
	assert.Equal(t, []string{"x_0001.jpg", "x_0002.jpg"}, b.Frames)
}

func TestResequence_UsesBoundDirectory(t *testing.T) {
	env := newCLIEnv(t)
	env.frames.WriteFrames("take3.png", "take7.png", "take12.png")

	require.Equal(t, 0, env.run("bind", env.frames.Dir).code)
	assert.Equal(t, []string{"take12.png", "take3.png", "take7.png"}, env.binding().Frames)

	res := env.run("resequence")
	require.Equal(t, 0, res.code, res.stderr)

	assert.Equal(t, []string{"take0000.png", "take0001.png", "take0002.png"}, env.binding().Frames)
	assert.Contains(t, res.stdout, MsgBindingUpdated)
}

func TestResequence_Errors(t *testing.T) {
	env := newCLIEnv(t)

	res := env.run("resequence")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "INVALID_SELECTION")

	res = env.run("resequence", filepath.Join(env.frames.Dir, "missing"))
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "INVALID_DIRECTORY")

	res = env.run("resequence", env.frames.Dir)
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "NO_RECOGNIZED_EXTENSION")
}

func TestResequence_JSON(t *testing.T) {
	env := newCLIEnv(t)
	env.frames.WriteFrames("b.png", "a.png")

	res := env.run("--format", "json", "resequence", env.frames.Dir)
	require.Equal(t, 0, res.code, res.stderr)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &out))
	assert.Equal(t, true, out["applied"])
	assert.Equal(t, "png", out["extension"])
	assert.Equal(t, false, out["dry_run"])
}

func TestErrors_JSON(t *testing.T) {
	env := newCLIEnv(t)

	res := env.run("--format", "json", "resequence", filepath.Join(env.frames.Dir, "missing"))
	assert.Equal(t, 1, res.code)

	var out map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &out))
	assert.Equal(t, "INVALID_DIRECTORY", out["error"]["code"])
}

func TestBind_ExplicitFrames(t *testing.T) {
	env := newCLIEnv(t)
	env.frames.WriteFrames("f0.png", "f1.png", "f2.png")

	res := env.run("bind", env.frames.Dir, "f1.png", "f2.png")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, []string{"f1.png", "f2.png"}, env.binding().Frames)
	assert.Contains(t, res.stdout, "Bound 2 frames")

	res = env.run("bind", env.frames.Dir, "f9.png")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "INVALID_INPUT")
	assert.Equal(t, []string{"f1.png", "f2.png"}, env.binding().Frames)
}

func TestBind_DefaultsToProjectRoot(t *testing.T) {
	env := newCLIEnv(t)
	env.frames.WriteFrames("s_0.png", "s_1.png")

	res := env.run("bind")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, env.frames.Dir, env.binding().Directory)
}

func TestBind_Clear(t *testing.T) {
	env := newCLIEnv(t)
	env.frames.WriteFrames("s_0.png")
	require.Equal(t, 0, env.run("bind", env.frames.Dir).code)

	res := env.run("bind", "--clear")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Nil(t, env.binding())

	res = env.run("status")
	require.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, "No sequence bound")
}

func TestRefresh_AppendsNewFrames(t *testing.T) {
	env := newCLIEnv(t)
	env.frames.WriteFrames("take0000.png", "take0001.png")
	require.Equal(t, 0, env.run("bind", env.frames.Dir).code)

	env.frames.WriteFrames("take0002.png")
	res := env.run("refresh")
	require.Equal(t, 0, res.code, res.stderr)

	assert.Contains(t, res.stdout, "updated 3 frames, +1 -0")
	assert.Contains(t, res.stdout, "+ take0002.png")
	assert.Equal(t, []string{"take0000.png", "take0001.png", "take0002.png"}, env.binding().Frames)

	res = env.run("refresh")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "noop 3 frames")
}

func TestRefresh_EmptyFrameListIsNotAnError(t *testing.T) {
	env := newCLIEnv(t)
	require.NoError(t, env.store().Save(binding.New(env.frames.Dir, nil)))

	res := env.run("refresh")
	assert.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, MsgEmptyFrameList)
}

func TestRefresh_NoBinding(t *testing.T) {
	env := newCLIEnv(t)

	res := env.run("refresh")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "INVALID_SELECTION")
}

func TestWatch_InitialPass(t *testing.T) {
	env := newCLIEnv(t)
	env.frames.WriteFrames("w_0000.png")
	require.Equal(t, 0, env.run("bind", env.frames.Dir).code)
	env.frames.WriteFrames("w_0001.png")

	root, _ := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"watch", "--no-fsnotify", "--interval", "10ms"})

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	require.NoError(t, root.ExecuteContext(ctx))

	assert.Contains(t, out.String(), "+ w_0001.png")
	assert.Contains(t, out.String(), MsgWatchStopped)
	assert.Equal(t, []string{"w_0000.png", "w_0001.png"}, env.binding().Frames)
}

func TestWatch_SettledSequenceIsQuiet(t *testing.T) {
	env := newCLIEnv(t)
	env.frames.WriteFrames("take_0001.png", "take_0005.png", "take_0006.png")
	require.Equal(t, 0, env.run("bind", env.frames.Dir, "take_0005.png", "take_0006.png").code)

	before, err := os.ReadFile(env.bindingFile)
	require.NoError(t, err)

	root, _ := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"watch", "--no-fsnotify", "--interval", "10ms"})

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	require.NoError(t, root.ExecuteContext(ctx))

	assert.Equal(t, 1, strings.Count(out.String(), "2 frames, +0 -0"), out.String())

	after, err := os.ReadFile(env.bindingFile)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestWatch_NoBinding(t *testing.T) {
	env := newCLIEnv(t)

	res := env.run("watch", "--interval", "10ms")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "INVALID_SELECTION")
}

func TestStatus_JSON(t *testing.T) {
	env := newCLIEnv(t)
	env.frames.WriteFrames("s_0.png", "s_1.png")
	require.Equal(t, 0, env.run("bind", env.frames.Dir).code)

	res := env.run("status", "--format", "json")
	require.Equal(t, 0, res.code, res.stderr)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &out))
	assert.Equal(t, env.frames.Dir, out["directory"])
	assert.Equal(t, env.bindingFile, out["binding_file"])
	assert.Equal(t, filepath.Join(env.frames.Dir, "s_0.png"), out["first_frame"])
}

func TestConfig(t *testing.T) {
	env := newCLIEnv(t)

	res := env.run("config", "--template")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "# padding = 4")

	file := filepath.Join(t.TempDir(), "frameseq.toml")
	require.NoError(t, os.WriteFile(file, []byte("[resequence]\npadding = 6\n"), 0644))

	res = env.run("--config", file, "config")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "# merged from: "+file)
	assert.Contains(t, res.stdout, "padding = 6")

	res = env.run("--config", file, "config", "--format", "json")
	require.Equal(t, 0, res.code, res.stderr)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &out))
	assert.EqualValues(t, 6, out["resequence.padding"])
}

func TestConfig_InvalidFormat(t *testing.T) {
	env := newCLIEnv(t)

	res := env.run("--format", "xml", "status")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "CONFIG_PARSE")
}

func TestGuide(t *testing.T) {
	env := newCLIEnv(t)

	res := env.run("guide")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Available topics:")
	assert.Contains(t, res.stdout, "naming")
	assert.Contains(t, res.stdout, "refresh")

	res = env.run("guide", "naming")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "# Frame naming")
}

func TestRoot(t *testing.T) {
	env := newCLIEnv(t)

	res := env.run("--version")
	assert.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, "frameseq version")

	res = env.run()
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, MsgErrNoCommand)

	res = env.run("completion", "bash")
	assert.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, "frameseq")
}
