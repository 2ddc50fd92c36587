package frameseq

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/frameseq/pkg/binding"
	"github.com/arthur-debert/frameseq/pkg/config"
	"github.com/arthur-debert/frameseq/pkg/errors"
	"github.com/arthur-debert/frameseq/pkg/logging"
	"github.com/arthur-debert/frameseq/pkg/output"
	"github.com/arthur-debert/frameseq/pkg/sequence"
	"github.com/spf13/cobra"
)

func newResequenceCmd(a *app) *cobra.Command {
	var (
		dryRun     bool
		strict     bool
		noRollback bool
		bind       bool
		padding    int
		start      int
	)

	cmd := &cobra.Command{
		Use:     "resequence [DIR]",
		Short:   MsgResequenceShort,
		Long:    MsgResequenceLong,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			done := logging.LogOperationStart(a.logger, "resequence")
			defer done()

			current, err := a.store.Load()
			if err != nil {
				return err
			}

			opts := sequence.ResequenceOptions{
				Selection:  current.Selection(),
				Padding:    a.cfg.Resequence.Padding,
				StartIndex: a.cfg.Resequence.StartIndex,
				StrictVote: a.cfg.Resequence.StrictVote || strict,
				DryRun:     dryRun,
				Rollback:   a.cfg.Resequence.RollbackOnError && !noRollback,
				FileSystem: a.fs,
				Logger:     &a.logger,
			}
			if cmd.Flags().Changed("padding") {
				opts.Padding = padding
			}
			if cmd.Flags().Changed("start") {
				opts.StartIndex = start
			}
			if len(args) == 1 {
				if opts.Directory, err = a.paths.NormalizePath(args[0]); err != nil {
					return err
				}
			}

			result, err := sequence.Resequence(cmd.Context(), opts)
			if err != nil {
				// A failed batch still shows which renames were applied
				if result != nil && a.renderer.Format() != output.FormatJSON {
					_ = a.renderer.RenderResequence(result, dryRun)
				}
				return err
			}
			if err := a.renderer.RenderResequence(result, dryRun); err != nil {
				return err
			}
			if dryRun {
				return nil
			}

			switch {
			case current != nil && current.Directory == result.Directory:
				current.ApplyResequence(result)
			case bind:
				current = binding.New(result.Directory, result.Frames)
			default:
				return nil
			}
			if err := a.store.Save(current); err != nil {
				return err
			}
			a.renderer.Message("Muted", MsgBindingUpdated)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, MsgFlagDryRun)
	cmd.Flags().IntVar(&padding, "padding", 0, MsgFlagPadding)
	cmd.Flags().IntVar(&start, "start", 0, MsgFlagStart)
	cmd.Flags().BoolVar(&strict, "strict", false, MsgFlagStrict)
	cmd.Flags().BoolVar(&noRollback, "no-rollback", false, MsgFlagNoRollback)
	cmd.Flags().BoolVar(&bind, "bind", false, MsgFlagBind)
	return cmd
}

func newBindCmd(a *app) *cobra.Command {
	var clearBinding bool

	cmd := &cobra.Command{
		Use:     "bind [DIR] [FRAME...]",
		Short:   MsgBindShort,
		Long:    MsgBindLong,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			if clearBinding {
				if err := a.store.Clear(); err != nil {
					return err
				}
				a.renderer.Message("Success", MsgBindingCleared)
				return nil
			}

			dir, err := a.absDir(args)
			if err != nil {
				return err
			}

			var frames []string
			if len(args) > 1 {
				if dir, err = sequence.ResolveDirectory(a.fs, dir, nil); err != nil {
					return err
				}
				for _, name := range args[1:] {
					if _, err := a.fs.Stat(filepath.Join(dir, name)); err != nil {
						return errors.Wrapf(err, errors.ErrInvalidInput, MsgErrFrameMissing, name, dir).
							WithDetail("frame", name)
					}
				}
				frames = args[1:]
			} else {
				set, err := sequence.ScanImageSet(a.fs, dir, a.cfg.Resequence.StrictVote)
				if err != nil {
					return err
				}
				frames = set.Frames
			}

			b := binding.New(dir, frames)
			if err := a.store.Save(b); err != nil {
				return err
			}
			a.renderer.Message("Success", MsgBound, len(frames), dir)
			return a.renderer.RenderStatus(b, a.store.Path(), a.cfg.Refresh.TrailingFrames)
		},
	}

	cmd.Flags().BoolVar(&clearBinding, "clear", false, MsgFlagClear)
	return cmd
}

// refreshBinding runs one refresh pass over the stored binding and saves
// it when the frames changed
func (a *app) refreshBinding() (*binding.Binding, *sequence.RefreshResult, error) {
	current, err := a.store.Load()
	if err != nil {
		return nil, nil, err
	}

	result, err := sequence.RefreshSelection(current.Selection(), sequence.RefreshOptions{
		FileSystem: a.fs,
		Logger:     &a.logger,
	})
	if err != nil {
		return current, nil, err
	}

	if current.ApplyRefresh(result) {
		if err := a.store.Save(current); err != nil {
			return current, result, err
		}
	}
	return current, result, nil
}

func newRefreshCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "refresh",
		Short:   MsgRefreshShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			current, result, err := a.refreshBinding()
			if errors.IsErrorCode(err, errors.ErrEmptyFrameList) {
				a.renderer.Message("Muted", MsgEmptyFrameList)
				return nil
			}
			if err != nil {
				return err
			}
			return a.renderer.RenderRefresh(result, current.Trailing(a.cfg.Refresh.TrailingFrames))
		},
	}
}

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Short:   MsgStatusShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := a.store.Load()
			if err != nil {
				return err
			}
			return a.renderer.RenderStatus(current, a.store.Path(), a.cfg.Refresh.TrailingFrames)
		},
	}
}

func newConfigCmd(a *app) *cobra.Command {
	var template bool

	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if template {
				fmt.Fprint(out, config.GenerateConfigContent())
				return nil
			}
			if a.renderer.Format() == output.FormatJSON {
				return a.renderer.JSON(a.cfg.Keys())
			}

			data, err := a.cfg.TOML()
			if err != nil {
				return errors.Wrap(err, errors.ErrInternal, "failed to encode configuration")
			}
			if len(a.cfg.Sources) > 0 {
				fmt.Fprintf(out, MsgConfigSources+"\n", strings.Join(a.cfg.Sources, ", "))
			}
			_, err = out.Write(data)
			return err
		},
	}

	cmd.Flags().BoolVar(&template, "template", false, MsgFlagTemplate)
	return cmd
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: MsgCompletionShort,
		Long: `To load completions:

Bash:
  $ source <(frameseq completion bash)

Zsh:
  $ frameseq completion zsh > "${fpath[1]}/_frameseq"

Fish:
  $ frameseq completion fish | source

PowerShell:
  PS> frameseq completion powershell | Out-String | Invoke-Expression
`,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}
