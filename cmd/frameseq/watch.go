package frameseq

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arthur-debert/frameseq/pkg/logging"
	"github.com/arthur-debert/frameseq/pkg/watch"
	"github.com/spf13/cobra"
)

func newWatchCmd(a *app) *cobra.Command {
	var (
		interval   time.Duration
		noFsnotify bool
	)

	cmd := &cobra.Command{
		Use:     "watch",
		Short:   MsgWatchShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := a.store.Load()
			if err != nil {
				return err
			}
			if err := current.Selection().Validate(); err != nil {
				return err
			}

			// refresh.auto only governs periodic polling
			tick := time.Duration(0)
			if a.cfg.Refresh.Auto {
				tick = a.cfg.Refresh.Interval
			}
			if cmd.Flags().Changed("interval") {
				tick = interval
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			w := watch.New(watch.Options{
				Dir:         current.Directory,
				Interval:    tick,
				UseFsnotify: a.cfg.Refresh.UseFsnotify && !noFsnotify,
				Logger:      &a.logger,
			}, func(ctx context.Context, trigger watch.Trigger) error {
				defer logging.LogDuration(time.Now(), "refresh")

				b, result, err := a.refreshBinding()
				if err != nil {
					return err
				}
				if trigger == watch.TriggerInitial || result.Changed() {
					return a.renderer.RenderRefresh(result, b.Trailing(a.cfg.Refresh.TrailingFrames))
				}
				return nil
			})

			a.renderer.Message("Muted", MsgWatching, current.Directory)
			if err := w.Run(ctx); err != nil {
				return err
			}
			a.renderer.Message("Muted", MsgWatchStopped)
			return nil
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 0, MsgFlagInterval)
	cmd.Flags().BoolVar(&noFsnotify, "no-fsnotify", false, MsgFlagNoFsnotify)
	return cmd
}
