package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/arthur-debert/frameseq/pkg/errors"
	"github.com/arthur-debert/frameseq/pkg/logging"
	"github.com/arthur-debert/frameseq/pkg/sequence"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce is how long the directory must be quiet before an event
// triggers a refresh
const DefaultDebounce = 100 * time.Millisecond

// Trigger names what caused a refresh
type Trigger string

const (
	TriggerInitial Trigger = "initial"
	TriggerTick    Trigger = "tick"
	TriggerEvent   Trigger = "event"
)

// RefreshFunc is called for every trigger, never concurrently. Recoverable
// errors are logged and watching continues; any other error stops Run.
type RefreshFunc func(ctx context.Context, trigger Trigger) error

// Options configures a Watcher
type Options struct {
	// Dir is watched for file events
	Dir string
	// Interval between periodic refreshes; zero disables the ticker
	Interval time.Duration
	// UseFsnotify enables filesystem events in addition to the ticker
	UseFsnotify bool
	// Debounce defaults to DefaultDebounce
	Debounce time.Duration
	Logger   *zerolog.Logger
}

// Watcher drives a RefreshFunc
type Watcher struct {
	opts    Options
	refresh RefreshFunc
	logger  zerolog.Logger
}

// New creates a watcher calling fn
func New(opts Options, fn RefreshFunc) *Watcher {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	return &Watcher{
		opts:    opts,
		refresh: fn,
		logger:  logging.Resolve(opts.Logger, "watch"),
	}
}

// Run refreshes once, then on every trigger until ctx is cancelled
func (w *Watcher) Run(ctx context.Context) error {
	if w.opts.Interval <= 0 && !w.opts.UseFsnotify {
		return errors.New(errors.ErrWatch, "nothing to watch: no interval and fsnotify disabled")
	}

	var events <-chan fsnotify.Event
	var watchErrors <-chan error
	if w.opts.UseFsnotify {
		fw, err := fsnotify.NewWatcher()
		if err != nil {
			return errors.Wrap(err, errors.ErrWatch, "failed to create file watcher")
		}
		defer fw.Close()

		if err := fw.Add(w.opts.Dir); err != nil {
			return errors.Wrapf(err, errors.ErrWatch, "cannot watch %s", w.opts.Dir).
				WithDetail("directory", w.opts.Dir)
		}
		events = fw.Events
		watchErrors = fw.Errors
	}

	var tick <-chan time.Time
	if w.opts.Interval > 0 {
		ticker := time.NewTicker(w.opts.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	debounce := time.NewTicker(w.opts.Debounce)
	defer debounce.Stop()

	w.logger.Info().
		Str("directory", w.opts.Dir).
		Dur("interval", w.opts.Interval).
		Bool("fsnotify", w.opts.UseFsnotify).
		Msg("Watching frames")

	if err := w.fire(ctx, TriggerInitial); err != nil {
		return err
	}

	var lastEvent time.Time
	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("Watch stopped")
			return nil

		case <-tick:
			if err := w.fire(ctx, TriggerTick); err != nil {
				return err
			}

		case event, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if !IsFrameEvent(event) {
				continue
			}
			w.logger.Trace().Str("file", event.Name).Str("op", event.Op.String()).Msg("Frame event")
			lastEvent = time.Now()

		case <-debounce.C:
			if lastEvent.IsZero() || time.Since(lastEvent) < w.opts.Debounce {
				continue
			}
			lastEvent = time.Time{}
			if err := w.fire(ctx, TriggerEvent); err != nil {
				return err
			}

		case err, ok := <-watchErrors:
			if !ok {
				watchErrors = nil
				continue
			}
			w.logger.Warn().Err(err).Msg("File watcher error")
		}
	}
}

func (w *Watcher) fire(ctx context.Context, trigger Trigger) error {
	if ctx.Err() != nil {
		return nil
	}
	err := w.refresh(ctx, trigger)
	if err == nil {
		return nil
	}
	if errors.IsRecoverable(err) {
		w.logger.Debug().Err(err).Str("trigger", string(trigger)).Msg("Refresh skipped")
		return nil
	}
	w.logger.Error().Err(err).Str("trigger", string(trigger)).Msg("Refresh failed, stopping watch")
	return err
}

// IsFrameEvent reports whether an fsnotify event concerns an image frame
func IsFrameEvent(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	base := filepath.Base(event.Name)
	for _, ext := range sequence.RecognizedExtensions {
		if sequence.HasExtension(base, ext) {
			return true
		}
	}
	return false
}
