package synthfs

import (
	"context"
	"fmt"

	"github.com/arthur-debert/frameseq/pkg/errors"
	"github.com/arthur-debert/frameseq/pkg/logging"
	"github.com/arthur-debert/frameseq/pkg/types"
	"github.com/arthur-debert/synthfs/pkg/synthfs"
	sfsfs "github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/rs/zerolog"
)

// RenameExecutorOptions configures a RenameExecutor
type RenameExecutorOptions struct {
	// FileSystem performs the renames
	FileSystem types.FS
	// Rollback undoes applied renames, newest first, when one fails
	Rollback bool
	Logger   *zerolog.Logger
}

// RenameExecutor runs rename plans
type RenameExecutor struct {
	logger     zerolog.Logger
	fs         types.FS
	rollback   bool
	filesystem sfsfs.FullFileSystem
}

// NewRenameExecutor creates an executor writing through opts.FileSystem
func NewRenameExecutor(opts RenameExecutorOptions) *RenameExecutor {
	osfs := sfsfs.NewOSFileSystem("/")
	pathAwareFS := synthfs.NewPathAwareFileSystem(osfs, "/").WithAbsolutePaths()

	return &RenameExecutor{
		logger:     logging.Resolve(opts.Logger, "synthfs.rename"),
		fs:         opts.FileSystem,
		rollback:   opts.Rollback,
		filesystem: pathAwareFS,
	}
}

// Execute applies every rename in plan order, updating each rename's
// status in place. On failure the remaining renames stay pending and, with
// rollback enabled, the applied ones are reversed.
func (e *RenameExecutor) Execute(ctx context.Context, plan *types.RenamePlan) error {
	if plan == nil || plan.Empty() {
		return nil
	}
	if e.fs == nil {
		return errors.New(errors.ErrInternal, "rename executor has no filesystem")
	}
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, errors.ErrRenameFailed, "rename plan cancelled").
			WithDetail("applied", 0)
	}

	sfs := synthfs.New()
	ops := make([]synthfs.Operation, 0, plan.Len())
	index := make(map[synthfs.OperationID]int, plan.Len())

	for i := range plan.Renames {
		plan.Renames[i].Status = types.StatusPending
		id := fmt.Sprintf("rename_%05d_%s", i, plan.Renames[i].From)

		op := sfs.CustomOperationWithID(id, func(ctx context.Context, _ sfsfs.FileSystem) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rename := &plan.Renames[i]
			if err := e.fs.Rename(rename.FromPath(), rename.ToPath()); err != nil {
				rename.Status = types.StatusFailed
				return err
			}
			rename.Status = types.StatusApplied
			return nil
		})
		ops = append(ops, op)
		index[op.ID()] = i
	}

	options := synthfs.DefaultPipelineOptions()
	// Rollback is handled here; synthfs cannot reverse custom operations
	options.RollbackOnError = false

	e.logger.Info().
		Int("renameCount", len(ops)).
		Bool("staged", plan.Staged).
		Bool("rollbackEnabled", e.rollback).
		Msg("Executing rename plan")

	result, err := synthfs.RunWithOptions(ctx, e.filesystem, options, ops...)
	e.logResults(result, index, plan)

	if err == nil {
		if failed := firstFailed(plan); failed != nil {
			err = fmt.Errorf("rename %s failed", failed.From)
		}
	}
	if err == nil {
		e.logger.Info().Int("renameCount", len(ops)).Msg("Rename plan applied")
		return nil
	}

	applied := len(plan.Applied())
	renameErr := errors.Wrapf(err, errors.ErrRenameFailed,
		"rename failed after %d of %d renames", applied, plan.Len()).
		WithDetail("directory", plan.Renames[0].Dir).
		WithDetail("applied", applied)

	if failed := firstFailed(plan); failed != nil {
		renameErr.WithDetail("from", failed.From).WithDetail("to", failed.To)
	}

	if e.rollback && applied > 0 {
		rolledBack, rollbackErrs := e.rollbackApplied(plan)
		renameErr.WithDetail("rolled_back", rolledBack)
		if len(rollbackErrs) > 0 {
			renameErr.WithDetail("rollback_errors", rollbackErrs)
		}
	}
	return renameErr
}

// rollbackApplied reverses applied renames, newest first. Failures are
// logged and collected; the remaining renames are still attempted.
func (e *RenameExecutor) rollbackApplied(plan *types.RenamePlan) (int, []string) {
	rolledBack := 0
	var failures []string

	for i := len(plan.Renames) - 1; i >= 0; i-- {
		rename := &plan.Renames[i]
		if rename.Status != types.StatusApplied {
			continue
		}
		reverse := rename.Reverse()
		if err := e.fs.Rename(reverse.FromPath(), reverse.ToPath()); err != nil {
			e.logger.Error().
				Err(err).
				Str("from", reverse.From).
				Str("to", reverse.To).
				Msg("Rollback rename failed")
			failures = append(failures, fmt.Sprintf("%s -> %s: %v", reverse.From, reverse.To, err))
			continue
		}
		rename.Status = types.StatusRolledBack
		rolledBack++
	}

	e.logger.Warn().
		Int("rolledBack", rolledBack).
		Int("failures", len(failures)).
		Msg("Rolled back rename plan")
	return rolledBack, failures
}

// logResults reports per-operation outcomes from the synthfs result
func (e *RenameExecutor) logResults(result *synthfs.Result, index map[synthfs.OperationID]int, plan *types.RenamePlan) {
	if result == nil {
		return
	}
	for _, opResult := range result.GetOperations() {
		synthfsResult, ok := opResult.(synthfs.OperationResult)
		if !ok {
			continue
		}
		i, exists := index[synthfsResult.OperationID]
		if !exists {
			e.logger.Warn().
				Str("operationID", string(synthfsResult.OperationID)).
				Msg("Could not find rename for synthfs result")
			continue
		}

		rename := plan.Renames[i]
		event := e.logger.Debug()
		if synthfsResult.Status != synthfs.StatusSuccess {
			event = e.logger.Error().Err(synthfsResult.Error)
		}
		event.
			Str("from", rename.From).
			Str("to", rename.To).
			Dur("duration", synthfsResult.Duration).
			Msg("Rename executed")
	}
}

func firstFailed(plan *types.RenamePlan) *types.Rename {
	for i := range plan.Renames {
		if plan.Renames[i].Status == types.StatusFailed {
			return &plan.Renames[i]
		}
	}
	return nil
}
