package usecase

import (
	"context"
	"time"

	"github.com/classroom-tools/attendctl/pkg/domain/model"
	"github.com/classroom-tools/attendctl/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// UpdateRunOptions edits the column and flags used by the next run
func (c *Console) UpdateRunOptions(fn func(opts *model.RunOptions)) {
	c.update(func() { fn(&c.options) })
}

// RunAttendance validates the run settings, performs the single backend
// call while stepping through the cosmetic progress stages, and records the
// result or the error. The console always returns to ThreadResolved.
func (c *Console) RunAttendance(ctx context.Context) (*model.AttendanceResult, error) {
	settings, seq, err := c.beginRun()
	if err != nil {
		return nil, err
	}
	defer c.endRun(seq)

	c.stage(ctx, types.RunStagePreparing)
	c.stage(ctx, types.RunStageConnecting)
	c.stage(ctx, types.RunStageCollecting)

	result, err := c.backend.RunAttendance(ctx, settings)

	c.stage(ctx, types.RunStageParsing)
	c.stage(ctx, types.RunStageUpdatingSheet)
	c.stage(ctx, types.RunStageNotifying)

	if err != nil {
		msg := describe(ctx, err, prefixRunFailed, prefixRunError)
		c.update(func() { c.errMsg = msg })
		return nil, err
	}

	c.stage(ctx, types.RunStageDone)
	c.update(func() { c.result = result })
	return result, nil
}

// beginRun validates in the documented order and enters RunInFlight
func (c *Console) beginRun() (*model.RunSettings, int, error) {
	var (
		settings *model.RunSettings
		seq      int
		err      error
	)

	c.update(func() {
		if c.state == types.StateRunInFlight {
			err = goerr.Wrap(ErrRunInFlight, "run already in flight")
			c.errMsg = MsgRunInFlight
			return
		}
		if c.current == nil {
			err = goerr.Wrap(ErrNoWorkspaceSelected, "cannot run")
			c.errMsg = MsgSelectWorkspace
			return
		}
		if c.thread.IsZero() {
			err = goerr.Wrap(ErrNoThread, "cannot run", goerr.V(WorkspaceIDKey, c.current.ID))
			c.errMsg = MsgSelectThread
			return
		}

		column := types.NormalizeColumn(c.options.Column.String())
		if !column.IsSet() {
			err = goerr.Wrap(ErrEmptyColumn, "cannot run", goerr.V(WorkspaceIDKey, c.current.ID))
			c.errMsg = MsgEnterColumn
			return
		}
		if verr := column.Validate(); verr != nil {
			err = verr
			c.errMsg = MsgInvalidColumn
			return
		}
		c.options.Column = column

		if err = c.toRunInFlight(); err != nil {
			return
		}
		stopTimer(c.lingerTimer)
		c.progress = Progress{Visible: true, Stage: types.RunStagePreparing}
		seq = c.runSeq

		settings = &model.RunSettings{
			WorkspaceID:     c.current.ID,
			Thread:          c.thread,
			Column:          column,
			MarkAbsent:      c.options.MarkAbsent,
			SendThreadReply: c.options.SendThreadReply,
			SendDM:          c.options.SendDM,
		}
	})
	return settings, seq, err
}

// endRun restores the run control and hides the progress panel after the
// linger delay
func (c *Console) endRun(seq int) {
	c.update(func() {
		c.runFinished()
		if c.linger <= 0 {
			c.progress.Visible = false
			return
		}
		c.lingerTimer = time.AfterFunc(c.linger, func() {
			c.update(func() {
				// a newer run owns the panel
				if c.runSeq == seq && c.state != types.StateRunInFlight {
					c.progress.Visible = false
				}
			})
		})
	})
}

// stage publishes a progress step, then waits for its pacing delay
func (c *Console) stage(ctx context.Context, s types.RunStage) {
	c.update(func() { c.progress.Stage = s })
	if c.pacing {
		sleep(ctx, s.Pause())
	}
}

func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
