// Package reconcile turns classified link targets into an ordered
// action plan and executes it. The transition table is a single
// exhaustive mapping from filesystem state to action; execution is
// strictly sequential so dry-run and real-run reports line up.
package reconcile

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/shelf-sh/shelf/pkg/classify"
	"github.com/shelf-sh/shelf/pkg/installerr"
	"github.com/shelf-sh/shelf/pkg/logging"
	"github.com/shelf-sh/shelf/pkg/types"
)

// Reconciler plans and executes link actions against a filesystem.
type Reconciler struct {
	fs     types.FS
	logger zerolog.Logger
}

// New creates a Reconciler operating on the given filesystem.
func New(fsys types.FS) *Reconciler {
	return &Reconciler{
		fs:     fsys,
		logger: logging.GetLogger("reconcile"),
	}
}

// decide is the transition table: each filesystem state maps to exactly
// one action.
//
//	Absent       -> Create   (nothing to lose)
//	ValidSymlink -> Skip     (idempotence)
//	StaleSymlink -> Relink   (installer-owned, safe to replace)
//	ForeignFile  -> Conflict (never overwrite user data)
func decide(target types.LinkTarget, c classify.Classification) types.Action {
	switch c.State {
	case types.StateAbsent:
		return types.Action{Target: target, Kind: types.ActionCreate}
	case types.StateValidSymlink:
		return types.Action{Target: target, Kind: types.ActionSkip, Reason: "already linked"}
	case types.StateStaleSymlink:
		return types.Action{Target: target, Kind: types.ActionRelink, PreviousTarget: c.LinkDest}
	default:
		return types.Action{Target: target, Kind: types.ActionConflict, Reason: "existing file is not a symlink"}
	}
}

// Plan classifies every target in order and builds the full action
// plan. It never mutates the filesystem; the plan's length always
// equals the number of targets.
func (r *Reconciler) Plan(targets []types.LinkTarget) types.InstallPlan {
	plan := types.InstallPlan{Actions: make([]types.Action, 0, len(targets))}
	for _, target := range targets {
		c := classify.Classify(r.fs, target)
		action := decide(target, c)
		r.logger.Trace().
			Str("target", target.TargetPath).
			Str("state", string(c.State)).
			Str("action", string(action.Kind)).
			Msg("Classified target")
		plan.Actions = append(plan.Actions, action)
	}
	return plan
}

// Execute runs the plan sequentially. In dry-run mode nothing is
// touched and the planned actions are reported as-is. Otherwise each
// target is re-classified immediately before acting on it, so a
// filesystem change between planning and execution is still handled
// safely. A classified conflict never aborts the run; an unexpected
// I/O failure does, returning the partial result alongside the error.
func (r *Reconciler) Execute(plan types.InstallPlan, dryRun bool) (types.ReconcileResult, error) {
	result := types.ReconcileResult{DryRun: dryRun}

	if dryRun {
		for _, action := range plan.Actions {
			result.Tally(action)
		}
		return result, nil
	}

	for _, planned := range plan.Actions {
		// Classification is always recomputed fresh before acting.
		action := decide(planned.Target, classify.Classify(r.fs, planned.Target))

		switch action.Kind {
		case types.ActionSkip, types.ActionConflict:
			result.Tally(action)
			continue
		}

		final, err := r.link(action)
		if err != nil {
			// The failed target stays in the detail list but is not
			// counted as done.
			result.Actions = append(result.Actions, final)
			return result, err
		}
		result.Tally(final)

		r.logger.Info().
			Str("target", final.Target.TargetPath).
			Str("source", final.Target.Source).
			Str("action", string(final.Kind)).
			Msg("Link reconciled")
	}

	return result, nil
}

// link performs a Create or Relink: ensure the parent directory, drop
// the stale link if there is one, create the new symlink. A parent
// directory that cannot be created downgrades a completion link to a
// conflict; for a script link it is fatal.
func (r *Reconciler) link(action types.Action) (types.Action, error) {
	target := action.Target

	parent := filepath.Dir(target.TargetPath)
	if err := r.fs.MkdirAll(parent, 0755); err != nil {
		if target.Kind == types.LinkKindCompletion {
			r.logger.Warn().Str("dir", parent).Err(err).Msg("Cannot create completion directory")
			return types.Action{
				Target: target,
				Kind:   types.ActionConflict,
				Reason: "cannot create completion directory",
			}, nil
		}
		return action, installerr.Wrapf(err, installerr.ErrDirCreate,
			"cannot create directory %s", parent).WithDetail("path", parent)
	}

	if action.Kind == types.ActionRelink {
		if err := r.fs.Remove(target.TargetPath); err != nil && !os.IsNotExist(err) {
			return action, installerr.Wrapf(err, installerr.ErrLinkRemove,
				"cannot remove stale link %s", target.TargetPath).WithDetail("path", target.TargetPath)
		}
	}

	if err := r.fs.Symlink(target.Source, target.TargetPath); err != nil {
		return action, installerr.Wrapf(err, installerr.ErrSymlinkCreate,
			"cannot create symlink %s", target.TargetPath).WithDetail("path", target.TargetPath)
	}

	return action, nil
}
