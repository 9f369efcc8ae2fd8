package types

import (
	"fmt"
	"io/fs"
)

// Shell identifies a supported shell for completion installation.
type Shell string

const (
	ShellUnknown Shell = ""
	ShellFish    Shell = "fish"
	ShellBash    Shell = "bash"
	ShellZsh     Shell = "zsh"
)

// ParseShell maps a shell name (or completion-file suffix) to a Shell.
// Unrecognized names return ShellUnknown.
func ParseShell(name string) Shell {
	switch name {
	case "fish":
		return ShellFish
	case "bash":
		return ShellBash
	case "zsh":
		return ShellZsh
	default:
		return ShellUnknown
	}
}

// KnownShells lists the shells with a completion directory mapping,
// in the order they are reported to users.
func KnownShells() []Shell {
	return []Shell{ShellFish, ShellBash, ShellZsh}
}

// ScriptEntry is one installable script found at the repository root.
// Identity is Name; names are unique within a run.
type ScriptEntry struct {
	Name         string
	SourcePath   string
	IsExecutable bool
}

// CompletionEntry is one completion file found under the completions
// source directory, named <script>.<shell>.
type CompletionEntry struct {
	ScriptName string
	Shell      Shell
	SourcePath string
}

// LinkKind distinguishes the two kinds of symlink the installer manages.
type LinkKind string

const (
	LinkKindScript     LinkKind = "script"
	LinkKindCompletion LinkKind = "completion"
)

// LinkTarget is a single filesystem location the installer may create,
// skip, relink, or refuse to touch. Source is the desired absolute
// path inside the repository that the link must point at.
type LinkTarget struct {
	Name       string
	Kind       LinkKind
	Shell      Shell
	TargetPath string
	Source     string
}

// FilesystemState classifies what currently exists at a LinkTarget's
// path. It is computed fresh from the filesystem, never stored.
type FilesystemState string

const (
	// StateAbsent means no filesystem entry exists at the target path.
	StateAbsent FilesystemState = "absent"

	// StateValidSymlink means the entry is a symlink already pointing
	// at the desired source.
	StateValidSymlink FilesystemState = "valid"

	// StateStaleSymlink means the entry is a symlink pointing anywhere
	// else, including nowhere.
	StateStaleSymlink FilesystemState = "stale"

	// StateForeignFile means the entry exists and is not a symlink.
	// Foreign files are never mutated.
	StateForeignFile FilesystemState = "foreign"
)

// ActionKind is the reconciler's decision for one target.
type ActionKind string

const (
	ActionCreate   ActionKind = "create"
	ActionSkip     ActionKind = "skip"
	ActionRelink   ActionKind = "relink"
	ActionConflict ActionKind = "conflict"
)

// Action pairs a target with the reconciler's decision for it.
// Reason is set for Skip and Conflict; PreviousTarget for Relink.
type Action struct {
	Target         LinkTarget
	Kind           ActionKind
	Reason         string
	PreviousTarget string
}

func (a Action) String() string {
	switch a.Kind {
	case ActionRelink:
		return fmt.Sprintf("%s %s (was %s)", a.Kind, a.Target.TargetPath, a.PreviousTarget)
	case ActionSkip, ActionConflict:
		return fmt.Sprintf("%s %s: %s", a.Kind, a.Target.TargetPath, a.Reason)
	default:
		return fmt.Sprintf("%s %s -> %s", a.Kind, a.Target.TargetPath, a.Target.Source)
	}
}

// InstallPlan is the ordered action sequence for one run. Order follows
// the scanner's sorted-by-name order (scripts first, then completions)
// and is stable across runs.
type InstallPlan struct {
	Actions []Action
}

func (p InstallPlan) Len() int {
	return len(p.Actions)
}

// ReconcileResult holds the per-target outcomes and aggregate counts of
// a run. In dry-run mode the outcomes are the planned actions; in a
// real run they reflect what was executed, including any per-target
// downgrades to conflict.
type ReconcileResult struct {
	Created    int
	Skipped    int
	Relinked   int
	Conflicted int
	DryRun     bool
	Actions    []Action
}

// Tally adds one finalized action to the counts and detail list.
func (r *ReconcileResult) Tally(a Action) {
	r.Actions = append(r.Actions, a)
	switch a.Kind {
	case ActionCreate:
		r.Created++
	case ActionSkip:
		r.Skipped++
	case ActionRelink:
		r.Relinked++
	case ActionConflict:
		r.Conflicted++
	}
}

// FS is the filesystem surface the installer needs. The OS
// implementation lives in pkg/filesystem; tests may substitute
// their own.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadDir(name string) ([]fs.DirEntry, error)

	MkdirAll(path string, perm fs.FileMode) error
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)
	Remove(name string) error
}
