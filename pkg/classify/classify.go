// Package classify inspects the filesystem entry at a link target and
// sorts it into one of four states: absent, valid symlink, stale
// symlink, or foreign file. Classification never mutates the
// filesystem, never errors, and is never cached; the reconciler calls
// it fresh immediately before acting on each target.
package classify

import (
	"os"
	"path/filepath"

	"github.com/shelf-sh/shelf/pkg/types"
)

// Classification is the result for one target. LinkDest carries the
// symlink's current destination (absolutized) when the entry is a
// symlink; the reconciler reports it as the previous target on relink.
type Classification struct {
	State    types.FilesystemState
	LinkDest string
}

// Classify determines what currently exists at target.TargetPath.
//
// A symlink counts as valid only when its destination, resolved one
// level, equals the desired source exactly. Anything that exists and is
// not a symlink is foreign; so is a symlink whose destination cannot be
// read, rather than guessing at deeper chains.
func Classify(fsys types.FS, target types.LinkTarget) Classification {
	info, err := fsys.Lstat(target.TargetPath)
	if err != nil {
		if os.IsNotExist(err) {
			return Classification{State: types.StateAbsent}
		}
		// Lstat failed for something that may well exist; treat it as
		// foreign so it is never touched.
		return Classification{State: types.StateForeignFile}
	}

	if info.Mode()&os.ModeSymlink == 0 {
		return Classification{State: types.StateForeignFile}
	}

	dest, err := fsys.Readlink(target.TargetPath)
	if err != nil {
		return Classification{State: types.StateForeignFile}
	}
	if !filepath.IsAbs(dest) {
		dest = filepath.Join(filepath.Dir(target.TargetPath), dest)
	}
	dest = filepath.Clean(dest)

	if dest == filepath.Clean(target.Source) {
		return Classification{State: types.StateValidSymlink, LinkDest: dest}
	}
	return Classification{State: types.StateStaleSymlink, LinkDest: dest}
}
