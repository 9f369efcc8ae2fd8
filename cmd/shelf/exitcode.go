package main

import (
	"github.com/shelf-sh/shelf/pkg/installerr"
)

// ExitCode is the process exit status of shelf.
type ExitCode int

const (
	// ExitSuccess is a clean run, including runs that only report conflicts.
	ExitSuccess ExitCode = 0
	// ExitGeneral is any error without a more specific code.
	ExitGeneral ExitCode = 1
	// ExitConfig is an invalid configuration or an unknown explicit shell.
	ExitConfig ExitCode = 2
	// ExitSelection is a requested script name missing from the repository.
	ExitSelection ExitCode = 3
	// ExitIO is a filesystem failure while scanning or linking.
	ExitIO ExitCode = 4
)

// MapExitCode translates an error into the exit code reported to the shell.
func MapExitCode(err error) ExitCode {
	if err == nil {
		return ExitSuccess
	}
	switch installerr.GetErrorCode(err) {
	case installerr.ErrConfigInvalid, installerr.ErrShellUnknown:
		return ExitConfig
	case installerr.ErrSelectionNotFound:
		return ExitSelection
	case installerr.ErrRepoRead, installerr.ErrDirCreate,
		installerr.ErrLinkRemove, installerr.ErrSymlinkCreate:
		return ExitIO
	default:
		return ExitGeneral
	}
}
