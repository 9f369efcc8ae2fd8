// Package resolve computes the desired link location for every scanned
// entry: scripts go into the configured bin directory, completions into
// the shell's completion directory.
package resolve

import (
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/shelf-sh/shelf/pkg/config"
	"github.com/shelf-sh/shelf/pkg/logging"
	"github.com/shelf-sh/shelf/pkg/manifest"
	"github.com/shelf-sh/shelf/pkg/types"
)

// CompletionDir returns the completion directory for a shell, or false
// when the shell has no mapping. The table follows each shell's own
// lookup convention under the XDG base directories.
func CompletionDir(shell types.Shell) (string, bool) {
	switch shell {
	case types.ShellFish:
		return filepath.Join(xdg.ConfigHome, "fish", "completions"), true
	case types.ShellBash:
		return filepath.Join(xdg.DataHome, "bash-completion", "completions"), true
	case types.ShellZsh:
		return filepath.Join(xdg.DataHome, "zsh", "site-functions"), true
	default:
		return "", false
	}
}

// completionFileName is the link name the shell expects: fish keeps the
// suffix, bash uses the bare script name, zsh prefixes an underscore.
func completionFileName(shell types.Shell, script string) string {
	switch shell {
	case types.ShellFish:
		return script + ".fish"
	case types.ShellZsh:
		return "_" + script
	default:
		return script
	}
}

// Targets turns the filtered manifest into the ordered LinkTarget list:
// every script in name order, then every completion for the resolved
// shell. Completions for other shells, or for an unresolved shell, are
// omitted without error.
func Targets(cfg config.Config, m manifest.Manifest) []types.LinkTarget {
	logger := logging.GetLogger("resolve")

	targets := make([]types.LinkTarget, 0, len(m.Scripts)+len(m.Completions))

	for _, s := range m.Scripts {
		targets = append(targets, types.LinkTarget{
			Name:       s.Name,
			Kind:       types.LinkKindScript,
			TargetPath: filepath.Join(cfg.BinDir, s.Name),
			Source:     s.SourcePath,
		})
	}

	compDir, ok := CompletionDir(cfg.Shell)
	if !ok {
		if len(m.Completions) > 0 {
			logger.Debug().Str("shell", string(cfg.Shell)).Msg("No completion directory for shell, linking scripts only")
		}
		return targets
	}

	for _, c := range m.Completions {
		if c.Shell != cfg.Shell {
			continue
		}
		targets = append(targets, types.LinkTarget{
			Name:       c.ScriptName,
			Kind:       types.LinkKindCompletion,
			Shell:      c.Shell,
			TargetPath: filepath.Join(compDir, completionFileName(c.Shell, c.ScriptName)),
			Source:     c.SourcePath,
		})
	}

	return targets
}
