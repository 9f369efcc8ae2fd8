// Package manifest enumerates the installable scripts and their
// completion files from the repository, and narrows them to a
// requested subset.
package manifest

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/shelf-sh/shelf/pkg/installerr"
	"github.com/shelf-sh/shelf/pkg/logging"
	"github.com/shelf-sh/shelf/pkg/types"
)

// CompletionsDirName is the repository subdirectory holding authored
// completion files, named <script>.<shell>.
const CompletionsDirName = "completions"

// ignoredNames are repository entries that are never scripts even when
// marked executable: the installer itself and packaging artifacts.
var ignoredNames = map[string]struct{}{
	"shelf":      {},
	"install":    {},
	"install.sh": {},
	"install.rs": {},
	"Makefile":   {},
	"LICENSE":    {},
}

// scriptSuffixes are extensions that still count as scripts. The
// suffix is stripped to form the install name, so z.rs links as
// binDir/z and pairs with completions/z.fish.
var scriptSuffixes = []string{".rs"}

// scriptName maps a repository filename to its install name.
// Extensionless files keep their name; a recognized script suffix is
// stripped; any other extension marks a non-script (README.md, go.mod).
func scriptName(filename string) (string, bool) {
	if !strings.Contains(filename, ".") {
		return filename, true
	}
	for _, suffix := range scriptSuffixes {
		if strings.HasSuffix(filename, suffix) && len(filename) > len(suffix) {
			return strings.TrimSuffix(filename, suffix), true
		}
	}
	return "", false
}

// Manifest is the scanner's output: every installable script and every
// completion file that belongs to one, both sorted by name.
type Manifest struct {
	Scripts     []types.ScriptEntry
	Completions []types.CompletionEntry
}

// Scan enumerates scripts (executable regular files directly in the
// repository root) and completions (recognized <script>.<shell> files
// under the completions directory). It has no side effects; output
// order is deterministic.
func Scan(fsys types.FS, repoRoot string) (Manifest, error) {
	logger := logging.GetLogger("manifest")

	var m Manifest

	entries, err := fsys.ReadDir(repoRoot)
	if err != nil {
		return m, installerr.Wrapf(err, installerr.ErrRepoRead, "cannot read repository root %s", repoRoot)
	}

	names := make(map[string]struct{})
	for _, entry := range entries {
		fileName := entry.Name()
		if entry.IsDir() || strings.HasPrefix(fileName, ".") {
			continue
		}
		if _, ignored := ignoredNames[fileName]; ignored {
			continue
		}
		name, ok := scriptName(fileName)
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			logger.Debug().Str("name", fileName).Err(err).Msg("Skipping unreadable entry")
			continue
		}
		if !info.Mode().IsRegular() || info.Mode().Perm()&0111 == 0 {
			continue
		}
		if _, dup := names[name]; dup {
			logger.Warn().Str("name", name).Str("file", fileName).Msg("Duplicate script name, keeping the first")
			continue
		}
		m.Scripts = append(m.Scripts, types.ScriptEntry{
			Name:         name,
			SourcePath:   filepath.Join(repoRoot, fileName),
			IsExecutable: true,
		})
		names[name] = struct{}{}
	}

	completionsDir := filepath.Join(repoRoot, CompletionsDirName)
	compEntries, err := fsys.ReadDir(completionsDir)
	if err != nil {
		if !os.IsNotExist(err) {
			return m, installerr.Wrapf(err, installerr.ErrRepoRead, "cannot read completions directory %s", completionsDir)
		}
	}
	for _, entry := range compEntries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		dot := strings.LastIndex(name, ".")
		if dot <= 0 {
			continue
		}
		base, suffix := name[:dot], name[dot+1:]
		shell := types.ParseShell(suffix)
		if shell == types.ShellUnknown {
			logger.Debug().Str("file", name).Msg("Ignoring completion with unrecognized shell suffix")
			continue
		}
		if _, ok := names[base]; !ok {
			logger.Debug().Str("file", name).Msg("Ignoring completion without a matching script")
			continue
		}
		m.Completions = append(m.Completions, types.CompletionEntry{
			ScriptName: base,
			Shell:      shell,
			SourcePath: filepath.Join(completionsDir, name),
		})
	}

	sort.Slice(m.Scripts, func(i, j int) bool {
		return m.Scripts[i].Name < m.Scripts[j].Name
	})
	sort.Slice(m.Completions, func(i, j int) bool {
		if m.Completions[i].ScriptName != m.Completions[j].ScriptName {
			return m.Completions[i].ScriptName < m.Completions[j].ScriptName
		}
		return m.Completions[i].Shell < m.Completions[j].Shell
	})

	logger.Debug().
		Int("scripts", len(m.Scripts)).
		Int("completions", len(m.Completions)).
		Msg("Repository scanned")

	return m, nil
}
