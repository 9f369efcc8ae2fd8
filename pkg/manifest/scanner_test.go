package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelf-sh/shelf/pkg/filesystem"
	"github.com/shelf-sh/shelf/pkg/types"
)

// writeScript creates an executable file in dir.
func writeScript(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("#!/bin/sh\n"), 0755))
}

func writeFile(t *testing.T, dir, name string, perm os.FileMode) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("content\n"), perm))
}

func TestScan(t *testing.T) {
	repo := t.TempDir()
	fsys := filesystem.NewOS()

	writeScript(t, repo, "z")
	writeScript(t, repo, "backup")
	writeFile(t, repo, "notes", 0644)       // not executable
	writeFile(t, repo, "README.md", 0755)   // unrecognized extension
	writeScript(t, repo, "install")         // ignored installer name
	writeFile(t, repo, ".hidden", 0755)     // dotfile
	require.NoError(t, os.Mkdir(filepath.Join(repo, "docs"), 0755))

	comps := filepath.Join(repo, CompletionsDirName)
	require.NoError(t, os.Mkdir(comps, 0755))
	writeFile(t, comps, "z.fish", 0644)
	writeFile(t, comps, "z.bash", 0644)
	writeFile(t, comps, "z.tcsh", 0644)      // unrecognized suffix
	writeFile(t, comps, "ghost.fish", 0644)  // no matching script
	writeFile(t, comps, "backup.zsh", 0644)

	m, err := Scan(fsys, repo)
	require.NoError(t, err)

	require.Len(t, m.Scripts, 2)
	assert.Equal(t, "backup", m.Scripts[0].Name)
	assert.Equal(t, "z", m.Scripts[1].Name)
	assert.Equal(t, filepath.Join(repo, "z"), m.Scripts[1].SourcePath)
	assert.True(t, m.Scripts[1].IsExecutable)

	require.Len(t, m.Completions, 3)
	assert.Equal(t, types.CompletionEntry{
		ScriptName: "backup",
		Shell:      types.ShellZsh,
		SourcePath: filepath.Join(comps, "backup.zsh"),
	}, m.Completions[0])
	assert.Equal(t, types.ShellBash, m.Completions[1].Shell)
	assert.Equal(t, types.ShellFish, m.Completions[2].Shell)
}

func TestScanSuffixedScripts(t *testing.T) {
	repo := t.TempDir()
	fsys := filesystem.NewOS()

	writeScript(t, repo, "z.rs")
	writeScript(t, repo, "install.rs") // ignored installer name
	writeFile(t, repo, "README.md", 0755)

	comps := filepath.Join(repo, CompletionsDirName)
	require.NoError(t, os.Mkdir(comps, 0755))
	writeFile(t, comps, "z.fish", 0644)

	m, err := Scan(fsys, repo)
	require.NoError(t, err)

	// z.rs installs as plain "z" and its completion matches on that name.
	require.Len(t, m.Scripts, 1)
	assert.Equal(t, "z", m.Scripts[0].Name)
	assert.Equal(t, filepath.Join(repo, "z.rs"), m.Scripts[0].SourcePath)

	require.Len(t, m.Completions, 1)
	assert.Equal(t, types.CompletionEntry{
		ScriptName: "z",
		Shell:      types.ShellFish,
		SourcePath: filepath.Join(comps, "z.fish"),
	}, m.Completions[0])
}

func TestScanDuplicateScriptName(t *testing.T) {
	repo := t.TempDir()
	writeScript(t, repo, "z")
	writeScript(t, repo, "z.rs")

	m, err := Scan(filesystem.NewOS(), repo)
	require.NoError(t, err)

	require.Len(t, m.Scripts, 1)
	assert.Equal(t, "z", m.Scripts[0].Name)
}

func TestScanNoCompletionsDir(t *testing.T) {
	repo := t.TempDir()
	writeScript(t, repo, "z")

	m, err := Scan(filesystem.NewOS(), repo)
	require.NoError(t, err)
	assert.Len(t, m.Scripts, 1)
	assert.Empty(t, m.Completions)
}

func TestScanMissingRoot(t *testing.T) {
	_, err := Scan(filesystem.NewOS(), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestScanDeterministicOrder(t *testing.T) {
	repo := t.TempDir()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		writeScript(t, repo, name)
	}

	first, err := Scan(filesystem.NewOS(), repo)
	require.NoError(t, err)
	second, err := Scan(filesystem.NewOS(), repo)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "alpha", first.Scripts[0].Name)
	assert.Equal(t, "mid", first.Scripts[1].Name)
	assert.Equal(t, "zeta", first.Scripts[2].Name)
}
