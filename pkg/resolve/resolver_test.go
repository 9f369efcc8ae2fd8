package resolve

import (
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelf-sh/shelf/pkg/config"
	"github.com/shelf-sh/shelf/pkg/manifest"
	"github.com/shelf-sh/shelf/pkg/types"
)

func setupXDG(t *testing.T) (configHome, dataHome string) {
	t.Helper()
	tmp := t.TempDir()
	configHome = filepath.Join(tmp, "config")
	dataHome = filepath.Join(tmp, "data")
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("XDG_DATA_HOME", dataHome)
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	return configHome, dataHome
}

func sampleManifest() manifest.Manifest {
	return manifest.Manifest{
		Scripts: []types.ScriptEntry{
			{Name: "backup", SourcePath: "/repo/backup", IsExecutable: true},
			{Name: "z", SourcePath: "/repo/z", IsExecutable: true},
		},
		Completions: []types.CompletionEntry{
			{ScriptName: "z", Shell: types.ShellBash, SourcePath: "/repo/completions/z.bash"},
			{ScriptName: "z", Shell: types.ShellFish, SourcePath: "/repo/completions/z.fish"},
		},
	}
}

func TestTargetsFish(t *testing.T) {
	configHome, _ := setupXDG(t)
	cfg := config.Config{BinDir: "/home/u/.local/bin", Shell: types.ShellFish}

	targets := Targets(cfg, sampleManifest())
	require.Len(t, targets, 3)

	assert.Equal(t, types.LinkTarget{
		Name:       "backup",
		Kind:       types.LinkKindScript,
		TargetPath: "/home/u/.local/bin/backup",
		Source:     "/repo/backup",
	}, targets[0])
	assert.Equal(t, "/home/u/.local/bin/z", targets[1].TargetPath)

	comp := targets[2]
	assert.Equal(t, types.LinkKindCompletion, comp.Kind)
	assert.Equal(t, filepath.Join(configHome, "fish", "completions", "z.fish"), comp.TargetPath)
	assert.Equal(t, "/repo/completions/z.fish", comp.Source)
}

func TestTargetsBashAndZshNaming(t *testing.T) {
	_, dataHome := setupXDG(t)

	m := manifest.Manifest{
		Scripts: []types.ScriptEntry{{Name: "z", SourcePath: "/repo/z"}},
		Completions: []types.CompletionEntry{
			{ScriptName: "z", Shell: types.ShellBash, SourcePath: "/repo/completions/z.bash"},
			{ScriptName: "z", Shell: types.ShellZsh, SourcePath: "/repo/completions/z.zsh"},
		},
	}

	bash := Targets(config.Config{BinDir: "/bin", Shell: types.ShellBash}, m)
	require.Len(t, bash, 2)
	assert.Equal(t, filepath.Join(dataHome, "bash-completion", "completions", "z"), bash[1].TargetPath)

	zsh := Targets(config.Config{BinDir: "/bin", Shell: types.ShellZsh}, m)
	require.Len(t, zsh, 2)
	assert.Equal(t, filepath.Join(dataHome, "zsh", "site-functions", "_z"), zsh[1].TargetPath)
}

func TestTargetsUnknownShellOmitsCompletions(t *testing.T) {
	setupXDG(t)
	cfg := config.Config{BinDir: "/bin", Shell: types.ShellUnknown}

	targets := Targets(cfg, sampleManifest())
	require.Len(t, targets, 2)
	for _, target := range targets {
		assert.Equal(t, types.LinkKindScript, target.Kind)
	}
}

func TestCompletionDir(t *testing.T) {
	setupXDG(t)
	for _, shell := range types.KnownShells() {
		dir, ok := CompletionDir(shell)
		assert.True(t, ok)
		assert.NotEmpty(t, dir)
	}
	_, ok := CompletionDir(types.ShellUnknown)
	assert.False(t, ok)
}
