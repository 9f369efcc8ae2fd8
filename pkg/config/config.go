// Package config resolves the installer's configuration once at
// startup. The resolved Config is immutable and threaded explicitly
// through every later stage; nothing downstream reads environment
// state on its own.
//
// Precedence, highest first: command-line flags, SHELF_* environment
// variables, the optional config file, detection (current directory,
// $SHELL, XDG defaults).
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"

	"github.com/shelf-sh/shelf/pkg/installerr"
	"github.com/shelf-sh/shelf/pkg/logging"
	"github.com/shelf-sh/shelf/pkg/types"
)

// ConfigFileName is the optional per-user configuration file, looked
// up under the XDG config directory.
const ConfigFileName = "config.toml"

// Config is the fully resolved, immutable run configuration.
type Config struct {
	// RepoRoot is the absolute path of the script repository.
	RepoRoot string

	// BinDir is the absolute path links to scripts are created in.
	BinDir string

	// Shell is the resolved shell for completion installation.
	// ShellUnknown means completion targets are omitted.
	Shell types.Shell

	// ShellExplicit records whether Shell came from a flag or
	// environment override rather than $SHELL detection. An
	// unrecognized explicit shell is a configuration error; an
	// unrecognized detected shell only degrades to no completions.
	ShellExplicit bool

	// DryRun disables plan execution.
	DryRun bool
}

// Options carries the raw front-end overrides into Resolve. Empty
// fields mean "not given".
type Options struct {
	RepoRoot string
	BinDir   string
	Shell    string
	DryRun   bool
}

// fileConfig mirrors the config file schema.
type fileConfig struct {
	BinDir string `toml:"bin_dir"`
	Shell  string `toml:"shell"`
}

// envOverrides are environment-variable equivalents of the flags.
type envOverrides struct {
	RepoRoot string `env:"SHELF_REPO"`
	BinDir   string `env:"SHELF_BIN_DIR"`
	Shell    string `env:"SHELF_SHELL"`
}

// Resolve computes the run configuration. It is the only place in the
// installer that reads environment variables or the config file.
func Resolve(opts Options) (Config, error) {
	logger := logging.GetLogger("config")

	var ov envOverrides
	if err := env.Parse(&ov); err != nil {
		return Config{}, installerr.Wrap(err, installerr.ErrConfigInvalid, "failed to parse environment overrides")
	}

	fc, err := loadFile()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{DryRun: opts.DryRun}

	// Repository root: flag > env > working directory.
	repoRoot := firstNonEmpty(opts.RepoRoot, ov.RepoRoot)
	if repoRoot == "" {
		repoRoot, err = os.Getwd()
		if err != nil {
			return Config{}, installerr.Wrap(err, installerr.ErrConfigInvalid, "cannot determine working directory")
		}
	}
	cfg.RepoRoot, err = normalizePath(repoRoot)
	if err != nil {
		return Config{}, err
	}
	if info, statErr := os.Stat(cfg.RepoRoot); statErr != nil || !info.IsDir() {
		return Config{}, installerr.Newf(installerr.ErrConfigInvalid, "repository root is not a directory: %s", cfg.RepoRoot)
	}

	// Bin directory: flag > env > config file > XDG default.
	binDir := firstNonEmpty(opts.BinDir, ov.BinDir, fc.BinDir)
	if binDir == "" {
		binDir = xdg.BinHome
	}
	cfg.BinDir, err = normalizePath(binDir)
	if err != nil {
		return Config{}, err
	}

	// Shell: flag and env are explicit; the config file and $SHELL
	// only detect.
	if explicit := firstNonEmpty(opts.Shell, ov.Shell); explicit != "" {
		cfg.Shell = types.ParseShell(explicit)
		cfg.ShellExplicit = true
		if cfg.Shell == types.ShellUnknown {
			return Config{}, installerr.Newf(installerr.ErrShellUnknown, "unrecognized shell %q (known: fish, bash, zsh)", explicit)
		}
	} else {
		detected := firstNonEmpty(fc.Shell, shellFromEnv())
		cfg.Shell = types.ParseShell(detected)
		if detected != "" && cfg.Shell == types.ShellUnknown {
			logger.Warn().Str("shell", detected).Msg("Unrecognized shell, completions will not be installed")
		}
	}

	logger.Debug().
		Str("repoRoot", cfg.RepoRoot).
		Str("binDir", cfg.BinDir).
		Str("shell", string(cfg.Shell)).
		Bool("dryRun", cfg.DryRun).
		Msg("Configuration resolved")

	return cfg, nil
}

// FilePath returns the location of the optional config file.
func FilePath() string {
	return filepath.Join(xdg.ConfigHome, "shelf", ConfigFileName)
}

func loadFile() (fileConfig, error) {
	var fc fileConfig
	data, err := os.ReadFile(FilePath())
	if err != nil {
		if os.IsNotExist(err) {
			return fc, nil
		}
		return fc, installerr.Wrapf(err, installerr.ErrConfigInvalid, "cannot read config file %s", FilePath())
	}
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fc, installerr.Wrapf(err, installerr.ErrConfigInvalid, "cannot parse config file %s", FilePath())
	}
	return fc, nil
}

// shellFromEnv detects the user's shell from $SHELL.
func shellFromEnv() string {
	shell := os.Getenv("SHELL")
	if shell == "" {
		return ""
	}
	return filepath.Base(shell)
}

// normalizePath expands a leading tilde and makes the path absolute.
func normalizePath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", installerr.Wrap(err, installerr.ErrConfigInvalid, "cannot expand ~ without a home directory")
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", installerr.Wrapf(err, installerr.ErrConfigInvalid, "invalid path %q", path)
	}
	return abs, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
