package main

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/shelf-sh/shelf/internal/version"
	"github.com/shelf-sh/shelf/pkg/config"
	"github.com/shelf-sh/shelf/pkg/filesystem"
	"github.com/shelf-sh/shelf/pkg/logging"
	"github.com/shelf-sh/shelf/pkg/manifest"
	"github.com/shelf-sh/shelf/pkg/reconcile"
	"github.com/shelf-sh/shelf/pkg/resolve"
	"github.com/shelf-sh/shelf/pkg/style"
)

// NewRootCmd builds the shelf command tree.
func NewRootCmd() *cobra.Command {
	var (
		verbosity int
		opts      config.Options
	)

	rootCmd := &cobra.Command{
		Use:   "shelf [script...]",
		Short: "Link repository scripts onto your PATH",
		Long: `shelf installs the executable scripts of a repository into your shell
environment: each script is symlinked into a bin directory on $PATH and
its shell completion file is symlinked into the shell's completion
directory.

Existing files are classified before anything is touched: correct links
are skipped, links owned by a previous install are replaced, and
anything that is not a symlink is reported as a conflict and left
alone. Re-running is always safe.

With no arguments every script is installed; naming scripts restricts
the run to those.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd.OutOrStdout(), args, opts)
		},
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.Flags().BoolVarP(&opts.DryRun, "dry-run", "n", false, "Preview the plan without changing anything")
	rootCmd.Flags().StringVarP(&opts.Shell, "shell", "s", "", "Shell to install completions for (fish, bash, zsh; default: $SHELL)")
	rootCmd.Flags().StringVarP(&opts.BinDir, "bin-dir", "b", "", "Directory to link scripts into (default: ~/.local/bin)")
	rootCmd.Flags().StringVarP(&opts.RepoRoot, "repo", "r", "", "Script repository root (default: current directory)")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// runInstall is the whole pipeline: scan, filter, resolve, plan,
// execute, report. Per-target conflicts are reported but do not fail
// the run; configuration, selection and unexpected I/O errors do.
func runInstall(out io.Writer, requested []string, opts config.Options) error {
	style.AutoColor()
	renderer := style.NewRenderer(out)

	cfg, err := config.Resolve(opts)
	if err != nil {
		return err
	}

	fsys := filesystem.NewOS()

	m, err := manifest.Scan(fsys, cfg.RepoRoot)
	if err != nil {
		return err
	}
	m, err = manifest.Filter(m, requested)
	if err != nil {
		return err
	}

	targets := resolve.Targets(cfg, m)

	r := reconcile.New(fsys)
	result, execErr := r.Execute(r.Plan(targets), cfg.DryRun)

	// Report whatever completed, even when aborting on a fatal error.
	renderer.RenderResult(result)
	return execErr
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "shelf version %s\n", version.Version)
			fmt.Fprintf(out, "  commit: %s\n", version.Commit)
			fmt.Fprintf(out, "  built:  %s\n", version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish]",
		Short:                 "Generate shelf's own completion script",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			default:
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			}
		},
	}
}
