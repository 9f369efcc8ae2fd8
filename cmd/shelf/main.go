package main

import (
	"os"

	"github.com/shelf-sh/shelf/pkg/style"
)

func main() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		style.NewRenderer(os.Stderr).RenderError(err)
		os.Exit(int(MapExitCode(err)))
	}
}
