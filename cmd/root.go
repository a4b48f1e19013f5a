package cmd

import (
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var (
	dryRun  bool
	verbose bool
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var rootCmd = &cobra.Command{
	Use:   "depwatch",
	Short: "Dependency scanner and patch-level auto-updater",
	Long: `A CLI tool that scans local repositories for outdated dependencies,
applies safe patch-level updates automatically, and emits a JSON report
plus a rendered document summarizing the state of every repository.

Supported ecosystems:
- Node.js projects (package.json / package-lock.json, npm registry)
- Go modules (go.mod / go.sum, toolchain version)

Minor and major updates are never applied; they are listed in the report
for manual review.`,
}

func Execute() error {
	return rootCmd.Execute()
}

//nolint:gochecknoinits // required by cobra CLI pattern
func init() {
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Show what would be done without making changes")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}
