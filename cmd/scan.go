package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rios0rios0/depwatch/application"
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Report outdated dependencies without updating anything",
	Long: `Discover repositories and classify every declared dependency, then
write the JSON report and rendered document. No manifest is modified;
this is equivalent to "run --dry-run".`,
	RunE: runScan,
}

//nolint:gochecknoinits // required by cobra CLI pattern
func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(_ *cobra.Command, _ []string) error {
	return executePipeline(application.RunOptions{
		DryRun:  true,
		Verbose: verbose,
	})
}
