package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/depwatch/application"
	reportPkg "github.com/rios0rios0/depwatch/infrastructure/report"
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Scan repositories, apply patch updates, and write reports",
	Long: `Discover repositories, classify every declared dependency against
the registry, apply patch-level updates to the manifests, and write the
JSON report and rendered document.

This is the main command intended to be used in a cronjob. Minor and
major updates are listed for manual review but never applied.`,
	RunE: runUpdate,
}

//nolint:gochecknoinits // required by cobra CLI pattern
func init() {
	rootCmd.AddCommand(runCmd)
}

func runUpdate(_ *cobra.Command, _ []string) error {
	return executePipeline(application.RunOptions{
		DryRun:  dryRun,
		Verbose: verbose,
	})
}

// executePipeline runs the service and persists its outputs. Shared by the
// run and scan commands.
func executePipeline(opts application.RunOptions) error {
	appCtx, err := injectAppContext()
	if err != nil {
		return err
	}

	rep, err := appCtx.Service.Run(context.Background(), appCtx.Config, opts)
	if err != nil {
		return err
	}

	if writeErr := reportPkg.WriteJSON(appCtx.Config.ReportPath, rep); writeErr != nil {
		return writeErr
	}
	if docErr := reportPkg.WriteDocuments(appCtx.Config, rep); docErr != nil {
		return docErr
	}

	reportPkg.PrintSummary(rep)
	return nil
}
