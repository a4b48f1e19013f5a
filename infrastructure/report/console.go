package report

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/rios0rios0/depwatch/domain"
)

// Console color palette, one per bucket.
var (
	headerColor  = color.New(color.FgWhite, color.Bold)
	autoColor    = color.New(color.FgGreen)
	manualColor  = color.New(color.FgYellow)
	currentColor = color.New(color.FgCyan)
	unknownColor = color.New(color.Faint)
	errorColor   = color.New(color.FgRed)
)

// PrintSummary writes a colored end-of-run summary to stdout.
func PrintSummary(rep *domain.ConsolidatedReport) {
	headerColor.Println("Dependency scan summary")

	for _, r := range rep.Repositories {
		if r.Error != "" {
			errorColor.Printf("  %s: %s\n", r.Name, r.Error)
			continue
		}

		fmt.Printf("  %s (%d packages): ", r.Name, r.PackageCount)
		autoColor.Printf("%d updated", r.AutoUpdateCount)
		fmt.Print(", ")
		manualColor.Printf("%d manual", r.ManualUpdateCount)
		fmt.Print(", ")
		currentColor.Printf("%d current", r.CurrentCount)
		if r.UnknownCount > 0 {
			fmt.Print(", ")
			unknownColor.Printf("%d unresolved", r.UnknownCount)
		}
		fmt.Println()
	}

	s := rep.Summary
	fmt.Printf(
		"Total: %d repositories, %d packages: %d updated, %d manual, %d current, %d unresolved\n",
		s.RepositoryCount, s.TotalPackages, s.TotalAutoUpdated,
		s.TotalManualUpdateNeeded, s.TotalCurrent, s.TotalUnknown,
	)
}
