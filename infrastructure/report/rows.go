// Package report persists the consolidated report as JSON and renders it as
// markdown or HTML documents. Rendering never mutates the report.
package report

import (
	"fmt"
	"sort"

	"github.com/rios0rios0/depwatch/domain"
)

// Status labels shown in the rendered documents.
const (
	statusUpdated = "Updated (patch)"
	statusCurrent = "Current"
)

// row is one rendered table line: package name, current version, latest
// version, and status.
type row struct {
	Name    string
	Current string
	Latest  string
	Status  string
}

// rowsFor flattens a repository report's three buckets into one
// name-sorted slice of table rows.
func rowsFor(r domain.RepositoryReport) []row {
	rows := make([]row, 0, r.AutoUpdateCount+r.ManualUpdateCount+r.CurrentCount)

	for name, change := range r.AutoUpdatePackages {
		rows = append(rows, row{
			Name:    name,
			Current: change.From,
			Latest:  change.To,
			Status:  statusUpdated,
		})
	}
	for name, change := range r.ManualUpdatePackages {
		rows = append(rows, row{
			Name:    name,
			Current: change.From,
			Latest:  change.To,
			Status:  manualStatus(change.UpdateType),
		})
	}
	for name, version := range r.CurrentPackages {
		rows = append(rows, row{
			Name:    name,
			Current: version,
			Latest:  version,
			Status:  statusCurrent,
		})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return rows
}

// manualStatus renders "Minor update required" / "Major update required".
func manualStatus(kind domain.Classification) string {
	switch kind {
	case domain.ClassMinor:
		return "Minor update required"
	case domain.ClassMajor:
		return "Major update required"
	default:
		return fmt.Sprintf("%s update required", kind)
	}
}
