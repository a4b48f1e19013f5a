package domain

import "time"

// PackageChange is one reported version transition.
type PackageChange struct {
	From       string         `json:"from"`
	To         string         `json:"to"`
	UpdateType Classification `json:"updateType"`
}

// RepositoryReport aggregates the classification and update outcome for a
// single repository. Dependencies whose classification is unknown appear in
// none of the three buckets; UnknownCount makes the gap visible.
type RepositoryReport struct {
	Path                 string                   `json:"path"`
	Name                 string                   `json:"name"`
	PackageCount         int                      `json:"packageCount"`
	AutoUpdateCount      int                      `json:"autoUpdateCount"`
	ManualUpdateCount    int                      `json:"manualUpdateCount"`
	CurrentCount         int                      `json:"currentCount"`
	UnknownCount         int                      `json:"unknownCount"`
	AutoUpdated          bool                     `json:"autoUpdated"`
	LockRefreshed        bool                     `json:"lockRefreshed,omitempty"`
	AutoUpdatePackages   map[string]PackageChange `json:"autoUpdatePackages"`
	ManualUpdatePackages map[string]PackageChange `json:"manualUpdatePackages"`
	CurrentPackages      map[string]string        `json:"-"` // Rendering only, kept out of the persisted schema
	Error                string                   `json:"error,omitempty"`
}

// Summary holds the totals across every repository in a run.
type Summary struct {
	RepositoryCount         int `json:"repositoryCount"`
	TotalPackages           int `json:"totalPackages"`
	TotalAutoUpdated        int `json:"totalAutoUpdated"`
	TotalManualUpdateNeeded int `json:"totalManualUpdateNeeded"`
	TotalCurrent            int `json:"totalCurrent"`
	TotalUnknown            int `json:"totalUnknown"`
}

// ConsolidatedReport is the single artifact persisted to the JSON report
// file and the input to document rendering.
type ConsolidatedReport struct {
	Timestamp    time.Time          `json:"timestamp"`
	Summary      Summary            `json:"summary"`
	Repositories []RepositoryReport `json:"repositories"`
}

// BuildRepositoryReport partitions classified records into the current,
// auto-updated, and manual buckets. When an update result is available, the
// auto bucket carries the declared-range transition that was actually
// written (e.g. "^0.21.1" -> "^0.21.4") instead of the bare versions.
func BuildRepositoryReport(
	repo Repository,
	records []DependencyRecord,
	result *UpdateResult,
) RepositoryReport {
	report := RepositoryReport{
		Path:                 repo.Path,
		Name:                 repo.Name,
		PackageCount:         len(records),
		AutoUpdatePackages:   make(map[string]PackageChange),
		ManualUpdatePackages: make(map[string]PackageChange),
		CurrentPackages:      make(map[string]string),
	}

	for _, rec := range records {
		switch {
		case rec.Classification == ClassCurrent:
			report.CurrentPackages[rec.Name] = rec.Installed
		case rec.AutoUpdatable:
			change := PackageChange{
				From:       rec.Installed,
				To:         rec.Latest,
				UpdateType: ClassPatch,
			}
			if result != nil {
				if applied, ok := result.Changed[rec.Name]; ok {
					change.From = applied.From
					change.To = applied.To
				}
			}
			report.AutoUpdatePackages[rec.Name] = change
		case rec.Classification == ClassMinor || rec.Classification == ClassMajor:
			report.ManualUpdatePackages[rec.Name] = PackageChange{
				From:       rec.Installed,
				To:         rec.Latest,
				UpdateType: rec.Classification,
			}
		default:
			report.UnknownCount++
		}
	}

	report.AutoUpdateCount = len(report.AutoUpdatePackages)
	report.ManualUpdateCount = len(report.ManualUpdatePackages)
	report.CurrentCount = len(report.CurrentPackages)

	if result != nil {
		report.AutoUpdated = result.Updated
		report.LockRefreshed = result.LockRefreshed
	}

	return report
}

// NewErrorReport builds the report entry for a repository whose analysis
// failed. It contributes zero to every summary count.
func NewErrorReport(repo Repository, err error) RepositoryReport {
	return RepositoryReport{
		Path:                 repo.Path,
		Name:                 repo.Name,
		AutoUpdatePackages:   make(map[string]PackageChange),
		ManualUpdatePackages: make(map[string]PackageChange),
		CurrentPackages:      make(map[string]string),
		Error:                err.Error(),
	}
}

// BuildConsolidatedReport sums bucket counts across all repository reports
// and stamps the current time.
func BuildConsolidatedReport(reports []RepositoryReport) ConsolidatedReport {
	consolidated := ConsolidatedReport{
		Timestamp:    time.Now().UTC(),
		Repositories: reports,
	}

	consolidated.Summary.RepositoryCount = len(reports)
	for _, r := range reports {
		consolidated.Summary.TotalPackages += r.PackageCount
		consolidated.Summary.TotalAutoUpdated += r.AutoUpdateCount
		consolidated.Summary.TotalManualUpdateNeeded += r.ManualUpdateCount
		consolidated.Summary.TotalCurrent += r.CurrentCount
		consolidated.Summary.TotalUnknown += r.UnknownCount
	}

	return consolidated
}
