package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/depwatch/domain"
)

func buildRecords() []domain.DependencyRecord {
	return []domain.DependencyRecord{
		{Name: "axios", Installed: "0.21.1", Latest: "0.21.4", Classification: domain.ClassPatch, AutoUpdatable: true},
		{Name: "react", Installed: "17.0.2", Latest: "18.2.0", Classification: domain.ClassMajor},
		{Name: "lodash", Installed: "4.17.21", Latest: "4.17.21", Classification: domain.ClassCurrent},
		{Name: "left-pad", Installed: "1.3.0", Classification: domain.ClassUnknown},
	}
}

func TestBuildRepositoryReport(t *testing.T) {
	t.Parallel()

	repo := domain.Repository{Path: "/tmp/app", Name: "app", Kind: domain.KindNodeJS}

	t.Run("should partition records into the three buckets", func(t *testing.T) {
		t.Parallel()

		// given
		records := buildRecords()

		// when
		report := domain.BuildRepositoryReport(repo, records, nil)

		// then
		assert.Equal(t, 4, report.PackageCount)
		assert.Equal(t, 1, report.AutoUpdateCount)
		assert.Equal(t, 1, report.ManualUpdateCount)
		assert.Equal(t, 1, report.CurrentCount)
		assert.Equal(t, 1, report.UnknownCount)

		assert.Contains(t, report.AutoUpdatePackages, "axios")
		assert.Contains(t, report.ManualUpdatePackages, "react")
		assert.Equal(t, "4.17.21", report.CurrentPackages["lodash"])

		// unknown entries appear in none of the buckets
		assert.NotContains(t, report.AutoUpdatePackages, "left-pad")
		assert.NotContains(t, report.ManualUpdatePackages, "left-pad")
		assert.NotContains(t, report.CurrentPackages, "left-pad")
	})

	t.Run("should label the manual bucket with its classification", func(t *testing.T) {
		t.Parallel()

		// when
		report := domain.BuildRepositoryReport(repo, buildRecords(), nil)

		// then
		change := report.ManualUpdatePackages["react"]
		assert.Equal(t, "17.0.2", change.From)
		assert.Equal(t, "18.2.0", change.To)
		assert.Equal(t, domain.ClassMajor, change.UpdateType)
	})

	t.Run("should use the applied declared-range transition for the auto bucket", func(t *testing.T) {
		t.Parallel()

		// given
		result := &domain.UpdateResult{
			Updated: true,
			Changed: map[string]domain.ChangedDependency{
				"axios": {From: "^0.21.1", To: "^0.21.4", UpdateType: domain.ClassPatch},
			},
			LockRefreshed: true,
		}

		// when
		report := domain.BuildRepositoryReport(repo, buildRecords(), result)

		// then
		require.Contains(t, report.AutoUpdatePackages, "axios")
		change := report.AutoUpdatePackages["axios"]
		assert.Equal(t, "^0.21.1", change.From)
		assert.Equal(t, "^0.21.4", change.To)
		assert.Equal(t, domain.ClassPatch, change.UpdateType)
		assert.True(t, report.AutoUpdated)
		assert.True(t, report.LockRefreshed)
	})

	t.Run("should fall back to bare versions in the auto bucket without an update result", func(t *testing.T) {
		t.Parallel()

		// when
		report := domain.BuildRepositoryReport(repo, buildRecords(), nil)

		// then
		change := report.AutoUpdatePackages["axios"]
		assert.Equal(t, "0.21.1", change.From)
		assert.Equal(t, "0.21.4", change.To)
		assert.False(t, report.AutoUpdated)
	})
}

func TestNewErrorReport(t *testing.T) {
	t.Parallel()

	t.Run("should carry the error and contribute zero counts", func(t *testing.T) {
		t.Parallel()

		// given
		repo := domain.Repository{Path: "/tmp/broken", Name: "broken"}

		// when
		report := domain.NewErrorReport(repo, errors.New("failed to parse package.json"))

		// then
		assert.Equal(t, "failed to parse package.json", report.Error)
		assert.Zero(t, report.PackageCount)
		assert.Zero(t, report.AutoUpdateCount)
		assert.Zero(t, report.ManualUpdateCount)
		assert.Zero(t, report.CurrentCount)
	})
}

func TestBuildConsolidatedReport(t *testing.T) {
	t.Parallel()

	t.Run("should sum bucket counts across repositories and stamp the time", func(t *testing.T) {
		t.Parallel()

		// given
		repoA := domain.Repository{Path: "/tmp/a", Name: "a", Kind: domain.KindNodeJS}
		repoB := domain.Repository{Path: "/tmp/b", Name: "b", Kind: domain.KindNodeJS}
		reports := []domain.RepositoryReport{
			domain.BuildRepositoryReport(repoA, buildRecords(), nil),
			domain.NewErrorReport(repoB, errors.New("unreadable manifest")),
		}

		// when
		before := time.Now().UTC()
		consolidated := domain.BuildConsolidatedReport(reports)

		// then
		assert.Equal(t, 2, consolidated.Summary.RepositoryCount)
		assert.Equal(t, 4, consolidated.Summary.TotalPackages)
		assert.Equal(t, 1, consolidated.Summary.TotalAutoUpdated)
		assert.Equal(t, 1, consolidated.Summary.TotalManualUpdateNeeded)
		assert.Equal(t, 1, consolidated.Summary.TotalCurrent)
		assert.Equal(t, 1, consolidated.Summary.TotalUnknown)
		assert.False(t, consolidated.Timestamp.Before(before))
		require.Len(t, consolidated.Repositories, 2)
		assert.Equal(t, "unreadable manifest", consolidated.Repositories[1].Error)
	})
}
