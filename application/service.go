package application

import (
	"context"
	"errors"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/depwatch/config"
	"github.com/rios0rios0/depwatch/domain"
	"github.com/rios0rios0/depwatch/infrastructure/ecosystem"
)

// ErrNoRepositories is returned when discovery finds nothing to process;
// the process exits non-zero in that case.
var ErrNoRepositories = errors.New("no repositories found under the configured paths")

// Discoverer lists the repositories to process for a run.
type Discoverer interface {
	Discover(cfg *config.Config) ([]domain.Repository, error)
}

// UpdateService orchestrates the full pipeline: discover repositories ->
// read and classify dependencies -> apply patch-level updates -> aggregate
// reports. Repositories are processed strictly sequentially.
type UpdateService struct {
	discoverer Discoverer
	ecosystems *ecosystem.Registry
}

// NewUpdateService creates the service with the given collaborators.
func NewUpdateService(discoverer Discoverer, ecosystems *ecosystem.Registry) *UpdateService {
	return &UpdateService{
		discoverer: discoverer,
		ecosystems: ecosystems,
	}
}

// RunOptions holds runtime options for a single run.
type RunOptions struct {
	DryRun  bool // Classify and report only, never mutate
	Verbose bool
}

// Run executes the pipeline and returns the consolidated report. Failures
// of individual repositories are recorded in their report entries; only
// empty discovery or a top-level failure is returned as an error.
func (s *UpdateService) Run(
	ctx context.Context,
	cfg *config.Config,
	opts RunOptions,
) (*domain.ConsolidatedReport, error) {
	if opts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	repos, err := s.discoverer.Discover(cfg)
	if err != nil {
		return nil, err
	}
	if len(repos) == 0 {
		return nil, ErrNoRepositories
	}

	logger.Infof("Processing %d repositories", len(repos))

	reports := make([]domain.RepositoryReport, 0, len(repos))
	for _, repo := range repos {
		reports = append(reports, s.processRepository(ctx, repo, opts))
	}

	consolidated := domain.BuildConsolidatedReport(reports)
	logger.Infof(
		"Run complete: %d packages, %d auto-updated, %d manual, %d current",
		consolidated.Summary.TotalPackages,
		consolidated.Summary.TotalAutoUpdated,
		consolidated.Summary.TotalManualUpdateNeeded,
		consolidated.Summary.TotalCurrent,
	)
	return &consolidated, nil
}

// processRepository analyzes one repository and applies approved updates.
// Any failure is folded into the repository's report entry so the run can
// continue with the remaining repositories.
func (s *UpdateService) processRepository(
	ctx context.Context,
	repo domain.Repository,
	opts RunOptions,
) domain.RepositoryReport {
	eco := s.ecosystems.ForKind(repo.Kind)
	if eco == nil {
		return domain.NewErrorReport(repo, errors.New("no ecosystem registered for kind "+string(repo.Kind)))
	}

	logger.Infof("[%s] Analyzing %s", repo.Kind, repo.Path)

	records, err := eco.Analyze(ctx, repo)
	if err != nil {
		logger.Errorf("[%s] Failed to analyze %s: %v", repo.Kind, repo.Path, err)
		return domain.NewErrorReport(repo, err)
	}

	approved := approvedUpdates(records)
	if opts.DryRun || len(approved) == 0 {
		if opts.DryRun && len(approved) > 0 {
			logger.Infof("[%s] [DRY RUN] Would update %d packages in %s", repo.Kind, len(approved), repo.Path)
		}
		return domain.BuildRepositoryReport(repo, records, nil)
	}

	result, updateErr := eco.ApplyUpdates(ctx, repo, approved)
	if updateErr != nil {
		// The classification still stands; only the mutation failed.
		logger.Errorf("[%s] Failed to update %s: %v", repo.Kind, repo.Path, updateErr)
		report := domain.BuildRepositoryReport(repo, records, nil)
		report.Error = updateErr.Error()
		return report
	}

	if result.Updated {
		logger.Infof("[%s] Updated %d packages in %s", repo.Kind, len(result.Changed), repo.Path)
	}
	return domain.BuildRepositoryReport(repo, records, result)
}

// approvedUpdates collects the auto-updatable records as name -> latest.
func approvedUpdates(records []domain.DependencyRecord) map[string]string {
	approved := make(map[string]string)
	for _, rec := range records {
		if rec.AutoUpdatable {
			approved[rec.Name] = rec.Latest
		}
	}
	return approved
}
