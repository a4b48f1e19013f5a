// Package testdoubles provides test doubles (spies, stubs, dummies) for domain
// interfaces. These are hand-crafted implementations — no mock frameworks.
package testdoubles

import (
	"context"

	"github.com/rios0rios0/depwatch/config"
	"github.com/rios0rios0/depwatch/domain"
)

// ---------------------------------------------------------------------------
// SpyEcosystem
// ---------------------------------------------------------------------------

// SpyEcosystem implements domain.Ecosystem as a configurable spy.
// Configure the response fields for the methods your test exercises,
// then inspect the call-tracking fields to verify behavior.
type SpyEcosystem struct {
	// --- identity ---
	EcosystemKind domain.RepositoryKind

	// --- Detect ---
	DetectRepo  domain.Repository
	DetectFound bool

	// --- Analyze ---
	Records    []domain.DependencyRecord
	AnalyzeErr error
	// spy: repositories analyzed
	AnalyzedRepos []domain.Repository

	// --- ApplyUpdates ---
	UpdateResult *domain.UpdateResult
	UpdateErr    error
	// spy: approved maps received
	ApprovedMaps []map[string]string
}

var _ domain.Ecosystem = (*SpyEcosystem)(nil)

func (e *SpyEcosystem) Kind() domain.RepositoryKind { return e.EcosystemKind }

func (e *SpyEcosystem) Detect(_ string) (domain.Repository, bool) {
	return e.DetectRepo, e.DetectFound
}

func (e *SpyEcosystem) Analyze(
	_ context.Context,
	repo domain.Repository,
) ([]domain.DependencyRecord, error) {
	e.AnalyzedRepos = append(e.AnalyzedRepos, repo)
	return e.Records, e.AnalyzeErr
}

func (e *SpyEcosystem) ApplyUpdates(
	_ context.Context,
	_ domain.Repository,
	approved map[string]string,
) (*domain.UpdateResult, error) {
	e.ApprovedMaps = append(e.ApprovedMaps, approved)
	if e.UpdateErr != nil {
		return nil, e.UpdateErr
	}
	if e.UpdateResult != nil {
		return e.UpdateResult, nil
	}
	return &domain.UpdateResult{Changed: map[string]domain.ChangedDependency{}}, nil
}

// ---------------------------------------------------------------------------
// StubDiscoverer
// ---------------------------------------------------------------------------

// StubDiscoverer implements application.Discoverer with fixed results.
type StubDiscoverer struct {
	Repositories []domain.Repository
	Err          error
}

func (d *StubDiscoverer) Discover(_ *config.Config) ([]domain.Repository, error) {
	return d.Repositories, d.Err
}

// ---------------------------------------------------------------------------
// StubRunner
// ---------------------------------------------------------------------------

// RunnerCall records one command the code under test tried to run.
type RunnerCall struct {
	Dir  string
	Name string
	Args []string
}

// StubRunner implements domain.Runner with a fixed result and records every
// call it receives.
type StubRunner struct {
	Result domain.CommandResult
	Calls  []RunnerCall
}

var _ domain.Runner = (*StubRunner)(nil)

func (r *StubRunner) Run(
	_ context.Context,
	dir, name string,
	args ...string,
) domain.CommandResult {
	r.Calls = append(r.Calls, RunnerCall{Dir: dir, Name: name, Args: args})
	return r.Result
}

// SucceedingRunner returns a StubRunner whose commands always succeed.
func SucceedingRunner() *StubRunner {
	return &StubRunner{Result: domain.CommandResult{OK: true}}
}

// FailingRunner returns a StubRunner whose commands always fail with reason.
func FailingRunner(reason string) *StubRunner {
	return &StubRunner{Result: domain.CommandResult{Reason: reason}}
}
