// Package gomod implements the Go toolchain ecosystem: go.mod manifests,
// go.sum lock artifacts, and the official release feed.
package gomod

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	logger "github.com/sirupsen/logrus"
	xsemver "golang.org/x/mod/semver"

	"github.com/rios0rios0/depwatch/domain"
)

const (
	manifestFile = "go.mod"
	sumFileName  = "go.sum"

	manifestFileMode = 0o644

	// toolchainName is the dependency name under which the Go toolchain
	// version itself is reported.
	toolchainName = "go"

	directiveFields = 2 // "go <version>" / "<module> <version>"
)

// Ecosystem implements domain.Ecosystem for Go module repositories. Required
// modules are listed but never resolved against a registry (that would be a
// second registry); only the toolchain version is compared and updated.
type Ecosystem struct {
	toolchain *toolchainResolver
	runner    domain.Runner
}

// New creates the Go ecosystem. A non-empty pinned version disables the
// release-feed query.
func New(pinnedVersion string, runner domain.Runner) *Ecosystem {
	return &Ecosystem{
		toolchain: newToolchainResolver(pinnedVersion),
		runner:    runner,
	}
}

func (e *Ecosystem) Kind() domain.RepositoryKind { return domain.KindGoModule }

// Detect returns the repository description when the directory carries a go.mod.
func (e *Ecosystem) Detect(dir string) (domain.Repository, bool) {
	manifestPath := filepath.Join(dir, manifestFile)
	if _, err := os.Stat(manifestPath); err != nil {
		return domain.Repository{}, false
	}

	repo := domain.Repository{
		Path:         dir,
		Kind:         domain.KindGoModule,
		ManifestPath: manifestPath,
	}
	sumPath := filepath.Join(dir, sumFileName)
	if _, err := os.Stat(sumPath); err == nil {
		repo.LockPath = sumPath
	}
	return repo, true
}

// Analyze parses the go.mod and classifies the toolchain version against
// the latest known release. Required modules classify as unknown.
func (e *Ecosystem) Analyze(
	ctx context.Context,
	repo domain.Repository,
) ([]domain.DependencyRecord, error) {
	data, err := os.ReadFile(repo.ManifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", manifestFile, err)
	}

	mod, err := parseModFile(string(data))
	if err != nil {
		return nil, err
	}

	latest := e.toolchain.Resolve(ctx)
	classification, auto := domain.Classify(mod.GoVersion, latest)

	records := []domain.DependencyRecord{{
		Name:           toolchainName,
		Installed:      mod.GoVersion,
		Latest:         latest,
		Classification: classification,
		AutoUpdatable:  auto,
	}}

	names := make([]string, 0, len(mod.Require))
	for name := range mod.Require {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		records = append(records, domain.DependencyRecord{
			Name:           name,
			Installed:      mod.Require[name],
			Classification: domain.ClassUnknown,
		})
	}

	return records, nil
}

// ApplyUpdates rewrites the go directive line in place when a toolchain
// update was approved, then runs "go mod tidy" as a best-effort follow-up.
func (e *Ecosystem) ApplyUpdates(
	ctx context.Context,
	repo domain.Repository,
	approved map[string]string,
) (*domain.UpdateResult, error) {
	result := &domain.UpdateResult{
		Changed: make(map[string]domain.ChangedDependency),
	}

	version, ok := approved[toolchainName]
	if !ok {
		return result, nil
	}

	data, err := os.ReadFile(repo.ManifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", manifestFile, err)
	}

	rewritten, from, changed := rewriteGoDirective(string(data), version)
	if !changed {
		return result, nil
	}

	if writeErr := os.WriteFile(repo.ManifestPath, []byte(rewritten), manifestFileMode); writeErr != nil {
		return nil, fmt.Errorf("failed to write %s: %w", manifestFile, writeErr)
	}

	result.Updated = true
	result.Changed[toolchainName] = domain.ChangedDependency{
		From:       from,
		To:         version,
		UpdateType: domain.ClassPatch,
	}

	attempt := e.runner.Run(ctx, repo.Path, "go", "mod", "tidy")
	result.LockRefreshed = attempt.OK
	if !attempt.OK {
		logger.Warnf("[gomod] go mod tidy failed in %s: %s", repo.Path, attempt.Reason)
	}

	return result, nil
}

// modFile is the parsed view of a go.mod manifest.
type modFile struct {
	Module    string
	GoVersion string
	Require   map[string]string // module path -> version ("v" prefix stripped)
}

// parseModFile extracts the module declaration, the go directive, and both
// single-line and block-style require declarations. Declarations discovered
// later overwrite earlier ones for the same module path.
func parseModFile(content string) (*modFile, error) {
	mod := &modFile{Require: make(map[string]string)}

	inBlock := false
	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = strings.TrimSpace(line[:idx])
		}
		if line == "" {
			continue
		}

		if inBlock {
			if line == ")" {
				inBlock = false
				continue
			}
			addRequirement(mod, line)
			continue
		}

		switch {
		case strings.HasPrefix(line, "module "):
			mod.Module = strings.TrimSpace(strings.TrimPrefix(line, "module "))
		case strings.HasPrefix(line, "go "):
			fields := strings.Fields(line)
			if len(fields) >= directiveFields {
				mod.GoVersion = strings.TrimPrefix(fields[1], "v")
			}
		case line == "require (":
			inBlock = true
		case strings.HasPrefix(line, "require "):
			addRequirement(mod, strings.TrimPrefix(line, "require "))
		}
	}

	if mod.Module == "" {
		return nil, errors.New("go.mod has no module declaration")
	}
	if mod.GoVersion == "" {
		return nil, errors.New("go.mod has no go directive")
	}
	return mod, nil
}

// addRequirement parses a "<path> <version>" requirement line.
func addRequirement(mod *modFile, line string) {
	fields := strings.Fields(line)
	if len(fields) < directiveFields {
		return
	}
	mod.Require[fields[0]] = strings.TrimPrefix(fields[1], "v")
}

// rewriteGoDirective replaces the version on the go directive line, leaving
// every other line untouched. Returns the previous version and whether the
// file actually changed.
func rewriteGoDirective(content, version string) (string, string, bool) {
	lines := strings.Split(content, "\n")
	from := ""
	changed := false

	for i, raw := range lines {
		trimmed := strings.TrimSpace(raw)
		if !strings.HasPrefix(trimmed, "go ") {
			continue
		}
		fields := strings.Fields(trimmed)
		if len(fields) < directiveFields {
			continue
		}

		from = fields[1]
		if from == version {
			return content, from, false
		}
		lines[i] = strings.Replace(raw, from, version, 1)
		changed = true
		break
	}

	return strings.Join(lines, "\n"), from, changed
}

// canonical reports whether a version string is a valid canonical semantic
// version once given the "v" prefix the comparison package expects.
func canonical(version string) bool {
	return xsemver.IsValid("v" + strings.TrimPrefix(version, "v"))
}
