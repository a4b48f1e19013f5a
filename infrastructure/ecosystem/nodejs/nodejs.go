// Package nodejs implements the Node.js ecosystem: package.json manifests,
// package-lock.json lock artifacts, and the npm registry.
package nodejs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/depwatch/domain"
)

const (
	manifestFile = "package.json"
	lockFileName = "package-lock.json"

	manifestFileMode = 0o644
)

// Ecosystem implements domain.Ecosystem for Node.js repositories.
type Ecosystem struct {
	registry *RegistryClient
	runner   domain.Runner
}

// New creates the Node.js ecosystem against the given registry URL.
func New(registryURL string, runner domain.Runner) *Ecosystem {
	return &Ecosystem{
		registry: NewRegistryClient(registryURL),
		runner:   runner,
	}
}

func (e *Ecosystem) Kind() domain.RepositoryKind { return domain.KindNodeJS }

// Detect returns the repository description when the directory carries a
// package.json.
func (e *Ecosystem) Detect(dir string) (domain.Repository, bool) {
	manifestPath := filepath.Join(dir, manifestFile)
	if _, err := os.Stat(manifestPath); err != nil {
		return domain.Repository{}, false
	}

	repo := domain.Repository{
		Path:         dir,
		Kind:         domain.KindNodeJS,
		ManifestPath: manifestPath,
	}
	lockPath := filepath.Join(dir, lockFileName)
	if _, err := os.Stat(lockPath); err == nil {
		repo.LockPath = lockPath
	}
	return repo, true
}

// Analyze reads the manifest and lock artifact, fetches the latest version
// of every declared package from the registry, and classifies each one.
func (e *Ecosystem) Analyze(
	ctx context.Context,
	repo domain.Repository,
) ([]domain.DependencyRecord, error) {
	data, err := os.ReadFile(repo.ManifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", manifestFile, err)
	}

	manifest, err := parseManifest(data)
	if err != nil {
		return nil, err
	}
	declared := extractDependencies(manifest)

	installed := resolveInstalledVersions(e.readLock(repo), declared)

	names := make([]string, 0, len(installed))
	for name := range installed {
		names = append(names, name)
	}
	sort.Strings(names)

	latest := e.registry.FetchLatest(ctx, names)

	records := make([]domain.DependencyRecord, 0, len(names))
	for _, name := range names {
		classification, auto := domain.Classify(installed[name], latest[name])
		records = append(records, domain.DependencyRecord{
			Name:           name,
			Installed:      installed[name],
			Latest:         latest[name],
			Classification: classification,
			AutoUpdatable:  auto,
		})
	}
	return records, nil
}

// readLock parses the lock artifact when present. Lock problems are never
// fatal: the caller falls back to the manifest-declared ranges.
func (e *Ecosystem) readLock(repo domain.Repository) map[string]string {
	if repo.LockPath == "" {
		return nil
	}

	data, err := os.ReadFile(repo.LockPath)
	if err != nil {
		logger.Warnf("[nodejs] Failed to read %s: %v", lockFileName, err)
		return nil
	}

	locked, err := parseLockVersions(data)
	if err != nil {
		logger.Warnf("[nodejs] Failed to parse %s: %v", lockFileName, err)
		return nil
	}
	return locked
}

// ApplyUpdates rewrites every approved package's declared value to the
// caret-prefixed new version across all three dependency sections, then
// refreshes the lock artifact as a best-effort follow-up. The manifest
// rewrite is a whole-file read-modify-write.
func (e *Ecosystem) ApplyUpdates(
	ctx context.Context,
	repo domain.Repository,
	approved map[string]string,
) (*domain.UpdateResult, error) {
	result := &domain.UpdateResult{
		Changed: make(map[string]domain.ChangedDependency),
	}
	if len(approved) == 0 {
		return result, nil
	}

	data, err := os.ReadFile(repo.ManifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", manifestFile, err)
	}

	manifest, err := parseManifest(data)
	if err != nil {
		return nil, err
	}

	content := string(data)
	for name, version := range approved {
		target := "^" + domain.NormalizeVersion(version)

		change := domain.ChangedDependency{
			To:         target,
			UpdateType: domain.ClassPatch,
		}
		for _, section := range sectionOrder {
			declared, ok := manifest.section(section)[name]
			if !ok || declared == target {
				continue
			}

			rewritten := rewriteDeclaration(content, name, declared, target)
			if rewritten == content {
				continue
			}
			content = rewritten
			change.From = declared
			change.Sections = append(change.Sections, section)
		}

		if len(change.Sections) > 0 {
			result.Changed[name] = change
		}
	}

	if len(result.Changed) == 0 {
		return result, nil
	}

	if writeErr := os.WriteFile(repo.ManifestPath, []byte(content), manifestFileMode); writeErr != nil {
		return nil, fmt.Errorf("failed to write %s: %w", manifestFile, writeErr)
	}
	result.Updated = true

	if repo.LockPath != "" {
		attempt := e.runner.Run(ctx, repo.Path, "npm", "install")
		result.LockRefreshed = attempt.OK
		if !attempt.OK {
			logger.Warnf("[nodejs] npm install failed in %s: %s", repo.Path, attempt.Reason)
		}
	}

	return result, nil
}

// rewriteDeclaration replaces `"name": "<declared>"` pairs with the new
// value, preserving the file's formatting. Anchoring on the declared value
// keeps unrelated fields that happen to share the key name untouched.
func rewriteDeclaration(content, name, declared, target string) string {
	pattern := regexp.MustCompile(
		`"` + regexp.QuoteMeta(name) + `"(\s*:\s*)"` + regexp.QuoteMeta(declared) + `"`,
	)
	return pattern.ReplaceAllString(
		content,
		`"`+name+`"${1}"`+target+`"`,
	)
}
