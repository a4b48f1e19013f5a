// Package scanner discovers repositories of the supported ecosystems under
// the configured roots.
package scanner

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/depwatch/config"
	"github.com/rios0rios0/depwatch/domain"
	"github.com/rios0rios0/depwatch/infrastructure/ecosystem"
)

// skipDirs are conventional dependency-install and metadata directories
// excluded from traversal.
var skipDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	"vendor":       true,
	"dist":         true,
}

// Scanner discovers repositories using the ecosystem registry for kind
// detection.
type Scanner struct {
	ecosystems *ecosystem.Registry
}

// New creates a scanner over the given registry.
func New(ecosystems *ecosystem.Registry) *Scanner {
	return &Scanner{ecosystems: ecosystems}
}

// Discover lists the repositories to process. REPO_PATHS entries are taken
// as repository roots; otherwise BASE_DIR is searched recursively; when
// neither is configured the current working directory is the sole root.
// Configured paths that do not exist are skipped, not fatal.
func (s *Scanner) Discover(cfg *config.Config) ([]domain.Repository, error) {
	if len(cfg.RepoPaths) > 0 {
		return s.fromRoots(cfg.RepoPaths), nil
	}
	if cfg.BaseDir != "" {
		return s.walk(cfg.BaseDir)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return s.fromRoots([]string{cwd}), nil
}

// fromRoots treats each path as one repository root.
func (s *Scanner) fromRoots(roots []string) []domain.Repository {
	repos := make([]domain.Repository, 0, len(roots))
	for _, root := range roots {
		if _, err := os.Stat(root); err != nil {
			logger.Debugf("Skipping missing path %q", root)
			continue
		}

		repo, ok := s.ecosystems.Detect(root)
		if !ok {
			logger.Debugf("No supported manifest in %q", root)
			continue
		}
		repo.Name = repositoryName(root)
		repos = append(repos, repo)
	}
	return repos
}

// walk searches a directory tree for repositories, skipping conventional
// dependency-install directories and not descending into found repositories.
func (s *Scanner) walk(baseDir string) ([]domain.Repository, error) {
	if _, err := os.Stat(baseDir); err != nil {
		logger.Debugf("Skipping missing base dir %q", baseDir)
		return nil, nil
	}

	var repos []domain.Repository
	err := filepath.WalkDir(baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warnf("Skipping unreadable path %q: %v", path, err)
			return fs.SkipDir
		}
		if !d.IsDir() {
			return nil
		}
		if skipDirs[d.Name()] && path != baseDir {
			return fs.SkipDir
		}

		repo, ok := s.ecosystems.Detect(path)
		if !ok {
			return nil
		}
		repo.Name = repositoryName(path)
		repos = append(repos, repo)
		return fs.SkipDir // repositories do not nest
	})
	if err != nil {
		return nil, err
	}

	logger.Infof("Discovered %d repositories under %q", len(repos), baseDir)
	return repos, nil
}

// repositoryName derives a display name from the directory's git remote,
// falling back to the directory base name.
func repositoryName(dir string) string {
	fallback := filepath.Base(dir)

	gitRepo, err := git.PlainOpen(dir)
	if err != nil {
		return fallback
	}
	remote, err := gitRepo.Remote("origin")
	if err != nil || len(remote.Config().URLs) == 0 {
		return fallback
	}

	return nameFromRemoteURL(remote.Config().URLs[0], fallback)
}

// nameFromRemoteURL extracts the repository name from a git remote URL.
func nameFromRemoteURL(url, fallback string) string {
	trimmed := strings.TrimSuffix(strings.TrimSuffix(url, "/"), ".git")
	if idx := strings.LastIndexAny(trimmed, "/:"); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}
	if trimmed == "" {
		return fallback
	}
	return trimmed
}
