package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/depwatch/config"
	"github.com/rios0rios0/depwatch/domain"
)

const (
	reportDirMode  = 0o755
	reportFileMode = 0o644
)

// WriteJSON persists the consolidated report, overwriting any previous run.
func WriteJSON(path string, rep *domain.ConsolidatedReport) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	if mkErr := os.MkdirAll(filepath.Dir(path), reportDirMode); mkErr != nil {
		return fmt.Errorf("failed to create report directory: %w", mkErr)
	}
	if writeErr := os.WriteFile(path, data, reportFileMode); writeErr != nil {
		return fmt.Errorf("failed to write report: %w", writeErr)
	}

	logger.Infof("Wrote JSON report to %s", path)
	return nil
}

// WriteDocuments renders and writes the combined document and, when
// configured, one document per repository next to it.
func WriteDocuments(cfg *config.Config, rep *domain.ConsolidatedReport) error {
	combined, err := renderCombined(cfg.DocumentFormat, rep)
	if err != nil {
		return err
	}

	if mkErr := os.MkdirAll(filepath.Dir(cfg.DocumentPath), reportDirMode); mkErr != nil {
		return fmt.Errorf("failed to create document directory: %w", mkErr)
	}
	if writeErr := os.WriteFile(cfg.DocumentPath, []byte(combined), reportFileMode); writeErr != nil {
		return fmt.Errorf("failed to write document: %w", writeErr)
	}
	logger.Infof("Wrote %s document to %s", cfg.DocumentFormat, cfg.DocumentPath)

	if !cfg.SeparateReports {
		return nil
	}

	for _, r := range rep.Repositories {
		rendered, renderErr := renderStandalone(cfg.DocumentFormat, r)
		if renderErr != nil {
			return renderErr
		}

		path := repositoryDocumentPath(cfg.DocumentPath, r.Name)
		if writeErr := os.WriteFile(path, []byte(rendered), reportFileMode); writeErr != nil {
			return fmt.Errorf("failed to write document for %s: %w", r.Name, writeErr)
		}
	}

	return nil
}

func renderCombined(format string, rep *domain.ConsolidatedReport) (string, error) {
	if format == config.FormatHTML {
		return RenderHTML(rep)
	}
	return RenderMarkdown(rep), nil
}

func renderStandalone(format string, r domain.RepositoryReport) (string, error) {
	if format == config.FormatHTML {
		return RenderRepositoryHTML(r)
	}
	return RenderRepositoryMarkdown(r), nil
}

// unsafeNameChars collapses anything outside [a-zA-Z0-9._-] in file names.
var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// repositoryDocumentPath derives the per-repository document path from the
// combined document path, e.g. reports/packages.md -> reports/packages-api.md.
func repositoryDocumentPath(combinedPath, repoName string) string {
	dir := filepath.Dir(combinedPath)
	base := filepath.Base(combinedPath)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	safe := unsafeNameChars.ReplaceAllString(repoName, "-")
	return filepath.Join(dir, fmt.Sprintf("%s-%s%s", stem, safe, ext))
}
