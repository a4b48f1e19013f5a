package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/rios0rios0/depwatch/domain"
)

// RenderMarkdown produces the combined markdown document for a run.
func RenderMarkdown(rep *domain.ConsolidatedReport) string {
	var sb strings.Builder

	sb.WriteString("# Dependency Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", rep.Timestamp.Format(time.RFC3339)))
	writeMarkdownSummary(&sb, rep.Summary)

	for _, r := range rep.Repositories {
		sb.WriteString(renderRepositoryMarkdown(r))
	}

	return sb.String()
}

// RenderRepositoryMarkdown produces a standalone markdown document for a
// single repository.
func RenderRepositoryMarkdown(r domain.RepositoryReport) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Dependency Report: %s\n", r.Name))
	sb.WriteString(renderRepositoryMarkdown(r))
	return sb.String()
}

func writeMarkdownSummary(sb *strings.Builder, s domain.Summary) {
	sb.WriteString("## Summary\n\n")
	sb.WriteString(fmt.Sprintf("- Repositories scanned: %d\n", s.RepositoryCount))
	sb.WriteString(fmt.Sprintf("- Total packages: %d\n", s.TotalPackages))
	sb.WriteString(fmt.Sprintf("- Auto-updated: %d\n", s.TotalAutoUpdated))
	sb.WriteString(fmt.Sprintf("- Manual update needed: %d\n", s.TotalManualUpdateNeeded))
	sb.WriteString(fmt.Sprintf("- Current: %d\n", s.TotalCurrent))
	sb.WriteString(fmt.Sprintf("- Unresolved: %d\n\n", s.TotalUnknown))
}

func renderRepositoryMarkdown(r domain.RepositoryReport) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("\n## %s\n\n", r.Name))
	sb.WriteString(fmt.Sprintf("Path: `%s`\n\n", r.Path))

	if r.Error != "" {
		sb.WriteString(fmt.Sprintf("**Error:** %s\n", r.Error))
		return sb.String()
	}

	rows := rowsFor(r)
	if len(rows) == 0 {
		sb.WriteString("No dependencies found.\n")
		return sb.String()
	}

	sb.WriteString("| Package Name | Current Version | Latest Version | Status |\n")
	sb.WriteString("| --- | --- | --- | --- |\n")
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf(
			"| %s | %s | %s | %s |\n",
			row.Name, row.Current, row.Latest, row.Status,
		))
	}

	return sb.String()
}
