package report

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/rios0rios0/depwatch/domain"
)

// htmlDocument is the styled rendering of the consolidated report. The pack
// carries no file-oriented templating library, so this stays on
// html/template from the standard library.
const htmlDocument = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Dependency Report</title>
<style>
body { font-family: sans-serif; margin: 2rem; color: #222; }
table { border-collapse: collapse; margin-bottom: 2rem; }
th, td { border: 1px solid #ccc; padding: 0.4rem 0.8rem; text-align: left; }
th { background: #f0f0f0; }
.error { color: #b00020; }
</style>
</head>
<body>
<h1>Dependency Report</h1>
<p>Generated: {{.Timestamp.Format "2006-01-02T15:04:05Z07:00"}}</p>
<h2>Summary</h2>
<ul>
<li>Repositories scanned: {{.Summary.RepositoryCount}}</li>
<li>Total packages: {{.Summary.TotalPackages}}</li>
<li>Auto-updated: {{.Summary.TotalAutoUpdated}}</li>
<li>Manual update needed: {{.Summary.TotalManualUpdateNeeded}}</li>
<li>Current: {{.Summary.TotalCurrent}}</li>
<li>Unresolved: {{.Summary.TotalUnknown}}</li>
</ul>
{{range .Repositories}}{{template "repository" .}}{{end}}
</body>
</html>
`

const htmlRepository = `<h2>{{.Report.Name}}</h2>
<p><code>{{.Report.Path}}</code></p>
{{if .Report.Error}}<p class="error">Error: {{.Report.Error}}</p>{{else}}
<table>
<tr><th>Package Name</th><th>Current Version</th><th>Latest Version</th><th>Status</th></tr>
{{range .Rows}}<tr><td>{{.Name}}</td><td>{{.Current}}</td><td>{{.Latest}}</td><td>{{.Status}}</td></tr>
{{end}}</table>
{{end}}
`

const htmlStandalone = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Dependency Report: {{.Report.Name}}</title></head>
<body>
{{template "repository" .}}
</body>
</html>
`

// repositoryView pairs a repository report with its precomputed table rows
// for the templates.
type repositoryView struct {
	Report domain.RepositoryReport
	Rows   []row
}

type documentView struct {
	Timestamp    time.Time
	Summary      domain.Summary
	Repositories []repositoryView
}

var htmlTemplates = template.Must(
	template.Must(
		template.New("document").Parse(htmlDocument),
	).New("repository").Parse(htmlRepository),
)

var htmlStandaloneTemplate = template.Must(
	template.Must(
		template.New("standalone").Parse(htmlStandalone),
	).New("repository").Parse(htmlRepository),
)

// RenderHTML produces the combined HTML document for a run.
func RenderHTML(rep *domain.ConsolidatedReport) (string, error) {
	view := documentView{
		Timestamp: rep.Timestamp,
		Summary:   rep.Summary,
	}
	for _, r := range rep.Repositories {
		view.Repositories = append(view.Repositories, repositoryView{Report: r, Rows: rowsFor(r)})
	}

	var sb strings.Builder
	if err := htmlTemplates.ExecuteTemplate(&sb, "document", view); err != nil {
		return "", fmt.Errorf("failed to render HTML document: %w", err)
	}
	return sb.String(), nil
}

// RenderRepositoryHTML produces a standalone HTML document for a single
// repository.
func RenderRepositoryHTML(r domain.RepositoryReport) (string, error) {
	var sb strings.Builder
	view := repositoryView{Report: r, Rows: rowsFor(r)}
	if err := htmlStandaloneTemplate.ExecuteTemplate(&sb, "standalone", view); err != nil {
		return "", fmt.Errorf("failed to render HTML document: %w", err)
	}
	return sb.String(), nil
}
