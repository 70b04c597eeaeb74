package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"

	"apv/internal/domain"
)

// Render projects a record into its machine-readable and human-readable
// forms. Pure: the record is never mutated. The JSON document is
// canonical; the HTML view is derived and may omit fields.
func Render(record domain.EvaluationRecord) (resultsJSON []byte, htmlDoc []byte, err error) {
	resultsJSON, err = json.MarshalIndent(Results(record), "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("marshal results: %w", err)
	}

	var buf bytes.Buffer
	if err := reportTmpl.Execute(&buf, record); err != nil {
		return nil, nil, fmt.Errorf("render html report: %w", err)
	}

	return resultsJSON, buf.Bytes(), nil
}

var reportTmpl = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Patch Evaluation Report</title>
<style>
body { font-family: sans-serif; margin: 2em; color: #222; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; margin: 1em 0; }
td, th { border: 1px solid #ccc; padding: 0.4em 0.8em; text-align: left; }
.ok { color: #1a7f37; font-weight: bold; }
.bad { color: #b42318; font-weight: bold; }
.entry { font-family: monospace; font-size: 0.9em; }
</style>
</head>
<body>
<h1>Patch Evaluation Report</h1>
<p>Generated: {{.Timestamp}}</p>
{{if .Resolved}}<p class="ok">RESOLVED: the originally observed failures are gone.</p>
{{else if .Reason}}<p class="bad">NOT RESOLVED: {{.Reason}}.</p>
{{else}}<p class="bad">NOT RESOLVED.</p>{{end}}
<table>
<tr><th>Phase</th><th>Status</th><th>Passed</th><th>Errors</th><th>Attempts</th><th>Reinstalled</th></tr>
<tr><td>pre</td><td>{{.Pre.Status}}</td><td>{{.Pre.Final.Passed}}</td><td>{{.Pre.Final.ErrorCount}}</td><td>{{.Pre.Attempts}}</td><td>{{range .Pre.Reinstalled}}{{.}} {{end}}</td></tr>
<tr><td>post</td><td>{{.Post.Status}}</td><td>{{.Post.Final.Passed}}</td><td>{{.Post.Final.ErrorCount}}</td><td>{{.Post.Attempts}}</td><td>{{range .Post.Reinstalled}}{{.}} {{end}}</td></tr>
</table>
<p>Change applied: {{if .ChangeApplied}}yes{{else}}no{{end}}{{if .DiffPath}} ({{.DiffPath}}){{end}}</p>
{{if .Post.Final.Entries}}
<h2>Remaining errors</h2>
{{range .Post.Final.Entries}}<p class="entry">[{{.Classification}}] {{.Message}}</p>
{{end}}{{end}}
</body>
</html>
`))
