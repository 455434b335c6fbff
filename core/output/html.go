package output

import (
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"diffly/core/diff"
)

// HTMLWriter renders the changeset as a standalone report page.
type HTMLWriter struct{}

func (HTMLWriter) Format(cs *diff.Changeset) (string, error) {
	var buf strings.Builder
	if err := reportTemplate.Execute(&buf, cs); err != nil {
		return "", fmt.Errorf("failed to render changeset %s: %w", cs.ChangesetID, err)
	}
	return buf.String(), nil
}

func (HTMLWriter) Extension() string { return "html" }

// formatValue renders a canonical-model value for display. JSON notation
// keeps strings, nulls and nested values unambiguous.
func formatValue(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

var reportTemplate = template.Must(template.New("changeset").Funcs(template.FuncMap{
	"val": formatValue,
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Changeset {{.ChangesetID}}</title>
<style>
  body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 2rem; color: #1f2430; }
  h1 { font-size: 1.4rem; }
  h2 { font-size: 1.1rem; margin-top: 2rem; border-bottom: 1px solid #d8dce5; padding-bottom: .3rem; }
  table { border-collapse: collapse; margin: .5rem 0 1rem; }
  th, td { border: 1px solid #d8dce5; padding: .3rem .6rem; font-size: .85rem; text-align: left; }
  th { background: #f3f5f9; }
  .meta td { border: none; padding: .1rem .6rem .1rem 0; }
  .insert { color: #1a7f37; }
  .update { color: #9a6700; }
  .delete { color: #cf222e; }
  .empty { color: #6e7781; font-style: italic; }
  code { background: #f3f5f9; padding: .1rem .3rem; border-radius: 3px; }
</style>
</head>
<body>
<h1>Changeset {{.ChangesetID}}</h1>
<table class="meta">
  <tr><td>Source</td><td><code>{{.SourceSchema}}</code></td></tr>
  <tr><td>Target</td><td><code>{{.TargetSchema}}</code></td></tr>
  <tr><td>Driver</td><td>{{.Driver}}</td></tr>
  <tr><td>Generated</td><td>{{.CreatedAt}}</td></tr>
</table>

<h2>Summary</h2>
<table>
  <tr><th>Inserts</th><th>Updates</th><th>Deletes</th><th>Total</th><th>Tables affected</th></tr>
  <tr>
    <td class="insert">{{.Summary.TotalInserts}}</td>
    <td class="update">{{.Summary.TotalUpdates}}</td>
    <td class="delete">{{.Summary.TotalDeletes}}</td>
    <td>{{.Summary.TotalChanges}}</td>
    <td>{{.Summary.TablesAffected}}</td>
  </tr>
</table>

{{if eq .Summary.TotalChanges 0}}
<p class="empty">No changes detected.</p>
{{end}}

{{range .Tables}}{{if not .IsEmpty}}
<h2>{{.TableName}}</h2>

{{if .Inserts}}
<h3 class="insert">Inserts ({{len .Inserts}})</h3>
<table>
  <tr><th>PK</th><th>Row</th></tr>
  {{range .Inserts}}
  <tr><td><code>{{val .PK}}</code></td><td><code>{{val .Data}}</code></td></tr>
  {{end}}
</table>
{{end}}

{{if .Updates}}
<h3 class="update">Updates ({{len .Updates}})</h3>
<table>
  <tr><th>PK</th><th>Column</th><th>Before</th><th>After</th></tr>
  {{range $upd := .Updates}}{{range $upd.ChangedColumns}}
  <tr>
    <td><code>{{val $upd.PK}}</code></td>
    <td>{{.Column}}</td>
    <td class="delete"><code>{{val .Before}}</code></td>
    <td class="insert"><code>{{val .After}}</code></td>
  </tr>
  {{end}}{{end}}
</table>
{{end}}

{{if .Deletes}}
<h3 class="delete">Deletes ({{len .Deletes}})</h3>
<table>
  <tr><th>PK</th><th>Row</th></tr>
  {{range .Deletes}}
  <tr><td><code>{{val .PK}}</code></td><td><code>{{val .Data}}</code></td></tr>
  {{end}}
</table>
{{end}}
{{end}}{{end}}
</body>
</html>
`))
