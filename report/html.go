package report

import (
	"os"
	"path/filepath"

	"github.com/google/safehtml/template"

	"github.com/mcorch/stateplot/runstat"
)

// indexTemplate renders the report index: the per-consistency summary
// table followed by every chart image.
var indexTemplate = template.Must(template.New("index").ParseFromTrustedTemplate(
	template.MakeTrustedTemplate(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>State-space exploration report</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.3em 0.8em; text-align: right; }
th:first-child, td:first-child { text-align: left; }
img { max-width: 45em; display: block; margin: 1em 0; }
</style>
</head>
<body>
<h1>State-space exploration report</h1>
{{if .Summary -}}
<h2>Total states by consistency model</h2>
<table>
<tr><th>consistency<th>n<th>min<th>q1<th>median<th>q3<th>max<th>mean</tr>
{{range .Summary -}}
<tr><td>{{.Consistency}}<td>{{.N}}<td>{{printf "%.0f" .Min}}<td>{{printf "%.0f" .Q1}}<td>{{printf "%.0f" .Median}}<td>{{printf "%.0f" .Q3}}<td>{{printf "%.0f" .Max}}<td>{{printf "%.1f" .Mean}}</tr>
{{end -}}
</table>
{{end -}}
<h2>Charts</h2>
{{range .Charts -}}
<h3>{{.}}</h3>
<img src="{{.}}" alt="{{.}}">
{{end -}}
</body>
</html>
`)))

type indexData struct {
	Summary []runstat.Summary
	Charts  []string
}

// writeIndex writes index.html into dir, linking every chart file.
func writeIndex(dir string, charts []string, summary []runstat.Summary) error {
	f, err := os.Create(filepath.Join(dir, "index.html"))
	if err != nil {
		return err
	}
	if err := indexTemplate.Execute(f, indexData{Summary: summary, Charts: charts}); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
