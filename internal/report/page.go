package report

import (
	"html/template"
	"os"
)

type pageData struct {
	LastChecked string
	Services    []serviceCard
}

type serviceCard struct {
	Name        string
	Status      string
	StatusClass string
	ChartFile   string
	Strip       []string
}

var pageTmpl = template.Must(template.New("status").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>System Status</title>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Arial, sans-serif; margin: 2em; background-color: #f8f9fa; color: #212529; }
h1, h2 { color: #343a40; }
.service-grid { display: grid; grid-template-columns: repeat(3, 1fr); gap: 1.5em; }
@media (max-width: 992px) { .service-grid { grid-template-columns: repeat(2, 1fr); } }
@media (max-width: 768px) { .service-grid { grid-template-columns: 1fr; } }
.service { background-color: #fff; border: 1px solid #dee2e6; padding: 1.5em; border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
.service h3 { margin-top: 0; }
.up { color: #FA4616; font-weight: bold; }
.down { color: #0021A5; font-weight: bold; }
.unknown { color: #6c757d; font-weight: bold; }
.strip { display: flex; flex-wrap: wrap; gap: 1px; margin-top: 0.75em; }
.strip span { width: 6px; height: 14px; border-radius: 1px; }
.cell-up { background-color: #FA4616; }
.cell-down { background-color: #0021A5; }
.cell-nodata { background-color: #333333; }
.cell-future { background-color: #fff; border: 1px solid #dee2e6; }
img { max-width: 100%; height: auto; border-radius: 4px; margin-top: 1em; }
</style>
</head>
<body>
<h1>System Status</h1>
<h2>Last Checked: {{.LastChecked}}</h2>
<div class="service-grid">
{{range .Services}}<div class="service">
<h3>{{.Name}}</h3>
<p><strong>Status:</strong> <span class="{{.StatusClass}}">{{.Status}}</span></p>
{{if .Strip}}<div class="strip">{{range .Strip}}<span class="{{.}}"></span>{{end}}</div>
{{end}}<img src="{{.ChartFile}}" alt="{{.Name}} Uptime Chart">
</div>
{{end}}</div>
</body>
</html>
`))

// writePage renders the static status page to path.
func writePage(path string, data pageData) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := pageTmpl.Execute(f, data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
