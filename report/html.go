package report

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"os"
	"time"

	"ledgercompare/apperrors"
)

// HTMLRenderer はスプリントボード形式のHTMLレポートを生成します
type HTMLRenderer struct {
	tmpl *template.Template
}

type htmlPage struct {
	View
	Title     string
	Generated string
	Lanes     []lane
	Toggles   []kindToggle
}

// NewHTMLRenderer はHTMLRendererを作成します
func NewHTMLRenderer() *HTMLRenderer {
	funcs := template.FuncMap{
		"percent": func(v float64) string { return fmt.Sprintf("%.1f%%", v) },
	}
	return &HTMLRenderer{
		tmpl: template.Must(template.New("board").Funcs(funcs).Parse(boardTemplate)),
	}
}

// Render はHTMLをwに書き出します
func (r *HTMLRenderer) Render(w io.Writer, v View) error {
	page := htmlPage{
		View:      v,
		Title:     fmt.Sprintf("%s vs %s", v.SystemA, v.SystemB),
		Generated: v.GeneratedAt.Format(time.DateTime),
		Lanes:     buildLanes(v),
		Toggles:   kindToggles(v),
	}

	// 途中で失敗したときに壊れたHTMLを書かないようにバッファに描画します
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, page); err != nil {
		return apperrors.NewReportError("html", err)
	}
	if _, err := buf.WriteTo(w); err != nil {
		return apperrors.NewReportError("html", err)
	}
	return nil
}

// WriteFile はHTMLをファイルに保存します
func (r *HTMLRenderer) WriteFile(path string, v View) error {
	var buf bytes.Buffer
	if err := r.Render(&buf, v); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return apperrors.NewFileError("write", path, err)
	}
	return nil
}

const boardTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 0; background: #f4f6f8; color: #0f1724; }
header { background: #0f1724; color: #fff; padding: 16px 24px; }
header h1 { margin: 0 0 4px; font-size: 20px; }
header .meta { font-size: 12px; opacity: .75; }
.stats { display: flex; flex-wrap: wrap; gap: 12px; padding: 16px 24px; }
.stat { background: #fff; border-radius: 6px; padding: 10px 14px; min-width: 120px; box-shadow: 0 1px 2px rgba(0,0,0,.08); }
.stat .value { font-size: 22px; font-weight: 600; }
.stat .label { font-size: 12px; color: #5b6776; }
.controls { display: flex; gap: 12px; align-items: center; padding: 0 24px 12px; }
.controls input, .controls select { padding: 6px 8px; font-size: 13px; }
.legend { display: flex; gap: 12px; padding: 0 24px 12px; font-size: 12px; }
.legend span { padding: 2px 8px; border-radius: 4px; }
.lane { margin: 0 24px 24px; background: #fff; border-radius: 6px; box-shadow: 0 1px 2px rgba(0,0,0,.08); }
.lane h2 { margin: 0; padding: 10px 14px; font-size: 15px; cursor: pointer; border-bottom: 1px solid #e3e7eb; }
.lane.collapsed .board { display: none; }
.board { overflow-x: auto; }
table { border-collapse: collapse; }
th, td { border: 1px solid #e3e7eb; vertical-align: top; padding: 6px; }
th { background: #f0f3f6; font-size: 13px; }
th.sub { font-weight: normal; font-size: 12px; color: #5b6776; }
td { min-width: 200px; }
.card { border-radius: 4px; padding: 6px 8px; margin-bottom: 6px; font-size: 12px; border-left: 4px solid #94a3b8; background: #f8fafc; }
.card.match { border-left-color: #16a34a; background: #f0fdf4; }
.card.diff { border-left-color: #d97706; background: #fffbeb; }
.card.a-only { border-left-color: #2563eb; background: #eff6ff; }
.card.b-only { border-left-color: #9333ea; background: #faf5ff; }
.card .key { font-weight: 600; }
.card .other { margin-top: 4px; color: #5b6776; }
.badge { display: inline-block; padding: 1px 6px; border-radius: 8px; font-size: 11px; margin-top: 4px; }
.status-ready { background: #dcfce7; color: #166534; }
.status-inprogress { background: #dbeafe; color: #1e40af; }
.status-open { background: #fef9c3; color: #854d0e; }
.status-rejected { background: #fee2e2; color: #991b1b; }
.status-other { background: #e5e7eb; color: #374151; }
.hidden { display: none; }
.kinds { display: flex; gap: 8px; padding: 0 24px 12px; }
.kinds button.off { opacity: .4; text-decoration: line-through; }
footer { padding: 12px 24px 24px; font-size: 12px; color: #5b6776; }
</style>
</head>
<body>
<header>
<h1>{{.Title}}</h1>
<div class="meta">Generated {{.Generated}} &middot; run {{.RunID}}</div>
</header>

<section class="stats">
<div class="stat"><div class="value">{{.Summary.TotalA}}</div><div class="label">{{.SystemA}} rows</div></div>
<div class="stat"><div class="value">{{.Summary.TotalB}}</div><div class="label">{{.SystemB}} rows</div></div>
<div class="stat"><div class="value">{{.Summary.SameSprint}}</div><div class="label">Same sprint</div></div>
<div class="stat"><div class="value">{{.Summary.CrossSprint}}</div><div class="label">Different sprints</div></div>
<div class="stat"><div class="value">{{.Summary.AOnly}}</div><div class="label">Only in {{.SystemA}}</div></div>
<div class="stat"><div class="value">{{.Summary.BOnly}}</div><div class="label">Only in {{.SystemB}}</div></div>
<div class="stat"><div class="value">{{percent .Summary.MatchRate}}</div><div class="label">Matched</div></div>
<div class="stat"><div class="value">{{.Summary.Defects.Total}}</div><div class="label">Defects</div></div>
</section>

<section class="controls">
<input id="task-filter" type="search" placeholder="Filter by key or title" oninput="applyFilters()">
<select id="sprint-filter" onchange="applyFilters()">
<option value="">All sprints</option>
{{- range .Summary.Sprints}}
<option value="{{.}}">{{.}}</option>
{{- end}}
</select>
<button type="button" onclick="toggleAll(false)">Expand all</button>
<button type="button" onclick="toggleAll(true)">Collapse all</button>
</section>

<section class="kinds">
{{- range .Toggles}}
<button type="button" class="card {{.Class}}" data-kind="{{.Class}}" onclick="toggleKind(this)">{{.Label}}</button>
{{- end}}
<button type="button" onclick="showKinds(true)">Show all</button>
<button type="button" onclick="showKinds(false)">Hide all</button>
</section>

<section class="legend">
<span class="card match">Same sprint</span>
<span class="card diff">Different sprints</span>
<span class="card a-only">Only in {{.SystemA}}</span>
<span class="card b-only">Only in {{.SystemB}}</span>
</section>

{{- $a := .SystemA}}{{$b := .SystemB}}
{{- range .Lanes}}
<section class="lane" id="{{.ID}}">
<h2 onclick="this.parentElement.classList.toggle('collapsed')">{{.Title}} ({{.Count}})</h2>
<div class="board">
<table>
<thead>
<tr>
{{- range .Columns}}
<th colspan="2" data-sprint="{{.Sprint}}">{{.Sprint}}</th>
{{- end}}
</tr>
<tr>
{{- range .Columns}}
<th class="sub" data-sprint="{{.Sprint}}">{{$a}}</th>
<th class="sub" data-sprint="{{.Sprint}}">{{$b}}</th>
{{- end}}
</tr>
</thead>
<tbody>
<tr>
{{- range .Columns}}
<td data-sprint="{{.Sprint}}">{{range .A}}{{template "card" .}}{{end}}</td>
<td data-sprint="{{.Sprint}}">{{range .B}}{{template "card" .}}{{end}}</td>
{{- end}}
</tr>
</tbody>
</table>
</div>
</section>
{{- end}}

{{- if .Warnings}}
<section class="lane">
<h2>Warnings ({{len .Warnings}})</h2>
<ul>
{{- range .Warnings}}
<li>{{.Kind}}: {{.System}} key {{.Key}} appears in rows {{.Rows}}, kept row {{.Kept}}</li>
{{- end}}
</ul>
</section>
{{- end}}

<footer>
{{.SystemA}}: {{.Summary.TotalA}} rows &middot; {{.SystemB}}: {{.Summary.TotalB}} rows &middot; exported {{.Generated}}
</footer>

<script>
var hiddenKinds = {};
function toggleKind(btn) {
  var kind = btn.getAttribute('data-kind');
  hiddenKinds[kind] = !hiddenKinds[kind];
  btn.classList.toggle('off', hiddenKinds[kind]);
  applyFilters();
}
function showKinds(show) {
  document.querySelectorAll('button[data-kind]').forEach(function (btn) {
    hiddenKinds[btn.getAttribute('data-kind')] = !show;
    btn.classList.toggle('off', !show);
  });
  applyFilters();
}
function applyFilters() {
  var text = document.getElementById('task-filter').value.trim().toUpperCase();
  var sprint = document.getElementById('sprint-filter').value;
  document.querySelectorAll('[data-sprint]').forEach(function (el) {
    el.classList.toggle('hidden', sprint !== '' && el.getAttribute('data-sprint') !== sprint);
  });
  document.querySelectorAll('.card[data-search]').forEach(function (el) {
    var unmatched = text !== '' && el.getAttribute('data-search').indexOf(text) < 0;
    el.classList.toggle('hidden', unmatched || hiddenKinds[el.getAttribute('data-kind')] === true);
  });
}
function toggleAll(collapse) {
  document.querySelectorAll('.lane').forEach(function (el) {
    el.classList.toggle('collapsed', collapse);
  });
}
</script>
</body>
</html>
{{define "card"}}<div class="card {{.Kind}}" data-kind="{{.Kind}}" data-search="{{.SearchText}}">
<div class="key">{{if .Linked}}<a href="{{.URL}}" target="_blank" rel="noopener">{{.Key}}</a>{{else}}{{.Key}}{{end}}</div>
<div class="title">{{.Title}}</div>
{{- if .ShowStatus}}
<span class="badge {{.StatusClass}}">{{.Status}}</span>
{{- end}}
{{- with .Other}}
<div class="other">{{$.OtherSystem}}: {{if .Linked}}<a href="{{.URL}}" target="_blank" rel="noopener">{{.Key}}</a>{{else}}{{.Key}}{{end}} ({{.Status}})</div>
{{- end}}
</div>{{end}}
`
