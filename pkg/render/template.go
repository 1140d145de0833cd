package render

const dashboardTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Macro Radar</title>
<style>
:root { color-scheme: dark; }
body { background:#0d1117; color:#c9d1d9; font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',sans-serif; margin:0; padding:2rem; }
header { display:flex; justify-content:space-between; align-items:baseline; margin-bottom:1.5rem; }
h1 { font-size:1.4rem; margin:0; }
h2 { font-size:1.1rem; border-bottom:1px solid #30363d; padding-bottom:.4rem; margin-top:2rem; }
.meta { color:#8b949e; font-size:.85rem; }
.card { background:#161b22; border:1px solid #30363d; border-radius:8px; padding:1rem; margin-bottom:.75rem; }
.card-alert { border-color:#f85149; }
.card-header { display:flex; gap:.5rem; align-items:center; flex-wrap:wrap; margin-bottom:.5rem; }
.source-badge { background:#21262d; border-radius:4px; padding:.1rem .5rem; font-size:.75rem; }
.score-pill { border:1px solid; border-radius:999px; padding:.1rem .6rem; font-size:.8rem; font-weight:600; }
.theme-tag { background:#1f2937; color:#f0883e; border-radius:4px; padding:.1rem .4rem; font-size:.72rem; }
.alert-badge { color:#f85149; font-size:.75rem; font-weight:700; }
.card-title { margin:.2rem 0; font-size:1rem; }
.card-title a { color:#58a6ff; text-decoration:none; }
.preview { color:#8b949e; font-size:.85rem; margin:.4rem 0; }
.card-footer { color:#6e7681; font-size:.75rem; display:flex; gap:1rem; flex-wrap:wrap; }
.stats { display:flex; gap:2rem; flex-wrap:wrap; margin-bottom:.5rem; }
.stat-strip { display:flex; gap:.4rem; flex-wrap:wrap; align-items:center; }
.stat-strip .label { color:#8b949e; font-size:.8rem; }
.stat { background:#161b22; border:1px solid #30363d; border-radius:4px; padding:.1rem .5rem; font-size:.75rem; }
</style>
</head>
<body>
<header>
  <h1>Macro Radar</h1>
  <span class="meta">{{.Total}} articles · alert threshold {{printf "%.1f" .Threshold}} · generated {{.GeneratedAt}}</span>
</header>

<section class="stats">
  <div class="stat-strip">
    <span class="label">Per day</span>
    {{range .Days}}<span class="stat">{{.Day}} · {{.Count}}</span>{{end}}
  </div>
  {{if .ThemeCounts}}
  <div class="stat-strip">
    <span class="label">Themes</span>
    {{range .ThemeCounts}}<span class="theme-tag">{{.Label}} · {{.Count}}</span>{{end}}
  </div>
  {{end}}
</section>

<h2>Top signals</h2>
{{range .Top}}{{template "card" .}}{{else}}<p class="meta">No scored articles yet.</p>{{end}}

<h2>Full 7-day corpus</h2>
{{range .All}}{{template "card" .}}{{end}}

</body>
</html>

{{define "card"}}
<article class="card{{if .IsAlert}} card-alert{{end}}">
  <div class="card-header">
    <span class="source-badge">{{.Source}}</span>
    <span class="score-pill" style="color:{{.ScoreColor}};border-color:{{.ScoreColor}}" title="Sentiment: {{.Sentiment}} | Keywords: {{.Keywords}}">{{printf "%.1f" .Score}}</span>
    {{range .Themes}}<span class="theme-tag">{{.}}</span>{{end}}
    {{if .IsAlert}}<span class="alert-badge">ALERT</span>{{end}}
  </div>
  <h3 class="card-title"><a href="{{.Link}}" target="_blank" rel="noopener">{{.Title}}</a></h3>
  {{if .Preview}}<p class="preview">{{.Preview}}</p>{{end}}
  <div class="card-footer">
    <time>{{.Published}}</time>
    {{if .Keywords}}<span>{{.Keywords}}</span>{{end}}
  </div>
</article>
{{end}}
`
