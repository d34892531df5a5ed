package server

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>LoadDeck</title>
<style>
body { font-family: sans-serif; margin: 2em; }
textarea { width: 100%; height: 12em; font-family: monospace; }
.error { color: #c00; font-weight: bold; }
.warnings { color: #c60; }
.layout svg { max-width: 100%; height: auto; border: 1px solid #ccc; }
iframe { width: 100%; height: 460px; border: none; }
</style>
</head>
<body>
<h1>LoadDeck</h1>
<form method="post" action="/plan">
<p>One cargo line per client, e.g. <code>Client1 #2 300x200x150</code>, <code>Client2 EUR</code>, <code>Client3 5.5 ldm</code>.</p>
<textarea name="text">{{.Text}}</textarea>
<p>
<label>Trailer
<select name="trailer">
{{range .Trailers}}<option value="{{.ID}}"{{if eq .ID $.Trailer}} selected{{end}}>{{.Name}} ({{.Length}} x {{.Width}} m)</option>
{{end}}</select>
</label>
<label>Strategy
<select name="strategy">
{{range .Strategies}}<option value="{{.}}"{{if eq . $.Strategy}} selected{{end}}>{{.}}</option>
{{end}}</select>
</label>
<button type="submit">Plan</button>
</p>
</form>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
{{with .Result}}
<h2>Plan {{.ID}}</h2>
<div class="layout">{{$.SVG}}</div>
<pre>{{$.Report}}</pre>
{{if $.Warnings}}<div class="warnings"><h3>Not placed</h3><ul>{{range $.Warnings}}<li>{{.}}</li>{{end}}</ul></div>{{end}}
{{if $.Chart}}<iframe title="Floor area per client" srcdoc="{{$.Chart}}"></iframe>{{end}}
{{end}}
</body>
</html>
`
