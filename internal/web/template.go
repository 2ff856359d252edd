package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/varley/smartcam/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
	"reverse": func(events []status.EventRecord) []status.EventRecord {
		out := make([]status.EventRecord, len(events))
		for i, ev := range events {
			out[len(events)-1-i] = ev
		}
		return out
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>SmartCam</title>
<style>
body { font-family: monospace; max-width: 700px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.delivered { color: green; }
.failed { color: red; }
.skipped { color: #888; }
</style>
</head>
<body>
<h1>SmartCam</h1>

<h2>Pipeline</h2>
<table>
<tr><th>Frames read</th><td>{{.Counters.FramesRead}}</td></tr>
<tr><th>Rate-limited skips</th><td>{{.Counters.RateSkipped}}</td></tr>
<tr><th>Source errors</th><td>{{.Counters.SourceErrors}}</td></tr>
<tr><th>Analyzer errors</th><td>{{.Counters.AnalyzerErrors}}</td></tr>
<tr><th>Motion frames</th><td>{{.Counters.MotionFrames}}</td></tr>
<tr><th>Cooldown suppressed</th><td>{{.Counters.Suppressed}}</td></tr>
<tr><th>Events dispatched</th><td>{{.Counters.Dispatched}}</td></tr>
</table>

{{if .Channels}}<h2>Channels</h2>
<table>
<tr><th>Channel</th><td>delivered / failed / skipped</td></tr>
{{range $name, $tally := .Channels}}<tr><th>{{$name}}</th><td><span class="delivered">{{$tally.Delivered}}</span> / <span class="failed">{{$tally.Failed}}</span> / <span class="skipped">{{$tally.Skipped}}</span></td></tr>
{{end}}</table>
{{end}}

{{if .Events}}<h2>Recent Events</h2>
<table>
{{range reverse .Events}}<tr><th>{{.Time.Format "2006-01-02 15:04:05"}}</th><td>{{.Message}}{{range $ch, $status := .Outcomes}} <span class="{{$status}}">{{$ch}}</span>{{end}}</td></tr>
{{end}}</table>
<p><a href="/snapshot.jpg">last snapshot</a></p>
{{end}}

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Source</th><td>{{.Config.Source}}</td></tr>
<tr><th>Confirmation window</th><td>{{.Config.Window}} frames</td></tr>
<tr><th>Cooldown</th><td>{{.Config.Cooldown}}</td></tr>
<tr><th>Max FPS</th><td>{{.Config.MaxFPS}}</td></tr>
<tr><th>Min area</th><td>{{.Config.MinArea}}</td></tr>
<tr><th>Snapshot dir</th><td>{{.Config.SaveDir}}</td></tr>
<tr><th>HTTP</th><td>{{.Config.HTTPAddr}}</td></tr>
</table>

<p><a href="/status.json">JSON</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	// Snapshot has Uptime() method but template needs a Duration field.
	data := struct {
		status.Snapshot
		Uptime time.Duration
	}{
		Snapshot: snap,
		Uptime:   snap.Uptime(),
	}
	indexTmpl.Execute(w, data)
}
