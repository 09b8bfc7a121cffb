package health

import (
	"fmt"
	"html"
	"strings"
)

// RenderDashboardHTML returns the status page served at GET /health.
func RenderDashboardHTML(h CollectResult) string {
	headline := "All Systems Operational"
	if h.Status != "ok" {
		headline = "System Issues Detected"
	}

	var deps strings.Builder
	for _, name := range []string{"database", "redis"} {
		d := h.Dependencies[name]
		class := "ok"
		if d.Status != "connected" {
			class = "err"
		}
		ping := "--"
		if p, ok := d.PingMs.(*int64); ok && p != nil {
			ping = fmt.Sprint(*p)
		}
		fmt.Fprintf(&deps, `<div class="row"><span>%s</span><span class="pill %s">%s · %s ms</span></div>`,
			html.EscapeString(name), class, html.EscapeString(d.Status), ping)
	}

	inventory := `<div class="row"><span>No database</span><span>-</span></div>`
	if inv := h.Inventory; inv != nil {
		inventory = fmt.Sprintf(`<div class="row"><span>Buildings</span><span>%d</span></div>
<div class="row"><span>Current units</span><span>%d</span></div>
<div class="row"><span>Active leases</span><span>%d</span></div>
<div class="row"><span>Active occupancies</span><span>%d</span></div>`,
			inv.Buildings, inv.CurrentUnits, inv.ActiveLeases, inv.ActiveOccupancies)
	}

	lastReq := "-"
	if m, ok := h.Traffic.LastRequest.(map[string]interface{}); ok {
		lastReq = fmt.Sprintf("%v %v", m["method"], m["path"])
	}

	return `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>LeaseOS · API Status</title>
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <style>
    body { font-family: sans-serif; background: #F8F9FA; color: #173E35; margin: 40px auto; max-width: 960px; }
    .grid { display: grid; grid-template-columns: repeat(3, 1fr); gap: 24px; }
    .col { background: #fff; border-radius: 16px; padding: 24px; }
    .label { text-transform: uppercase; font-size: 11px; font-weight: 900; color: #94a3b8; margin-bottom: 16px; }
    .row { display: flex; justify-content: space-between; padding: 6px 0; font-weight: 700; }
    .pill { padding: 3px 10px; border-radius: 8px; font-size: 11px; }
    .ok { background: rgba(0,116,115,0.08); color: #007473; }
    .err { background: rgba(239,68,68,0.08); color: #EF4444; }
  </style>
</head>
<body>
  <h1>` + headline + `</h1>
  <div class="grid">
    <div class="col">
      <div class="label">Traffic</div>
      <div class="row"><span>Requests</span><span>` + fmt.Sprint(h.Traffic.TotalRequests) + `</span></div>
      <div class="row"><span>Failed</span><span>` + fmt.Sprint(h.Traffic.FailedCount) + `</span></div>
      <div class="row"><span>Success Rate</span><span>` + h.Traffic.SuccessRate + `%</span></div>
      <div class="row"><span>Avg Latency</span><span>` + fmt.Sprint(h.Traffic.AvgResponseTime) + `ms</span></div>
      <div class="row"><span>Last</span><span>` + html.EscapeString(lastReq) + `</span></div>
    </div>
    <div class="col">
      <div class="label">Inventory</div>
      ` + inventory + `
    </div>
    <div class="col">
      <div class="label">Connectivity</div>
      ` + deps.String() + `
      <div class="row"><span>Uptime</span><span>` + fmt.Sprint(h.Runtime.UptimeSeconds) + `s</span></div>
      <div class="row"><span>Heap</span><span>` + fmt.Sprint(h.Runtime.Memory.HeapUsed) + ` MB</span></div>
    </div>
  </div>
  <p><a href="/health/json">/health/json</a> · <a href="/health/errors">/health/errors</a></p>
</body>
</html>`
}
