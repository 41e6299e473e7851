package dashboard

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/a-h/templ"
	"github.com/dustin/go-humanize"
	"go.hushlink.app/hushlink/db"
	"go.hushlink.app/hushlink/display"
)

// dashboardLayout wraps dashboard pages with the shared nav and the small
// fetch helpers used by the logs and QR Code sections.
func dashboardLayout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w,
			`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`+
				`<meta name="viewport" content="width=device-width, initial-scale=1">`+
				`<title>`+templ.EscapeString(title)+`</title>`+
				`<link rel="stylesheet" href="/static/style.css">`+
				`<link rel="icon" href="/static/favicon.svg">`+
				`</head><body class="dashboard">`+
				`<nav><a href="/dashboard">Dashboard</a>`+
				`<a href="/dashboard/secrets">Secrets</a>`+
				`<a href="/dashboard/qr-codes">QR Codes</a>`+
				`<a href="/dashboard/logs">Logs</a></nav>`); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, dashboardScript+`</body></html>`)
		return err
	})
}

const dashboardScript = `<script>
function loadLogs(page) {
  fetch("/dashboard/logs/data?page=" + page)
    .then(function (res) { return res.text(); })
    .then(function (html) { document.getElementById("logs-data").innerHTML = html; });
}
function deleteQrCode(url) {
  fetch("/dashboard/qr-codes/url?url=" + encodeURIComponent(url), { method: "DELETE" })
    .then(function (res) { return res.text(); })
    .then(function (html) { document.getElementById("qr-codes-list").innerHTML = html; });
}
document.addEventListener("DOMContentLoaded", function () {
  var logs = document.getElementById("logs-data");
  if (logs) { loadLogs(logs.dataset.page || 1); }
});
</script>`

func HomeTempl(appName string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w,
			`<h1>`+templ.EscapeString(appName)+` Dashboard</h1>`+
				`<ul>`+
				`<li><a href="/dashboard/secrets">Secret stats</a></li>`+
				`<li><a href="/dashboard/qr-codes">QR Codes</a></li>`+
				`<li><a href="/dashboard/logs">Logs</a></li>`+
				`</ul>`)
		return err
	})
	return dashboardLayout(appName+" Dashboard", body)
}

// ContentTempl renders a single titled block, used for error pages.
func ContentTempl(title string, body templ.Component) templ.Component {
	wrapped := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<h1>`+templ.EscapeString(title)+`</h1>`); err != nil {
			return err
		}
		return body.Render(ctx, w)
	})
	return dashboardLayout(title, wrapped)
}

func ErrorTempl(message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<p class="error">`+display.EscapeHTML(message)+`</p>`)
		return err
	})
}

// SecretsStatsTempl shows aggregate counts only; no secret contents.
func SecretsStatsTempl(activeCount, totalBytes int64) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w,
			`<h1>Secrets</h1>`+
				`<table><tbody>`+
				`<tr><th>Active secrets</th><td>`+strconv.FormatInt(activeCount, 10)+`</td></tr>`+
				`<tr><th>Ciphertext stored</th><td>`+humanize.Bytes(uint64(totalBytes))+`</td></tr>`+
				`</tbody></table>`)
		return err
	})
	return dashboardLayout("Secrets", body)
}

func QrCodesPageTempl(qrCodes []db.QrCode) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<h1>QR Codes</h1><div id="qr-codes-list">`); err != nil {
			return err
		}
		if err := QrCodesListTempl(qrCodes).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
	return dashboardLayout("QR Codes", body)
}

func QrCodesListTempl(qrCodes []db.QrCode) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(qrCodes) == 0 {
			_, err := io.WriteString(w, `<p class="muted">No QR Codes generated yet.</p>`)
			return err
		}
		if _, err := io.WriteString(w,
			`<table><thead><tr><th>URL</th><th>Created</th><th>Last Accessed</th>`+
				`<th>Hits</th><th></th></tr></thead><tbody>`); err != nil {
			return err
		}
		for _, c := range qrCodes {
			row := `<tr>` +
				`<td title="` + templ.EscapeString(c.Url) + `">` +
				display.EscapeHTML(display.TruncateLink(c.Url)) + `</td>` +
				`<td>` + display.EscapeHTML(display.FormatDate(c.CreatedAt.UTC().Format(time.RFC3339))) + `</td>` +
				`<td>` + display.EscapeHTML(display.FormatDate(c.LastAccessedAt.UTC().Format(time.RFC3339))) + `</td>` +
				`<td>` + strconv.FormatInt(c.AccessCount, 10) + `</td>` +
				`<td><button onclick="deleteQrCode('` + templ.EscapeString(c.Url) + `')">Delete</button></td>` +
				`</tr>`
			if _, err := io.WriteString(w, row); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</tbody></table>`)
		return err
	})
}

func LogsTempl(appName string, page int) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w,
			`<h1>Logs</h1>`+
				`<div id="logs-data" data-page="`+strconv.Itoa(page)+`">`+
				`<p class="muted">Loading…</p></div>`)
		return err
	})
	return dashboardLayout(appName+" Logs", body)
}

func LogsListTempl(logs []db.Log, page int, totalCount int64) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(logs) == 0 {
			_, err := io.WriteString(w, `<p class="muted">No log entries.</p>`)
			return err
		}
		if _, err := io.WriteString(w,
			`<table><thead><tr><th>When</th><th>Status</th><th>Method</th>`+
				`<th>Path</th><th>Message</th><th>Error</th></tr></thead><tbody>`); err != nil {
			return err
		}
		for _, l := range logs {
			row := `<tr>` +
				`<td>` + display.EscapeHTML(display.FormatDate(l.CreatedAt.UTC().Format(time.RFC3339))) + `</td>` +
				`<td>` + display.EscapeHTML(strOrDash(intPtrToStr(l.HttpStatus))) + `</td>` +
				`<td>` + display.EscapeHTML(strOrDash(deref(l.RequestMethod))) + `</td>` +
				`<td>` + display.EscapeHTML(strOrDash(deref(l.RequestPath))) + `</td>` +
				`<td>` + display.EscapeHTML(strOrDash(deref(l.Message))) + `</td>` +
				`<td>` + display.EscapeHTML(strOrDash(deref(l.Err))) + `</td>` +
				`</tr>`
			if _, err := io.WriteString(w, row); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</tbody></table>`); err != nil {
			return err
		}

		pager := fmt.Sprintf(`<p class="muted">%s entries · page %d</p><p>`, humanize.Comma(totalCount), page)
		if page > 1 {
			pager += fmt.Sprintf(`<button onclick="loadLogs(%d)">Newer</button> `, page-1)
		}
		if int64(page)*int64(len(logs)) < totalCount {
			pager += fmt.Sprintf(`<button onclick="loadLogs(%d)">Older</button>`, page+1)
		}
		pager += `</p>`
		_, err := io.WriteString(w, pager)
		return err
	})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intPtrToStr(n *int32) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(int(*n))
}

func strOrDash(s string) string {
	if s == "" {
		return "–"
	}
	return s
}
