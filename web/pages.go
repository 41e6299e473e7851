// Package web renders the public pages. Components are written against the
// templ runtime directly; everything dynamic goes through templ.EscapeString
// or display.EscapeHTML before it reaches markup.
package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"go.hushlink.app/hushlink/display"
)

func LayoutTempl(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w,
			`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`+
				`<meta name="viewport" content="width=device-width, initial-scale=1">`+
				`<title>`+templ.EscapeString(title)+`</title>`+
				`<link rel="stylesheet" href="/static/style.css">`+
				`<link rel="icon" href="/static/favicon.svg">`+
				`<link rel="manifest" href="/app.webmanifest">`+
				`<script src="/static/app.js" defer></script>`+
				`</head><body>`); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</body></html>`)
		return err
	})
}

// IndexTempl is the create-secret page.
func IndexTempl(appName string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w,
			`<h1>`+templ.EscapeString(appName)+`</h1>`+
				`<p class="muted">Share a secret with a link that works exactly once.</p>`+
				`<textarea id="secret" placeholder="Paste your secret here…"></textarea>`+
				`<p><button id="share-btn">Create one-time link</button></p>`+
				`<div id="result" class="result"></div>`)
		return err
	})
	return LayoutTempl(appName, body)
}

// ViewTempl is the reveal page for a single share link. The existence check
// already happened; gone links get a terse dead-end with no reveal button.
func ViewTempl(appName, linkID, createdAt string, exists bool) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if !exists {
			_, err := io.WriteString(w,
				`<h1>`+templ.EscapeString(appName)+`</h1>`+
					`<div class="secret-box"><span class="error">`+
					`This secret is gone. It may have expired, or it has already been viewed.`+
					`</span></div>`)
			return err
		}

		age := ""
		if created := display.FormatDate(createdAt); created != "" {
			age = `<p class="muted">Created ` + display.EscapeHTML(created) + `</p>`
		}
		_, err := io.WriteString(w,
			`<h1>`+templ.EscapeString(appName)+`</h1>`+
				age+
				`<p>Someone shared a secret with you. It can be revealed exactly once, so `+
				`don't click until you're ready to read it.</p>`+
				`<p><button id="reveal-btn" data-link-id="`+templ.EscapeString(linkID)+`">Reveal secret</button></p>`+
				`<div id="secret-box" class="secret-box"></div>`)
		return err
	})
	return LayoutTempl(appName, body)
}

// ErrorTempl renders an escaped error message into a result area.
func ErrorTempl(message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<span class="error">`+display.EscapeHTML(message)+`</span>`)
		return err
	})
}
