package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/lmittmann/tint"
	"go.hushlink.app/hushlink/conf"
	"go.hushlink.app/hushlink/db"
)

func Init(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", indexHandler)
	mux.HandleFunc("GET /view/{linkId}", viewHandler)
}

// GET /
func indexHandler(w http.ResponseWriter, req *http.Request) {
	IndexTempl(conf.AppName).Render(req.Context(), w)
}

// GET /view/{linkId}
// Renders the reveal page. Existence is checked up front so a dead link reads
// as gone immediately; the actual one-time retrieval happens from the page.
func viewHandler(w http.ResponseWriter, req *http.Request) {
	linkID := req.PathValue("linkId")
	queries := db.New(db.Pool)

	exists, err := queries.SecretExists(req.Context(), linkID)
	if err != nil {
		slog.Error("failed to check secret existence", tint.Err(err),
			"method", req.Method,
			"path", req.URL.Path,
			"status", http.StatusInternalServerError)
		w.WriteHeader(http.StatusInternalServerError)
		LayoutTempl(conf.AppName, ErrorTempl("Something went wrong. Please try again later.")).Render(req.Context(), w)
		return
	}

	createdAt := ""
	if exists {
		if secret, err := queries.GetSecret(req.Context(), linkID); err == nil && secret != nil {
			createdAt = secret.CreatedAt.UTC().Format(time.RFC3339)
		}
	}

	if !exists {
		w.WriteHeader(http.StatusNotFound)
	}
	ViewTempl(conf.AppName, linkID, createdAt, exists).Render(req.Context(), w)
}
