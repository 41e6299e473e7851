package dashboard

import (
	"log/slog"
	"net/http"

	"github.com/lmittmann/tint"
	"go.hushlink.app/hushlink/db"
)

// GET /dashboard/secrets
//
// Shows aggregate counts only. Secret payloads are encrypted at rest and are
// never surfaced in the dashboard.
func secretsStatsHandler(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	queries := db.New(db.Pool)

	activeCount, err := queries.CountActiveSecrets(ctx)
	if err != nil {
		slog.Error("failed to count active secrets", tint.Err(err),
			"method", req.Method,
			"path", req.URL.Path,
			"status", http.StatusInternalServerError)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	totalBytes, err := queries.SumActiveSecretBytes(ctx)
	if err != nil {
		slog.Error("failed to sum active secret sizes", tint.Err(err),
			"method", req.Method,
			"path", req.URL.Path,
			"status", http.StatusInternalServerError)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	SecretsStatsTempl(activeCount, totalBytes).Render(ctx, w)
}
