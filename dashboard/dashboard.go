package dashboard

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/justinas/alice"
	"github.com/lmittmann/tint"
	"go.hushlink.app/hushlink/conf"
	"go.hushlink.app/hushlink/core"
	"golang.org/x/crypto/bcrypt"
)

var sessionStore = core.NewInMemorySessionStore(24 * time.Hour)

const sessionCookieName = "hushlink_session"

func Init(mux *http.ServeMux) {
	chain := alice.New(authHandler)

	mux.Handle("GET /dashboard", chain.ThenFunc(homeHandler))

	mux.Handle("GET /dashboard/secrets", chain.ThenFunc(secretsStatsHandler))

	mux.Handle("GET /dashboard/qr-codes", chain.ThenFunc(listQrCodesHandler))
	mux.Handle("DELETE /dashboard/qr-codes/url", chain.ThenFunc(deleteQrCodeHandler))

	mux.Handle("GET /dashboard/logs", chain.ThenFunc(logsHandler))
	mux.Handle("GET /dashboard/logs/data", chain.ThenFunc(logsDataHandler))
}

// GET /dashboard
func homeHandler(w http.ResponseWriter, req *http.Request) {
	HomeTempl(conf.AppName).Render(req.Context(), w)
}

// Checks whether the user is authorized, and either returns an error, or executes the passed [http.Handler].
func authHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if cookie, err := req.Cookie(sessionCookieName); err == nil {
			if sessionStore.IsValid(cookie.Value) {
				next.ServeHTTP(w, req)
				return
			}
		}

		reqUsername, reqPassword, ok := req.BasicAuth()
		if !ok || reqUsername != conf.Config.Dashboard.Username {
			slog.Warn("no credentials provided", tint.Err(fmt.Errorf("no credentials (from: %s)", core.ReadUserIP(req))),
				"method", req.Method,
				"path", req.URL.Path,
				"status", http.StatusUnauthorized)
			w.Header().Add("WWW-Authenticate", fmt.Sprintf(`Basic realm="%s"`, conf.AppName))
			w.WriteHeader(http.StatusUnauthorized)
			ContentTempl("Unauthorized", ErrorTempl("Please provide valid credentials to access this section.")).Render(req.Context(), w)
			return
		}

		err := bcrypt.CompareHashAndPassword([]byte(conf.Config.Dashboard.Password), []byte(reqPassword))
		if err != nil {
			slog.Error("invalid credentials provided", tint.Err(fmt.Errorf("invalid credentials (from: %s)", core.ReadUserIP(req))),
				"method", req.Method,
				"path", req.URL.Path,
				"status", http.StatusUnauthorized)
			w.WriteHeader(http.StatusUnauthorized)
			ContentTempl("Unauthorized", ErrorTempl("Please provide valid credentials to access this section.")).Render(req.Context(), w)
			return
		}

		sessionID, err := sessionStore.Create()
		if err == nil {
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookieName,
				Value:    sessionID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
				MaxAge:   int((24 * time.Hour).Seconds()),
			})
		} else {
			slog.Error("failed to create session", tint.Err(err))
		}

		next.ServeHTTP(w, req)
	})
}

func CleanupExpiredSessions() {
	sessionStore.CleanupExpired()
}
