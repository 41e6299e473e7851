package secrets

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/lmittmann/tint"
	"go.hushlink.app/hushlink/conf"
	"go.hushlink.app/hushlink/db"
)

var keyring *Keyring

// Init parses the configured master keys and registers the API handlers.
func Init(mux *http.ServeMux) error {
	kr, err := NewKeyring(conf.Config.Secrets.MasterKeys)
	if err != nil {
		return fmt.Errorf("initializing keyring: %w", err)
	}
	keyring = kr

	mux.HandleFunc("POST /api/share", handleShare)
	mux.HandleFunc("GET /api/share/secret/{linkId}", handleRetrieve)
	mux.HandleFunc("HEAD /api/share/secret/{linkId}", handleExists)
	return nil
}

type shareRequest struct {
	Secret string `json:"secret"`
}

// POST /api/share
// Encrypts and stores a secret, returning the link id the frontend turns into
// a one-time URL. The plaintext never appears in logs or error messages.
func handleShare(w http.ResponseWriter, req *http.Request) {
	var body shareRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		slog.Error("share request is not valid JSON", tint.Err(err),
			"method", req.Method,
			"path", req.URL.Path,
			"status", http.StatusBadRequest)
		writeJSONError(w, http.StatusBadRequest, "Request must be JSON")
		return
	}

	if body.Secret == "" {
		writeJSONError(w, http.StatusBadRequest, "Missing 'secret' field in JSON payload")
		return
	}

	maxBytes := conf.Config.Secrets.MaxLengthKB * 1024
	if len(body.Secret) > maxBytes {
		slog.Warn("secret over size limit",
			"method", req.Method,
			"path", req.URL.Path,
			"size", len(body.Secret),
			"status", http.StatusRequestEntityTooLarge)
		writeJSONError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("Secret exceeds maximum length of %dKB", conf.Config.Secrets.MaxLengthKB))
		return
	}

	ciphertext, err := keyring.Encrypt(body.Secret)
	if err != nil {
		slog.Error("failed to encrypt secret", tint.Err(err),
			"method", req.Method,
			"path", req.URL.Path,
			"status", http.StatusInternalServerError)
		writeJSONError(w, http.StatusInternalServerError, "Failed to store secret due to an internal server error.")
		return
	}

	queries := db.New(db.Pool)
	linkID, err := storeEncryptedSecret(req.Context(), queries, ciphertext, conf.Config.Secrets.TTL)
	if err != nil {
		slog.Error("failed to store secret", tint.Err(err),
			"method", req.Method,
			"path", req.URL.Path,
			"status", http.StatusInternalServerError)
		writeJSONError(w, http.StatusInternalServerError, "Failed to store secret due to an internal server error.")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"link_id": linkID,
		"message": "Secret stored. Use this ID to create your access link.",
	})
}

// HEAD /api/share/secret/{linkId}
// Existence probe: lets the reveal page tell a live link from a consumed or
// expired one without burning the single retrieval.
func handleExists(w http.ResponseWriter, req *http.Request) {
	linkID := req.PathValue("linkId")
	queries := db.New(db.Pool)

	exists, err := queries.SecretExists(req.Context(), linkID)
	if err != nil {
		slog.Error("failed to check secret existence", tint.Err(err),
			"method", req.Method,
			"path", req.URL.Path,
			"status", http.StatusInternalServerError)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if exists {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusNotFound)
	}
}

// GET /api/share/secret/{linkId}
// Returns the decrypted secret exactly once; the stored row is gone before
// the response is written.
func handleRetrieve(w http.ResponseWriter, req *http.Request) {
	linkID := req.PathValue("linkId")
	queries := db.New(db.Pool)

	secret, err := retrieveAndDeleteSecret(req.Context(), queries, linkID)
	if err != nil {
		slog.Error("failed to retrieve secret", tint.Err(err),
			"method", req.Method,
			"path", req.URL.Path,
			"status", http.StatusInternalServerError)
		writeJSONError(w, http.StatusInternalServerError, "Failed to retrieve secret due to an internal server error.")
		return
	}
	if secret == nil {
		writeJSONError(w, http.StatusNotFound, "Secret not found. It may have expired or has already been viewed.")
		return
	}

	plaintext, err := keyring.Decrypt(secret.EncryptedSecret)
	if err != nil {
		// The row is already deleted; nothing recoverable remains. Don't
		// reveal whether this was tampering, corruption, or a retired key.
		slog.Error("failed to decrypt stored secret", tint.Err(err),
			"method", req.Method,
			"path", req.URL.Path,
			"status", http.StatusInternalServerError)
		writeJSONError(w, http.StatusInternalServerError, "Failed to retrieve secret due to an internal server error.")
		return
	}

	slog.Info("secret retrieved and deleted", "link_id", linkID)
	writeJSON(w, http.StatusOK, map[string]string{"secret": plaintext})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode JSON response", tint.Err(err))
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
