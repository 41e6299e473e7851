package secrets

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lmittmann/tint"
	"go.hushlink.app/hushlink/db"
)

// storeEncryptedSecret persists the ciphertext under a fresh UUIDv4 link id
// and returns the id. The id is the only handle to the secret; it is never
// derivable from the content.
func storeEncryptedSecret(ctx context.Context, q *db.Queries, ciphertext []byte, ttl time.Duration) (string, error) {
	linkID := uuid.NewString()
	err := q.InsertSecret(ctx, db.InsertSecretParams{
		LinkID:          linkID,
		EncryptedSecret: ciphertext,
		ExpiresAt:       time.Now().Add(ttl),
	})
	if err != nil {
		return "", fmt.Errorf("storing secret: %w", err)
	}
	slog.Info("secret stored", "link_id", linkID)
	return linkID, nil
}

// retrieveAndDeleteSecret fetches the ciphertext and deletes the row before
// returning, so a secret can only ever be served once. A missing or expired
// secret returns (nil, nil).
func retrieveAndDeleteSecret(ctx context.Context, q *db.Queries, linkID string) (*db.Secret, error) {
	secret, err := q.GetSecret(ctx, linkID)
	if err != nil {
		return nil, fmt.Errorf("retrieving secret: %w", err)
	}
	if secret == nil {
		return nil, nil
	}

	deleted, err := q.DeleteSecret(ctx, linkID)
	if err != nil {
		return nil, fmt.Errorf("deleting secret after retrieval: %w", err)
	}
	if !deleted {
		// A concurrent request won the row; treat this one as a miss so the
		// secret is still only served once.
		slog.Warn("secret already deleted by a concurrent retrieval", "link_id", linkID)
		return nil, nil
	}
	return secret, nil
}

// PurgeExpired reclaims expired rows and returns how many were removed. It is
// called from maintenance; kept here so the secrets package owns the whole
// lifecycle of a stored secret.
func PurgeExpired(ctx context.Context, q *db.Queries) int64 {
	purged, err := q.DeleteExpiredSecrets(ctx)
	if err != nil {
		slog.Error("failed to purge expired secrets", tint.Err(err))
		return 0
	}
	slog.Info(fmt.Sprintf("%d expired secrets purged", purged))
	return purged
}
