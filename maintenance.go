package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/lmittmann/tint"
	"go.hushlink.app/hushlink/conf"
	"go.hushlink.app/hushlink/dashboard"
	"go.hushlink.app/hushlink/db"
	"go.hushlink.app/hushlink/qrcode"
	"go.hushlink.app/hushlink/secrets"
)

func performMaintenance() {
	ctx := context.Background()
	queries := db.New(db.Pool)

	dashboard.CleanupExpiredSessions()

	// Expired secrets are already invisible to readers; this reclaims the rows.
	secrets.PurgeExpired(ctx, queries)

	logRetentionInterval := pgtype.Interval{
		Microseconds: int64(conf.Config.Logs.Retention / time.Microsecond),
		Valid:        true,
	}
	deletedLogs, err := queries.DeleteOldLogs(ctx, logRetentionInterval)
	if err != nil {
		slog.Error("failed to delete old logs", tint.Err(err))
	} else {
		slog.Info(fmt.Sprintf("%d logs deleted", deletedLogs))
	}

	// Prune caches
	if qrcode.Cache != nil {
		if err := qrcode.Cache.Prune(); err != nil {
			slog.Error("failed to prune qrcode cache", tint.Err(err))
		}
	}
	slog.Info("Maintenance completed successfully")
}
