package qrcode

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/lmittmann/tint"
	"github.com/yeqown/go-qrcode/v2"
	"github.com/yeqown/go-qrcode/writer/standard"
	"go.hushlink.app/hushlink/conf"
	"go.hushlink.app/hushlink/core"
	"go.hushlink.app/hushlink/db"
	"go.hushlink.app/hushlink/validation"
)

var Cache *core.DiskCache

func Init(mux *http.ServeMux) {
	if *conf.Config.QrCode.Cache.Enabled {
		Cache = core.NewDiskCache(
			filepath.Join(conf.Config.DataDir, "cache", "qr-codes"),
			core.WithTTL(conf.Config.QrCode.Cache.TTL),
			core.WithMaxSize(conf.Config.QrCode.Cache.MaxSizeBytes),
		)
	}
	mux.HandleFunc("GET /qrcode/v1", handleQrCode)
}

// GET /qrcode/v1?url={share link}
// Validates that the URL is one of this deployment's own share links, checks
// the cache, generates the QR Code if needed, and serves it.
func handleQrCode(w http.ResponseWriter, req *http.Request) {
	reqUrl := req.URL.Query().Get("url")

	validatedUrl, err := validation.ValidateShareUrl(conf.Config.Web.BaseUrl, reqUrl)
	if err != nil {
		slog.Error("URL validation failed", tint.Err(err),
			"method", req.Method,
			"path", req.URL.Path,
			"url", reqUrl,
			"status", http.StatusUnauthorized)
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	var cached []byte
	if Cache != nil {
		cached, err = Cache.Find(validatedUrl)
		if err != nil {
			slog.Error("error during cache lookup", tint.Err(err),
				"method", req.Method,
				"path", req.URL.Path,
				"url", validatedUrl,
				"status", http.StatusInternalServerError)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	if cached != nil {
		slog.Info("cached QR Code served",
			"method", req.Method,
			"path", req.URL.Path,
			"url", validatedUrl,
			"status", http.StatusOK)
		w.Header().Set("Content-Type", "image/png")
		w.Write(cached)
		recordQrCodeAccessed(validatedUrl)
		return
	}

	png, err := generateQrCode(validatedUrl)
	if err != nil {
		slog.Error("error generating QR Code", tint.Err(err),
			"method", req.Method,
			"path", req.URL.Path,
			"url", validatedUrl,
			"status", http.StatusInternalServerError)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if Cache != nil {
		if err := Cache.Write(validatedUrl, png); err != nil {
			slog.Error("error writing to cache", tint.Err(err),
				"method", req.Method,
				"path", req.URL.Path,
				"url", validatedUrl)
			// Continue serving even if caching failed
		}
	}

	slog.Info("new QR Code generated",
		"method", req.Method,
		"path", req.URL.Path,
		"url", validatedUrl,
		"status", http.StatusOK)
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
	recordQrCodeCreated(validatedUrl)
}

// writeCloser wraps an io.Writer and adds a no-op Close method
type writeCloser struct {
	*bytes.Buffer
}

func (wc *writeCloser) Close() error {
	return nil
}

// generateQrCode creates a QR Code PNG for the given share link
func generateQrCode(url string) ([]byte, error) {
	qrc, err := qrcode.New(url)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	wc := &writeCloser{&buf}
	writer := standard.NewWithWriter(wc, standard.WithBuiltinImageEncoder(standard.PNG_FORMAT))

	if err := qrc.Save(writer); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// recordQrCodeCreated records when a QR Code is created (for the first time)
func recordQrCodeCreated(url string) {
	queries := db.New(db.Pool)
	if err := queries.RecordQrCodeCreated(context.Background(), url); err != nil {
		slog.Error("failed to log QR Code created", tint.Err(err))
	}
}

// recordQrCodeAccessed records when a QR Code is accessed from the cache
func recordQrCodeAccessed(url string) {
	queries := db.New(db.Pool)
	if err := queries.RecordQrCodeAccessed(context.Background(), url); err != nil {
		slog.Error("failed to log QR Code accessed", tint.Err(err))
	}
}

// DeleteCached removes a cached QR Code file from disk.
func DeleteCached(url string) error {
	if Cache == nil {
		return nil
	}
	return Cache.Delete(url)
}
