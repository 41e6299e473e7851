package core

import (
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
)

func TestSetupHealthCheck(t *testing.T) {
	t.Run("registers healthcheck endpoint", func(t *testing.T) {
		mux := http.NewServeMux()
		SetupHealthCheck(mux)

		req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		resp := w.Result()
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Errorf("Expected status code %d, got %d", http.StatusOK, resp.StatusCode)
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			t.Fatalf("Failed to read response body: %v", err)
		}

		if string(body) != "ok" {
			t.Errorf("Expected response body “ok”, got %q", string(body))
		}
	})

	t.Run("only accepts GET method", func(t *testing.T) {
		mux := http.NewServeMux()
		SetupHealthCheck(mux)

		methods := []string{http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch}
		for _, method := range methods {
			req := httptest.NewRequest(method, "/healthcheck", nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			resp := w.Result()
			resp.Body.Close()

			if resp.StatusCode != http.StatusMethodNotAllowed {
				t.Errorf("Expected status code %d for %s method, got %d", http.StatusMethodNotAllowed, method, resp.StatusCode)
			}
		}
	})
}

func serverHostPort(t *testing.T, serverURL string) (string, int) {
	t.Helper()
	host, portStr, err := net.SplitHostPort(strings.TrimPrefix(serverURL, "http://"))
	if err != nil {
		t.Fatalf("Failed to extract host/port from server URL: %v", err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		t.Fatalf("Failed to parse port: %v", err)
	}
	return host, port
}

func TestVerifyHealthCheck(t *testing.T) {
	t.Run("successful healthcheck", func(t *testing.T) {
		mux := http.NewServeMux()
		SetupHealthCheck(mux)
		server := httptest.NewServer(mux)
		defer server.Close()

		host, port := serverHostPort(t, server.URL)
		exitCode := VerifyHealthCheck(host, port)
		if exitCode != 0 {
			t.Errorf("Expected exit code 0, got %d", exitCode)
		}
	})

	t.Run("server not running", func(t *testing.T) {
		port := 59999 // Use a port that’s unlikely to be in use

		exitCode := VerifyHealthCheck("localhost", port)
		if exitCode != 1 {
			t.Errorf("Expected exit code 1 when server is not running, got %d", exitCode)
		}
	})

	t.Run("server returns error status", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("GET /healthcheck", func(w http.ResponseWriter, req *http.Request) {
			http.Error(w, "error", http.StatusInternalServerError)
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		host, port := serverHostPort(t, server.URL)
		exitCode := VerifyHealthCheck(host, port)
		if exitCode != 1 {
			t.Errorf("Expected exit code 1 when server returns error, got %d", exitCode)
		}
	})
}
