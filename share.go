package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"go.hushlink.app/hushlink/clip"
	"go.hushlink.app/hushlink/conf"
	"go.hushlink.app/hushlink/core"
	"go.hushlink.app/hushlink/display"
	"golang.org/x/term"
)

// runShare posts a secret to a running instance and prints the one-time link.
// The secret comes from stdin when piped, or from a no-echo terminal prompt.
func runShare() int {
	var secret string
	if term.IsTerminal(int(os.Stdin.Fd())) {
		secret = core.ReadSecretInput("Secret")
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			slog.Error("Failed to read secret from stdin", tint.Err(err))
			return 1
		}
		secret = strings.TrimSuffix(string(data), "\n")
	}
	if secret == "" {
		slog.Error("No secret provided")
		return 1
	}

	body, err := json.Marshal(map[string]string{"secret": secret})
	if err != nil {
		slog.Error("Failed to encode request", tint.Err(err))
		return 1
	}

	baseUrl := strings.TrimSuffix(conf.Config.Web.BaseUrl, "/")
	client := http.Client{Timeout: 10 * time.Second}
	resp, err := client.Post(baseUrl+"/api/share", "application/json", bytes.NewReader(body))
	if err != nil {
		slog.Error("Failed to reach service", tint.Err(err), "url", baseUrl)
		return 1
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		var apiErr struct {
			Error string `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&apiErr)
		slog.Error("Service rejected the secret",
			tint.Err(fmt.Errorf("%s", apiErr.Error)),
			"status", resp.StatusCode)
		return 1
	}

	var created struct {
		LinkID string `json:"link_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		slog.Error("Failed to decode response", tint.Err(err))
		return 1
	}

	link := baseUrl + "/view/" + created.LinkID
	fmt.Println(link)
	fmt.Fprintln(os.Stderr, "Share link ("+display.TruncateLink(link)+") created. It can be viewed exactly once.")

	copier := clip.NewCopier(clip.TerminalSurface{W: os.Stderr}, clip.TimerScheduler{})
	target := clip.Target{Indicator: "Copy"}
	copier.CopyToClipboard(link, &target)
	if target.Busy {
		fmt.Fprintln(os.Stderr, target.Indicator)
	}
	return 0
}
