package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const (
	defaultNgrokAPI    = "http://ngrok:4040"
	ngrokAttempts      = 10
	ngrokRetryInterval = 3 * time.Second
)

var errNoTunnels = errors.New("ngrok has no active tunnels")

// ngrokTunnelsResponse matches the /api/tunnels response from the ngrok local API.
type ngrokTunnelsResponse struct {
	Tunnels []ngrokTunnel `json:"tunnels"`
}

type ngrokTunnel struct {
	PublicURL string `json:"public_url"`
	Proto     string `json:"proto"`
}

// detectNgrokURL polls the ngrok local API until it reports a tunnel, since ngrok may still
// be starting when the service boots.
func detectNgrokURL(ctx context.Context, apiBase string) (string, error) {
	return pollNgrok(ctx, &http.Client{Timeout: 5 * time.Second}, apiBase, ngrokAttempts, ngrokRetryInterval)
}

func pollNgrok(ctx context.Context, client *http.Client, apiBase string, attempts int, interval time.Duration) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(interval):
			}
		}

		url, err := fetchTunnelURL(ctx, client, apiBase)
		if err == nil {
			return url, nil
		}
		lastErr = err
	}
	return "", fmt.Errorf("ngrok not ready after %d attempts: %w", attempts, lastErr)
}

func fetchTunnelURL(ctx context.Context, client *http.Client, apiBase string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiBase+"/api/tunnels", nil)
	if err != nil {
		return "", fmt.Errorf("failed to create ngrok API request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var tunnels ngrokTunnelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tunnels); err != nil {
		return "", fmt.Errorf("failed to decode ngrok API response: %w", err)
	}
	return pickTunnel(tunnels.Tunnels)
}

// pickTunnel prefers an HTTPS tunnel; Telegram only delivers webhooks over TLS.
func pickTunnel(tunnels []ngrokTunnel) (string, error) {
	for _, t := range tunnels {
		if t.Proto == "https" {
			return t.PublicURL, nil
		}
	}
	if len(tunnels) > 0 {
		return tunnels[0].PublicURL, nil
	}
	return "", errNoTunnels
}
