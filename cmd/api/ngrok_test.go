package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickTunnel(t *testing.T) {
	url, err := pickTunnel([]ngrokTunnel{
		{PublicURL: "http://a.ngrok.io", Proto: "http"},
		{PublicURL: "https://a.ngrok.io", Proto: "https"},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://a.ngrok.io", url)

	url, err = pickTunnel([]ngrokTunnel{{PublicURL: "http://b.ngrok.io", Proto: "http"}})
	require.NoError(t, err)
	assert.Equal(t, "http://b.ngrok.io", url)

	_, err = pickTunnel(nil)
	assert.ErrorIs(t, err, errNoTunnels)
}

func TestPollNgrok_WaitsForTunnel(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tunnels", r.URL.Path)
		if calls.Add(1) < 3 {
			fmt.Fprint(w, `{"tunnels":[]}`)
			return
		}
		fmt.Fprint(w, `{"tunnels":[{"public_url":"https://c.ngrok.io","proto":"https"}]}`)
	}))
	defer srv.Close()

	url, err := pollNgrok(context.Background(), srv.Client(), srv.URL, 5, time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, "https://c.ngrok.io", url)
	assert.Equal(t, int32(3), calls.Load())
}

func TestPollNgrok_GivesUp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"tunnels":[]}`)
	}))
	defer srv.Close()

	_, err := pollNgrok(context.Background(), srv.Client(), srv.URL, 2, time.Millisecond)
	assert.ErrorIs(t, err, errNoTunnels)
}
