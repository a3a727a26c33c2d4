package client

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"domain-proxy-go/internal/config"
)

func TestUpstreamClient_DoStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/dns-json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"Status":0}`))
	}))
	defer srv.Close()

	cfg := &config.Config{
		Upstream: config.UpstreamConfig{
			TimeoutSeconds:  10,
			IdleConnections: 10,
		},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := NewUpstreamClient(cfg, logger, nil)

	resp, err := c.DoStream(context.Background(), http.MethodGet, srv.URL+"/dns-query", http.Header{}, nil)
	if err != nil {
		t.Fatalf("DoStream() error = %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(body) != `{"Status":0}` {
		t.Errorf("body = %q, want %q", string(body), `{"Status":0}`)
	}
}

func TestUpstreamClient_DoStream_FollowsRedirects(t *testing.T) {
	final := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("landed"))
	}))
	defer final.Close()

	redirecting := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, final.URL+"/moved", http.StatusFound)
	}))
	defer redirecting.Close()

	cfg := &config.Config{
		Upstream: config.UpstreamConfig{TimeoutSeconds: 10, IdleConnections: 10},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := NewUpstreamClient(cfg, logger, nil)

	resp, err := c.DoStream(context.Background(), http.MethodGet, redirecting.URL+"/start", http.Header{}, nil)
	if err != nil {
		t.Fatalf("DoStream() error = %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want %d (redirect should be followed)", resp.StatusCode, http.StatusOK)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "landed" {
		t.Errorf("body = %q, want %q", string(body), "landed")
	}
}

func TestUpstreamClient_DoStream_Error(t *testing.T) {
	cfg := &config.Config{
		Upstream: config.UpstreamConfig{
			TimeoutSeconds:  1,
			IdleConnections: 10,
		},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := NewUpstreamClient(cfg, logger, nil)

	// Unroutable port on localhost: connection refused.
	_, err := c.DoStream(context.Background(), http.MethodGet, "http://127.0.0.1:1/unreachable", http.Header{}, nil)
	if err == nil {
		t.Fatal("DoStream() expected transport error, got nil")
	}
}

func TestUpstreamClient_DoStream_ContextCanceled(t *testing.T) {
	cfg := &config.Config{
		Upstream: config.UpstreamConfig{TimeoutSeconds: 10, IdleConnections: 10},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := NewUpstreamClient(cfg, logger, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.DoStream(ctx, http.MethodGet, "http://127.0.0.1:1/x", http.Header{}, nil)
	if err == nil {
		t.Fatal("DoStream() expected error for canceled context, got nil")
	}
}
