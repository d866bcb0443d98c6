package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ppiankov/campaignkit/internal/model"
)

func testHTTPConfig() model.HTTPConfig {
	return model.HTTPConfig{
		Timeout:      5 * time.Second,
		UserAgent:    "campaignkit-test",
		MaxBodyBytes: 1 << 20,
	}
}

func noSleep(t *testing.T) {
	t.Helper()
	origSleep := fetchSleepFunc
	fetchSleepFunc = func(d time.Duration) {}
	t.Cleanup(func() { fetchSleepFunc = origSleep })
}

func TestFetchWithRetry_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "campaignkit-test" {
			t.Errorf("Expected User-Agent campaignkit-test, got %s", r.Header.Get("User-Agent"))
		}
		w.Header().Set("Content-Type", "text/plain")
		_, _ = fmt.Fprint(w, "Budget: $1000")
	}))
	defer server.Close()

	fetcher := NewFetcher(testHTTPConfig())
	result, err := fetcher.FetchWithRetry(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Body != "Budget: $1000" {
		t.Errorf("Unexpected body: %s", result.Body)
	}
	if result.ContentType != "text/plain" {
		t.Errorf("Expected content type text/plain, got %s", result.ContentType)
	}
}

func TestFetchWithRetry_TransientThenSuccess(t *testing.T) {
	noSleep(t)

	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := attempts.Add(1)
		if n <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = fmt.Fprint(w, "OK")
	}))
	defer server.Close()

	fetcher := NewFetcher(testHTTPConfig())
	result, err := fetcher.FetchWithRetry(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected success after retries, got %v", err)
	}
	if result.Body != "OK" {
		t.Errorf("Unexpected body: %s", result.Body)
	}
	if attempts.Load() != 3 {
		t.Errorf("Expected 3 attempts, got %d", attempts.Load())
	}
}

func TestFetchWithRetry_PermanentFailure(t *testing.T) {
	noSleep(t)

	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	fetcher := NewFetcher(testHTTPConfig())
	_, err := fetcher.FetchWithRetry(context.Background(), server.URL)
	if err == nil {
		t.Fatal("Expected error for 404, got nil")
	}
	if got := err.Error(); got != "unexpected status: 404 Not Found" {
		t.Errorf("Unexpected error: %s", got)
	}
	if attempts.Load() != 1 {
		t.Errorf("Expected 404 not to be retried, got %d attempts", attempts.Load())
	}
}

func TestFetchWithRetry_AllRetriesExhausted(t *testing.T) {
	noSleep(t)

	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	fetcher := NewFetcher(testHTTPConfig())
	_, err := fetcher.FetchWithRetry(context.Background(), server.URL)
	if err == nil {
		t.Fatal("Expected error after all retries exhausted")
	}
	if attempts.Load() != 3 {
		t.Errorf("Expected 3 attempts, got %d", attempts.Load())
	}
}

func TestFetch_RobotsDisallowed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = fmt.Fprint(w, "User-agent: *\nDisallow: /forms/\n")
			return
		}
		_, _ = fmt.Fprint(w, "Budget: $1000")
	}))
	defer server.Close()

	cfg := testHTTPConfig()
	cfg.RespectRobots = true
	fetcher := NewFetcher(cfg)

	_, err := fetcher.Fetch(context.Background(), server.URL+"/forms/brief.txt")
	if err == nil || !strings.Contains(err.Error(), "robots.txt disallows") {
		t.Errorf("Expected robots error, got %v", err)
	}

	result, err := fetcher.Fetch(context.Background(), server.URL+"/public/brief.txt")
	if err != nil {
		t.Fatalf("Expected allowed fetch, got %v", err)
	}
	if result.Body != "Budget: $1000" {
		t.Errorf("Unexpected body: %s", result.Body)
	}
}

func TestFetch_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brief.txt")
	if err := os.WriteFile(path, []byte("Channels: Facebook"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	fetcher := NewFetcher(testHTTPConfig())
	result, err := fetcher.Fetch(context.Background(), path)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if result.Body != "Channels: Facebook" || result.Source != path {
		t.Errorf("Unexpected result: %+v", result)
	}

	if _, err := fetcher.Fetch(context.Background(), filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestFetch_Stdin(t *testing.T) {
	fetcher := NewFetcher(testHTTPConfig())
	fetcher.stdin = strings.NewReader("Budget: £900")

	result, err := fetcher.Fetch(context.Background(), StdinSource)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if result.Body != "Budget: £900" || result.Source != "stdin" {
		t.Errorf("Unexpected result: %+v", result)
	}
}

func TestFetch_BodyTooLarge(t *testing.T) {
	cfg := testHTTPConfig()
	cfg.MaxBodyBytes = 8
	fetcher := NewFetcher(cfg)
	fetcher.stdin = strings.NewReader("this body is longer than eight bytes")

	_, err := fetcher.Fetch(context.Background(), StdinSource)
	if err == nil || !strings.Contains(err.Error(), "exceeds 8 bytes") {
		t.Errorf("Expected size error, got %v", err)
	}
}

func TestIsRetryableFetchError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"503", &statusError{code: 503, status: "503 Service Unavailable"}, true},
		{"500", &statusError{code: 500, status: "500 Internal Server Error"}, true},
		{"429", &statusError{code: 429, status: "429 Too Many Requests"}, true},
		{"404", &statusError{code: 404, status: "404 Not Found"}, false},
		{"403 wrapped", fmt.Errorf("load: %w", &statusError{code: 403, status: "403 Forbidden"}), false},
		{"refused", fmt.Errorf("fetch: connection refused"), true},
		{"reset", fmt.Errorf("fetch: connection reset by peer"), true},
		{"bad url", fmt.Errorf("create request: invalid URL"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRetryableFetchError(tt.err); got != tt.retryable {
				t.Errorf("isRetryableFetchError(%v) = %v, want %v", tt.err, got, tt.retryable)
			}
		})
	}
}

func TestIsRemote(t *testing.T) {
	tests := map[string]bool{
		"https://forms.example.com/a": true,
		"HTTP://forms.example.com/a":  true,
		"brief.txt":                   false,
		"-":                           false,
	}
	for source, expected := range tests {
		if got := IsRemote(source); got != expected {
			t.Errorf("IsRemote(%q): expected %v, got %v", source, expected, got)
		}
	}
}
