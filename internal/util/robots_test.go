package util

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

const testUA = "campaignkit/0.3 (+https://github.com/ppiankov/campaignkit)"

func TestRobotsChecker_Check(t *testing.T) {
	var fetches atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/robots.txt" {
			return
		}
		fetches.Add(1)
		if r.Header.Get("User-Agent") != testUA {
			t.Errorf("Expected full user agent on robots fetch, got %q", r.Header.Get("User-Agent"))
		}
		_, _ = w.Write([]byte("User-agent: campaignkit\nDisallow: /private/\nCrawl-delay: 2\n\nUser-agent: *\nDisallow: /\n"))
	}))
	defer server.Close()

	checker := NewRobotsChecker(testUA, 5*time.Second, nil)
	ctx := context.Background()

	tests := []struct {
		path    string
		allowed bool
	}{
		{"/forms/brief.html", true},
		{"/private/brief.html", false},
		{"/forms/brief.html?id=7", true},
		{"", true},
	}
	for _, tt := range tests {
		v, err := checker.Check(ctx, server.URL+tt.path)
		if err != nil {
			t.Fatalf("%s: Check failed: %v", tt.path, err)
		}
		if v.Allowed != tt.allowed {
			t.Errorf("%s: expected allowed=%v, got %v", tt.path, tt.allowed, v.Allowed)
		}
		if v.CrawlDelay != 2*time.Second || v.Rule != "robots.txt" {
			t.Errorf("%s: unexpected verdict %+v", tt.path, v)
		}
	}

	if n := fetches.Load(); n != 1 {
		t.Errorf("Expected robots.txt fetched once, got %d", n)
	}

	checker.Forget()
	_, _ = checker.Check(ctx, server.URL+"/forms/brief.html")
	if n := fetches.Load(); n != 2 {
		t.Errorf("Expected refetch after Forget, got %d fetches", n)
	}
}

func TestRobotsChecker_StatusHandling(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		allowed bool
		rule    string
	}{
		{name: "not found", status: http.StatusNotFound, allowed: true, rule: "no robots.txt"},
		{name: "forbidden", status: http.StatusForbidden, allowed: true, rule: "no robots.txt"},
		{name: "server error", status: http.StatusServiceUnavailable, allowed: false, rule: "robots.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			v, err := NewRobotsChecker("campaignkit", 5*time.Second, nil).Check(context.Background(), server.URL+"/anything")
			if err != nil {
				t.Fatalf("Check failed: %v", err)
			}
			if v.Allowed != tt.allowed || v.Rule != tt.rule {
				t.Errorf("Expected allowed=%v rule=%q, got %+v", tt.allowed, tt.rule, v)
			}
		})
	}
}

func TestRobotsChecker_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	v, err := NewRobotsChecker("campaignkit", time.Second, nil).Check(context.Background(), url+"/brief.txt")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !v.Allowed || v.Rule != "robots.txt unreachable" {
		t.Errorf("Expected unreachable robots.txt to allow, got %+v", v)
	}
}

func TestRobotsChecker_UnsupportedScheme(t *testing.T) {
	checker := NewRobotsChecker("campaignkit", time.Second, nil)
	if _, err := checker.Check(context.Background(), "ftp://example.com/brief.txt"); err == nil {
		t.Error("Expected error for ftp scheme")
	}
}

func TestProductToken(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{testUA, "campaignkit"},
		{"campaignkit", "campaignkit"},
		{"  Mozilla/5.0 (X11)", "Mozilla"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := ProductToken(tt.input); got != tt.expected {
			t.Errorf("ProductToken(%q): expected %q, got %q", tt.input, tt.expected, got)
		}
	}
}
