package util

import (
	"net/http"
	"testing"
)

func TestNewProxyFunc(t *testing.T) {
	proxy := NewProxyFunc("http://proxy:3128", "http://secure-proxy:3129", "localhost, .internal.example, forms.acme.com:443")

	tests := []struct {
		url      string
		expected string
	}{
		{"http://forms.example.com/a", "http://proxy:3128"},
		{"https://forms.example.com/a", "http://secure-proxy:3129"},
		{"http://localhost:8080/a", ""},
		{"https://api.internal.example/a", ""},
		{"https://internal.example/a", ""},
		{"https://forms.acme.com/a", ""},
		{"https://eu.forms.acme.com/a", ""},
		{"https://notacme.com/a", "http://secure-proxy:3129"},
	}

	for _, tt := range tests {
		req, err := http.NewRequest(http.MethodGet, tt.url, nil)
		if err != nil {
			t.Fatalf("NewRequest(%s): %v", tt.url, err)
		}
		got, err := proxy(req)
		if err != nil {
			t.Fatalf("proxy(%s): %v", tt.url, err)
		}
		gotStr := ""
		if got != nil {
			gotStr = got.String()
		}
		if gotStr != tt.expected {
			t.Errorf("proxy(%s): expected %q, got %q", tt.url, tt.expected, gotStr)
		}
	}
}

func TestNewProxyFunc_Wildcard(t *testing.T) {
	proxy := NewProxyFunc("http://proxy:3128", "", "*")

	req, _ := http.NewRequest(http.MethodGet, "http://anything.example/", nil)
	got, err := proxy(req)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("Expected direct connection, got %s", got)
	}
}
