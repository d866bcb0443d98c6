package util

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/temoto/robotstxt"
)

const (
	// maxRobotsBytes caps how much of a robots.txt is read
	maxRobotsBytes = 512 * 1024

	robotsTTL = time.Hour
)

// Verdict is the robots.txt decision for one URL
type Verdict struct {
	Allowed    bool
	CrawlDelay time.Duration

	// Rule names the deciding source: "robots.txt", "no robots.txt" or
	// "robots.txt unreachable"
	Rule string
}

// RobotsChecker decides whether a remote submission source may be fetched.
// Parsed rules are kept per origin for an hour.
type RobotsChecker struct {
	origins   *gocache.Cache
	client    *http.Client
	userAgent string
	token     string
}

// NewRobotsChecker creates a robots.txt checker. proxy may be nil.
func NewRobotsChecker(userAgent string, timeout time.Duration, proxy func(*http.Request) (*url.URL, error)) *RobotsChecker {
	if proxy == nil {
		proxy = http.ProxyFromEnvironment
	}
	return &RobotsChecker{
		origins: gocache.New(robotsTTL, robotsTTL),
		client: &http.Client{
			Timeout:   timeout,
			Transport: &http.Transport{Proxy: proxy},
		},
		userAgent: userAgent,
		token:     ProductToken(userAgent),
	}
}

// Check returns the verdict for rawURL. Only a malformed or non-http URL
// is an error; an unreachable robots.txt allows the fetch.
func (r *RobotsChecker) Check(ctx context.Context, rawURL string) (Verdict, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Verdict{}, fmt.Errorf("parse URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Verdict{}, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}

	rules, err := r.load(ctx, u.Scheme+"://"+u.Host)
	if err != nil {
		return Verdict{Allowed: true, Rule: "robots.txt unreachable"}, nil
	}
	if rules == nil {
		return Verdict{Allowed: true, Rule: "no robots.txt"}, nil
	}

	v := Verdict{Allowed: rules.TestAgent(requestPath(u), r.token), Rule: "robots.txt"}
	if g := rules.FindGroup(r.token); g != nil {
		v.CrawlDelay = g.CrawlDelay
	}
	return v, nil
}

// Forget drops every cached origin
func (r *RobotsChecker) Forget() {
	r.origins.Flush()
}

func requestPath(u *url.URL) string {
	p := u.EscapedPath()
	if p == "" {
		p = "/"
	}
	if u.RawQuery != "" {
		p += "?" + u.RawQuery
	}
	return p
}

// load returns the parsed rules for origin, or nil when it serves no
// robots.txt (any 4xx)
func (r *RobotsChecker) load(ctx context.Context, origin string) (*robotstxt.RobotsData, error) {
	if v, ok := r.origins.Get(origin); ok {
		return v.(*robotstxt.RobotsData), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, origin+"/robots.txt", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch robots.txt: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var rules *robotstxt.RobotsData
	if resp.StatusCode < 400 || resp.StatusCode >= 500 {
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxRobotsBytes))
		if err != nil {
			return nil, fmt.Errorf("read robots.txt: %w", err)
		}
		// 5xx disallows everything
		if rules, err = robotstxt.FromStatusAndBytes(resp.StatusCode, body); err != nil {
			return nil, fmt.Errorf("parse robots.txt: %w", err)
		}
	}

	r.origins.SetDefault(origin, rules)
	return rules, nil
}

// ProductToken reduces "campaignkit/0.3 (+https://...)" to the product
// token robots.txt groups are matched against
func ProductToken(ua string) string {
	first, _, _ := strings.Cut(strings.TrimSpace(ua), " ")
	name, _, _ := strings.Cut(first, "/")
	return name
}
