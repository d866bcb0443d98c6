package pipeline

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ppiankov/campaignkit/internal/model"
	"github.com/ppiankov/campaignkit/internal/util"
)

// StdinSource is the source name that reads the submission from stdin
const StdinSource = "-"

const fetchMaxRetries = 3

// fetchSleepFunc is replaced in tests
var fetchSleepFunc = time.Sleep

// Fetcher loads raw intake email bodies from files, stdin or http(s) URLs
type Fetcher struct {
	httpClient    *http.Client
	robots        *util.RobotsChecker
	userAgent     string
	maxBytes      int64
	respectRobots bool
	stdin         io.Reader
}

// NewFetcher creates a new Fetcher with the given configuration
func NewFetcher(cfg model.HTTPConfig) *Fetcher {
	proxy := util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy)

	transport := &http.Transport{Proxy: proxy}
	if cfg.InsecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in via http.insecure_tls
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	maxBytes := cfg.MaxBodyBytes
	if maxBytes <= 0 {
		maxBytes = model.DefaultConfig().HTTP.MaxBodyBytes
	}

	return &Fetcher{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		robots:        util.NewRobotsChecker(cfg.UserAgent, timeout, proxy),
		userAgent:     cfg.UserAgent,
		maxBytes:      maxBytes,
		respectRobots: cfg.RespectRobots,
		stdin:         os.Stdin,
	}
}

// FetchResult contains a raw submission body and where it came from
type FetchResult struct {
	Body        string
	Source      string // Final URL, file path, or "stdin"
	ContentType string
	FetchedAt   time.Time
}

// IsRemote reports whether source is an http(s) URL
func IsRemote(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Fetch reads the submission body named by source
func (f *Fetcher) Fetch(ctx context.Context, source string) (*FetchResult, error) {
	switch {
	case source == StdinSource:
		body, err := f.readLimited(f.stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return &FetchResult{Body: body, Source: "stdin", FetchedAt: time.Now().UTC()}, nil

	case IsRemote(source):
		return f.FetchWithRetry(ctx, source)

	default:
		file, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", source, err)
		}
		defer func() { _ = file.Close() }()

		body, err := f.readLimited(file)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", source, err)
		}
		return &FetchResult{Body: body, Source: source, FetchedAt: time.Now().UTC()}, nil
	}
}

// FetchWithRetry fetches a URL, retrying 5xx, 429 and transient network
// errors with exponential backoff
func (f *Fetcher) FetchWithRetry(ctx context.Context, rawURL string) (*FetchResult, error) {
	var lastErr error
	for attempt := 0; attempt < fetchMaxRetries; attempt++ {
		result, err := f.fetchURL(ctx, rawURL)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if !isRetryableFetchError(err) || ctx.Err() != nil {
			return nil, err
		}
		if attempt < fetchMaxRetries-1 {
			fetchSleepFunc(time.Duration(1<<uint(attempt)) * time.Second)
		}
	}
	return nil, lastErr
}

// statusError is a non-2xx response
type statusError struct {
	code   int
	status string
}

func (e *statusError) Error() string {
	return "unexpected status: " + e.status
}

// isRetryableFetchError returns true for transient failures
func isRetryableFetchError(err error) bool {
	if err == nil {
		return false
	}
	var se *statusError
	if errors.As(err, &se) {
		return se.code >= 500 || se.code == http.StatusTooManyRequests
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "timeout") ||
		strings.Contains(s, "connection refused") ||
		strings.Contains(s, "connection reset")
}

// fetchURL retrieves a remote submission body, honouring robots.txt
func (f *Fetcher) fetchURL(ctx context.Context, rawURL string) (*FetchResult, error) {
	if f.respectRobots {
		verdict, err := f.robots.Check(ctx, rawURL)
		if err != nil {
			return nil, fmt.Errorf("robots check: %w", err)
		}
		if !verdict.Allowed {
			return nil, fmt.Errorf("%s disallows %s", verdict.Rule, rawURL)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,text/plain;q=0.9,*/*;q=0.8")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &statusError{code: resp.StatusCode, status: resp.Status}
	}

	body, err := f.readLimited(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return &FetchResult{
		Body:        body,
		Source:      resp.Request.URL.String(),
		ContentType: resp.Header.Get("Content-Type"),
		FetchedAt:   time.Now().UTC(),
	}, nil
}

// readLimited reads at most maxBytes; larger bodies are an error
func (f *Fetcher) readLimited(r io.Reader) (string, error) {
	body, err := io.ReadAll(io.LimitReader(r, f.maxBytes+1))
	if err != nil {
		return "", err
	}
	if int64(len(body)) > f.maxBytes {
		return "", fmt.Errorf("body exceeds %d bytes", f.maxBytes)
	}
	return string(body), nil
}
