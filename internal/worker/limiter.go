package worker

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

const (
	defaultBurst = 5

	// hostBucketTTL bounds how long a host's token bucket is remembered
	hostBucketTTL = 10 * time.Minute
)

// Limiter paces remote submission fetches per host. Local sources (files,
// stdin) are never limited.
type Limiter struct {
	hosts *gocache.Cache
	every rate.Limit
	burst int
}

// NewLimiter creates a per-host limiter allowing requestsPerSecond with
// bursts of burst
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = defaultBurst
	}
	return &Limiter{
		hosts: gocache.New(hostBucketTTL, hostBucketTTL),
		every: rate.Limit(requestsPerSecond),
		burst: burst,
	}
}

// Wait blocks until source may be fetched or ctx ends
func (l *Limiter) Wait(ctx context.Context, source string) error {
	bucket, err := l.bucket(source)
	if err != nil || bucket == nil {
		return err
	}
	return bucket.Wait(ctx)
}

// Allow reports whether source may be fetched now, consuming a token if so
func (l *Limiter) Allow(source string) bool {
	bucket, err := l.bucket(source)
	if err != nil {
		return false
	}
	return bucket == nil || bucket.Allow()
}

// bucket returns the token bucket for source's host, or nil for local sources
func (l *Limiter) bucket(source string) (*rate.Limiter, error) {
	host, err := sourceHost(source)
	if err != nil || host == "" {
		return nil, err
	}

	if v, ok := l.hosts.Get(host); ok {
		return v.(*rate.Limiter), nil
	}
	fresh := rate.NewLimiter(l.every, l.burst)
	if l.hosts.Add(host, fresh, gocache.DefaultExpiration) != nil {
		// lost the race to another worker
		if v, ok := l.hosts.Get(host); ok {
			return v.(*rate.Limiter), nil
		}
	}
	return fresh, nil
}

// sourceHost returns the lower-cased host of an http(s) source and "" for
// anything else
func sourceHost(source string) (string, error) {
	lower := strings.ToLower(source)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return "", nil
	}
	parsed, err := url.Parse(source)
	if err != nil {
		return "", fmt.Errorf("parse source URL: %w", err)
	}
	return strings.ToLower(parsed.Host), nil
}
