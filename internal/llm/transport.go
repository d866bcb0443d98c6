package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ppiankov/campaignkit/internal/util"
)

// maxResponseBytes caps how much of an LLM response is read
const maxResponseBytes = 4 << 20

// newHTTPClient builds a proxy-aware client for the raw JSON providers
func newHTTPClient(c Config, fallbackTimeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: c.timeout(fallbackTimeout),
		Transport: &http.Transport{
			Proxy: util.NewProxyFunc(c.HTTPProxy, c.HTTPSProxy, c.NoProxy),
		},
	}
}

// StatusError is a non-2xx answer from an LLM API
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.Code, e.Message)
}

// errorMessage extracts a readable message from an error body
type errorMessage func(body []byte) string

// doJSON sends in (nil for GET) and decodes a 2xx response into out
func doJSON(ctx context.Context, client *http.Client, method, url string, headers map[string]string, in, out any, describe errorMessage) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := ""
		if describe != nil {
			msg = describe(respBody)
		}
		if msg == "" {
			msg = strings.TrimSpace(string(respBody))
		}
		return &StatusError{Code: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

// finishBrief trims the generated text and records the figures it quotes
func finishBrief(text, model string, tokens int) *BriefResponse {
	summary := strings.TrimSpace(text)
	return &BriefResponse{
		Summary:    summary,
		Figures:    extractFigures(summary),
		Model:      model,
		TokensUsed: tokens,
	}
}
