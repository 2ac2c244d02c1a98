// Package providers contains the concrete AI backend adapters and the
// factory that constructs them from configuration.
package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultTimeout = 120 * time.Second

	// maxResponseBytes caps how much of a response body is read.
	// Anything past this is discarded rather than buffered.
	maxResponseBytes = 10 * 1024 * 1024
)

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: defaultTimeout}
}

// postJSON sends a JSON request and decodes the JSON response into out.
// Non-2xx statuses are mapped to user-facing messages via statusMessage.
func postJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%s", transportMessage(err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s", statusMessage(resp.StatusCode, data))
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// getStatus performs a GET and reports only the HTTP status code.
// Used for key validation and availability probes.
func getStatus(ctx context.Context, client *http.Client, url string, headers map[string]string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
	resp.Body.Close()
	return resp.StatusCode, nil
}

// statusMessage translates an HTTP error status into a message the
// editor can show directly, with a short body excerpt for unclassified
// client errors.
func statusMessage(status int, body []byte) string {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return "authentication failed: check your API key"
	case status == http.StatusTooManyRequests:
		return "rate limit exceeded: please wait a moment and try again"
	case status == http.StatusInternalServerError || status == http.StatusBadGateway || status == http.StatusServiceUnavailable:
		return "AI service is temporarily unavailable: please try again later"
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		return "request timed out: please try again"
	case status >= 400 && status < 500:
		excerpt := strings.TrimSpace(string(body))
		if len(excerpt) > 200 {
			excerpt = excerpt[:200]
		}
		if excerpt == "" {
			return fmt.Sprintf("request failed with status %d", status)
		}
		return fmt.Sprintf("request failed with status %d: %s", status, excerpt)
	default:
		return fmt.Sprintf("unexpected response status %d", status)
	}
}

// transportMessage sanitizes network-level failures so raw dial errors
// never surface to the user.
func transportMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "context deadline exceeded") || strings.Contains(msg, "Client.Timeout"):
		return "request timed out: please try again"
	case strings.Contains(msg, "context canceled"):
		return "request canceled"
	case strings.Contains(msg, "no such host") || strings.Contains(msg, "connection refused") || strings.Contains(msg, "dial tcp"):
		return "could not reach the AI service: check your network connection"
	default:
		return "network error while contacting the AI service"
	}
}
