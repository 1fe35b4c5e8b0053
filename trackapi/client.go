// Package trackapi implements the HTTP transport for the TimeTrack REST API.
//
// The client owns the account-scoped base URL, the Basic-auth header, and the
// timeout policy. Every logical remote call goes through Call (JSON envelope
// endpoints) or CallRaw (delimited-text endpoints such as the event export);
// both translate any failure into a single *APIError so that callers can
// match on the status value instead of catching distinct error types. There
// is no retry, caching, or pagination logic anywhere in this layer: each
// failure is terminal and reported upward immediately.
package trackapi

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the fixed API host; the account name is appended as a
// path segment to form the request prefix.
const DefaultBaseURL = "https://web.timetrackapp.com/api/v1"

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "timetrack-mcp"
)

// envelope is the uniform wrapper every JSON API response uses. The
// application status inside it is authoritative regardless of the HTTP
// status the transport reported.
type envelope struct {
	Response struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	} `json:"response"`
	Data json.RawMessage `json:"data"`
}

// Config carries the immutable per-process settings for the client.
type Config struct {
	// Account is the account token used as the Basic-auth user name and as
	// the account-scoped path prefix.
	Account string
	// AppPassword is the revocable application password (never the account
	// owner's primary credential).
	AppPassword string
	// BaseURL overrides DefaultBaseURL when set.
	BaseURL string
	// Timeout bounds each call; zero means the fixed 30 s default.
	Timeout time.Duration
	// Logger receives one debug line per call. Defaults to slog.Default().
	Logger *slog.Logger
}

// Client performs one HTTP call per invocation against the TimeTrack API.
// It is immutable after New and safe for concurrent use.
type Client struct {
	prefix     string
	authHeader string
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

// New validates the credential configuration and returns a ready client.
func New(cfg Config) (*Client, error) {
	if cfg.Account == "" {
		return nil, errors.New("trackapi: account is required")
	}
	if cfg.AppPassword == "" {
		return nil, errors.New("trackapi: application password is required")
	}
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	token := base64.StdEncoding.EncodeToString([]byte(cfg.Account + ":" + cfg.AppPassword))
	return &Client{
		prefix:     base + "/" + url.PathEscape(cfg.Account),
		authHeader: "Basic " + token,
		timeout:    timeout,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}, nil
}

// Call executes one envelope endpoint and returns the envelope's data payload
// verbatim. The payload shape is opaque to this layer.
//
// body is serialized as JSON only for POST and PUT. A non-JSON response
// content type fails with the real HTTP status; an envelope whose
// response.status is not 200 fails with that status and the envelope's
// message, augmented with a static hint for known statuses.
func (c *Client) Call(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	resp, respBody, err := c.do(ctx, method, path, query, body)
	if err != nil {
		return nil, err
	}
	contentType := resp.Header.Get("Content-Type")
	if mediaType, _, mimeErr := mime.ParseMediaType(contentType); mimeErr != nil || mediaType != "application/json" {
		return nil, &APIError{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("non-JSON response (%s), the service may be degraded", contentType),
		}
	}
	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return nil, &APIError{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("malformed response envelope: %v", err),
		}
	}
	if env.Response.Status != http.StatusOK {
		return nil, newAPIError(env.Response.Status, env.Response.Message)
	}
	return env.Data, nil
}

// CallRaw executes one non-envelope endpoint and returns the response body
// text unmodified. Success is defined purely by the HTTP status being in the
// 2xx range; the body is never inspected.
func (c *Client) CallRaw(ctx context.Context, method, path string, query url.Values) (string, error) {
	resp, respBody, err := c.do(ctx, method, path, query, nil)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", &APIError{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("request failed with HTTP status %d", resp.StatusCode),
		}
	}
	return string(respBody), nil
}

// do issues exactly one network request. Transport-level failures come back
// as *APIError with status 0; a timeout gets a message distinct from other
// network errors.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (*http.Response, []byte, error) {
	target := c.prefix + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil && (method == http.MethodPost || method == http.MethodPut) {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, nil, fmt.Errorf("trackapi: encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, nil, fmt.Errorf("trackapi: build request: %w", err)
	}
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, nil, &APIError{
				Message: fmt.Sprintf("request timed out after %ds", int(c.timeout.Seconds())),
			}
		}
		return nil, nil, &APIError{Message: "network error: " + err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, &APIError{Message: "network error: " + err.Error()}
	}

	c.logger.Debug("api call",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"elapsed", time.Since(start))
	return resp, respBody, nil
}

func isTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
