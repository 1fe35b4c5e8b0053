package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"timetrack-mcp/trackapi"
)

// Caller is the transport surface the catalog invokes. *trackapi.Client
// implements it; tests substitute fakes.
type Caller interface {
	Call(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error)
	CallRaw(ctx context.Context, method, path string, query url.Values) (string, error)
}

// Invoker executes catalog endpoints against a transport client and renders
// results as caller-facing text.
type Invoker struct {
	client Caller
}

// NewInvoker creates an invoker bound to the given transport client.
func NewInvoker(client Caller) *Invoker {
	return &Invoker{client: client}
}

// Invoke builds the HTTP request for one endpoint from the caller's
// arguments, performs it, and returns the result as text. Failures come back
// as errors for the caller to render; nothing is retried or swallowed.
func (inv *Invoker) Invoke(ctx context.Context, ep Endpoint, args map[string]any) (string, error) {
	path, query, body, err := ep.BuildRequest(args)
	if err != nil {
		return "", err
	}
	if ep.Raw {
		return inv.client.CallRaw(ctx, ep.Method, path, query)
	}
	data, err := inv.client.Call(ctx, ep.Method, path, query, body)
	if err != nil {
		return "", err
	}
	return renderPayload(data), nil
}

// FormatError renders an invocation failure for the calling assistant. Errors
// originating from the remote service are prefixed with their status; all
// others pass through as-is.
func FormatError(err error) string {
	var apiErr *trackapi.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Status != 0 {
			return fmt.Sprintf("API error %d: %s", apiErr.Status, apiErr.Message)
		}
		return apiErr.Message
	}
	return err.Error()
}

// renderPayload turns the opaque envelope data into readable structured text.
func renderPayload(data json.RawMessage) string {
	if len(data) == 0 || string(data) == "null" {
		return "ok"
	}
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return string(data)
	}
	pretty, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return string(data)
	}
	return string(pretty)
}
