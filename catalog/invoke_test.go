package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"timetrack-mcp/trackapi"
)

type fakeCaller struct {
	data    json.RawMessage
	raw     string
	err     error
	gotPath string
	gotRaw  bool
}

func (f *fakeCaller) Call(_ context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	f.gotPath = path
	return f.data, f.err
}

func (f *fakeCaller) CallRaw(_ context.Context, method, path string, query url.Values) (string, error) {
	f.gotPath = path
	f.gotRaw = true
	return f.raw, f.err
}

func TestInvokeRendersPayload(t *testing.T) {
	caller := &fakeCaller{data: json.RawMessage(`[{"id":1,"name":"Demo"}]`)}
	inv := NewInvoker(caller)

	ep := mustLookup(t, "list_projects")
	text, err := inv.Invoke(context.Background(), ep, map[string]any{})
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if !strings.Contains(text, `"name": "Demo"`) {
		t.Fatalf("text = %q, want indented JSON", text)
	}
	if caller.gotRaw {
		t.Fatal("envelope endpoint must not use CallRaw")
	}
}

func TestInvokeEmptyPayload(t *testing.T) {
	caller := &fakeCaller{data: nil}
	inv := NewInvoker(caller)

	ep := mustLookup(t, "close_project")
	text, err := inv.Invoke(context.Background(), ep, map[string]any{"id": float64(3)})
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if text != "ok" {
		t.Fatalf("text = %q, want ok", text)
	}
	if caller.gotPath != "/projects/close/3" {
		t.Fatalf("path = %q, want /projects/close/3", caller.gotPath)
	}
}

func TestInvokeRawEndpoint(t *testing.T) {
	const export = "id;duration\n1;3600"
	caller := &fakeCaller{raw: export}
	inv := NewInvoker(caller)

	ep := mustLookup(t, "export_events")
	text, err := inv.Invoke(context.Background(), ep, map[string]any{})
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if text != export {
		t.Fatalf("text = %q, want the exact export body", text)
	}
	if !caller.gotRaw {
		t.Fatal("export endpoint must use CallRaw")
	}
}

func TestInvokePropagatesTransportError(t *testing.T) {
	wantErr := &trackapi.APIError{Status: http.StatusBadGateway, Message: "already tracking"}
	caller := &fakeCaller{err: wantErr}
	inv := NewInvoker(caller)

	ep := mustLookup(t, "start_timer")
	_, err := inv.Invoke(context.Background(), ep, map[string]any{"id": float64(42)})
	var apiErr *trackapi.APIError
	if !errors.As(err, &apiErr) || apiErr != wantErr {
		t.Fatalf("Invoke() error = %v, want the transport error unchanged", err)
	}
}

func TestInvokeArgumentErrorBeforeTransport(t *testing.T) {
	caller := &fakeCaller{}
	inv := NewInvoker(caller)

	ep := mustLookup(t, "start_timer")
	_, err := inv.Invoke(context.Background(), ep, map[string]any{})
	if err == nil {
		t.Fatal("Invoke() without required id, want error")
	}
	if caller.gotPath != "" {
		t.Fatal("argument errors must not reach the transport")
	}
}

func TestFormatError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "remote error prefixed with status",
			err:  &trackapi.APIError{Status: 502, Message: "already tracking"},
			want: "API error 502: already tracking",
		},
		{
			name: "transport error left as-is",
			err:  &trackapi.APIError{Message: "request timed out after 30s"},
			want: "request timed out after 30s",
		},
		{
			name: "argument error left as-is",
			err:  errors.New(`catalog: start_timer: missing required argument "id"`),
			want: `catalog: start_timer: missing required argument "id"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatError(tt.err); got != tt.want {
				t.Fatalf("FormatError() = %q, want %q", got, tt.want)
			}
		})
	}
}
