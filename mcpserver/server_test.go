package mcpserver

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"timetrack-mcp/catalog"
	"timetrack-mcp/trackapi"
)

type fakeCaller struct {
	data json.RawMessage
	raw  string
	err  error
}

func (f *fakeCaller) Call(_ context.Context, _, _ string, _ url.Values, _ any) (json.RawMessage, error) {
	return f.data, f.err
}

func (f *fakeCaller) CallRaw(_ context.Context, _, _ string, _ url.Values) (string, error) {
	return f.raw, f.err
}

func newTestServer(caller catalog.Caller) *Server {
	return New(Options{
		Client: caller,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("result has no content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content = %T, want mcp.TextContent", result.Content[0])
	}
	return text.Text
}

func TestBuildToolRequiredFields(t *testing.T) {
	ep, _ := catalog.Lookup("start_timer")
	tool := BuildTool(ep)

	if tool.Name != "start_timer" {
		t.Fatalf("Name = %q", tool.Name)
	}
	found := false
	for _, name := range tool.InputSchema.Required {
		if name == "id" {
			found = true
		}
	}
	if !found {
		t.Fatalf("required = %v, want id", tool.InputSchema.Required)
	}
}

func TestBuildToolEnumAndArray(t *testing.T) {
	ep, _ := catalog.Lookup("list_tasks")
	raw, err := json.Marshal(BuildTool(ep).InputSchema)
	if err != nil {
		t.Fatalf("marshal schema: %v", err)
	}
	for _, want := range []string{`"enum"`, `"open"`, `"closed"`} {
		if !strings.Contains(string(raw), want) {
			t.Fatalf("schema %s missing %s", raw, want)
		}
	}

	ep, _ = catalog.Lookup("mark_events_billed")
	raw, err = json.Marshal(BuildTool(ep).InputSchema)
	if err != nil {
		t.Fatalf("marshal schema: %v", err)
	}
	if !strings.Contains(string(raw), `"array"`) {
		t.Fatalf("schema %s missing array type", raw)
	}
}

func TestEveryEndpointBuildsATool(t *testing.T) {
	for _, ep := range catalog.Endpoints() {
		tool := BuildTool(ep)
		if tool.Name != ep.Name {
			t.Fatalf("tool name = %q, want %q", tool.Name, ep.Name)
		}
		if tool.Description == "" {
			t.Fatalf("%s: empty description", ep.Name)
		}
	}
}

func TestHandlerSuccess(t *testing.T) {
	s := newTestServer(&fakeCaller{data: json.RawMessage(`[{"id":1,"name":"Demo"}]`)})
	ep, _ := catalog.Lookup("list_projects")

	result, err := s.handler(ep)(context.Background(), callRequest("list_projects", map[string]any{}))
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if result.IsError {
		t.Fatal("IsError = true, want success")
	}
	if got := resultText(t, result); !strings.Contains(got, `"name": "Demo"`) {
		t.Fatalf("text = %q, want rendered payload", got)
	}
}

func TestHandlerRemoteFailureBecomesErrorResult(t *testing.T) {
	s := newTestServer(&fakeCaller{
		err: &trackapi.APIError{Status: 502, Message: "already tracking"},
	})
	ep, _ := catalog.Lookup("start_timer")

	result, err := s.handler(ep)(context.Background(), callRequest("start_timer", map[string]any{"id": float64(42)}))
	if err != nil {
		t.Fatalf("handler error = %v, failures must become error results", err)
	}
	if !result.IsError {
		t.Fatal("IsError = false, want error result")
	}
	if got := resultText(t, result); got != "API error 502: already tracking" {
		t.Fatalf("text = %q", got)
	}
}

func TestHandlerArgumentFailure(t *testing.T) {
	s := newTestServer(&fakeCaller{})
	ep, _ := catalog.Lookup("start_timer")

	result, err := s.handler(ep)(context.Background(), callRequest("start_timer", map[string]any{}))
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if !result.IsError {
		t.Fatal("IsError = false, want error result")
	}
	if got := resultText(t, result); !strings.Contains(got, "missing required argument") {
		t.Fatalf("text = %q", got)
	}
}

func TestHandlerRawEndpoint(t *testing.T) {
	const export = "id,duration\n1,3600"
	s := newTestServer(&fakeCaller{raw: export})
	ep, _ := catalog.Lookup("export_events")

	result, err := s.handler(ep)(context.Background(), callRequest("export_events", map[string]any{"separator": ","}))
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if got := resultText(t, result); got != export {
		t.Fatalf("text = %q, want the exact export body", got)
	}
}
