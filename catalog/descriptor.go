// Package catalog defines the static tool table for the TimeTrack adapter.
//
// Each endpoint descriptor declares a tool name, an assistant-facing
// description, the HTTP mapping (method, path template, parameters), and how
// caller arguments are partitioned into path segments, query parameters, and
// the JSON body. The table is compiled once at startup and read-only
// thereafter; all timeout, envelope, and error semantics live in the
// transport client, never here.
package catalog

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// ParamType enumerates the argument types a tool accepts.
type ParamType string

const (
	TypeString     ParamType = "string"
	TypeNumber     ParamType = "number"
	TypeBoolean    ParamType = "boolean"
	TypeNumberList ParamType = "number_list"
	// TypeIDList marks the bulk-flag argument whose body shape is a bare
	// array of {id} objects.
	TypeIDList ParamType = "id_list"
)

// Param describes one accepted input field.
type Param struct {
	Name        string
	Type        ParamType
	Required    bool
	Description string
	Enum        []string
}

// Endpoint maps one tool to one HTTP call. Path placeholders use the
// ":name" form and must be covered by a required parameter of the same name.
type Endpoint struct {
	Name        string
	Description string
	Method      string
	Path        string
	Params      []Param
	// Raw marks endpoints whose success response is delimited text rather
	// than the JSON envelope.
	Raw bool
	// IDListBody marks endpoints whose request body is the bare [{id}, ...]
	// array built from the id_list argument.
	IDListBody bool
}

// BuildRequest partitions caller arguments into an interpolated path, a query
// string, and an optional JSON body, following the endpoint's HTTP mapping:
// placeholders fill the path, remaining fields go to the query string for
// GET/DELETE and to the body for POST/PUT. Optional fields the caller did not
// supply are omitted entirely.
func (ep Endpoint) BuildRequest(args map[string]any) (string, url.Values, any, error) {
	path := ep.Path
	query := url.Values{}
	bodyFields := map[string]any{}
	var idList []map[string]any

	for _, p := range ep.Params {
		raw, ok := args[p.Name]
		if !ok || raw == nil {
			if p.Required {
				return "", nil, nil, fmt.Errorf("catalog: %s: missing required argument %q", ep.Name, p.Name)
			}
			continue
		}

		placeholder := ":" + p.Name
		if strings.Contains(path, placeholder) {
			segment, err := formatScalar(ep.Name, p, raw)
			if err != nil {
				return "", nil, nil, err
			}
			path = strings.Replace(path, placeholder, url.PathEscape(segment), 1)
			continue
		}

		if p.Type == TypeIDList {
			ids, err := toIDList(ep.Name, p, raw)
			if err != nil {
				return "", nil, nil, err
			}
			idList = ids
			continue
		}

		if ep.Method == http.MethodGet || ep.Method == http.MethodDelete {
			value, err := formatScalar(ep.Name, p, raw)
			if err != nil {
				return "", nil, nil, err
			}
			query.Set(p.Name, value)
			continue
		}

		value, err := coerceBodyValue(ep.Name, p, raw)
		if err != nil {
			return "", nil, nil, err
		}
		bodyFields[p.Name] = value
	}

	var body any
	switch {
	case ep.IDListBody:
		body = idList
	case len(bodyFields) > 0:
		body = bodyFields
	}
	return path, query, body, nil
}

// formatScalar renders a path or query value as its canonical string form.
func formatScalar(tool string, p Param, raw any) (string, error) {
	switch p.Type {
	case TypeString:
		s, ok := raw.(string)
		if !ok {
			return "", typeError(tool, p, raw)
		}
		if err := checkEnum(tool, p, s); err != nil {
			return "", err
		}
		return s, nil
	case TypeNumber:
		n, ok := asFloat(raw)
		if !ok {
			return "", typeError(tool, p, raw)
		}
		return strconv.FormatFloat(n, 'f', -1, 64), nil
	case TypeBoolean:
		b, ok := raw.(bool)
		if !ok {
			return "", typeError(tool, p, raw)
		}
		return strconv.FormatBool(b), nil
	case TypeNumberList:
		values, ok := asFloatList(raw)
		if !ok {
			return "", typeError(tool, p, raw)
		}
		parts := make([]string, len(values))
		for i, n := range values {
			parts[i] = strconv.FormatFloat(n, 'f', -1, 64)
		}
		return strings.Join(parts, ","), nil
	default:
		return "", fmt.Errorf("catalog: %s: argument %q has no scalar form", tool, p.Name)
	}
}

// coerceBodyValue validates an argument destined for the JSON body.
func coerceBodyValue(tool string, p Param, raw any) (any, error) {
	switch p.Type {
	case TypeString:
		s, ok := raw.(string)
		if !ok {
			return nil, typeError(tool, p, raw)
		}
		if err := checkEnum(tool, p, s); err != nil {
			return nil, err
		}
		return s, nil
	case TypeNumber:
		n, ok := asFloat(raw)
		if !ok {
			return nil, typeError(tool, p, raw)
		}
		return n, nil
	case TypeBoolean:
		b, ok := raw.(bool)
		if !ok {
			return nil, typeError(tool, p, raw)
		}
		return b, nil
	case TypeNumberList:
		values, ok := asFloatList(raw)
		if !ok {
			return nil, typeError(tool, p, raw)
		}
		return values, nil
	default:
		return nil, fmt.Errorf("catalog: %s: argument %q cannot appear in a body", tool, p.Name)
	}
}

// toIDList converts the numeric-array argument of bulk-flag endpoints into
// the wire shape the API expects: [{"id": n}, ...].
func toIDList(tool string, p Param, raw any) ([]map[string]any, error) {
	values, ok := asFloatList(raw)
	if !ok {
		return nil, typeError(tool, p, raw)
	}
	ids := make([]map[string]any, len(values))
	for i, n := range values {
		ids[i] = map[string]any{"id": n}
	}
	return ids, nil
}

func checkEnum(tool string, p Param, value string) error {
	if len(p.Enum) == 0 {
		return nil
	}
	for _, allowed := range p.Enum {
		if value == allowed {
			return nil
		}
	}
	return fmt.Errorf("catalog: %s: argument %q must be one of %s, got %q",
		tool, p.Name, strings.Join(p.Enum, ", "), value)
}

func typeError(tool string, p Param, raw any) error {
	return fmt.Errorf("catalog: %s: argument %q must be a %s, got %T", tool, p.Name, p.Type, raw)
}

// asFloat accepts the numeric representations JSON decoding can produce.
func asFloat(raw any) (float64, bool) {
	switch n := raw.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func asFloatList(raw any) ([]float64, bool) {
	items, ok := raw.([]any)
	if !ok {
		return nil, false
	}
	values := make([]float64, len(items))
	for i, item := range items {
		n, ok := asFloat(item)
		if !ok {
			return nil, false
		}
		values[i] = n
	}
	return values, true
}
