package mcp

import "encoding/json"

// Normalize converts an untyped value, as produced by encoding/json, into a
// canonical Definition. It returns nil when the value does not describe a
// server. Rules are tried in order:
//
//  1. type "http" with a url gives [*HTTP]
//  2. type "sse" with a url gives [*SSE]
//  3. a command gives [*Stdio]
//
// Empty strings count as absent. Non-string entries of args, env and headers
// are dropped. Normalize never panics.
func Normalize(v any) Definition {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil
	}

	typ, _ := obj["type"].(string)
	url, _ := obj["url"].(string)

	if typ == TypeHTTP && url != "" {
		return &HTTP{URL: url, Headers: stringMap(obj["headers"])}
	}
	if typ == TypeSSE && url != "" {
		return &SSE{URL: url, Headers: stringMap(obj["headers"])}
	}
	if command, _ := obj["command"].(string); command != "" {
		return &Stdio{
			Command: command,
			Args:    stringSlice(obj["args"]),
			Env:     stringMap(obj["env"]),
		}
	}
	return nil
}

// NormalizeJSON decodes raw and normalizes the result. Undecodable input
// returns nil.
func NormalizeJSON(raw []byte) Definition {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return Normalize(v)
}

func stringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func stringMap(v any) map[string]string {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	var out map[string]string
	for k, item := range obj {
		s, ok := item.(string)
		if !ok {
			continue
		}
		if out == nil {
			out = make(map[string]string, len(obj))
		}
		out[k] = s
	}
	return out
}
