package content

import (
	"encoding/json"
	"fmt"
	"strings"
)

// stripFences removes a markdown code fence around a model response.
// Models occasionally wrap the JSON despite being told not to.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// decodeResponse parses a model response into out, tolerating code fences
// and leading prose before the first brace.
func decodeResponse(raw string, out interface{}) error {
	s := stripFences(raw)
	if idx := strings.Index(s, "{"); idx > 0 {
		s = s[idx:]
	}
	if err := json.Unmarshal([]byte(s), out); err != nil {
		return fmt.Errorf("failed to parse model response: %w", err)
	}
	return nil
}
