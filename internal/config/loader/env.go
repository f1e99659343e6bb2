package loader

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"
	"time"
)

// envAliases maps the short variable names to config paths. Other
// prefixed variables map by rule: VIMCORE_INPUT_PAGE_LINES is
// input.page_lines.
var envAliases = map[string]string{
	"LOG_LEVEL":         "logging.level",
	"ESCAPE_SEQUENCE":   "input.escape_sequence",
	"ESCAPE_TIMEOUT_MS": "input.escape_timeout_ms",
	"PAGE_LINES":        "input.page_lines",
	"SYSTEM_CLIPBOARD":  "clipboard.system",
	"SESSION":           "session.enabled",
	"SESSION_PATH":      "session.path",
}

// EnvLoader reads configuration from prefixed environment variables.
type EnvLoader struct {
	prefix string
}

// NewEnvLoader returns a loader for variables starting with prefix, which
// includes the trailing underscore.
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{prefix: prefix}
}

// Load collects the prefixed variables. Values are typed by parseValue;
// an empty value is kept as an empty string.
func (l *EnvLoader) Load() (map[string]any, error) {
	m := make(map[string]any)
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}
		path, ok := envAliases[strings.TrimPrefix(name, l.prefix)]
		if !ok {
			path = l.envToPath(name)
		}
		setByPath(m, path, l.parseValue(value))
	}
	return m, nil
}

// envToPath turns a variable name into a dotted config path. The first
// word after the prefix names the section and the rest the key.
func (l *EnvLoader) envToPath(env string) string {
	name := strings.ToLower(strings.TrimPrefix(env, l.prefix))
	section, rest, found := strings.Cut(name, "_")
	if !found || rest == "" {
		return section
	}
	return section + "." + rest
}

// parseValue types a variable: bool words, integers, decimals, durations
// and JSON lists or objects, falling back to the string.
func (l *EnvLoader) parseValue(s string) any {
	if s == "" {
		return s
	}
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	if strings.HasPrefix(s, "[") || strings.HasPrefix(s, "{") {
		var v any
		if json.Unmarshal([]byte(s), &v) == nil {
			return v
		}
	}
	return s
}

func setByPath(m map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	for _, part := range parts[:len(parts)-1] {
		next, ok := m[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			m[part] = next
		}
		m = next
	}
	m[parts[len(parts)-1]] = value
}
