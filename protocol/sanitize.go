package protocol

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ErrorToolName is the tool name of the payload produced when a tool call
// cannot be repaired.
const ErrorToolName = "error"

const maxOriginalLen = 100

// Stage is one pure text-to-text repair step.
type Stage struct {
	Name  string
	Apply func(string) string
}

var (
	trailingComma = regexp.MustCompile(`,\s*([}\]])`)
	bareKey       = regexp.MustCompile(`([{,]\s*)([a-zA-Z0-9_]+)(\s*:)`)
	keyValueStart = regexp.MustCompile(`"(?:[^"\\]|\\.)*"\s*:\s*"`)
	taggedSpan    = regexp.MustCompile(`(?s)(<[a-zA-Z]+>)(.*?)(</[a-zA-Z]+>)`)

	rebuildName = regexp.MustCompile(`"name"\s*:\s*"([^"]+)"`)
	rebuildArgs = regexp.MustCompile(`(?s)"arguments"\s*:\s*(\{.+\})`)
	rebuildKV   = regexp.MustCompile(`"([^"]+)"\s*:\s*"((?:[^"\\]|\\.)*)"`)
)

var stages = []Stage{
	{Name: "collapse_backslashes", Apply: collapseBackslashes},
	{Name: "strip_trailing_commas", Apply: stripTrailingCommas},
	{Name: "quote_bare_keys", Apply: quoteBareKeys},
	{Name: "escape_value_quotes", Apply: escapeValueQuotes},
	{Name: "escape_tagged_spans", Apply: escapeTaggedSpans},
	{Name: "escape_stray_quotes", Apply: escapeStrayQuotes},
}

// Stages returns the ordered repair pipeline.
func Stages() []Stage {
	out := make([]Stage, len(stages))
	copy(out, stages)
	return out
}

// Sanitize returns s unchanged when it already decodes as a JSON object and a
// repaired JSON object otherwise. The result always decodes as an object.
func Sanitize(s string) string {
	out, _ := Repair(s)
	return out
}

// Repair is Sanitize that also reports which step produced the result: ""
// for valid input, a stage name, "rebuild", or "error".
func Repair(s string) (string, string) {
	if isObject(s) {
		return s, ""
	}

	cur := s
	for _, st := range stages {
		cur = st.Apply(cur)
		if isCall(cur) {
			return cur, st.Name
		}
	}

	for _, candidate := range []string{cur, s} {
		if rebuilt, ok := rebuild(candidate); ok {
			return rebuilt, "rebuild"
		}
	}

	return errorPayload(fmt.Sprintf("failed to parse tool call: %v", decodeError(cur)), s), "error"
}

func isObject(s string) bool {
	var m map[string]any
	return json.Unmarshal([]byte(s), &m) == nil && m != nil
}

// isCall reports whether s decodes as an object carrying a name key.
func isCall(s string) bool {
	var m map[string]any
	if json.Unmarshal([]byte(s), &m) != nil {
		return false
	}
	_, ok := m["name"]
	return ok
}

func decodeError(s string) error {
	var m map[string]any
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return err
	}
	if m != nil {
		return fmt.Errorf("missing name")
	}
	return fmt.Errorf("not a JSON object")
}

func collapseBackslashes(s string) string {
	s = strings.ReplaceAll(s, `\\\`, `\`)
	return strings.ReplaceAll(s, `\\`, `\`)
}

func stripTrailingCommas(s string) string {
	return trailingComma.ReplaceAllString(s, "$1")
}

func quoteBareKeys(s string) string {
	return bareKey.ReplaceAllString(s, `$1"$2"$3`)
}

// escapeValueQuotes re-escapes the content of every "key": "value" pair. A
// value ends at the first unescaped quote that is followed by a structural
// character.
func escapeValueQuotes(s string) string {
	var b strings.Builder
	pos := 0
	for pos < len(s) {
		loc := keyValueStart.FindStringIndex(s[pos:])
		if loc == nil {
			break
		}
		start := pos + loc[1]
		b.WriteString(s[pos:start])

		end := valueEnd(s, start)
		if end < 0 {
			b.WriteString(escapeValue(s[start:]))
			return b.String()
		}
		b.WriteString(escapeValue(s[start:end]))
		b.WriteByte('"')
		pos = end + 1
	}
	b.WriteString(s[pos:])
	return b.String()
}

func valueEnd(s string, start int) int {
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			if closesString(s, i+1) {
				return i
			}
		}
	}
	return -1
}

func escapeValue(v string) string {
	var b strings.Builder
	for i := 0; i < len(v); i++ {
		c := v[i]
		switch {
		case c == '\\' && i+1 < len(v):
			b.WriteByte(c)
			b.WriteByte(v[i+1])
			i++
		case c == '"':
			b.WriteString(`\"`)
		case c == '\'':
			b.WriteString(`\u0027`)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func escapeTaggedSpans(s string) string {
	return taggedSpan.ReplaceAllStringFunc(s, func(m string) string {
		parts := taggedSpan.FindStringSubmatch(m)
		content := strings.NewReplacer(
			`\`, `\\`,
			`"`, `\"`,
			"\n", `\n`,
			"\r", `\r`,
			"\t", `\t`,
		).Replace(parts[2])
		return parts[1] + content + parts[3]
	})
}

// escapeStrayQuotes walks the text tracking string and escape state. A quote
// inside a string only terminates it when followed by a structural character;
// any other quote and raw control characters are escaped.
func escapeStrayQuotes(s string) string {
	var b strings.Builder
	inString, escaped := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			b.WriteByte(c)
			escaped = false
		case !inString:
			if c == '"' {
				inString = true
			}
			b.WriteByte(c)
		case c == '\\':
			b.WriteByte(c)
			escaped = true
		case c == '"':
			if closesString(s, i+1) {
				inString = false
				b.WriteByte(c)
			} else {
				b.WriteString(`\"`)
			}
		case c == '\n':
			b.WriteString(`\n`)
		case c == '\r':
			b.WriteString(`\r`)
		case c == '\t':
			b.WriteString(`\t`)
		case c < 0x20:
			fmt.Fprintf(&b, `\u%04x`, c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func closesString(s string, j int) bool {
	for ; j < len(s); j++ {
		switch s[j] {
		case ' ', '\t', '\n', '\r':
			continue
		case ',', ':', '}', ']':
			return true
		default:
			return false
		}
	}
	return true
}

type rebuiltCall struct {
	Name      string            `json:"name"`
	Arguments map[string]string `json:"arguments"`
}

// rebuild extracts the name and the flat string arguments of a call.
func rebuild(s string) (string, bool) {
	nm := rebuildName.FindStringSubmatch(s)
	if nm == nil {
		return "", false
	}
	am := rebuildArgs.FindStringSubmatch(s)
	if am == nil {
		return "", false
	}

	args := map[string]string{}
	for _, kv := range rebuildKV.FindAllStringSubmatch(am[1], -1) {
		var v string
		if err := json.Unmarshal([]byte(`"`+kv[2]+`"`), &v); err != nil {
			v = kv[2]
		}
		args[kv[1]] = v
	}

	out, err := json.Marshal(rebuiltCall{Name: nm[1], Arguments: args})
	if err != nil {
		return "", false
	}
	return string(out), isObject(string(out))
}

type errorCall struct {
	Name      string         `json:"name"`
	Arguments errorArguments `json:"arguments"`
}

type errorArguments struct {
	Error    string `json:"error"`
	Original string `json:"original"`
}

func errorPayload(msg, original string) string {
	out, err := json.Marshal(errorCall{
		Name:      ErrorToolName,
		Arguments: errorArguments{Error: msg, Original: truncate(original, maxOriginalLen)},
	})
	if err != nil {
		return `{"name":"error","arguments":{"error":"failed to encode error payload","original":""}}`
	}
	return string(out)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n]) + "..."
}
