package protocol

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeObject(t *testing.T, s string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &m), "output %q", s)
	require.NotNil(t, m)
	return m
}

func TestSanitize_ValidInputUnchanged(t *testing.T) {
	in := `{"name": "add", "arguments": {"a": 1, "b": 2}}`
	out, stage := Repair(in)
	assert.Equal(t, in, out)
	assert.Empty(t, stage)
}

func TestSanitize_TrailingCommas(t *testing.T) {
	out, stage := Repair(`{"name": "add", "arguments": {"a": 1,},}`)
	assert.Equal(t, "strip_trailing_commas", stage)
	m := decodeObject(t, out)
	assert.Equal(t, "add", m["name"])
}

func TestSanitize_BareKeys(t *testing.T) {
	out, stage := Repair(`{name: "add", arguments: {a: "2", b: "3"}}`)
	assert.Equal(t, "quote_bare_keys", stage)
	m := decodeObject(t, out)
	args := m["arguments"].(map[string]any)
	assert.Equal(t, "2", args["a"])
	assert.Equal(t, "3", args["b"])
}

func TestSanitize_InnerQuotes(t *testing.T) {
	out, stage := Repair(`{"name": "say", "arguments": {"text": "he said "hi" to me"}}`)
	assert.Equal(t, "escape_value_quotes", stage)
	m := decodeObject(t, out)
	args := m["arguments"].(map[string]any)
	assert.Equal(t, `he said "hi" to me`, args["text"])
}

func TestSanitize_SingleQuotesSurvive(t *testing.T) {
	out := Sanitize(`{"name": "say", "arguments": {"text": "it's "fine""}}`)
	m := decodeObject(t, out)
	args := m["arguments"].(map[string]any)
	assert.Equal(t, `it's "fine"`, args["text"])
}

func TestSanitize_TaggedContentWithNewlines(t *testing.T) {
	out := Sanitize("{\"name\": \"submit\", \"arguments\": {\"content\": \"<content>Line one\nLine two</content>\"}}")
	m := decodeObject(t, out)
	args := m["arguments"].(map[string]any)
	assert.Equal(t, "<content>Line one\nLine two</content>", args["content"])
}

func TestSanitize_Rebuild(t *testing.T) {
	out, stage := Repair(`{"name": "lookup", "arguments": {"city": "Paris", "unit": "c"} trailing garbage`)
	assert.Equal(t, "rebuild", stage)
	m := decodeObject(t, out)
	assert.Equal(t, "lookup", m["name"])
	assert.Equal(t, map[string]any{"city": "Paris", "unit": "c"}, m["arguments"])
}

func TestSanitize_SafetyNet(t *testing.T) {
	inputs := []string{
		`{"name": "add", "argu`,
		"\x00\xff\xfe{{[[",
		"",
		"just some prose",
		`[1, 2, 3]`,
		`null`,
		strings.Repeat("x", 500),
		`{,}`,
		`{"arguments": {"a": 1,}}`,
	}
	for _, in := range inputs {
		out, stage := Repair(in)
		m := decodeObject(t, out)
		assert.Contains(t, m, "name", "input %q", in)
		if stage == "error" {
			assert.Equal(t, ErrorToolName, m["name"])
			args := m["arguments"].(map[string]any)
			assert.NotEmpty(t, args["error"])
			assert.LessOrEqual(t, len([]rune(args["original"].(string))), maxOriginalLen+3)
		}
	}
}

func TestSanitize_StageOutputWithoutNameIsRejected(t *testing.T) {
	out, stage := Repair(`{,}`)
	assert.Equal(t, "error", stage)
	m := decodeObject(t, out)
	assert.Equal(t, ErrorToolName, m["name"])
	assert.Equal(t, out, Sanitize(out))
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{
		`{"name": "add", "arguments": {"a": 1}}`,
		`{"name": "add", "arguments": {"a": 1,},}`,
		`{name: "add", arguments: {a: "2"}}`,
		`{"name": "say", "arguments": {"text": "he said "hi""}}`,
		`{"name": "lookup", "arguments": {"city": "Paris"} tail`,
		`garbage`,
		`{"name": "x\\\"y"}`,
		`{,}`,
	}
	for _, in := range inputs {
		once := Sanitize(in)
		assert.Equal(t, once, Sanitize(once), "input %q", in)
		decodeObject(t, once)
	}
}

func TestStages_Independent(t *testing.T) {
	byName := map[string]func(string) string{}
	for _, st := range Stages() {
		byName[st.Name] = st.Apply
	}
	require.Len(t, byName, 6)

	assert.Equal(t, `a\b`, byName["collapse_backslashes"](`a\\\b`))
	assert.Equal(t, `a\b`, byName["collapse_backslashes"](`a\\b`))
	assert.Equal(t, `{"a": [1]}`, byName["strip_trailing_commas"](`{"a": [1, ],}`))
	assert.Equal(t, `{"a": 1, "b_2": 2}`, byName["quote_bare_keys"](`{a: 1, b_2: 2}`))
	assert.Equal(t, `{"k": "x \"y\""}`, byName["escape_value_quotes"](`{"k": "x "y""}`))
	assert.Equal(t, `<b>say \"x\"</b>`, byName["escape_tagged_spans"](`<b>say "x"</b>`))
	assert.Equal(t, `{"a": "x \"y\" z"}`, byName["escape_stray_quotes"](`{"a": "x "y" z"}`))
	assert.Equal(t, `{"a": "l1\nl2"}`, byName["escape_stray_quotes"]("{\"a\": \"l1\nl2\"}"))
}
