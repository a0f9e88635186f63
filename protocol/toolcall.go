package protocol

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Call is a single tool invocation parsed from model output.
type Call struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// IsError reports whether the call is the error payload of a failed repair.
func (c Call) IsError() bool { return c.Name == ErrorToolName }

// String renders the call as compact JSON.
func (c Call) String() string {
	out, err := json.Marshal(c)
	if err != nil {
		return fmt.Sprintf("%s(%v)", c.Name, c.Arguments)
	}
	return string(out)
}

// ParseToolCalls parses the content of one tool call block. A JSON array is
// flattened into its elements; each element is repaired independently. The
// result is empty only for a blank block.
func ParseToolCalls(block string) []Call {
	block = strings.TrimSpace(block)
	if block == "" {
		return nil
	}

	if strings.HasPrefix(block, "[") {
		if elems, ok := splitArray(block); ok {
			calls := make([]Call, 0, len(elems))
			for _, e := range elems {
				calls = append(calls, decodeCall(Sanitize(string(e))))
			}
			return calls
		}
	}

	return []Call{decodeCall(Sanitize(block))}
}

// ParseToolCallBlocks parses and flattens several blocks in order.
func ParseToolCallBlocks(blocks []string) []Call {
	var calls []Call
	for _, b := range blocks {
		calls = append(calls, ParseToolCalls(b)...)
	}
	return calls
}

func splitArray(s string) ([]json.RawMessage, bool) {
	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(s), &elems); err == nil {
		return elems, true
	}

	cur := s
	for _, st := range stages {
		cur = st.Apply(cur)
		if err := json.Unmarshal([]byte(cur), &elems); err == nil {
			return elems, true
		}
	}

	return nil, false
}

func decodeCall(s string) Call {
	var c Call
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	if err := dec.Decode(&c); err != nil {
		return Call{
			Name: ErrorToolName,
			Arguments: map[string]any{
				"error":    fmt.Sprintf("invalid tool call: %v", err),
				"original": truncate(s, maxOriginalLen),
			},
		}
	}
	if c.Arguments == nil {
		c.Arguments = map[string]any{}
	}
	return c
}
