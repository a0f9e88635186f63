package protocol

import (
	"regexp"
	"strings"
)

// Tag is an open/close delimiter pair of the protocol, e.g. <answer></answer>.
type Tag struct {
	name    string
	pattern *regexp.Regexp
}

// NewTag creates the tag pair <name></name>.
func NewTag(name string) Tag {
	open, closing := "<"+name+">", "</"+name+">"
	return Tag{
		name:    name,
		pattern: regexp.MustCompile(`(?s)` + regexp.QuoteMeta(open) + `(.*?)` + regexp.QuoteMeta(closing)),
	}
}

var (
	Question    = NewTag("question")
	Thought     = NewTag("thought")
	ToolCall    = NewTag("tool_call")
	Observation = NewTag("observation")
	Answer      = NewTag("answer")
	Tools       = NewTag("tools")
	Context     = NewTag("context")
	ToolResults = NewTag("tool_results")
)

// Name returns the bare tag name.
func (t Tag) Name() string { return t.name }

// Open returns the opening delimiter.
func (t Tag) Open() string { return "<" + t.name + ">" }

// Close returns the closing delimiter.
func (t Tag) Close() string { return "</" + t.name + ">" }

// Wrap encloses body on a single line.
func (t Tag) Wrap(body string) string { return t.Open() + body + t.Close() }

// Block encloses body with the delimiters on their own lines.
func (t Tag) Block(body string) string {
	return t.Open() + "\n" + body + "\n" + t.Close()
}

// Extract returns every span enclosed by tag in text, trimmed of surrounding
// whitespace, in order of appearance. Matching is non-greedy and spans
// newlines. When nothing matches and allowUntagged is set, the whole text is
// returned as the only element.
func Extract(text string, tag Tag, allowUntagged bool) []string {
	matches := tag.pattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		if allowUntagged {
			return []string{text}
		}
		return nil
	}

	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, strings.TrimSpace(m[1]))
	}

	return out
}

// Last returns the final element of Extract, or false when there is none.
func Last(text string, tag Tag, allowUntagged bool) (string, bool) {
	all := Extract(text, tag, allowUntagged)
	if len(all) == 0 {
		return "", false
	}
	return all[len(all)-1], true
}
