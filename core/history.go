package core

// History is the ordered message log of a single reasoning loop.
//
// The first head entries (system prompt and question) are protected. Entries
// after the head form the tail, which is trimmed from its oldest end whenever
// it grows beyond maxTail. A negative maxTail disables trimming.
type History struct {
	head     int
	maxTail  int
	messages []Message
}

// NewHistory creates a history seeded with the given messages. The seed is
// not trimmed so the protected head is always intact.
func NewHistory(head, maxTail int, seed ...Message) *History {
	if head < 0 {
		head = 0
	}
	msgs := make([]Message, len(seed))
	copy(msgs, seed)
	return &History{head: head, maxTail: maxTail, messages: msgs}
}

// Append adds msg to the end of the log and enforces the tail bound.
func (h *History) Append(msg Message) {
	h.messages = append(h.messages, msg)
	h.Trim(h.head, h.maxTail)
}

// Trim removes the oldest entries after head until at most maxTail entries
// follow it. Relative order is preserved and the head is never touched.
func (h *History) Trim(head, maxTail int) {
	if maxTail < 0 || head >= len(h.messages) {
		return
	}
	tail := len(h.messages) - head
	if tail <= maxTail {
		return
	}
	remove := tail - maxTail
	h.messages = append(h.messages[:head], h.messages[head+remove:]...)
}

// Messages returns a copy of the current log.
func (h *History) Messages() []Message {
	out := make([]Message, len(h.messages))
	copy(out, h.messages)
	return out
}

// Len returns the number of messages currently held.
func (h *History) Len() int { return len(h.messages) }
