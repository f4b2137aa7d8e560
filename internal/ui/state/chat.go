package state

import "strings"

// Role identifies who authored a chat message.
type Role int

const (
	User Role = iota
	Assistant
)

func (r Role) String() string {
	if r == User {
		return "user"
	}
	return "assistant"
}

// Message is one retained chat exchange entry.
type Message struct {
	Role Role
	Text string
}

// DefaultHistorySize bounds how many messages a session retains.
const DefaultHistorySize = 8

// Chat holds the text-entry buffer and the bounded message history for
// the chat sub-mode. History evicts oldest-first once the limit is hit.
type Chat struct {
	Buffer  string
	History []Message
	Engaged bool
	limit   int
}

// NewChat constructs a Chat retaining at most limit messages.
func NewChat(limit int) *Chat {
	if limit <= 0 {
		limit = DefaultHistorySize
	}
	return &Chat{limit: limit}
}

// Limit returns the history capacity.
func (c *Chat) Limit() int {
	return c.limit
}

// Append adds one typed character to the buffer.
func (c *Chat) Append(ch byte) {
	c.Buffer += string(ch)
}

// Backspace removes the last buffered character, reporting whether
// anything changed.
func (c *Chat) Backspace() bool {
	if c.Buffer == "" {
		return false
	}
	c.Buffer = c.Buffer[:len(c.Buffer)-1]
	return true
}

// Submit consumes the buffer. ok is false when the trimmed buffer is
// empty, in which case nothing changes.
func (c *Chat) Submit() (text string, ok bool) {
	trimmed := strings.TrimSpace(c.Buffer)
	if trimmed == "" {
		return "", false
	}
	c.Buffer = ""
	return trimmed, true
}

// Reset discards any uncommitted buffer content.
func (c *Chat) Reset() {
	c.Buffer = ""
}

// PushUser appends a user message, evicting the oldest entry if full.
func (c *Chat) PushUser(text string) {
	c.push(Message{Role: User, Text: text})
}

// PushAssistant appends an assistant message, evicting the oldest
// entry if full.
func (c *Chat) PushAssistant(text string) {
	c.push(Message{Role: Assistant, Text: text})
}

func (c *Chat) push(m Message) {
	c.History = append(c.History, m)
	if len(c.History) > c.limit {
		c.History = c.History[len(c.History)-c.limit:]
	}
}
