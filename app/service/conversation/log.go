package conversation

import (
	"strings"
	"sync"
)

// Log is the ordered message log exchanged with the chat model. It holds at
// most one system message, always at index 0, refreshed in place before
// every user turn. Other messages are append-only.
type Log struct {
	mu       sync.RWMutex
	messages []Message
}

func NewLog() *Log {
	return &Log{}
}

// RefreshSystem installs or rewrites the system message at index 0.
func (l *Log) RefreshSystem(content string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.messages) == 0 || l.messages[0].Role != RoleSystem {
		l.messages = append([]Message{{Role: RoleSystem, Content: content}}, l.messages...)
		return
	}

	l.messages[0].Content = content
}

// AppendUser adds a user turn. Whitespace-only input is rejected without
// touching the log.
func (l *Log) AppendUser(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.messages = append(l.messages, Message{Role: RoleUser, Content: text})

	return true
}

func (l *Log) AppendAssistant(text string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.messages = append(l.messages, Message{Role: RoleAssistant, Content: text})
}

// Messages returns a copy of the log in order.
func (l *Log) Messages() []Message {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Message, len(l.messages))
	copy(out, l.messages)

	return out
}

func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.messages)
}
