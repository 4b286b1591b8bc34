package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// MaxMessageLength is the maximum message length in characters (code points).
const MaxMessageLength = 2000

// Role identifies the author of a message.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool { return r == RoleUser || r == RoleBot }

// Message is a single utterance in a conversation. It is immutable once built;
// use NewMessage to construct one.
type Message struct {
	role      Role
	text      string
	timestamp time.Time
}

// NewMessage validates and trims text. A zero timestamp is replaced with the
// current UTC time.
func NewMessage(role Role, text string, ts time.Time) (Message, error) {
	if !role.Valid() {
		return Message{}, NewDomainError("NewMessage", ErrInvalidMessage, "unknown role "+string(role))
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, NewDomainError("NewMessage", ErrInvalidMessage, "message cannot be empty")
	}
	if utf8.RuneCountInString(text) > MaxMessageLength {
		return Message{}, NewDomainError("NewMessage", ErrInvalidMessage, "message too long (max 2000 characters)")
	}
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	return Message{role: role, text: text, timestamp: ts}, nil
}

func (m Message) Role() Role           { return m.role }
func (m Message) Text() string         { return m.text }
func (m Message) Timestamp() time.Time { return m.timestamp }
func (m Message) FromUser() bool       { return m.role == RoleUser }
func (m Message) FromBot() bool        { return m.role == RoleBot }

// WordCount counts whitespace-separated words.
func (m Message) WordCount() int { return len(strings.Fields(m.text)) }

// ContainsAny reports whether the text contains any keyword, ignoring case.
func (m Message) ContainsAny(keywords ...string) bool {
	lower := strings.ToLower(m.text)
	for _, k := range keywords {
		if strings.Contains(lower, strings.ToLower(k)) {
			return true
		}
	}
	return false
}

// Transport returns the wire form of the message.
func (m Message) Transport() TransportMessage {
	return TransportMessage{Role: string(m.role), Message: m.text}
}

// TransportMessage is the {role, message} record exchanged with clients.
type TransportMessage struct {
	Role    string `json:"role"`
	Message string `json:"message"`
}
