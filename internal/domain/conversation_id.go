package domain

import (
	"strings"

	"github.com/google/uuid"
)

// conversationIDLength is the length of the canonical hyphenated UUID form.
const conversationIDLength = 36

// ConversationID identifies a conversation. The zero value is not a valid id.
type ConversationID struct {
	value uuid.UUID
}

// NewConversationID returns a fresh random (version 4) id.
func NewConversationID() ConversationID {
	return ConversationID{value: uuid.New()}
}

// ParseConversationID accepts only the canonical 8-4-4-4-12 hex form.
// Surrounding whitespace is ignored. Braced, URN and unhyphenated forms are
// rejected even though uuid.Parse would take them.
func ParseConversationID(s string) (ConversationID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ConversationID{}, NewDomainError("ParseConversationID", ErrInvalidConversationID, "conversation id cannot be empty")
	}
	if !isCanonicalUUID(s) {
		return ConversationID{}, NewDomainError("ParseConversationID", ErrInvalidConversationID, "invalid conversation id format")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return ConversationID{}, NewDomainError("ParseConversationID", ErrInvalidConversationID, err.Error())
	}
	return ConversationID{value: u}, nil
}

// MustParseConversationID is ParseConversationID for fixtures and constants.
func MustParseConversationID(s string) ConversationID {
	id, err := ParseConversationID(s)
	if err != nil {
		panic(err)
	}
	return id
}

func isCanonicalUUID(s string) bool {
	if len(s) != conversationIDLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		switch i {
		case 8, 13, 18, 23:
			if s[i] != '-' {
				return false
			}
		default:
			if s[i] == '-' {
				return false
			}
		}
	}
	return true
}

// String renders the id in lowercase canonical form.
func (id ConversationID) String() string {
	if id.IsZero() {
		return ""
	}
	return id.value.String()
}

// IsZero reports whether id was never assigned.
func (id ConversationID) IsZero() bool { return id.value == uuid.Nil }

// MarshalText implements encoding.TextMarshaler.
func (id ConversationID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ConversationID) UnmarshalText(b []byte) error {
	parsed, err := ParseConversationID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
