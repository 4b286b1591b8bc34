package domain

import (
	"fmt"
	"strings"
	"time"
)

// DefaultMaxHistory is the number of exchanges a conversation retains.
const DefaultMaxHistory = 5

// DefaultTopic is used when the first user message matches no topic keyword.
const DefaultTopic = "general debate topic"

// DefaultPosition is the bot position for topics without a mapped position.
const DefaultPosition = "devil's advocate contrarian"

type topicRule struct {
	keyword  string
	topic    string
	position string
}

// topicRules is evaluated in order; the first keyword found wins.
var topicRules = []topicRule{
	{"vaccine", "vaccines and public health", "anti-vaccination and natural immunity advocate"},
	{"climate", "climate change", "climate change skeptic"},
	{"earth", "earth shape and geography", "flat earth proponent"},
	{"government", "government and politics", "anti-establishment libertarian"},
	{"health", "health and medicine", "alternative medicine advocate"},
	{"technology", "technology and society", "technology skeptic"},
	{"education", "education system", "homeschooling and alternative education advocate"},
	{"economy", "economic policies", "free market absolutist"},
	{"science", "scientific methodology", "traditional wisdom and intuition advocate"},
}

// DeriveTopic returns the debate topic for a first user message.
func DeriveTopic(text string) string {
	lower := strings.ToLower(text)
	for _, r := range topicRules {
		if strings.Contains(lower, r.keyword) {
			return r.topic
		}
	}
	return DefaultTopic
}

// ContrarianPosition returns the position the bot defends for topic.
func ContrarianPosition(topic string) string {
	for _, r := range topicRules {
		if r.topic == topic {
			return r.position
		}
	}
	return DefaultPosition
}

// Conversation is the debate aggregate. It owns the bounded message history
// and the one-shot topic, position and personality commitments.
//
// A Conversation is not safe for concurrent use; each request works on its
// own loaded copy and the repository arbitrates concurrent updates through
// Version.
type Conversation struct {
	id          ConversationID
	createdAt   time.Time
	updatedAt   time.Time
	messages    []Message
	topic       string
	botPosition string
	personality PersonalityType
	maxHistory  int
	version     int64
}

// NewConversation creates an empty conversation. maxHistory must be >= 1.
func NewConversation(id ConversationID, createdAt time.Time, maxHistory int) (*Conversation, error) {
	if id.IsZero() {
		return nil, NewDomainError("NewConversation", ErrInvalidConversation, "id is required")
	}
	if maxHistory < 1 {
		return nil, NewDomainError("NewConversation", ErrInvalidConversation, "max_history must be at least 1")
	}
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	return &Conversation{
		id:         id,
		createdAt:  createdAt,
		updatedAt:  createdAt,
		maxHistory: maxHistory,
	}, nil
}

func (c *Conversation) ID() ConversationID   { return c.id }
func (c *Conversation) CreatedAt() time.Time { return c.createdAt }

// UpdatedAt is the timestamp of the most recent message, or CreatedAt.
func (c *Conversation) UpdatedAt() time.Time { return c.updatedAt }
func (c *Conversation) MaxHistory() int      { return c.maxHistory }

// Topic returns the derived topic and whether it has been set.
func (c *Conversation) Topic() (string, bool) { return c.topic, c.topic != "" }

// BotPosition returns the derived contrarian position and whether it is set.
func (c *Conversation) BotPosition() (string, bool) { return c.botPosition, c.botPosition != "" }

// Personality returns the committed persona name. The value is whatever was
// committed or restored and may not parse as a known PersonalityType.
func (c *Conversation) Personality() (PersonalityType, bool) {
	return c.personality, c.personality != ""
}

// CommitPersonality records p as the conversation's persona. It is a no-op
// returning false when a persona is already committed.
func (c *Conversation) CommitPersonality(p PersonalityType) bool {
	if c.personality != "" || p == "" {
		return false
	}
	c.personality = p
	return true
}

// Version is the optimistic concurrency token maintained by repositories.
func (c *Conversation) Version() int64 { return c.version }

// SetVersion is called by repositories after a successful write.
func (c *Conversation) SetVersion(v int64) { c.version = v }

// AddUserMessage appends a user message. The first user message fixes the
// topic and bot position.
func (c *Conversation) AddUserMessage(text string, ts time.Time) (Message, error) {
	msg, err := NewMessage(RoleUser, text, ts)
	if err != nil {
		return Message{}, WrapOp("Conversation.AddUserMessage", err)
	}
	if c.topic == "" {
		c.topic = DeriveTopic(msg.Text())
		c.botPosition = ContrarianPosition(c.topic)
	}
	c.append(msg)
	return msg, nil
}

// AddBotMessage appends a bot message.
func (c *Conversation) AddBotMessage(text string, ts time.Time) (Message, error) {
	msg, err := NewMessage(RoleBot, text, ts)
	if err != nil {
		return Message{}, WrapOp("Conversation.AddBotMessage", err)
	}
	c.append(msg)
	return msg, nil
}

func (c *Conversation) append(msg Message) {
	c.messages = append(c.messages, msg)
	if msg.Timestamp().After(c.updatedAt) {
		c.updatedAt = msg.Timestamp()
	}
	c.trim()
}

// trim drops the oldest messages beyond maxHistory*2. The cut is positional,
// so the retained history may start with a bot message.
func (c *Conversation) trim() {
	limit := c.maxHistory * 2
	if excess := len(c.messages) - limit; excess > 0 {
		kept := make([]Message, limit)
		copy(kept, c.messages[excess:])
		c.messages = kept
	}
}

// Messages returns a copy of the retained history, oldest first.
func (c *Conversation) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// RecentMessages returns the last limit messages. A limit <= 0 means
// maxHistory*2.
func (c *Conversation) RecentMessages(limit int) []Message {
	if limit <= 0 {
		limit = c.maxHistory * 2
	}
	start := len(c.messages) - limit
	if start < 0 {
		start = 0
	}
	out := make([]Message, len(c.messages)-start)
	copy(out, c.messages[start:])
	return out
}

// TransportMessages renders the recent history in wire form.
func (c *Conversation) TransportMessages() []TransportMessage {
	recent := c.RecentMessages(0)
	out := make([]TransportMessage, len(recent))
	for i, m := range recent {
		out[i] = m.Transport()
	}
	return out
}

func (c *Conversation) IsNew() bool       { return len(c.messages) == 0 }
func (c *Conversation) MessageCount() int { return len(c.messages) }

// ExchangeCount is min(user messages, bot messages).
func (c *Conversation) ExchangeCount() int {
	var users, bots int
	for _, m := range c.messages {
		if m.FromUser() {
			users++
		} else {
			bots++
		}
	}
	return min(users, bots)
}

// LastUserMessage returns the most recent retained user message.
func (c *Conversation) LastUserMessage() (Message, bool) { return c.last(RoleUser) }

// LastBotMessage returns the most recent retained bot message.
func (c *Conversation) LastBotMessage() (Message, bool) { return c.last(RoleBot) }

func (c *Conversation) last(role Role) (Message, bool) {
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].Role() == role {
			return c.messages[i], true
		}
	}
	return Message{}, false
}

// Clone returns a deep copy that shares no mutable state with c.
func (c *Conversation) Clone() *Conversation {
	cp := *c
	cp.messages = c.Messages()
	return &cp
}

func (c *Conversation) String() string {
	return fmt.Sprintf("Conversation(%s, topic=%q, messages=%d)", c.id, c.topic, len(c.messages))
}
