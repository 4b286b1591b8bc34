package domain

import "time"

// MessageSnapshot is the persisted form of a Message.
type MessageSnapshot struct {
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// ConversationSnapshot is the persisted form of a Conversation. Stores encode
// it however they like; RestoreConversation re-validates on the way back.
type ConversationSnapshot struct {
	ID          string            `json:"id"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	Messages    []MessageSnapshot `json:"messages"`
	Topic       string            `json:"topic,omitempty"`
	BotPosition string            `json:"bot_position,omitempty"`
	Personality string            `json:"bot_personality,omitempty"`
	MaxHistory  int               `json:"max_history"`
	Version     int64             `json:"version"`
}

// Snapshot captures the full state of c.
func (c *Conversation) Snapshot() ConversationSnapshot {
	msgs := make([]MessageSnapshot, len(c.messages))
	for i, m := range c.messages {
		msgs[i] = MessageSnapshot{Role: m.role, Text: m.text, Timestamp: m.timestamp}
	}
	return ConversationSnapshot{
		ID:          c.id.String(),
		CreatedAt:   c.createdAt,
		UpdatedAt:   c.updatedAt,
		Messages:    msgs,
		Topic:       c.topic,
		BotPosition: c.botPosition,
		Personality: string(c.personality),
		MaxHistory:  c.maxHistory,
		Version:     c.version,
	}
}

// RestoreConversation rebuilds a Conversation from a snapshot. Messages are
// re-validated; the history limit is re-applied in case max_history shrank.
func RestoreConversation(s ConversationSnapshot) (*Conversation, error) {
	id, err := ParseConversationID(s.ID)
	if err != nil {
		return nil, WrapOp("RestoreConversation", err)
	}
	c, err := NewConversation(id, s.CreatedAt, s.MaxHistory)
	if err != nil {
		return nil, WrapOp("RestoreConversation", err)
	}
	c.messages = make([]Message, 0, len(s.Messages))
	for _, ms := range s.Messages {
		m, err := NewMessage(ms.Role, ms.Text, ms.Timestamp)
		if err != nil {
			return nil, WrapOp("RestoreConversation", err)
		}
		c.messages = append(c.messages, m)
	}
	c.trim()
	c.topic = s.Topic
	c.botPosition = s.BotPosition
	c.personality = PersonalityType(s.Personality)
	c.version = s.Version
	if !s.UpdatedAt.IsZero() {
		c.updatedAt = s.UpdatedAt
	}
	return c, nil
}
