// Package debatev1 holds the hand-written debatebot.v1 service definition.
// Messages travel as JSON through a registered "json" codec, so no protoc
// step is needed.
package debatev1

// Message is one entry of a conversation.
type Message struct {
	Role    string `json:"role"`
	Message string `json:"message"`
}

// ChatRequest runs one debate turn. An empty ConversationId starts a new
// conversation.
type ChatRequest struct {
	ConversationId string `json:"conversation_id,omitempty"`
	Message        string `json:"message"`
	Personality    string `json:"personality,omitempty"`
}

// ChatResponse carries the bounded history after the turn.
type ChatResponse struct {
	ConversationId string     `json:"conversation_id"`
	Messages       []*Message `json:"message"`
}

// GetConversationRequest names a stored conversation.
type GetConversationRequest struct {
	ConversationId string `json:"conversation_id"`
}

// Conversation is a read-only summary of a stored conversation.
type Conversation struct {
	ConversationId string     `json:"conversation_id"`
	Topic          string     `json:"topic,omitempty"`
	BotPosition    string     `json:"bot_position,omitempty"`
	Personality    string     `json:"bot_personality,omitempty"`
	MessageCount   int32      `json:"message_count"`
	ExchangeCount  int32      `json:"exchange_count"`
	CreatedAtUnix  int64      `json:"created_at_unix"`
	UpdatedAtUnix  int64      `json:"updated_at_unix"`
	Messages       []*Message `json:"message"`
}
