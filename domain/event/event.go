package event

import (
	"chat-secure/domain"
	"time"
)

type DomainEvent interface {
	Name() string
	OccurredAt() time.Time
}

type ConversationCreated struct {
	Conversation domain.ConversationID
	IsGroupChat  bool
	At           time.Time
}

func (e ConversationCreated) Name() string          { return "ConversationCreated" }
func (e ConversationCreated) OccurredAt() time.Time { return e.At }

type MessagePosted struct {
	Conversation domain.ConversationID
	MessageID    string
	Sender       domain.UserID
	Encrypted    bool
	At           time.Time
}

func (e MessagePosted) Name() string          { return "MessagePosted" }
func (e MessagePosted) OccurredAt() time.Time { return e.At }

// ActiveConversationChanged carries a nil Conversation when the selection
// was cleared.
type ActiveConversationChanged struct {
	Conversation *domain.ConversationID
	At           time.Time
}

func (e ActiveConversationChanged) Name() string          { return "ActiveConversationChanged" }
func (e ActiveConversationChanged) OccurredAt() time.Time { return e.At }

type TypingChanged struct {
	User     domain.UserID
	IsTyping bool
	At       time.Time
}

func (e TypingChanged) Name() string          { return "TypingChanged" }
func (e TypingChanged) OccurredAt() time.Time { return e.At }
