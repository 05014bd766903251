package domain

type ConversationID string

// Conversation owns an append-only message log. Messages are never
// reordered, rewritten, or deleted; Append is the only mutation and it
// keeps the lastMessage cache equal to the final log entry.
type Conversation struct {
	ID            ConversationID
	Participants  []User
	IsGroupChat   bool
	Name          string
	EncryptionKey string

	messages    []Message
	lastMessage *Message
}

func NewConversation(id ConversationID, participants []User, isGroup bool, name, encryptionKey string) *Conversation {
	return &Conversation{
		ID:            id,
		Participants:  participants,
		IsGroupChat:   isGroup,
		Name:          name,
		EncryptionKey: encryptionKey,
	}
}

func (c *Conversation) Append(message Message) {
	c.messages = append(c.messages, message)
	c.lastMessage = &c.messages[len(c.messages)-1]
}

// Messages returns a copy of the log; callers cannot mutate the original.
func (c *Conversation) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// LastMessage returns a copy of the final log entry, or nil when the log
// is empty.
func (c *Conversation) LastMessage() *Message {
	if c.lastMessage == nil {
		return nil
	}
	last := *c.lastMessage
	return &last
}

func (c *Conversation) Len() int {
	return len(c.messages)
}

// IsEncrypted reports whether the conversation carries a session key.
func (c *Conversation) IsEncrypted() bool {
	return c.EncryptionKey != ""
}

// FindMessage returns a copy of the message with the given id.
func (c *Conversation) FindMessage(messageID string) (Message, bool) {
	for _, m := range c.messages {
		if m.ID == messageID {
			return m, true
		}
	}
	return Message{}, false
}
