package store

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"chat-secure/domain"
	"chat-secure/errors"
)

// ConversationSnapshot is a deep copy of one conversation's observable
// state. Mutating a snapshot never affects the store.
type ConversationSnapshot struct {
	ID            domain.ConversationID
	Participants  []domain.User
	IsGroupChat   bool
	Name          string
	EncryptionKey string
	Messages      []domain.Message
	LastMessage   *domain.Message
}

// Snapshot is the full read surface exposed to collaborators.
type Snapshot struct {
	Conversations      []ConversationSnapshot
	ActiveConversation *ConversationSnapshot
	TypingUsers        []domain.UserID
	Version            uint64
}

// Snapshot returns an immutable copy of the conversation collection, the
// active selection, and the current typing set.
func (s *ConversationStore) Snapshot() Snapshot {
	s.mu.Lock()
	conversations := lo.Map(s.order, func(id domain.ConversationID, _ int) ConversationSnapshot {
		return snapshotConversation(s.conversations[id])
	})
	var active *ConversationSnapshot
	if s.activeID != nil {
		if conv, ok := s.conversations[*s.activeID]; ok {
			snap := snapshotConversation(conv)
			active = &snap
		}
	}
	version := s.version
	s.mu.Unlock()

	return Snapshot{
		Conversations:      conversations,
		ActiveConversation: active,
		TypingUsers:        s.presence.TypingUserIDs(),
		Version:            version,
	}
}

// ConversationByID returns a deep copy of a single conversation.
func (s *ConversationStore) ConversationByID(id domain.ConversationID) (*ConversationSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.conversations[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errors.ErrConversationNotFound, id)
	}
	snap := snapshotConversation(conv)
	return &snap, nil
}

func snapshotConversation(conv *domain.Conversation) ConversationSnapshot {
	participants := make([]domain.User, len(conv.Participants))
	copy(participants, conv.Participants)
	return ConversationSnapshot{
		ID:            conv.ID,
		Participants:  participants,
		IsGroupChat:   conv.IsGroupChat,
		Name:          conv.Name,
		EncryptionKey: conv.EncryptionKey,
		Messages:      conv.Messages(),
		LastMessage:   conv.LastMessage(),
	}
}

func newUUID() string {
	return uuid.NewString()
}
