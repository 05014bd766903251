package services

import (
	"context"
	"log/slog"

	"chat-secure/contract"
	"chat-secure/domain"
	"chat-secure/store"
)

type IChatService interface {
	CreateConversation(participants []domain.User, isGroup bool, name string) (*store.ConversationSnapshot, error)
	SetActiveConversation(id *domain.ConversationID) error
	SendMessage(ctx context.Context, content string, attachments []domain.Attachment) (*domain.Message, error)
	SetUserTyping(userID domain.UserID, isTyping bool)
	Snapshot() store.Snapshot
	DecryptMessage(id domain.ConversationID, messageID string) ([]byte, error)
}

// ChatService is the surface presentation code talks to. It owns the
// propagation policy for failures: cryptographic and key errors abort the
// operation without mutating state, get logged, and reach the user as a
// notification instead of a crash.
type ChatService struct {
	log      *slog.Logger
	store    *store.ConversationStore
	notifier contract.Notifier
}

func NewChatService(log *slog.Logger, s *store.ConversationStore, notifier contract.Notifier) *ChatService {
	return &ChatService{log: log, store: s, notifier: notifier}
}

func (s *ChatService) CreateConversation(participants []domain.User, isGroup bool, name string) (*store.ConversationSnapshot, error) {
	snap, err := s.store.CreateConversation(participants, isGroup, name)
	if err != nil {
		s.log.Error("failed to create conversation", "error", err)
		s.notifier.Notify("Failed to create conversation")
		return nil, err
	}
	return snap, nil
}

func (s *ChatService) SetActiveConversation(id *domain.ConversationID) error {
	return s.store.SetActiveConversation(id)
}

// SendMessage forwards to the store. A nil message with a nil error means
// the documented no-active-conversation no-op; nothing is notified.
func (s *ChatService) SendMessage(ctx context.Context, content string, attachments []domain.Attachment) (*domain.Message, error) {
	message, err := s.store.SendMessage(ctx, content, attachments)
	if err != nil {
		s.log.Error("failed to send message", "error", err)
		s.notifier.Notify("Failed to send message")
		return nil, err
	}
	return message, nil
}

func (s *ChatService) SetUserTyping(userID domain.UserID, isTyping bool) {
	s.store.SetUserTyping(userID, isTyping)
}

func (s *ChatService) Snapshot() store.Snapshot {
	return s.store.Snapshot()
}

func (s *ChatService) DecryptMessage(id domain.ConversationID, messageID string) ([]byte, error) {
	plaintext, err := s.store.DecryptMessage(id, messageID)
	if err != nil {
		s.log.Error("failed to decrypt message", "conversation", id, "message", messageID, "error", err)
		s.notifier.Notify("Failed to decrypt message")
		return nil, err
	}
	return plaintext, nil
}
