// Package store owns the conversation collection: the append-only message
// logs, the active-conversation selection, and the orchestration of the
// session crypto when a message is sent. It is the single writer for all
// conversation state.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"chat-secure/contract"
	"chat-secure/domain"
	"chat-secure/domain/event"
	"chat-secure/errors"
	"chat-secure/presence"
)

type ConversationStore struct {
	mu        sync.Mutex
	log       *slog.Logger
	keys      contract.KeyManager
	cipher    contract.Cipher
	presence  *presence.Tracker
	stamper   contract.Stamper
	localUser domain.User

	conversations map[domain.ConversationID]*domain.Conversation
	order         []domain.ConversationID
	activeID      *domain.ConversationID
	sinks         []contract.EventSink
	version       uint64
}

func NewConversationStore(log *slog.Logger, keys contract.KeyManager, cipher contract.Cipher,
	tracker *presence.Tracker, stamper contract.Stamper, localUser domain.User) *ConversationStore {
	if stamper == nil {
		stamper = SystemStamper{}
	}
	return &ConversationStore{
		log:           log,
		keys:          keys,
		cipher:        cipher,
		presence:      tracker,
		stamper:       stamper,
		localUser:     localUser,
		conversations: make(map[domain.ConversationID]*domain.Conversation),
	}
}

// AddSink registers an observer for store events. Sinks replace the
// source-of-truth-by-re-render pattern: consumers react to events and read
// fresh snapshots instead of relying on reference identity.
func (s *ConversationStore) AddSink(sinks ...contract.EventSink) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sinks = append(s.sinks, sinks...)
}

// LocalUser returns the identity that authors outgoing messages.
func (s *ConversationStore) LocalUser() domain.User {
	return s.localUser
}

// Version increases on every mutation; consumers can cheaply detect
// staleness without diffing snapshots.
func (s *ConversationStore) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// CreateConversation allocates a conversation with an empty log and a
// fresh session key stored in its exported form.
func (s *ConversationStore) CreateConversation(participants []domain.User, isGroup bool, name string) (*ConversationSnapshot, error) {
	if err := validateCreate(participants, isGroup, name); err != nil {
		return nil, err
	}

	token, err := s.keys.GenerateSessionToken()
	if err != nil {
		return nil, fmt.Errorf("creating session key: %w", err)
	}

	conv := domain.NewConversation(
		domain.ConversationID(s.stamper.NewID()),
		participants, isGroup, name, token,
	)

	s.mu.Lock()
	s.conversations[conv.ID] = conv
	s.order = append(s.order, conv.ID)
	s.version++
	sinks := s.snapshotSinks()
	s.mu.Unlock()

	s.log.Info("conversation created", "conversation", conv.ID, "group", isGroup, "participants", len(participants))
	s.emit(sinks, event.ConversationCreated{Conversation: conv.ID, IsGroupChat: isGroup, At: s.stamper.Now()})

	snap := snapshotConversation(conv)
	return &snap, nil
}

// SetActiveConversation selects which conversation the UI observes.
// A nil id clears the selection. Message logs are unaffected.
func (s *ConversationStore) SetActiveConversation(id *domain.ConversationID) error {
	s.mu.Lock()
	if id != nil {
		if _, ok := s.conversations[*id]; !ok {
			s.mu.Unlock()
			return fmt.Errorf("%w: %s", errors.ErrConversationNotFound, *id)
		}
	}
	s.activeID = id
	s.version++
	sinks := s.snapshotSinks()
	s.mu.Unlock()

	s.emit(sinks, event.ActiveConversationChanged{Conversation: id, At: s.stamper.Now()})
	return nil
}

// SendMessage appends a message to the active conversation. With no
// active selection it is a silent no-op returning (nil, nil); that policy
// mirrors optimistic UI behavior and is the only swallowed condition in
// this package.
func (s *ConversationStore) SendMessage(ctx context.Context, content string, attachments []domain.Attachment) (*domain.Message, error) {
	s.mu.Lock()
	active := s.activeID
	s.mu.Unlock()

	if active == nil {
		s.log.Debug("send skipped, no active conversation")
		return nil, nil
	}
	return s.SendMessageTo(ctx, *active, content, attachments)
}

// SendMessageTo appends a message to a specific conversation, whether or
// not it is the active selection. Deselecting mid-send does not cancel an
// in-flight message; messages are conversation-scoped, not selection-scoped.
func (s *ConversationStore) SendMessageTo(ctx context.Context, id domain.ConversationID, content string, attachments []domain.Attachment) (*domain.Message, error) {
	s.mu.Lock()
	conv, ok := s.conversations[id]
	if !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", errors.ErrConversationNotFound, id)
	}
	// Immutable after creation, safe to read outside the lock.
	token := conv.EncryptionKey
	s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	encrypted := token != ""
	body := content
	if encrypted {
		key, err := s.keys.Import(token)
		if err != nil {
			return nil, fmt.Errorf("importing session key: %w", err)
		}
		sealed, err := s.cipher.Encrypt([]byte(content), key)
		if err != nil {
			return nil, fmt.Errorf("encrypting message: %w", err)
		}
		body = sealed
	}

	message := domain.Message{
		ID:          s.stamper.NewID(),
		SenderID:    s.localUser.ID,
		Content:     body,
		CreatedAt:   s.stamper.Now(),
		IsEncrypted: encrypted,
		Attachments: copyAttachments(attachments),
	}

	// The append below is the only mutation point for a conversation log.
	// Encryption failures return above, before any state changed.
	s.mu.Lock()
	conv, ok = s.conversations[id]
	if !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", errors.ErrConversationNotFound, id)
	}
	conv.Append(message)
	s.version++
	sinks := s.snapshotSinks()
	s.mu.Unlock()

	s.log.Info("message posted", "conversation", id, "message", message.ID, "encrypted", encrypted)
	s.emit(sinks, event.MessagePosted{
		Conversation: id,
		MessageID:    message.ID,
		Sender:       message.SenderID,
		Encrypted:    encrypted,
		At:           message.CreatedAt,
	})
	return &message, nil
}

// DecryptMessage opens the stored envelope of one message with the
// conversation's session key. Plaintext messages are returned as-is.
func (s *ConversationStore) DecryptMessage(id domain.ConversationID, messageID string) ([]byte, error) {
	s.mu.Lock()
	conv, ok := s.conversations[id]
	if !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", errors.ErrConversationNotFound, id)
	}
	message, found := conv.FindMessage(messageID)
	token := conv.EncryptionKey
	s.mu.Unlock()

	if !found {
		return nil, fmt.Errorf("%w: message %s in %s", errors.ErrConversationNotFound, messageID, id)
	}
	if !message.IsEncrypted {
		return []byte(message.Content), nil
	}

	key, err := s.keys.Import(token)
	if err != nil {
		return nil, fmt.Errorf("importing session key: %w", err)
	}
	return s.cipher.Decrypt(message.Content, key)
}

// SetUserTyping forwards a keystroke signal to the presence tracker.
func (s *ConversationStore) SetUserTyping(userID domain.UserID, isTyping bool) {
	s.presence.SetTyping(userID, isTyping)
}

// TypingUserIDs exposes the presence tracker's current state.
func (s *ConversationStore) TypingUserIDs() []domain.UserID {
	return s.presence.TypingUserIDs()
}

// Load seeds the store once at startup from an external provider. It
// refuses to run on a non-empty store; after startup all writes go
// through CreateConversation and SendMessage.
func (s *ConversationStore) Load(conversations []*domain.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.conversations) > 0 {
		return errors.ErrStoreAlreadySeeded
	}
	for _, conv := range conversations {
		s.conversations[conv.ID] = conv
		s.order = append(s.order, conv.ID)
	}
	s.version++
	return nil
}

func (s *ConversationStore) snapshotSinks() []contract.EventSink {
	sinks := make([]contract.EventSink, len(s.sinks))
	copy(sinks, s.sinks)
	return sinks
}

func (s *ConversationStore) emit(sinks []contract.EventSink, e event.DomainEvent) {
	for _, sink := range sinks {
		sink.Consume(e)
	}
}

func copyAttachments(attachments []domain.Attachment) []domain.Attachment {
	if len(attachments) == 0 {
		return nil
	}
	out := make([]domain.Attachment, len(attachments))
	copy(out, attachments)
	return out
}

// SystemStamper is the production Stamper: uuid ids and wall-clock time.
type SystemStamper struct{}

func (SystemStamper) NewID() string  { return newUUID() }
func (SystemStamper) Now() time.Time { return time.Now() }
