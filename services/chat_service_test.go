package services

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"chat-secure/domain"
	"chat-secure/encryption"
	apperrors "chat-secure/errors"
	"chat-secure/mocks"
	"chat-secure/presence"
	"chat-secure/store"
)

var (
	localUser = domain.User{ID: "current-user", Name: "You", Status: domain.StatusOnline}
	peerUser  = domain.User{ID: "1", Name: "Alex Johnson", Status: domain.StatusOnline}
)

func newService(t *testing.T, notifier *mocks.MockNotifier) (*ChatService, *store.ConversationStore) {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	cipher, err := encryption.NewCipher(encryption.SuiteAESGCM)
	require.NoError(t, err)
	tracker := presence.NewTracker(log, time.Minute)
	conversations := store.NewConversationStore(log, encryption.NewKeyManager(), cipher, tracker, store.SystemStamper{}, localUser)
	return NewChatService(log, conversations, notifier), conversations
}

func TestChatService_SendMessage_HappyPath(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	notifier := mocks.NewMockNotifier(ctrl)
	// No Notify expectations: success paths stay silent.
	service, _ := newService(t, notifier)

	snap, err := service.CreateConversation([]domain.User{localUser, peerUser}, false, "")
	req.NoError(err)
	req.NoError(service.SetActiveConversation(&snap.ID))

	message, err := service.SendMessage(context.Background(), "hello", nil)
	req.NoError(err)
	req.NotNil(message)
	req.True(message.IsEncrypted)

	plaintext, err := service.DecryptMessage(snap.ID, message.ID)
	req.NoError(err)
	req.Equal("hello", string(plaintext))
}

func TestChatService_SendMessage_NoActiveConversationStaysSilent(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	notifier := mocks.NewMockNotifier(ctrl)
	service, _ := newService(t, notifier)

	// The documented no-op: no message, no error, no notification.
	message, err := service.SendMessage(context.Background(), "nobody listening", nil)
	req.NoError(err)
	req.Nil(message)
}

func TestChatService_SendMessage_CryptoFailureIsNotified(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	cipher, err := encryption.NewCipher(encryption.SuiteAESGCM)
	req.NoError(err)
	tracker := presence.NewTracker(log, time.Minute)

	keys := mocks.NewMockKeyManager(ctrl)
	keys.EXPECT().GenerateSessionToken().Return("broken-token", nil)
	keys.EXPECT().Import("broken-token").Return(nil, apperrors.ErrKeyFormat)

	notifier := mocks.NewMockNotifier(ctrl)
	notifier.EXPECT().Notify("Failed to send message")

	conversations := store.NewConversationStore(log, keys, cipher, tracker, store.SystemStamper{}, localUser)
	service := NewChatService(log, conversations, notifier)

	snap, err := conversations.CreateConversation([]domain.User{localUser, peerUser}, false, "")
	req.NoError(err)
	req.NoError(service.SetActiveConversation(&snap.ID))

	_, err = service.SendMessage(context.Background(), "doomed", nil)
	req.ErrorIs(err, apperrors.ErrKeyFormat)

	// The failed send never reached the log.
	fresh, err := conversations.ConversationByID(snap.ID)
	req.NoError(err)
	req.Empty(fresh.Messages)
}

func TestChatService_CreateConversation_ValidationFailureIsNotified(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	notifier := mocks.NewMockNotifier(ctrl)
	notifier.EXPECT().Notify("Failed to create conversation")
	service, _ := newService(t, notifier)

	_, err := service.CreateConversation([]domain.User{localUser}, false, "")
	req.ErrorIs(err, apperrors.ErrNotEnoughParticipants)
}

func TestChatService_DecryptMessage_FailureIsNotified(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	notifier := mocks.NewMockNotifier(ctrl)
	notifier.EXPECT().Notify("Failed to decrypt message")
	service, _ := newService(t, notifier)

	_, err := service.DecryptMessage("missing", "missing")
	req.ErrorIs(err, apperrors.ErrConversationNotFound)
}

func TestChatService_SetUserTyping_ReachesSnapshot(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	notifier := mocks.NewMockNotifier(ctrl)
	service, _ := newService(t, notifier)

	service.SetUserTyping(peerUser.ID, true)
	req.Equal([]domain.UserID{peerUser.ID}, service.Snapshot().TypingUsers)

	service.SetUserTyping(peerUser.ID, false)
	req.Empty(service.Snapshot().TypingUsers)
}
