package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConversation_AppendKeepsLastMessageInSync(t *testing.T) {
	req := require.New(t)
	conv := NewConversation("c1", []User{{ID: "a"}, {ID: "b"}}, false, "", "key")

	req.Nil(conv.LastMessage())
	req.Zero(conv.Len())

	first := Message{ID: "m1", SenderID: "a", Content: "hello", CreatedAt: time.Now()}
	conv.Append(first)
	req.Equal(1, conv.Len())
	req.Equal(first, *conv.LastMessage())

	second := Message{ID: "m2", SenderID: "b", Content: "hi", CreatedAt: time.Now()}
	conv.Append(second)
	req.Equal(2, conv.Len())
	req.Equal(second, *conv.LastMessage())
	req.Equal(first, conv.Messages()[0])
}

func TestConversation_MessagesReturnsACopy(t *testing.T) {
	req := require.New(t)
	conv := NewConversation("c1", []User{{ID: "a"}, {ID: "b"}}, false, "", "")
	conv.Append(Message{ID: "m1", SenderID: "a", Content: "original"})

	leaked := conv.Messages()
	leaked[0].Content = "tampered"

	req.Equal("original", conv.Messages()[0].Content)
}

func TestConversation_FindMessage(t *testing.T) {
	req := require.New(t)
	conv := NewConversation("c1", []User{{ID: "a"}, {ID: "b"}}, false, "", "")
	conv.Append(Message{ID: "m1", SenderID: "a"})

	found, ok := conv.FindMessage("m1")
	req.True(ok)
	req.Equal("m1", found.ID)

	_, ok = conv.FindMessage("m2")
	req.False(ok)
}

func TestConversation_IsEncrypted(t *testing.T) {
	req := require.New(t)
	req.True(NewConversation("c1", nil, false, "", "key-material").IsEncrypted())
	req.False(NewConversation("c2", nil, false, "", "").IsEncrypted())
}
