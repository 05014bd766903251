package errors

import "fmt"

var (
	ErrKeyFormat             = fmt.Errorf("invalid key format")
	ErrMalformedCiphertext   = fmt.Errorf("malformed ciphertext")
	ErrAuthentication        = fmt.Errorf("ciphertext authentication failed")
	ErrUnknownCipherSuite    = fmt.Errorf("unknown cipher suite")
	ErrConversationNotFound  = fmt.Errorf("conversation not found")
	ErrNotEnoughParticipants = fmt.Errorf("a conversation needs at least two participants")
	ErrGroupNameRequired     = fmt.Errorf("a group chat requires a name")
	ErrStoreAlreadySeeded    = fmt.Errorf("store already contains conversations")
)
