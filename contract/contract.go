//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"time"

	"chat-secure/domain/event"
	"chat-secure/encryption"
)

// EventSink receives domain events emitted by the store and the presence
// tracker. Delivery is synchronous and best-effort: sinks are for
// observation (UI refresh, logs, metrics), not for domain logic.
type EventSink interface {
	Consume(e event.DomainEvent)
}

// KeyManager owns session key material and its exported string form.
type KeyManager interface {
	Generate() (encryption.Key, error)
	Export(key encryption.Key) string
	Import(encoded string) (encryption.Key, error)
	GenerateSessionToken() (string, error)
}

// Cipher seals and opens message bodies with a session key.
type Cipher interface {
	Encrypt(plaintext []byte, key encryption.Key) (string, error)
	Decrypt(encoded string, key encryption.Key) ([]byte, error)
}

// Notifier surfaces user-visible notifications (the toast equivalent).
// Failures inside the core are reported here instead of crashing.
type Notifier interface {
	Notify(message string)
}

// Stamper provides unique ids and timestamps for new messages and
// conversations. Injected so tests control both.
type Stamper interface {
	NewID() string
	Now() time.Time
}
