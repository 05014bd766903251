// Package domain contains core concepts of the messaging system.
// This file defines User identities and their presence status.
// No runtime, crypto, or UI logic should be added here.
package domain

import "time"

type UserID string

// Status is the coarse availability of a user.
type Status string

const (
	StatusOnline  Status = "online"
	StatusOffline Status = "offline"
	StatusAway    Status = "away"
)

// User is an immutable identity for the lifetime of a session.
// PublicKey is carried as data only; the session crypto never reads it.
type User struct {
	ID        UserID
	Name      string
	Avatar    string
	Status    Status
	LastSeen  *time.Time
	PublicKey string
}
