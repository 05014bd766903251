// Package domain contains core concepts of the messaging system.
// This file defines Message events and attachments.
// Messages are immutable once appended to a conversation log.
package domain

import "time"

// Message represents one entry of a conversation log.
// When IsEncrypted is true, Content holds the base64 AEAD envelope
// produced by the encryption package, never the plaintext.
type Message struct {
	ID          string
	SenderID    UserID
	Content     string
	CreatedAt   time.Time
	IsEncrypted bool
	IsRead      bool
	Attachments []Attachment
}

// AttachmentKind is a closed set; rendering switches over it exhaustively.
type AttachmentKind string

const (
	AttachmentImage AttachmentKind = "image"
	AttachmentFile  AttachmentKind = "file"
)

// Attachment is an immutable reference to shared content.
type Attachment struct {
	ID   string
	Kind AttachmentKind
	URL  string
	Name string
	Size int64
}
