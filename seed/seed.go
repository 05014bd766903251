// Package seed populates the store once at startup with demo identities
// and encrypted conversation history. It is an external data loader as
// far as the core is concerned; nothing here runs after boot.
package seed

import (
	"fmt"
	"strings"
	"time"

	"chat-secure/contract"
	"chat-secure/domain"
)

// pngMagic is enough for content sniffing to classify the demo image.
var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

type Provider struct {
	keys    contract.KeyManager
	cipher  contract.Cipher
	stamper contract.Stamper
}

func NewProvider(keys contract.KeyManager, cipher contract.Cipher, stamper contract.Stamper) *Provider {
	return &Provider{keys: keys, cipher: cipher, stamper: stamper}
}

// LocalUser is the identity that authors outgoing messages in the demo.
func (p *Provider) LocalUser() domain.User {
	return domain.User{
		ID:        "current-user",
		Name:      "You",
		Avatar:    "https://ui-avatars.com/api/?name=You&background=0D8ABC&color=fff",
		Status:    domain.StatusOnline,
		PublicKey: "demo-public-key-current-user",
	}
}

// Users returns the demo peer identities.
func (p *Provider) Users() []domain.User {
	now := p.stamper.Now()
	hourAgo := now.Add(-time.Hour)
	halfHourAgo := now.Add(-30 * time.Minute)
	dayAgo := now.Add(-24 * time.Hour)

	return []domain.User{
		{ID: "1", Name: "Alex Johnson", Avatar: avatarFor("Alex Johnson"), Status: domain.StatusOnline, LastSeen: &now, PublicKey: "demo-public-key-1"},
		{ID: "2", Name: "Taylor Smith", Avatar: avatarFor("Taylor Smith"), Status: domain.StatusOffline, LastSeen: &hourAgo, PublicKey: "demo-public-key-2"},
		{ID: "3", Name: "Jordan Lee", Avatar: avatarFor("Jordan Lee"), Status: domain.StatusAway, LastSeen: &halfHourAgo, PublicKey: "demo-public-key-3"},
		{ID: "4", Name: "Casey Williams", Avatar: avatarFor("Casey Williams"), Status: domain.StatusOnline, PublicKey: "demo-public-key-4"},
		{ID: "5", Name: "Riley Parker", Avatar: avatarFor("Riley Parker"), Status: domain.StatusOffline, LastSeen: &dayAgo, PublicKey: "demo-public-key-5"},
	}
}

// Conversations builds one encrypted one-to-one thread per peer plus a
// group chat. Every seeded body is genuinely sealed with the
// conversation's own session key, so the read path exercises real
// decryption from the first render.
func (p *Provider) Conversations() ([]*domain.Conversation, error) {
	local := p.LocalUser()
	peers := p.Users()

	var conversations []*domain.Conversation
	for _, peer := range peers {
		conv, err := p.directConversation(local, peer)
		if err != nil {
			return nil, err
		}
		conversations = append(conversations, conv)
	}

	group, err := p.groupConversation(local, peers[:3])
	if err != nil {
		return nil, err
	}
	return append(conversations, group), nil
}

func (p *Provider) directConversation(local, peer domain.User) (*domain.Conversation, error) {
	token, err := p.keys.GenerateSessionToken()
	if err != nil {
		return nil, fmt.Errorf("seeding key for %s: %w", peer.ID, err)
	}

	conv := domain.NewConversation(
		domain.ConversationID(p.stamper.NewID()),
		[]domain.User{local, peer}, false, "", token,
	)

	base := p.stamper.Now().Add(-24 * time.Hour)
	history := []struct {
		sender domain.UserID
		body   string
	}{
		{peer.ID, "Hey there! How's it going?"},
		{local.ID, "Hi! I'm doing well, thanks for asking."},
		{peer.ID, "Have you tried the new secure messaging feature?"},
		{local.ID, "Yes, I love how everything is end-to-end encrypted!"},
	}
	for i, entry := range history {
		if err := p.appendSealed(conv, entry.sender, entry.body, base.Add(time.Duration(i)*5*time.Minute), nil); err != nil {
			return nil, err
		}
	}

	// Alex's thread carries the attachment samples.
	if peer.ID == "1" {
		attachments := []domain.Attachment{
			{
				ID:   p.stamper.NewID(),
				Kind: AttachmentKindOf(pngMagic),
				URL:  "https://images.unsplash.com/photo-1588345921523-c2dcdb7f1dcd?w=800&q=80",
				Name: "secure-image.jpg",
				Size: 245000,
			},
			{
				ID:   p.stamper.NewID(),
				Kind: AttachmentKindOf([]byte("%minutes of the meeting%")),
				URL:  "https://example.com/files/meeting-notes.pdf",
				Name: "meeting-notes.pdf",
				Size: 125000,
			},
		}
		if err := p.appendSealed(conv, peer.ID, "Check out this secure file sharing:", base.Add(20*time.Minute), attachments); err != nil {
			return nil, err
		}
	}
	return conv, nil
}

func (p *Provider) groupConversation(local domain.User, peers []domain.User) (*domain.Conversation, error) {
	token, err := p.keys.GenerateSessionToken()
	if err != nil {
		return nil, fmt.Errorf("seeding group key: %w", err)
	}

	conv := domain.NewConversation(
		domain.ConversationID(p.stamper.NewID()),
		append([]domain.User{local}, peers...), true, "Project Team", token,
	)

	base := p.stamper.Now().Add(-12 * time.Hour)
	history := []struct {
		sender domain.UserID
		body   string
	}{
		{peers[0].ID, "Welcome to our secure group chat!"},
		{peers[1].ID, "Glad the whole thread is encrypted."},
		{local.ID, "Let's keep all project discussion in here."},
	}
	for i, entry := range history {
		if err := p.appendSealed(conv, entry.sender, entry.body, base.Add(time.Duration(i)*10*time.Minute), nil); err != nil {
			return nil, err
		}
	}
	return conv, nil
}

func (p *Provider) appendSealed(conv *domain.Conversation, sender domain.UserID, body string, at time.Time, attachments []domain.Attachment) error {
	key, err := p.keys.Import(conv.EncryptionKey)
	if err != nil {
		return fmt.Errorf("importing seed key: %w", err)
	}
	sealed, err := p.cipher.Encrypt([]byte(body), key)
	if err != nil {
		return fmt.Errorf("sealing seed message: %w", err)
	}
	conv.Append(domain.Message{
		ID:          p.stamper.NewID(),
		SenderID:    sender,
		Content:     sealed,
		CreatedAt:   at,
		IsEncrypted: true,
		IsRead:      true,
		Attachments: attachments,
	})
	return nil
}

func avatarFor(name string) string {
	return "https://ui-avatars.com/api/?name=" + strings.ReplaceAll(name, " ", "+") + "&background=0D8ABC&color=fff"
}
