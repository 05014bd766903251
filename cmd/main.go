package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Netflix/go-env"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"

	"chat-secure/domain"
	"chat-secure/encryption"
	"chat-secure/presence"
	"chat-secure/seed"
	"chat-secure/services"
	"chat-secure/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components and drives a scripted demo session.
// Errors bubble up here instead of os.Exit so deferred cleanup always runs
// and the wiring stays testable.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Session crypto
	suite, err := encryption.SuiteFromString(config.CipherSuite)
	if err != nil {
		return err
	}
	cipher, err := encryption.NewCipher(suite)
	if err != nil {
		return err
	}
	keys := encryption.NewKeyManager()

	// 3. Presence, store, service
	tracker := presence.NewTracker(log, config.TypingClearInterval)
	stamper := store.SystemStamper{}
	provider := seed.NewProvider(keys, cipher, stamper)

	conversations := store.NewConversationStore(log, keys, cipher, tracker, stamper, provider.LocalUser())
	if config.SeedDemoData {
		seeded, err := provider.Conversations()
		if err != nil {
			return fmt.Errorf("seeding demo data: %w", err)
		}
		if err := conversations.Load(seeded); err != nil {
			return fmt.Errorf("loading seed data: %w", err)
		}
	}
	chat := services.NewChatService(log, conversations, consoleNotifier{})

	// 4. Scripted session
	ctx := context.Background()
	snapshot := chat.Snapshot()
	if len(snapshot.Conversations) > 0 {
		first := snapshot.Conversations[0].ID
		if err := chat.SetActiveConversation(&first); err != nil {
			return err
		}
		if _, err := chat.SendMessage(ctx, "Hello from the terminal client!", nil); err != nil {
			return err
		}
	}

	// 5. Typing indicator demo
	chat.SetUserTyping("1", true)
	color.Info.Println("Alex Johnson is typing...")
	time.Sleep(config.TypingClearInterval + 100*time.Millisecond)
	if len(chat.Snapshot().TypingUsers) == 0 {
		color.Info.Println("Typing indicator cleared")
	}

	printConversations(chat)
	return nil
}

func printConversations(chat services.IChatService) {
	snapshot := chat.Snapshot()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Conversation", "Participants", "Messages", "Encrypted", "Last Message"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	for _, conv := range snapshot.Conversations {
		preview := ""
		if conv.LastMessage != nil {
			plaintext, err := chat.DecryptMessage(conv.ID, conv.LastMessage.ID)
			if err == nil {
				preview = string(plaintext)
			}
		}
		table.Append([]string{
			conversationLabel(conv),
			participantNames(conv.Participants),
			fmt.Sprintf("%d", len(conv.Messages)),
			fmt.Sprintf("%t", conv.EncryptionKey != ""),
			preview,
		})
	}
	table.Render()
}

func conversationLabel(conv store.ConversationSnapshot) string {
	if conv.IsGroupChat {
		return conv.Name
	}
	for _, p := range conv.Participants {
		if p.ID != "current-user" {
			return p.Name + " " + statusBadge(p.Status)
		}
	}
	return string(conv.ID)
}

func participantNames(users []domain.User) string {
	names := make([]string, 0, len(users))
	for _, u := range users {
		names = append(names, u.Name)
	}
	return strings.Join(names, ", ")
}

func statusBadge(status domain.Status) string {
	switch status {
	case domain.StatusOnline:
		return color.Green.Sprint("●")
	case domain.StatusAway:
		return color.Yellow.Sprint("●")
	default:
		return color.Gray.Sprint("●")
	}
}
