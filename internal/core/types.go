package core

import "time"

const (
	AppName          = "Campinnova"
	AppUserAgent     = "Campinnova-Relay/0.1"
	AppRepositoryURL = "https://github.com/sandevgo/campinnova"
	AppVersion       = "0.1.0"
)

type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is one entry of a chat session. Messages are never mutated after creation.
type Message struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// Role values used on the completion wire.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is a role/content pair as sent to a completion service.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// TurnsFromMessages maps chat messages onto completion turns, oldest first.
func TurnsFromMessages(msgs []Message) []Turn {
	turns := make([]Turn, 0, len(msgs))
	for _, m := range msgs {
		role := RoleUser
		if m.Sender == SenderBot {
			role = RoleAssistant
		}
		turns = append(turns, Turn{Role: role, Content: m.Text})
	}
	return turns
}
