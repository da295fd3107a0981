package domain

import (
	"fmt"
	"time"
)

// Message roles
const (
	RoleUser = "user"
	RoleBot  = "bot"
)

// BelgeCategory is the sentinel category reported for replies grounded in
// the knowledge base or produced by a keyword override, as opposed to a
// category predicted by the classifier.
const BelgeCategory = "Belge"

// TicketRefPrefix prefixes the numeric ticket id in user-facing references,
// e.g. "TCK-42".
const TicketRefPrefix = "TCK"

// TicketStatus represents the lifecycle state of a support ticket
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "Açık"
	TicketStatusInProgress TicketStatus = "İşlemde"
	TicketStatusResolved   TicketStatus = "Çözüldü"
)

// IsValidTicketStatus reports whether s is a known ticket status.
func IsValidTicketStatus(s TicketStatus) bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved:
		return true
	}
	return false
}

// UserSession identifies one chat session. Session ids are chosen by the
// client (browser-generated) and created on first message.
type UserSession struct {
	ID        string
	CreatedAt time.Time
}

// Message is a single chat message, either from the student or the bot.
// Category and Confidence hold the classifier prediction for user messages
// and the routing outcome for bot messages; both may be absent.
type Message struct {
	ID         int64
	SessionID  string
	Role       string
	Text       string
	Category   string
	Confidence *float64
	CreatedAt  time.Time
}

// Ticket is an escalation record for a message the system could not
// confidently answer automatically.
type Ticket struct {
	ID                int64
	SessionID         string
	OriginalText      string
	PredictedCategory string
	Confidence        *float64
	Status            TicketStatus
	AdminNote         string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Reference returns the user-facing ticket reference, e.g. "TCK-7".
func (t *Ticket) Reference() string {
	return fmt.Sprintf("%s-%d", TicketRefPrefix, t.ID)
}

// RoutingDecision is the terminal output of routing one incoming message.
// TicketRef is empty unless the message was escalated.
type RoutingDecision struct {
	ReplyText  string
	Category   string
	Confidence float64
	TicketRef  string
}
