package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/ogrenci-destek/destekai/internal/domain"
	"github.com/ogrenci-destek/destekai/internal/pagination"
	"github.com/ogrenci-destek/destekai/internal/telemetry"
)

// maxAdminNoteLen bounds the admin note length.
const maxAdminNoteLen = 2000

// TicketPageResult is one page of tickets.
type TicketPageResult struct {
	Items      []*domain.Ticket
	NextCursor string
	HasMore    bool
}

// TicketStats summarizes the ticket backlog.
type TicketStats struct {
	Total      int                         `json:"total_tickets"`
	ByStatus   map[domain.TicketStatus]int `json:"by_status"`
	ByCategory map[string]int              `json:"by_category"`
}

// TicketUpdate carries a partial ticket update; nil fields are untouched.
type TicketUpdate struct {
	Status    *domain.TicketStatus
	AdminNote *string
}

// TicketAdminRepositoryInterface defines the ticket operations of the
// admin surface.
type TicketAdminRepositoryInterface interface {
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	ListWithCursor(ctx context.Context, status domain.TicketStatus, cursor *pagination.Cursor, limit int) (*TicketPageResult, error)
	Update(ctx context.Context, ticket *domain.Ticket) error
	Stats(ctx context.Context) (*TicketStats, error)
}

// TicketService is the admin side of ticket handling: listing, status and
// note updates, and backlog stats. Updates that change anything also post a
// bot message into the ticket's session so the student sees the update in
// the chat.
type TicketService struct {
	tickets  TicketAdminRepositoryInterface
	messages MessageRepositoryInterface
}

func NewTicketService(tickets TicketAdminRepositoryInterface, messages MessageRepositoryInterface) *TicketService {
	return &TicketService{tickets: tickets, messages: messages}
}

// List returns one page of tickets, newest first, optionally filtered by
// status. An empty status means no filter.
func (s *TicketService) List(ctx context.Context, status domain.TicketStatus, cursor *pagination.Cursor, limit int) (*TicketPageResult, error) {
	if status != "" && !domain.IsValidTicketStatus(status) {
		return nil, domain.ErrInvalidTicketStatus
	}
	return s.tickets.ListWithCursor(ctx, status, cursor, limit)
}

// Get returns one ticket by numeric id.
func (s *TicketService) Get(ctx context.Context, id int64) (*domain.Ticket, error) {
	return s.tickets.GetByID(ctx, id)
}

// Update applies a partial update and notifies the student's session when
// the status or the note actually changed.
func (s *TicketService) Update(ctx context.Context, id int64, upd TicketUpdate) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ctx, span := telemetry.StartSpan(ctx, "ticket.update", telemetry.SpanAttributes{
		SessionID: ticket.SessionID,
		TicketRef: ticket.Reference(),
		Operation: "update",
	})
	defer span.End()

	var statusChanged, noteChanged bool
	if upd.Status != nil {
		if !domain.IsValidTicketStatus(*upd.Status) {
			return nil, domain.ErrInvalidTicketStatus
		}
		statusChanged = *upd.Status != ticket.Status
		ticket.Status = *upd.Status
	}
	if upd.AdminNote != nil {
		note := strings.TrimSpace(*upd.AdminNote)
		if len([]rune(note)) > maxAdminNoteLen {
			return nil, domain.NewDomainError(domain.ErrCodeValidation, "admin note too long")
		}
		noteChanged = note != ticket.AdminNote
		ticket.AdminNote = note
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}

	if statusChanged || noteChanged {
		if err := s.messages.Create(ctx, &domain.Message{
			SessionID: ticket.SessionID,
			Role:      domain.RoleBot,
			Text:      updateNotification(ticket, statusChanged, noteChanged),
			Category:  ticket.PredictedCategory,
		}); err != nil {
			return nil, err
		}
	}

	return ticket, nil
}

// Stats returns the ticket backlog summary.
func (s *TicketService) Stats(ctx context.Context) (*TicketStats, error) {
	return s.tickets.Stats(ctx)
}

func updateNotification(ticket *domain.Ticket, statusChanged, noteChanged bool) string {
	parts := []string{fmt.Sprintf("📋 Talep güncellendi – %s", ticket.Reference())}
	if statusChanged {
		parts = append(parts, fmt.Sprintf("Yeni durum: %s", ticket.Status))
	}
	if noteChanged && ticket.AdminNote != "" {
		parts = append(parts, fmt.Sprintf("Admin notu: %s", ticket.AdminNote))
	}
	return strings.Join(parts, "\n")
}
