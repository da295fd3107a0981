// Package handlers contains the HTTP handlers of the public and admin
// surfaces.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/ogrenci-destek/destekai/internal/api"
	"github.com/ogrenci-destek/destekai/internal/domain"
)

// Request body limits, matching the chat UI.
const (
	maxSessionIDLen = 64
	maxMessageLen   = 2000
)

type ChatService interface {
	HandleMessage(ctx context.Context, sessionID, text string) (*domain.RoutingDecision, error)
	History(ctx context.Context, sessionID string, afterID int64) ([]*domain.Message, error)
	Categories() []string
}

type ChatHandler struct {
	svc ChatService
}

func NewChatHandler(svc ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

type ChatMessageRequest struct {
	SessionID string `json:"session_id"`
	Text      string `json:"text"`
}

type ChatMessageResponse struct {
	ReplyText  string  `json:"reply_text"`
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
	TicketID   string  `json:"ticket_id,omitempty"`
}

type MessageResponse struct {
	ID         int64    `json:"id"`
	Role       string   `json:"role"`
	Text       string   `json:"text"`
	Category   string   `json:"category,omitempty"`
	Confidence *float64 `json:"confidence,omitempty"`
	CreatedAt  string   `json:"created_at"`
}

func messageToResponse(m *domain.Message) *MessageResponse {
	return &MessageResponse{
		ID:         m.ID,
		Role:       m.Role,
		Text:       m.Text,
		Category:   m.Category,
		Confidence: m.Confidence,
		CreatedAt:  m.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (h *ChatHandler) Message(w http.ResponseWriter, r *http.Request) {
	var req ChatMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.SessionID == "" || len(req.SessionID) > maxSessionIDLen {
		api.Error(w, http.StatusBadRequest, "session_id is required")
		return
	}
	if req.Text == "" || len([]rune(req.Text)) > maxMessageLen {
		api.Error(w, http.StatusBadRequest, "text must be between 1 and 2000 characters")
		return
	}

	decision, err := h.svc.HandleMessage(r.Context(), req.SessionID, req.Text)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, &ChatMessageResponse{
		ReplyText:  decision.ReplyText,
		Category:   decision.Category,
		Confidence: decision.Confidence,
		TicketID:   decision.TicketRef,
	})
}

func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		api.Error(w, http.StatusBadRequest, "session_id is required")
		return
	}

	var afterID int64
	if raw := r.URL.Query().Get("after_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			api.Error(w, http.StatusBadRequest, "after_id must be a non-negative integer")
			return
		}
		afterID = parsed
	}

	messages, err := h.svc.History(r.Context(), sessionID, afterID)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	out := make([]*MessageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, messageToResponse(m))
	}
	api.Success(w, http.StatusOK, out)
}

func (h *ChatHandler) Categories(w http.ResponseWriter, r *http.Request) {
	api.Success(w, http.StatusOK, h.svc.Categories())
}
