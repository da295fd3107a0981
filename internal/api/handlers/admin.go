package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ogrenci-destek/destekai/internal/api"
	"github.com/ogrenci-destek/destekai/internal/domain"
	"github.com/ogrenci-destek/destekai/internal/pagination"
	"github.com/ogrenci-destek/destekai/internal/service"
)

type TicketService interface {
	List(ctx context.Context, status domain.TicketStatus, cursor *pagination.Cursor, limit int) (*service.TicketPageResult, error)
	Update(ctx context.Context, id int64, upd service.TicketUpdate) (*domain.Ticket, error)
	Stats(ctx context.Context) (*service.TicketStats, error)
}

type KnowledgeAdminService interface {
	Refresh(ctx context.Context) error
	UploadDocument(ctx context.Context, kind string, content []byte) error
	Ready() bool
	Size() int
}

type AdminHandler struct {
	tickets   TicketService
	knowledge KnowledgeAdminService
}

func NewAdminHandler(tickets TicketService, knowledge KnowledgeAdminService) *AdminHandler {
	return &AdminHandler{tickets: tickets, knowledge: knowledge}
}

type TicketResponse struct {
	ID                int64    `json:"id"`
	Ref               string   `json:"ref"`
	SessionID         string   `json:"session_id"`
	OriginalText      string   `json:"original_text"`
	PredictedCategory string   `json:"predicted_category,omitempty"`
	Confidence        *float64 `json:"confidence,omitempty"`
	Status            string   `json:"status"`
	AdminNote         string   `json:"admin_note,omitempty"`
	CreatedAt         string   `json:"created_at"`
	UpdatedAt         string   `json:"updated_at"`
}

func ticketToResponse(t *domain.Ticket) *TicketResponse {
	return &TicketResponse{
		ID:                t.ID,
		Ref:               t.Reference(),
		SessionID:         t.SessionID,
		OriginalText:      t.OriginalText,
		PredictedCategory: t.PredictedCategory,
		Confidence:        t.Confidence,
		Status:            string(t.Status),
		AdminNote:         t.AdminNote,
		CreatedAt:         t.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:         t.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

type TicketListResponse struct {
	Items      []*TicketResponse `json:"items"`
	NextCursor string            `json:"next_cursor,omitempty"`
	HasMore    bool              `json:"has_more"`
}

type UpdateTicketRequest struct {
	Status    *string `json:"status"`
	AdminNote *string `json:"admin_note"`
}

func (h *AdminHandler) ListTickets(w http.ResponseWriter, r *http.Request) {
	status := domain.TicketStatus(r.URL.Query().Get("status"))

	cursor, err := pagination.DecodeCursor(r.URL.Query().Get("cursor"))
	if err != nil {
		api.Error(w, http.StatusBadRequest, "invalid cursor")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > 100 {
			api.Error(w, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
	}

	page, err := h.tickets.List(r.Context(), status, cursor, limit)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	items := make([]*TicketResponse, 0, len(page.Items))
	for _, t := range page.Items {
		items = append(items, ticketToResponse(t))
	}
	api.Success(w, http.StatusOK, &TicketListResponse{
		Items:      items,
		NextCursor: page.NextCursor,
		HasMore:    page.HasMore,
	})
}

func (h *AdminHandler) UpdateTicket(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		api.Error(w, http.StatusBadRequest, "invalid ticket id")
		return
	}

	var req UpdateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Status == nil && req.AdminNote == nil {
		api.Error(w, http.StatusBadRequest, "nothing to update")
		return
	}

	upd := service.TicketUpdate{AdminNote: req.AdminNote}
	if req.Status != nil {
		status := domain.TicketStatus(*req.Status)
		upd.Status = &status
	}

	ticket, err := h.tickets.Update(r.Context(), id, upd)
	if err != nil {
		api.HandleError(w, err)
		return
	}
	api.Success(w, http.StatusOK, ticketToResponse(ticket))
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.tickets.Stats(r.Context())
	if err != nil {
		api.HandleError(w, err)
		return
	}
	api.Success(w, http.StatusOK, stats)
}

type KnowledgeStatusResponse struct {
	Ready  bool `json:"ready"`
	Chunks int  `json:"chunks"`
}

// RefreshKnowledge drops the index cache and rebuilds from the source
// documents.
func (h *AdminHandler) RefreshKnowledge(w http.ResponseWriter, r *http.Request) {
	if err := h.knowledge.Refresh(r.Context()); err != nil {
		api.HandleError(w, err)
		return
	}
	api.Success(w, http.StatusOK, &KnowledgeStatusResponse{
		Ready:  h.knowledge.Ready(),
		Chunks: h.knowledge.Size(),
	})
}

// UploadDocument replaces a source document in the object store and
// rebuilds the index from it.
func (h *AdminHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")

	content, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			api.Error(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		api.Error(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	if len(content) == 0 {
		api.Error(w, http.StatusBadRequest, "document must not be empty")
		return
	}

	if err := h.knowledge.UploadDocument(r.Context(), kind, content); err != nil {
		api.HandleError(w, err)
		return
	}
	if err := h.knowledge.Refresh(r.Context()); err != nil {
		api.HandleError(w, err)
		return
	}
	api.Success(w, http.StatusOK, &KnowledgeStatusResponse{
		Ready:  h.knowledge.Ready(),
		Chunks: h.knowledge.Size(),
	})
}
