package handlers

import (
	"net/http"
	"strconv"

	"github.com/ogrenci-destek/destekai/internal/api"
	"github.com/ogrenci-destek/destekai/internal/domain"
)

// defaultTopK bounds the debug search endpoint.
const (
	defaultTopK = 3
	maxTopK     = 20
)

type KnowledgeService interface {
	Search(query string, topK int) []domain.RetrievalResult
	Ready() bool
	Size() int
}

type KnowledgeHandler struct {
	svc KnowledgeService
}

func NewKnowledgeHandler(svc KnowledgeService) *KnowledgeHandler {
	return &KnowledgeHandler{svc: svc}
}

type RetrievalResultResponse struct {
	Chunk       string  `json:"chunk"`
	Score       float64 `json:"score"`
	Source      string  `json:"source"`
	SlideNumber *int    `json:"slide_number,omitempty"`
}

type KnowledgeSearchResponse struct {
	Ready   bool                      `json:"ready"`
	Results []RetrievalResultResponse `json:"results"`
}

// Search is a debug endpoint: it queries the index directly without the
// routing thresholds, so operators can see raw scores.
func (h *KnowledgeHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		api.Error(w, http.StatusBadRequest, "q is required")
		return
	}

	topK := defaultTopK
	if raw := r.URL.Query().Get("top_k"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxTopK {
			api.Error(w, http.StatusBadRequest, "top_k must be between 1 and 20")
			return
		}
		topK = parsed
	}

	results := h.svc.Search(query, topK)
	out := make([]RetrievalResultResponse, 0, len(results))
	for _, res := range results {
		out = append(out, RetrievalResultResponse{
			Chunk:       res.ChunkText,
			Score:       res.Score,
			Source:      res.Source,
			SlideNumber: res.SlideNumber,
		})
	}

	api.Success(w, http.StatusOK, &KnowledgeSearchResponse{
		Ready:   h.svc.Ready(),
		Results: out,
	})
}
