package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ogrenci-destek/destekai/internal/api"
	"github.com/ogrenci-destek/destekai/internal/api/handlers"
	"github.com/ogrenci-destek/destekai/internal/api/middleware"
)

type RouterConfig struct {
	AdminPassword    string
	ChatHandler      *handlers.ChatHandler
	KnowledgeHandler *handlers.KnowledgeHandler
	AdminHandler     *handlers.AdminHandler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Document uploads carry whole slide decks; everything else is small
	// JSON.
	const maxBodyBytes int64 = 64 * 1024
	const maxDocumentBytes int64 = 10 * 1024 * 1024

	r.Use(middleware.RequestID)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.MaxBodyBytes(maxBodyBytes))

			r.Route("/chat", func(r chi.Router) {
				r.Post("/message", cfg.ChatHandler.Message)
				r.Get("/history", cfg.ChatHandler.History)
				r.Get("/categories", cfg.ChatHandler.Categories)
			})

			r.Get("/knowledge/search", cfg.KnowledgeHandler.Search)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.AdminBasicAuth(cfg.AdminPassword))

			r.Group(func(r chi.Router) {
				r.Use(middleware.MaxBodyBytes(maxBodyBytes))

				r.Get("/tickets", cfg.AdminHandler.ListTickets)
				r.Patch("/tickets/{id}", cfg.AdminHandler.UpdateTicket)
				r.Get("/stats", cfg.AdminHandler.Stats)
				r.Post("/knowledge/refresh", cfg.AdminHandler.RefreshKnowledge)
			})

			r.With(middleware.MaxBodyBytes(maxDocumentBytes)).
				Put("/documents/{kind}", cfg.AdminHandler.UploadDocument)
		})
	})

	return r
}
