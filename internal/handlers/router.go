package handlers

import (
	"net/http"
	"strings"

	"accountsvc/internal/config"
	"accountsvc/internal/middleware"
	"accountsvc/internal/websocket"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Handler struct {
	cfg       config.Config
	accounts  AccountService
	movements MovementService
	reports   ReportService
	hub       *websocket.Hub
}

func New(cfg config.Config, accounts AccountService, movements MovementService, reports ReportService, hub *websocket.Hub) *Handler {
	return &Handler{
		cfg:       cfg,
		accounts:  accounts,
		movements: movements,
		reports:   reports,
		hub:       hub,
	}
}

func (h *Handler) Routes() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins(h.cfg.AllowedOrigins),
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	router.Group(func(r chi.Router) {
		if h.cfg.RequestTimeout > 0 {
			r.Use(chimiddleware.Timeout(h.cfg.RequestTimeout))
		}
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", h.CreateAccount)
			r.Get("/", h.ListAccounts)
			r.Get("/{accountNumber}", h.GetAccount)
			r.Put("/{accountNumber}", h.UpdateAccount)
			r.Delete("/{accountNumber}", h.DeleteAccount)
			r.Get("/{accountNumber}/reconcile", h.Reconcile)
		})
		r.Route("/movements", func(r chi.Router) {
			r.Post("/", h.CreateMovement)
			r.Get("/", h.ListMovements)
			r.Get("/report", h.ListMovementsByDateRange)
			r.Get("/account/{accountNumber}", h.ListMovementsByAccount)
			r.Get("/{id}", h.GetMovement)
		})
		r.Route("/reports", func(r chi.Router) {
			r.Get("/", h.MovementsReport)
			r.Get("/statement/{accountNumber}", h.AccountStatement)
			r.Get("/clients/{clientId}/accounts", h.ClientFullReport)
		})
		r.Route("/clients/{clientId}", func(r chi.Router) {
			r.Get("/accounts", h.ListClientAccounts)
			r.Get("/has-active-account", h.ClientHasActiveAccount)
		})
	})

	router.Get("/ws/accounts/{accountNumber}", h.WSBalance)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return router
}

func allowedOrigins(raw string) []string {
	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
