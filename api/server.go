// Package api exposes a small read-only HTTP surface for debugging and
// dashboards. Nothing here mutates the ledger.
package api

import (
	"context"
	"net/http"
	"time"

	"diamondbot/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"
)

const requestTimeout = 10 * time.Second

// Server wraps the debug HTTP server
type Server struct {
	httpServer *http.Server
}

// NewServer builds the router and returns a server listening on addr once
// Start is called.
func NewServer(addr string, balanceService service.BalanceService, conversionService service.ConversionService) *Server {
	h := &handlers{
		balanceService:    balanceService,
		conversionService: conversionService,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/guilds/{guildID}", func(r chi.Router) {
		r.Get("/leaderboard", h.getLeaderboard)
		r.Route("/users/{userID}", func(r chi.Router) {
			r.Get("/balances", h.getBalances)
			r.Get("/simulate", h.simulateCurrency)
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:    addr,
			Handler: r,
		},
	}
}

// Start runs the server until Shutdown is called
func (s *Server) Start() {
	go func() {
		log.Infof("Debug API listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorf("Debug API server error: %v", err)
		}
	}()
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
