package api

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ramonehamilton/helldivers-loadout/internal/api/handlers"
	"github.com/ramonehamilton/helldivers-loadout/internal/api/response"
	"github.com/ramonehamilton/helldivers-loadout/internal/version"
)

// requestTimeout bounds every API request except the WebSocket upgrade.
const requestTimeout = 30 * time.Second

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.healthCheck)

	// Long-lived connection; kept outside the timeout and rate limit.
	s.router.Get("/ws", s.wsHub.ServeWs)

	s.router.Route("/api", func(r chi.Router) {
		r.Use(middleware.Timeout(requestTimeout))
		if s.cfg.RateLimitEnabled {
			r.Use(s.rateLimitMiddleware(newClientLimiter(s.cfg.RequestsPerSec, s.cfg.Burst)))
		}

		randomizerHandler := handlers.NewRandomizerHandler(s.store, s.sampler, s.metrics, handlers.RandomizerOptions{
			DefaultCount: s.cfg.StratagemCount,
			StrictModes:  s.cfg.StrictModes,
		})
		r.Get("/random-loadout", randomizerHandler.RandomLoadout)
		r.Route("/random", func(r chi.Router) {
			r.Get("/stratagems", randomizerHandler.RandomStratagems)
			r.Get("/stratagem", randomizerHandler.RerollStratagem)
			r.Get("/{slot}", randomizerHandler.RandomSlot)
		})

		catalogHandler := handlers.NewCatalogHandler(s.store)
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", catalogHandler.GetSummary)
			r.Get("/warbonds", catalogHandler.GetWarbonds)
			r.Get("/search", catalogHandler.Search)
		})

		systemHandler := handlers.NewSystemHandler(s.metrics)
		r.Get("/metrics", systemHandler.GetMetrics)
		r.Get("/version", systemHandler.GetVersion)
	})

	if staticDirExists(s.cfg.StaticDir) {
		log.Printf("[API] Serving static files from %s", s.cfg.StaticDir)
		s.router.Handle("/*", http.FileServer(http.Dir(s.cfg.StaticDir)))
	}
}

// healthCheck returns server health status.
func (s *Server) healthCheck(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, map[string]any{
		"status":          "healthy",
		"service":         version.ServiceName,
		"version":         version.GetVersion(),
		"catalogLoadedAt": s.store.LoadedAt(),
		"catalogReloads":  s.store.Reloads(),
		"wsClients":       s.wsHub.ClientCount(),
	})
}
