// Package api exposes the randomizer over HTTP and WebSocket.
package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ramonehamilton/helldivers-loadout/internal/api/websocket"
	"github.com/ramonehamilton/helldivers-loadout/internal/catalog"
	"github.com/ramonehamilton/helldivers-loadout/internal/config"
	"github.com/ramonehamilton/helldivers-loadout/internal/metrics"
	"github.com/ramonehamilton/helldivers-loadout/internal/randomizer"
)

// Server represents the REST API server.
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	cfg        *Config

	// WebSocket hub for catalog notifications
	wsHub *websocket.Hub

	store   *catalog.Store
	sampler *randomizer.Sampler
	metrics *metrics.RollMetrics
}

// Config holds configuration for the API server.
type Config struct {
	Port           int
	StaticDir      string   // served at "/" when the directory exists
	AllowedOrigins []string // CORS and WebSocket origins
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	TrustProxy     bool // honor X-Forwarded-For / X-Real-IP

	StratagemCount int
	StrictModes    bool

	RateLimitEnabled bool
	RequestsPerSec   float64
	Burst            int
}

// DefaultConfig returns the default API server configuration.
func DefaultConfig() *Config {
	return &Config{
		Port:             3000,
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		ReadTimeout:      15 * time.Second,
		WriteTimeout:     30 * time.Second,
		StratagemCount:   randomizer.DefaultStratagemCount,
		RateLimitEnabled: true,
		RequestsPerSec:   10,
		Burst:            20,
	}
}

// ConfigFromApp maps the application config onto server settings.
func ConfigFromApp(c *config.Config) (*Config, error) {
	readTimeout, err := c.GetReadTimeout()
	if err != nil {
		return nil, err
	}
	writeTimeout, err := c.GetWriteTimeout()
	if err != nil {
		return nil, err
	}
	return &Config{
		Port:             c.Server.Port,
		StaticDir:        c.Server.StaticDir,
		AllowedOrigins:   c.Server.AllowedOrigins,
		ReadTimeout:      readTimeout,
		WriteTimeout:     writeTimeout,
		TrustProxy:       c.Server.TrustProxy,
		StratagemCount:   c.Randomizer.StratagemCount,
		StrictModes:      c.Randomizer.StrictModes,
		RateLimitEnabled: c.RateLimit.Enabled,
		RequestsPerSec:   c.RateLimit.RequestsPerSecond,
		Burst:            c.RateLimit.Burst,
	}, nil
}

// Dependencies are the collaborators the server routes requests to.
type Dependencies struct {
	Store   *catalog.Store
	Sampler *randomizer.Sampler
	Metrics *metrics.RollMetrics
}

// NewServer creates a new API server.
func NewServer(cfg *Config, deps Dependencies) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if deps.Sampler == nil {
		deps.Sampler = randomizer.NewSampler()
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.NewRollMetrics()
	}
	if deps.Store == nil {
		deps.Store = catalog.NewStore(nil)
	}

	s := &Server{
		router:  chi.NewRouter(),
		cfg:     cfg,
		wsHub:   websocket.NewHub(cfg.AllowedOrigins...),
		store:   deps.Store,
		sampler: deps.Sampler,
		metrics: deps.Metrics,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	if s.cfg.TrustProxy {
		// Forwarded headers are client-controlled unless a proxy rewrites them.
		s.router.Use(middleware.RealIP)
	}
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the API server in a goroutine.
func (s *Server) Start() error {
	go s.wsHub.Run()

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.router,
		ReadTimeout:       s.cfg.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      s.cfg.WriteTimeout,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Printf("[API] Server starting on port %d", s.cfg.Port)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[API] Server error: %v", err)
		}
	}()

	return nil
}

// Shutdown gracefully shuts down the API server and the WebSocket hub.
func (s *Server) Shutdown(ctx context.Context) error {
	s.wsHub.Stop()
	if s.httpServer == nil {
		return nil
	}

	log.Println("[API] Shutting down server...")
	return s.httpServer.Shutdown(ctx)
}

// Port returns the port the server is configured to listen on.
func (s *Server) Port() int {
	return s.cfg.Port
}

// WebSocketHub returns the WebSocket hub for external integration.
func (s *Server) WebSocketHub() *websocket.Hub {
	return s.wsHub
}

// NewWebSocketObserver creates a new WebSocket observer that can be registered
// with an EventDispatcher to forward events to WebSocket clients.
func (s *Server) NewWebSocketObserver() *websocket.WebSocketObserver {
	return websocket.NewWebSocketObserver(s.wsHub)
}

func staticDirExists(dir string) bool {
	if dir == "" {
		return false
	}
	info, err := os.Stat(dir)
	return err == nil && info.IsDir()
}
