// Package api exposes map-set generation as a JSON API over chi.
package api

import (
	"log"
	"net/http"

	"gogeomap/ports"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the JSON API server
type Server struct {
	router  *chi.Mux
	service ports.MapSetPort
	reader  ports.TableReaderPort
	config  APIConfig
}

// NewServer creates a new API server
func NewServer(config APIConfig, service ports.MapSetPort, reader ports.TableReaderPort) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		service: service,
		reader:  reader,
		config:  config,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware configures HTTP middleware
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(s.config.RequestTimeout))
	s.router.Use(middleware.Compress(s.config.CompressLevel, "application/json"))
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() {
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Post("/detect", s.handleDetect)
		r.Post("/mapsets", s.handleGenerate)
	})
}

// Handler exposes the router
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the API server
func (s *Server) Start() error {
	addr := ":" + s.config.Port
	log.Printf("Starting map API on %s", addr)
	return http.ListenAndServe(addr, s.router)
}
