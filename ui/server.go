package ui

import (
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"

	"gogeomap/internal/config"
	"gogeomap/ports"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html instructions.md
var embeddedFiles embed.FS

const pageTitle = "Flexible GPS & Data Visualization Tool"

// Server represents the web server for the upload UI
type Server struct {
	router       *gin.Engine
	service      ports.MapSetPort
	reader       ports.TableReaderPort
	templates    *template.Template
	instructions template.HTML
	config       *config.Config
}

// NewServer creates a new web server instance
func NewServer(cfg *config.Config, service ports.MapSetPort, reader ports.TableReaderPort) (*Server, error) {
	gin.SetMode(cfg.Server.GinMode)

	templates, err := template.ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	instructions, err := renderInstructions()
	if err != nil {
		return nil, fmt.Errorf("failed to render instructions: %w", err)
	}

	s := &Server{
		router:       gin.New(),
		service:      service,
		reader:       reader,
		templates:    templates,
		instructions: instructions,
		config:       cfg,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s, nil
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.GET("/healthz", s.handleHealth)

	s.router.POST("/inspect", s.handleInspect)
	s.router.POST("/generate", s.handleGenerate)
}

// Handler exposes the router, used by tests and custom listeners
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the web server
func (s *Server) Start(addr string) error {
	log.Printf("Starting map UI on http://%s", addr)
	return s.router.Run(addr)
}
