package ui

import (
	"context"
	"html/template"
	"log"
	"net/http"
	"time"

	"launchdash/internal/session"
	"launchdash/ui/middleware"
	"launchdash/ui/services"

	"github.com/gin-gonic/gin"
)

const (
	sessionSweepInterval = 5 * time.Minute
	sessionMaxIdle       = 30 * time.Minute
)

// Options configures the dashboard page
type Options struct {
	Title   string
	Slider  Slider
	Notes   []byte
	GinMode string
}

// Server represents the web server for the launch dashboard
type Server struct {
	router    *gin.Engine
	data      *services.DataService
	render    *services.RenderService
	sessions  *session.Store
	templates *template.Template
	options   Options
}

// NewServer creates a new web server instance
func NewServer(data *services.DataService, options Options) (*Server, error) {
	if options.GinMode != "" {
		gin.SetMode(options.GinMode)
	}

	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if gin.Mode() == gin.DebugMode {
		router.Use(gin.Logger())
	}

	s := &Server{
		router:    router,
		data:      data,
		render:    services.NewRenderService(templates, options.Notes),
		sessions:  session.NewStore(data.NewController),
		templates: templates,
		options:   options,
	}

	if err := s.setupMiddleware(); err != nil {
		return nil, err
	}
	s.setupRoutes()
	return s, nil
}

// setupMiddleware serves the embedded static assets
func (s *Server) setupMiddleware() error {
	static, err := staticFS()
	if err != nil {
		log.Printf("[setupMiddleware] Error creating static filesystem: %v", err)
		return err
	}
	log.Printf("[Static] Serving static files from embedded FS at /static")
	s.router.StaticFS("/static", http.FS(static))
	return nil
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.handleHealth)

	// Only the dashboard page starts sessions; the state API needs its cookie
	s.router.GET("/", middleware.EnsureSession(s.sessions), s.handleIndex)
	state := s.router.Group("/api/state", middleware.RequireSession(s.sessions))
	{
		state.GET("", s.handleState)
		state.POST("/site", s.handleSelectSite)
		state.POST("/payload", s.handleSetPayload)
	}

	// Stateless views over query parameters
	api := s.router.Group("/api")
	{
		api.GET("/sites", s.handleSites)
		api.GET("/summary", s.handleSummary)
		api.GET("/figures/:view", s.handleFigure)
		api.GET("/export.xlsx", s.handleExport)
	}
	s.router.GET("/charts/:file", s.handleChart)
	s.router.GET("/report", s.handleReport)
}

// Handler exposes the router for tests and custom listeners
func (s *Server) Handler() http.Handler {
	return s.router
}

// Sessions returns the session registry
func (s *Server) Sessions() *session.Store {
	return s.sessions
}

// Start starts the web server
func (s *Server) Start(addr string) error {
	log.Printf("Starting launch dashboard on http://%s", addr)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.sessions.PruneEvery(ctx, sessionSweepInterval, sessionMaxIdle)
	return s.router.Run(addr)
}
