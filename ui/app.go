package ui

import (
	"bytes"
	"context"
	"encoding/json"
	"html/template"
	"log"
	"net/http"

	"launchdash/app"
	"launchdash/domain/viewstate"
	"launchdash/internal/errors"
	"launchdash/internal/session"
	"launchdash/ui/services"
	"launchdash/ui/templates/fragments"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// App is the lightweight chi rendition of the dashboard. It serves the same routes
// as Server without gin.
type App struct {
	router    *chi.Mux
	data      *services.DataService
	render    *services.RenderService
	sessions  *session.Store
	templates *template.Template
	options   Options
}

// NewApp creates a new UI application
func NewApp(data *services.DataService, options Options) (*App, error) {
	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	a := &App{
		router:    chi.NewRouter(),
		data:      data,
		render:    services.NewRenderService(templates, options.Notes),
		sessions:  session.NewStore(data.NewController),
		templates: templates,
		options:   options,
	}

	if err := a.setupMiddleware(); err != nil {
		return nil, err
	}
	a.setupRoutes()
	return a, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() error {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))

	static, err := staticFS()
	if err != nil {
		return err
	}
	a.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	return nil
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Get("/healthz", a.handleHealth)
	a.router.Get("/report", a.handleReport)
	a.router.Get("/charts/{file}", a.handleChart)

	a.router.Route("/api", func(r chi.Router) {
		r.Get("/sites", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, a.data.Sites())
		})
		r.Get("/summary", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, a.data.Summary())
		})
		r.Get("/state", a.handleState)
		r.Post("/state/site", a.handleSelectSite)
		r.Post("/state/payload", a.handleSetPayload)
		r.Get("/figures/{view}", a.handleFigure)
		r.Get("/export.xlsx", a.handleExport)
	})
}

// Sessions returns the session registry
func (a *App) Sessions() *session.Store {
	return a.sessions
}

// ServeHTTP implements http.Handler
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Start starts the UI server
func (a *App) Start(addr string) error {
	log.Printf("Starting launch dashboard (chi) on http://%s", addr)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go a.sessions.PruneEvery(ctx, sessionSweepInterval, sessionMaxIdle)
	return http.ListenAndServe(addr, a.router)
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	snapshot := a.sessions.FromRequest(w, r).Snapshot()
	content, err := executeTemplate(a.templates, fragments.IndexPage, pageData{
		Title:    a.options.Title,
		Options:  a.data.Sites(),
		Slider:   a.options.Slider,
		State:    snapshot.State,
		Snapshot: snapshot,
		Summary:  a.data.Summary(),
		Notes:    a.render.Notes(),
	})
	if err != nil {
		writeError(w, errors.InternalError("template rendering failed"))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(content)
}

func (a *App) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"records":  a.data.Dataset().Len(),
		"source":   a.data.Source(),
		"sessions": a.sessions.Len(),
	})
}

// controller resolves the caller's existing session or writes NOT_FOUND
func (a *App) controller(w http.ResponseWriter, r *http.Request) (*app.Controller, bool) {
	controller, err := a.sessions.Lookup(r)
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	return controller, true
}

func (a *App) handleState(w http.ResponseWriter, r *http.Request) {
	controller, ok := a.controller(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, controller.Snapshot())
}

func (a *App) handleSelectSite(w http.ResponseWriter, r *http.Request) {
	controller, ok := a.controller(w, r)
	if !ok {
		return
	}
	var req siteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.InvalidInput("invalid JSON body: "+err.Error()))
		return
	}
	event, err := req.event()
	if err != nil {
		writeError(w, err)
		return
	}
	applyEvent(w, controller, event)
}

func (a *App) handleSetPayload(w http.ResponseWriter, r *http.Request) {
	controller, ok := a.controller(w, r)
	if !ok {
		return
	}
	var req payloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.InvalidInput("invalid JSON body: "+err.Error()))
		return
	}
	event, err := req.event()
	if err != nil {
		writeError(w, err)
		return
	}
	applyEvent(w, controller, event)
}

func applyEvent(w http.ResponseWriter, controller *app.Controller, event viewstate.Event) {
	update, err := controller.Apply(event)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, update)
}

func (a *App) queryState(w http.ResponseWriter, r *http.Request) (viewstate.State, bool) {
	q := r.URL.Query()
	state, err := a.data.ParseQuery(q.Get("site"), q.Get("low"), q.Get("high"))
	if err != nil {
		writeError(w, err)
		return state, false
	}
	return state, true
}

func (a *App) handleFigure(w http.ResponseWriter, r *http.Request) {
	state, ok := a.queryState(w, r)
	if !ok {
		return
	}
	fig, err := a.data.Figure(chi.URLParam(r, "view"), state)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fig)
}

func (a *App) handleChart(w http.ResponseWriter, r *http.Request) {
	view, format, err := services.ParseChartFile(chi.URLParam(r, "file"))
	if err != nil {
		writeError(w, err)
		return
	}
	state, ok := a.queryState(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := a.data.RenderChart(&buf, view, format, state); err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Write(buf.Bytes())
}

func (a *App) handleExport(w http.ResponseWriter, r *http.Request) {
	state, ok := a.queryState(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := a.data.ExportRecords(&buf, state); err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", attachmentName("launches.xlsx"))
	w.Write(buf.Bytes())
}

func (a *App) handleReport(w http.ResponseWriter, r *http.Request) {
	state, ok := a.queryState(w, r)
	if !ok {
		return
	}

	report, err := a.render.BuildReport(a.data, a.options.Title, state)
	if err != nil {
		writeError(w, err)
		return
	}
	var buf bytes.Buffer
	if err := a.render.RenderReport(&buf, report); err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}
