package ui

import (
	"bytes"
	"net/http"

	"launchdash/domain/viewstate"
	"launchdash/internal/errors"
	"launchdash/ui/middleware"
	"launchdash/ui/services"
	"launchdash/ui/templates/fragments"

	"github.com/gin-gonic/gin"
)

// handleIndex serves the dashboard page for the caller's session
func (s *Server) handleIndex(c *gin.Context) {
	snapshot := middleware.Controller(c).Snapshot()

	s.renderTemplate(c, fragments.IndexPage, pageData{
		Title:    s.options.Title,
		Options:  s.data.Sites(),
		Slider:   s.options.Slider,
		State:    snapshot.State,
		Snapshot: snapshot,
		Summary:  s.data.Summary(),
		Notes:    s.render.Notes(),
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"records":  s.data.Dataset().Len(),
		"source":   s.data.Source(),
		"sessions": s.sessions.Len(),
	})
}

func (s *Server) handleSites(c *gin.Context) {
	c.JSON(http.StatusOK, s.data.Sites())
}

func (s *Server) handleSummary(c *gin.Context) {
	c.JSON(http.StatusOK, s.data.Summary())
}

// handleState returns the session's view-state with both figures
func (s *Server) handleState(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.Controller(c).Snapshot())
}

func (s *Server) handleSelectSite(c *gin.Context) {
	var req siteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.InvalidInput("invalid JSON body: "+err.Error()))
		return
	}
	event, err := req.event()
	if err != nil {
		respondError(c, err)
		return
	}
	s.applyEvent(c, event)
}

func (s *Server) handleSetPayload(c *gin.Context) {
	var req payloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.InvalidInput("invalid JSON body: "+err.Error()))
		return
	}
	event, err := req.event()
	if err != nil {
		respondError(c, err)
		return
	}
	s.applyEvent(c, event)
}

// applyEvent feeds one UI event to the session controller and returns the update
func (s *Server) applyEvent(c *gin.Context, event viewstate.Event) {
	update, err := middleware.Controller(c).Apply(event)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, update)
}

// queryState parses site, low and high from the query string
func (s *Server) queryState(c *gin.Context) (viewstate.State, bool) {
	state, err := s.data.ParseQuery(c.Query("site"), c.Query("low"), c.Query("high"))
	if err != nil {
		respondError(c, err)
		return state, false
	}
	return state, true
}

// handleFigure serves a stateless figure description
func (s *Server) handleFigure(c *gin.Context) {
	state, ok := s.queryState(c)
	if !ok {
		return
	}
	fig, err := s.data.Figure(c.Param("view"), state)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fig)
}

// handleChart serves /charts/{view}.{svg|png}
func (s *Server) handleChart(c *gin.Context) {
	view, format, err := services.ParseChartFile(c.Param("file"))
	if err != nil {
		respondError(c, err)
		return
	}
	state, ok := s.queryState(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := s.data.RenderChart(&buf, view, format, state); err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

func (s *Server) handleExport(c *gin.Context) {
	state, ok := s.queryState(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := s.data.ExportRecords(&buf, state); err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", attachmentName("launches.xlsx"))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (s *Server) handleReport(c *gin.Context) {
	state, ok := s.queryState(c)
	if !ok {
		return
	}

	report, err := s.render.BuildReport(s.data, s.options.Title, state)
	if err != nil {
		respondError(c, err)
		return
	}
	var buf bytes.Buffer
	if err := s.render.RenderReport(&buf, report); err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
