package ui

import (
	"encoding/json"
	"html/template"
	"log"
	"net/http"

	"launchdash/app"
	"launchdash/domain/launch"
	"launchdash/domain/viewstate"
	"launchdash/internal/errors"
	"launchdash/internal/profiling"

	"github.com/gin-gonic/gin"
)

// errorBody is the JSON shape of every API error
type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func newErrorBody(err error) (int, errorBody) {
	code := errors.GetCode(err)
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[API] Internal error: %v", err)
	}
	return status, errorBody{Error: err.Error(), Code: code}
}

// respondError writes err as JSON with the status matching its code
func respondError(c *gin.Context, err error) {
	status, body := newErrorBody(err)
	c.AbortWithStatusJSON(status, body)
}

// writeJSON is the net/http counterpart of gin's c.JSON used by the chi app
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[API] Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status, body := newErrorBody(err)
	writeJSON(w, status, body)
}

// siteRequest is the body of POST /api/state/site
type siteRequest struct {
	Site *string `json:"site"`
}

func (r siteRequest) event() (viewstate.Event, error) {
	if r.Site == nil {
		return nil, errors.InvalidInput("site is required")
	}
	return viewstate.SelectSite{Site: *r.Site}, nil
}

// payloadRequest is the body of POST /api/state/payload
type payloadRequest struct {
	Low  *float64 `json:"low"`
	High *float64 `json:"high"`
}

func (r payloadRequest) event() (viewstate.Event, error) {
	if r.Low == nil || r.High == nil {
		return nil, errors.InvalidInput("low and high are required")
	}
	return viewstate.SetPayloadRange{Low: *r.Low, High: *r.High}, nil
}

// pageData is the model of index.html
type pageData struct {
	Title    string
	Options  []launch.SiteOption
	Slider   Slider
	State    viewstate.State
	Snapshot app.Snapshot
	Summary  profiling.DatasetSummary
	Notes    template.HTML
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func attachmentName(name string) string {
	return `attachment; filename="` + name + `"`
}
