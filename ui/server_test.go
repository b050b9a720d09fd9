package ui

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"launchdash/domain/launch"
	"launchdash/internal/session"
	"launchdash/ui/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const testTitle = "SpaceX Launch Records Dashboard"

func testDataService(t *testing.T) *services.DataService {
	t.Helper()
	ds, err := launch.NewDataset([]launch.Record{
		{FlightNumber: 1, Site: "KSC LC-39A", PayloadMassKg: 500, BoosterCategory: "FT", Outcome: launch.Success},
		{FlightNumber: 2, Site: "KSC LC-39A", PayloadMassKg: 2500, BoosterCategory: "FT", Outcome: launch.Failure},
		{FlightNumber: 3, Site: "CCAFS LC-40", PayloadMassKg: 5000, BoosterCategory: "v1.1", Outcome: launch.Success},
		{FlightNumber: 4, Site: "CCAFS LC-40", PayloadMassKg: 9600, BoosterCategory: "B4", Outcome: launch.Failure},
		{FlightNumber: 5, Site: "KSC LC-39A", PayloadMassKg: 3000, BoosterCategory: "B5", Outcome: launch.Success},
	})
	require.NoError(t, err)
	data, err := services.NewDataService(ds, launch.DefaultCatalog(), "test")
	require.NoError(t, err)
	return data
}

func testOptions() Options {
	return Options{
		Title:   testTitle,
		Slider:  NewSlider(0, 10000, 1000),
		Notes:   []byte("# Notes\n\nPayloads are in **kg**."),
		GinMode: gin.TestMode,
	}
}

// handlers returns the gin server and the chi app so every case runs against both
func handlers(t *testing.T) map[string]http.Handler {
	t.Helper()
	server, err := NewServer(testDataService(t), testOptions())
	require.NoError(t, err)
	chiApp, err := NewApp(testDataService(t), testOptions())
	require.NoError(t, err)
	return map[string]http.Handler{"gin": server.Handler(), "chi": chiApp}
}

type client struct {
	t       *testing.T
	handler http.Handler
	cookies []*http.Cookie
}

func (c *client) do(method, target, body string) *httptest.ResponseRecorder {
	c.t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	if cookies := rec.Result().Cookies(); len(cookies) > 0 {
		c.cookies = cookies
	}
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	var out map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

type stateJSON struct {
	Site    string `json:"site"`
	Payload struct {
		Low  float64 `json:"low"`
		High float64 `json:"high"`
	} `json:"payload"`
}

func stateOf(t *testing.T, body map[string]json.RawMessage) stateJSON {
	t.Helper()
	var s stateJSON
	require.NoError(t, json.Unmarshal(body["state"], &s))
	return s
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	assert.NotEmpty(t, body.Error)
	return body.Code
}

func TestIndexAndStatic(t *testing.T) {
	for name, h := range handlers(t) {
		t.Run(name, func(t *testing.T) {
			c := &client{t: t, handler: h}

			rec := c.do(http.MethodGet, "/", "")
			require.Equal(t, http.StatusOK, rec.Code)
			page := rec.Body.String()
			assert.Contains(t, page, testTitle)
			assert.Contains(t, page, "All Sites")
			assert.Contains(t, page, "KSC LC-39A")
			assert.Contains(t, page, `id="dashboard-state"`)
			assert.Contains(t, page, "<strong>kg</strong>")
			assert.NotEmpty(t, c.cookies, "index starts a session")
			assert.Contains(t, page, `step="any" data-step="1000" value="500"`)
			assert.Contains(t, page, `step="any" data-step="1000" value="9600"`)

			rec = c.do(http.MethodGet, "/static/js/dashboard.js", "")
			assert.Equal(t, http.StatusOK, rec.Code)

			rec = c.do(http.MethodGet, "/healthz", "")
			require.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, "5", string(decode(t, rec)["records"]))
		})
	}
}

func TestSitesAndSummary(t *testing.T) {
	for name, h := range handlers(t) {
		t.Run(name, func(t *testing.T) {
			c := &client{t: t, handler: h}

			rec := c.do(http.MethodGet, "/api/sites", "")
			require.Equal(t, http.StatusOK, rec.Code)
			var options []launch.SiteOption
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &options))
			require.Len(t, options, 5)
			assert.Equal(t, launch.SiteOption{Label: "All Sites", Value: launch.AllSites}, options[0])

			rec = c.do(http.MethodGet, "/api/summary", "")
			require.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, "3", string(decode(t, rec)["successes"]))
		})
	}
}

func TestSessionStateFlow(t *testing.T) {
	for name, h := range handlers(t) {
		t.Run(name, func(t *testing.T) {
			c := &client{t: t, handler: h}
			require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/", "").Code)

			rec := c.do(http.MethodGet, "/api/state", "")
			require.Equal(t, http.StatusOK, rec.Code)
			state := stateOf(t, decode(t, rec))
			assert.Equal(t, launch.AllSites, state.Site)
			assert.Equal(t, 500.0, state.Payload.Low)
			assert.Equal(t, 9600.0, state.Payload.High)

			rec = c.do(http.MethodPost, "/api/state/site", `{"site":"KSC LC-39A"}`)
			require.Equal(t, http.StatusOK, rec.Code)
			body := decode(t, rec)
			assert.Equal(t, "KSC LC-39A", stateOf(t, body).Site)
			assert.Contains(t, string(body["proportion"]), "Success vs. Failure for KSC LC-39A")
			assert.Contains(t, body, "distribution")

			rec = c.do(http.MethodPost, "/api/state/payload", `{"low":1000,"high":6000}`)
			require.Equal(t, http.StatusOK, rec.Code)
			body = decode(t, rec)
			assert.NotContains(t, body, "proportion", "range changes only redraw the scatter")
			assert.Contains(t, string(body["distribution"]), "Payload vs. Launch Success for KSC LC-39A")
			state = stateOf(t, body)
			assert.Equal(t, "KSC LC-39A", state.Site)
			assert.Equal(t, 1000.0, state.Payload.Low)

			// another browser keeps its own state
			other := &client{t: t, handler: h}
			other.do(http.MethodGet, "/", "")
			rec = other.do(http.MethodGet, "/api/state", "")
			assert.Equal(t, launch.AllSites, stateOf(t, decode(t, rec)).Site)
		})
	}
}

func TestStateAPINeedsPageSession(t *testing.T) {
	server, err := NewServer(testDataService(t), testOptions())
	require.NoError(t, err)
	chiApp, err := NewApp(testDataService(t), testOptions())
	require.NoError(t, err)

	apps := map[string]struct {
		handler  http.Handler
		sessions *session.Store
	}{
		"gin": {server.Handler(), server.Sessions()},
		"chi": {chiApp, chiApp.Sessions()},
	}

	for name, a := range apps {
		t.Run(name, func(t *testing.T) {
			for i := 0; i < 50; i++ {
				c := &client{t: t, handler: a.handler}
				rec := c.do(http.MethodPost, "/api/state/site", `{"site":"Bogus"}`)
				assert.Equal(t, http.StatusNotFound, rec.Code)
				assert.Equal(t, "NOT_FOUND", errorCode(t, rec))
				assert.Empty(t, c.cookies)
			}

			stale := &client{t: t, handler: a.handler, cookies: []*http.Cookie{{Name: session.CookieName, Value: "expired"}}}
			rec := stale.do(http.MethodPost, "/api/state/payload", `{"low":0,"high":1000}`)
			assert.Equal(t, http.StatusNotFound, rec.Code)

			c := &client{t: t, handler: a.handler}
			assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, "/api/state", "").Code)
			assert.Zero(t, a.sessions.Len())

			c.do(http.MethodGet, "/", "")
			assert.Equal(t, 1, a.sessions.Len())
			assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/state", "").Code)
		})
	}
}

func TestRejectedEventsKeepState(t *testing.T) {
	tests := []struct {
		name   string
		target string
		body   string
	}{
		{"unknown site", "/api/state/site", `{"site":"Mars"}`},
		{"missing site", "/api/state/site", `{}`},
		{"malformed body", "/api/state/site", `{"site":`},
		{"inverted range", "/api/state/payload", `{"low":6000,"high":1000}`},
		{"missing bound", "/api/state/payload", `{"low":1000}`},
	}

	for name, h := range handlers(t) {
		t.Run(name, func(t *testing.T) {
			c := &client{t: t, handler: h}
			c.do(http.MethodGet, "/", "")
			rec := c.do(http.MethodPost, "/api/state/site", `{"site":"CCAFS LC-40"}`)
			require.Equal(t, http.StatusOK, rec.Code)

			for _, tt := range tests {
				rec := c.do(http.MethodPost, tt.target, tt.body)
				assert.Equal(t, http.StatusBadRequest, rec.Code, tt.name)
				assert.Equal(t, "INVALID_INPUT", errorCode(t, rec), tt.name)
			}

			rec = c.do(http.MethodGet, "/api/state", "")
			state := stateOf(t, decode(t, rec))
			assert.Equal(t, "CCAFS LC-40", state.Site)
			assert.Equal(t, 500.0, state.Payload.Low)
			assert.Equal(t, 9600.0, state.Payload.High)
		})
	}
}

func TestStatelessFigures(t *testing.T) {
	tests := []struct {
		name   string
		target string
		status int
		expect string
	}{
		{"all sites pie", "/api/figures/proportion", http.StatusOK, "Total Successful Launches by Site"},
		{"site pie", "/api/figures/proportion?site=KSC%20LC-39A", http.StatusOK, "Success vs. Failure for KSC LC-39A"},
		{"scatter with range", "/api/figures/distribution?low=0&high=3000", http.StatusOK, "Payload vs. Launch Success (All Sites)"},
		{"unknown site", "/api/figures/proportion?site=Mars", http.StatusBadRequest, "INVALID_INPUT"},
		{"bad bound", "/api/figures/distribution?low=abc", http.StatusBadRequest, "INVALID_INPUT"},
		{"inverted range", "/api/figures/distribution?low=5000&high=1", http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown view", "/api/figures/bar", http.StatusNotFound, "NOT_FOUND"},
	}

	for name, h := range handlers(t) {
		t.Run(name, func(t *testing.T) {
			c := &client{t: t, handler: h}
			for _, tt := range tests {
				rec := c.do(http.MethodGet, tt.target, "")
				assert.Equal(t, tt.status, rec.Code, tt.name)
				assert.Contains(t, rec.Body.String(), tt.expect, tt.name)
			}
		})
	}
}

func TestScatterRangeFilter(t *testing.T) {
	for name, h := range handlers(t) {
		t.Run(name, func(t *testing.T) {
			c := &client{t: t, handler: h}
			rec := c.do(http.MethodGet, "/api/figures/distribution?low=2500&high=5000", "")
			require.Equal(t, http.StatusOK, rec.Code)

			var fig struct {
				Points []struct {
					X float64 `json:"x"`
				} `json:"points"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fig))
			require.Len(t, fig.Points, 3)
			for _, p := range fig.Points {
				assert.True(t, p.X >= 2500 && p.X <= 5000)
			}
		})
	}
}

func TestCharts(t *testing.T) {
	for name, h := range handlers(t) {
		t.Run(name, func(t *testing.T) {
			c := &client{t: t, handler: h}

			rec := c.do(http.MethodGet, "/charts/proportion.svg", "")
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Body.String(), "<svg")

			rec = c.do(http.MethodGet, "/charts/distribution.png?site=KSC%20LC-39A", "")
			require.Equal(t, http.StatusOK, rec.Code)
			assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))

			rec = c.do(http.MethodGet, "/charts/distribution.svg?low=9700&high=9800", "")
			assert.Equal(t, http.StatusOK, rec.Code, "empty scatter renders a placeholder")

			rec = c.do(http.MethodGet, "/charts/pie.svg", "")
			assert.Equal(t, http.StatusNotFound, rec.Code)

			rec = c.do(http.MethodGet, "/charts/proportion.gif", "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestExport(t *testing.T) {
	for name, h := range handlers(t) {
		t.Run(name, func(t *testing.T) {
			c := &client{t: t, handler: h}
			rec := c.do(http.MethodGet, "/api/export.xlsx?site=KSC%20LC-39A&low=0&high=2500", "")
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Disposition"), "launches.xlsx")

			f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
			require.NoError(t, err)
			defer f.Close()
			rows, err := f.GetRows("Launches")
			require.NoError(t, err)
			assert.Len(t, rows, 3, "header plus the two KSC launches up to 2500 kg")
		})
	}
}

func TestReport(t *testing.T) {
	for name, h := range handlers(t) {
		t.Run(name, func(t *testing.T) {
			c := &client{t: t, handler: h}
			rec := c.do(http.MethodGet, "/report?site=CCAFS%20LC-40", "")
			require.Equal(t, http.StatusOK, rec.Code)

			page := rec.Body.String()
			assert.Contains(t, page, testTitle)
			assert.Contains(t, page, "CCAFS LC-40")
			assert.Equal(t, 2, strings.Count(page, "<svg"))
			assert.Contains(t, page, "Payloads are in")
		})
	}
}

func TestNewSlider(t *testing.T) {
	s := NewSlider(0, 10000, 1000)
	assert.Equal(t, []float64{0, 2500, 5000, 7500, 10000}, s.Marks)

	s = NewSlider(1000, 6000, 500)
	assert.Equal(t, []float64{2500, 5000}, s.Marks)
}
