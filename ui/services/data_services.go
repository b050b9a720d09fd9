package services

import (
	"fmt"
	"io"
	"log"
	"math"
	"strconv"
	"strings"

	"launchdash/adapters/excel"
	"launchdash/adapters/plot"
	"launchdash/app"
	"launchdash/domain/figure"
	"launchdash/domain/launch"
	"launchdash/domain/viewstate"
	"launchdash/internal/errors"
	"launchdash/internal/profiling"
)

// View names used in chart URLs
const (
	ViewProportion   = "proportion"
	ViewDistribution = "distribution"
)

// DataService answers the stateless dashboard queries over the loaded dataset
type DataService struct {
	dataset *launch.Dataset
	catalog *launch.Catalog
	source  string
	summary profiling.DatasetSummary
}

// NewDataService summarizes the dataset once; the dataset is never modified afterwards
func NewDataService(ds *launch.Dataset, catalog *launch.Catalog, source string) (*DataService, error) {
	summary, err := profiling.Summarize(ds, source)
	if err != nil {
		return nil, errors.Wrap(err, "failed to summarize dataset")
	}
	log.Printf("[DataService] %d launches from %s, %d catalog sites", ds.Len(), source, len(catalog.Sites()))
	return &DataService{
		dataset: ds,
		catalog: catalog,
		source:  source,
		summary: summary,
	}, nil
}

func (s *DataService) Dataset() *launch.Dataset   { return s.dataset }
func (s *DataService) Catalog() *launch.Catalog   { return s.catalog }
func (s *DataService) Source() string             { return s.source }
func (s *DataService) Sites() []launch.SiteOption { return s.catalog.Options() }

// Summary returns the precomputed summary panel
func (s *DataService) Summary() profiling.DatasetSummary {
	return s.summary
}

// NewController starts a session at the initial view-state
func (s *DataService) NewController() *app.Controller {
	return app.NewController(s.dataset, s.catalog)
}

// ParseQuery builds a view-state from raw query values. An empty site means ALL and
// missing bounds default to the dataset's payload bounds.
func (s *DataService) ParseQuery(site, low, high string) (viewstate.State, error) {
	state := viewstate.Initial(s.dataset)

	if site = strings.TrimSpace(site); site != "" {
		next, err := viewstate.Reduce(state, viewstate.SelectSite{Site: site}, s.catalog)
		if err != nil {
			return state, err
		}
		state = next
	}

	lowValue, err := parseBound("low", low, state.Payload.Low)
	if err != nil {
		return state, err
	}
	highValue, err := parseBound("high", high, state.Payload.High)
	if err != nil {
		return state, err
	}
	return viewstate.Reduce(state, viewstate.SetPayloadRange{Low: lowValue, High: highValue}, s.catalog)
}

func parseBound(name, raw string, fallback float64) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.InvalidInput(fmt.Sprintf("%s must be a number, got %q", name, raw))
	}
	return v, nil
}

// Proportion returns the pie chart for the state's site
func (s *DataService) Proportion(state viewstate.State) figure.Figure {
	return app.ProportionView(s.dataset, state.Site)
}

// Distribution returns the scatter chart for the state
func (s *DataService) Distribution(state viewstate.State) figure.Figure {
	return app.DistributionView(s.dataset, state)
}

// Figure returns the named view
func (s *DataService) Figure(view string, state viewstate.State) (figure.Figure, error) {
	switch view {
	case ViewProportion:
		return s.Proportion(state), nil
	case ViewDistribution:
		return s.Distribution(state), nil
	default:
		return figure.Figure{}, errors.NotFound(fmt.Sprintf("chart %q", view))
	}
}

// ParseChartFile splits "proportion.svg" into the view and image format
func ParseChartFile(file string) (string, plot.Format, error) {
	dot := strings.LastIndex(file, ".")
	if dot <= 0 {
		return "", "", errors.NotFound(fmt.Sprintf("chart %q", file))
	}
	view := file[:dot]
	if view != ViewProportion && view != ViewDistribution {
		return "", "", errors.NotFound(fmt.Sprintf("chart %q", view))
	}
	format, err := plot.ParseFormat(file[dot+1:])
	if err != nil {
		return "", "", err
	}
	return view, format, nil
}

// RenderChart draws the named view as an image
func (s *DataService) RenderChart(w io.Writer, view string, format plot.Format, state viewstate.State) error {
	fig, err := s.Figure(view, state)
	if err != nil {
		return err
	}
	return plot.Render(w, fig, format, plot.DefaultOptions())
}

// ExportRecords writes the records behind the distribution view as XLSX
func (s *DataService) ExportRecords(w io.Writer, state viewstate.State) error {
	records := app.FilterRecords(s.dataset, state)
	if err := excel.WriteRecords(w, records); err != nil {
		return errors.Wrap(err, "failed to export records")
	}
	log.Printf("[DataService] Exported %d records for %s %s", len(records), state.Site, state.Payload)
	return nil
}
