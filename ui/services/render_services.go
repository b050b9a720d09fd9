package services

import (
	"bytes"
	"html/template"
	"io"
	"log"
	"os"
	"time"

	"launchdash/adapters/plot"
	"launchdash/domain/viewstate"
	"launchdash/internal/errors"
	"launchdash/internal/profiling"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/yosssi/gohtml"
)

const reportTemplate = "report.html"

// ReportData is the model of the static HTML report
type ReportData struct {
	Title           string
	GeneratedAt     string
	State           viewstate.State
	SiteLabel       string
	Summary         profiling.DatasetSummary
	ProportionSVG   template.HTML
	DistributionSVG template.HTML
	Notes           template.HTML
}

// RenderService renders the operator notes and the static report
type RenderService struct {
	templates *template.Template
	notes     template.HTML
}

func NewRenderService(templates *template.Template, notesMarkdown []byte) *RenderService {
	return &RenderService{
		templates: templates,
		notes:     RenderMarkdown(notesMarkdown),
	}
}

// LoadNotes reads the Markdown notes file; an empty path means no notes
func LoadNotes(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ConfigInvalid(err.Error()), "failed to read notes file %s", path)
	}
	return content, nil
}

// RenderMarkdown converts operator notes to HTML. Raw HTML in the source is dropped.
func RenderMarkdown(source []byte) template.HTML {
	if len(bytes.TrimSpace(source)) == 0 {
		return ""
	}
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Flags: mdhtml.CommonFlags | mdhtml.SkipHTML | mdhtml.HrefTargetBlank,
	})
	return template.HTML(markdown.ToHTML(source, p, renderer))
}

// Notes returns the rendered notes panel
func (s *RenderService) Notes() template.HTML {
	return s.notes
}

// BuildReport renders both charts for state as inline SVG
func (s *RenderService) BuildReport(data *DataService, title string, state viewstate.State) (ReportData, error) {
	var proportion, distribution bytes.Buffer
	if err := plot.Render(&proportion, data.Proportion(state), plot.FormatSVG, plot.DefaultOptions()); err != nil {
		return ReportData{}, errors.Wrap(err, "failed to render proportion chart")
	}
	if err := plot.Render(&distribution, data.Distribution(state), plot.FormatSVG, plot.DefaultOptions()); err != nil {
		return ReportData{}, errors.Wrap(err, "failed to render distribution chart")
	}

	return ReportData{
		Title:           title,
		GeneratedAt:     time.Now().UTC().Format(time.RFC3339),
		State:           state,
		SiteLabel:       data.Catalog().Label(state.Site),
		Summary:         data.Summary(),
		ProportionSVG:   template.HTML(proportion.String()),
		DistributionSVG: template.HTML(distribution.String()),
		Notes:           s.notes,
	}, nil
}

// RenderReport executes the report template and writes it indented
func (s *RenderService) RenderReport(w io.Writer, report ReportData) error {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, reportTemplate, report); err != nil {
		log.Printf("[ERROR] Failed to render report template: %v", err)
		return errors.Wrap(err, "failed to render report")
	}
	if _, err := w.Write(gohtml.FormatBytes(buf.Bytes())); err != nil {
		return errors.Wrap(err, "failed to write report")
	}
	return nil
}
