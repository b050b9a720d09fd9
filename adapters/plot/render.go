// Package plot draws figure descriptions as SVG or PNG images with go-chart.
package plot

import (
	"fmt"
	"io"
	"math"
	"strings"

	"launchdash/domain/figure"
	"launchdash/internal/errors"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Format is an output image format
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// ParseFormat accepts svg or png, case-insensitively
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatSVG:
		return FormatSVG, nil
	case FormatPNG:
		return FormatPNG, nil
	default:
		return "", errors.InvalidInput(fmt.Sprintf("unsupported image format %q", s))
	}
}

// ContentType returns the HTTP content type of the format
func (f Format) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "image/svg+xml"
}

func (f Format) provider() chart.RendererProvider {
	if f == FormatPNG {
		return chart.PNG
	}
	return chart.SVG
}

// Options sizes the rendered image
type Options struct {
	Width  int
	Height int
}

// DefaultOptions matches the dashboard's chart panels
func DefaultOptions() Options {
	return Options{Width: 720, Height: 480}
}

// Render draws fig into w. Empty figures render a titled "No data" placeholder.
func Render(w io.Writer, fig figure.Figure, format Format, opts Options) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts = DefaultOptions()
	}
	if fig.Empty() {
		return renderPlaceholder(w, fig.Title, format, opts)
	}

	switch fig.Kind {
	case figure.KindPie:
		return renderPie(w, fig, format, opts)
	case figure.KindScatter:
		return renderScatter(w, fig, format, opts)
	default:
		return errors.InvalidInput(fmt.Sprintf("unsupported figure kind %q", fig.Kind))
	}
}

func renderPie(w io.Writer, fig figure.Figure, format Format, opts Options) error {
	total := float64(fig.Total())
	values := make([]chart.Value, 0, len(fig.Slices))
	for i, s := range fig.Slices {
		// zero-weight sectors draw nothing and only clutter the labels
		if s.Value == 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s %.1f%%", s.Label, 100*float64(s.Value)/total),
			Value: float64(s.Value),
			Style: chart.Style{FillColor: chart.GetDefaultColor(i)},
		})
	}

	pie := chart.PieChart{
		Title:  fig.Title,
		Width:  opts.Width,
		Height: opts.Height,
		Values: values,
	}
	if err := pie.Render(format.provider(), w); err != nil {
		return errors.Wrap(err, "render pie chart")
	}
	return nil
}

func renderScatter(w io.Writer, fig figure.Figure, format Format, opts Options) error {
	groups := fig.PointsByCategory()
	series := make([]chart.Series, 0, len(fig.Categories))
	for i, category := range fig.Categories {
		points := groups[category]
		xs := make([]float64, len(points))
		ys := make([]float64, len(points))
		for j, p := range points {
			xs[j] = p.PayloadMassKg
			ys[j] = float64(p.Outcome)
		}
		series = append(series, chart.ContinuousSeries{
			Name:    category,
			XValues: xs,
			YValues: ys,
			Style:   pointStyle(chart.GetDefaultColor(i)),
		})
	}

	low, high := xBounds(fig.Points)
	graph := chart.Chart{
		Title:      fig.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  fig.XLabel,
			Range: &chart.ContinuousRange{Min: low, Max: high},
		},
		YAxis: chart.YAxis{
			Name:  fig.YLabel,
			Range: &chart.ContinuousRange{Min: -0.25, Max: 1.25},
			Ticks: []chart.Tick{
				{Value: 0, Label: "0 Failure"},
				{Value: 1, Label: "1 Success"},
			},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := graph.Render(format.provider(), w); err != nil {
		return errors.Wrap(err, "render scatter chart")
	}
	return nil
}

// pointStyle returns a style that renders points only (no connecting line)
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    5,
		DotColor:    col,
	}
}

// xBounds pads the payload span so a single mass still gives a non-zero range
func xBounds(points []figure.Point) (float64, float64) {
	low, high := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		low = math.Min(low, p.PayloadMassKg)
		high = math.Max(high, p.PayloadMassKg)
	}
	pad := math.Max(100, (high-low)*0.05)
	return math.Max(0, low-pad), high + pad
}

func renderPlaceholder(w io.Writer, title string, format Format, opts Options) error {
	r, err := format.provider()(opts.Width, opts.Height)
	if err != nil {
		return errors.Wrap(err, "create renderer")
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return errors.Wrap(err, "load default font")
	}

	r.SetFillColor(drawing.ColorWhite)
	r.SetStrokeColor(drawing.ColorWhite)
	r.MoveTo(0, 0)
	r.LineTo(opts.Width, 0)
	r.LineTo(opts.Width, opts.Height)
	r.LineTo(0, opts.Height)
	r.LineTo(0, 0)
	r.Close()
	r.FillStroke()

	r.SetFont(font)
	r.SetFontColor(drawing.ColorBlack)
	r.SetFontSize(14)
	r.Text(title, 16, 32)
	r.SetFontSize(12)
	r.Text("No data", opts.Width/2-24, opts.Height/2)

	if err := r.Save(w); err != nil {
		return errors.Wrap(err, "write placeholder")
	}
	return nil
}
