package plot

import (
	"bytes"
	"testing"

	"launchdash/domain/figure"
	"launchdash/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte("\x89PNG")

func pieFigure() figure.Figure {
	return figure.Figure{
		Kind:   figure.KindPie,
		Title:  "Success vs. Failure for KSC LC-39A",
		Slices: []figure.Slice{{Label: "Success", Value: 10}, {Label: "Failure", Value: 0}},
	}
}

func scatterFigure() figure.Figure {
	return figure.Figure{
		Kind:       figure.KindScatter,
		Title:      "Payload vs. Launch Success (All Sites)",
		XLabel:     "Payload Mass (kg)",
		YLabel:     "class",
		Categories: []string{"FT", "B4"},
		Points: []figure.Point{
			{PayloadMassKg: 500, Outcome: 0, BoosterCategory: "FT"},
			{PayloadMassKg: 5300, Outcome: 1, BoosterCategory: "B4"},
			{PayloadMassKg: 9600, Outcome: 1, BoosterCategory: "FT"},
		},
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" PNG ")
	require.NoError(t, err)
	assert.Equal(t, FormatPNG, f)
	assert.Equal(t, "image/png", f.ContentType())
	assert.Equal(t, "image/svg+xml", FormatSVG.ContentType())

	_, err = ParseFormat("gif")
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestRenderFigures(t *testing.T) {
	tests := []struct {
		name string
		fig  figure.Figure
	}{
		{"pie", pieFigure()},
		{"scatter", scatterFigure()},
		{"empty pie", figure.Figure{Kind: figure.KindPie, Title: "Success vs. Failure for Nowhere"}},
		{"empty scatter", figure.Figure{Kind: figure.KindScatter, Title: "Payload vs. Launch Success for Nowhere"}},
	}

	for _, tt := range tests {
		t.Run(tt.name+" svg", func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Render(&buf, tt.fig, FormatSVG, DefaultOptions()))
			assert.Contains(t, buf.String(), "<svg")
		})
		t.Run(tt.name+" png", func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Render(&buf, tt.fig, FormatPNG, Options{Width: 320, Height: 240}))
			assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
		})
	}
}

func TestRenderSinglePoint(t *testing.T) {
	fig := scatterFigure()
	fig.Points = fig.Points[:1]
	fig.Categories = []string{"FT"}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, fig, FormatSVG, DefaultOptions()))
}

func TestRenderUnknownKind(t *testing.T) {
	fig := figure.Figure{Kind: "bar", Slices: []figure.Slice{{Label: "x", Value: 1}}}
	var buf bytes.Buffer
	// unknown kinds count as empty and fall back to the placeholder
	require.NoError(t, Render(&buf, fig, FormatSVG, DefaultOptions()))
}

func TestXBounds(t *testing.T) {
	low, high := xBounds([]figure.Point{{PayloadMassKg: 4000}})
	assert.Equal(t, 3900.0, low)
	assert.Equal(t, 4100.0, high)

	low, high = xBounds([]figure.Point{{PayloadMassKg: 0}, {PayloadMassKg: 10000}})
	assert.Equal(t, 0.0, low)
	assert.Equal(t, 10500.0, high)
}
