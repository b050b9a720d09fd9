package ui

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"math"
	"strings"

	"launchdash/ui/templates/fragments"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html templates/fragments/*.html static
var embeddedFiles embed.FS

var funcMap = template.FuncMap{
	"kg": func(v float64) string { return fmt.Sprintf("%.0f kg", v) },
	"pct": func(v float64) string {
		return fmt.Sprintf("%.1f%%", v*100)
	},
	"mul":   func(a, b float64) float64 { return a * b },
	"upper": strings.ToUpper,
}

// parseTemplates registers every page and fragment under its path inside templates/
func parseTemplates() (*template.Template, error) {
	templatesFS, err := fs.Sub(embeddedFiles, "templates")
	if err != nil {
		return nil, fmt.Errorf("failed to create templates filesystem: %w", err)
	}

	templates := template.New("").Funcs(funcMap)
	for _, name := range fragments.GetAllTemplatePaths() {
		content, err := fs.ReadFile(templatesFS, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read template %s: %w", name, err)
		}
		if _, err := templates.New(name).Parse(string(content)); err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		log.Printf("[TemplateInit] Parsed %s template %s", fragments.GetTemplateCategory(name), name)
	}
	return templates, nil
}

// staticFS returns the embedded static assets rooted at static/
func staticFS() (fs.FS, error) {
	return fs.Sub(embeddedFiles, "static")
}

func executeTemplate(templates *template.Template, name string, data interface{}) ([]byte, error) {
	// render to a buffer so a failing template never writes a partial page
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		log.Printf("Template error for %s: %v", name, err)
		log.Printf("Template data type: %T", data)
		return nil, err
	}
	if !strings.Contains(buf.String(), "</html>") {
		log.Printf("WARNING: Rendered template %s appears truncated - missing </html> tag", name)
	}
	return buf.Bytes(), nil
}

// renderTemplate executes a template with the given data
func (s *Server) renderTemplate(c *gin.Context, templateName string, data interface{}) {
	content, err := executeTemplate(s.templates, templateName, data)
	if err != nil {
		c.AbortWithStatusJSON(500, gin.H{"error": "Template rendering failed", "code": "INTERNAL_ERROR"})
		return
	}
	c.Data(200, "text/html; charset=utf-8", content)
}

// Slider describes the payload range control
type Slider struct {
	Min   float64
	Max   float64
	Step  float64
	Marks []float64
}

const markInterval = 2500

// NewSlider labels every multiple of 2500 kg between min and max
func NewSlider(min, max, step float64) Slider {
	s := Slider{Min: min, Max: max, Step: step}
	for m := math.Ceil(min/markInterval) * markInterval; m <= max; m += markInterval {
		s.Marks = append(s.Marks, m)
	}
	return s
}
