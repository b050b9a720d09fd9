// Package fragments provides template path constants for organized template management
package fragments

import "strings"

// Template path constants for organized fragment access
const (
	// Pages
	IndexPage  = "index.html"
	ReportPage = "report.html"

	// Panels
	SummaryPanel = "fragments/summary_panel.html"
	NotesPanel   = "fragments/notes_panel.html"
)

// GetAllTemplatePaths returns all template paths for registration
func GetAllTemplatePaths() []string {
	return []string{
		IndexPage,
		ReportPage,
		SummaryPanel,
		NotesPanel,
	}
}

// GetTemplateCategory returns the category for a given template path
func GetTemplateCategory(templatePath string) string {
	switch {
	case strings.HasPrefix(templatePath, "fragments/"):
		return "fragments"
	case strings.HasSuffix(templatePath, ".html"):
		return "page"
	default:
		return "unknown"
	}
}
