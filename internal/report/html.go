package report

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Veraticus/gxpassess/internal/apperr"
	"github.com/Veraticus/gxpassess/internal/models"
)

//go:embed templates/*
var templateFS embed.FS

var reportTemplate = template.Must(
	template.New("report").Funcs(templateFuncs()).ParseFS(templateFS, "templates/*.html"),
)

// RenderHTML renders the print-ready HTML document of r.
func RenderHTML(r *Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := reportTemplate.ExecuteTemplate(&buf, "report.html", r); err != nil {
		return nil, apperr.ReportGeneration("render html", fmt.Errorf("executing template: %w", err))
	}
	return buf.Bytes(), nil
}

var moneyPrinter = message.NewPrinter(language.English)

// Money formats an amount with thousands separators, e.g. "€ 12,500".
func Money(v float64) string {
	return moneyPrinter.Sprintf("€ %.0f", v)
}

// templateFuncs returns custom template functions.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"title": cases.Title(language.English).String,
		"money": Money,
		"formatDate": func(t time.Time) string {
			return t.Format("2006-01-02")
		},
		"formatTime": func(t time.Time) string {
			return t.Format("2006-01-02 15:04:05 MST")
		},
		"severityClass": func(s models.Severity) string {
			return fmt.Sprintf("severity-%s", s)
		},
		"statusClass": func(s models.AreaStatus) string {
			return fmt.Sprintf("status-%s", s)
		},
		"add": func(a, b int) int {
			return a + b
		},
	}
}
