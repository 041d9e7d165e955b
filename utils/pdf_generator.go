package utils

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"time"

	"employeemanagement/models"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

//go:embed templates/roster.html
var templateFS embed.FS

var rosterTemplate = template.Must(template.ParseFS(templateFS, "templates/roster.html"))

// BuildRoster collects the employees into the data the roster template expects.
func BuildRoster(employees []*models.Employee, now time.Time) *models.RosterPDFData {
	sorted := append([]*models.Employee(nil), employees...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	var total int64
	for _, e := range sorted {
		total += e.Salary
	}
	return &models.RosterPDFData{
		Title:            "Employee Roster",
		GeneratedAt:      now.Format("02-Jan-2006 15:04"),
		Employees:        sorted,
		Headcount:        len(sorted),
		TotalSalary:      total,
		TotalSalaryWords: AmountToWords(total),
	}
}

func RenderRosterHTML(data *models.RosterPDFData) ([]byte, error) {
	var buf bytes.Buffer
	if err := rosterTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render roster template: %w", err)
	}
	return buf.Bytes(), nil
}

// RosterPDF prints the rendered roster to an A4 PDF with headless Chrome.
func RosterPDF(ctx context.Context, data *models.RosterPDFData) ([]byte, error) {
	html, err := RenderRosterHTML(data)
	if err != nil {
		return nil, err
	}

	tmpHTML := filepath.Join(os.TempDir(), "roster_"+time.Now().Format("20060102150405.000000000")+".html")
	if err := os.WriteFile(tmpHTML, html, 0644); err != nil {
		return nil, fmt.Errorf("write roster html: %w", err)
	}
	defer os.Remove(tmpHTML)

	ctx, cancel := chromedp.NewContext(ctx)
	defer cancel()
	ctx, cancelTimeout := context.WithTimeout(ctx, 30*time.Second)
	defer cancelTimeout()

	var pdfBuf []byte
	err = chromedp.Run(ctx,
		chromedp.Navigate("file://"+tmpHTML),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).  // A4
				WithPaperHeight(11.7).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("print roster pdf: %w", err)
	}
	return pdfBuf, nil
}
