package report

import (
	"bytes"   // Chart buffers
	"fmt"     // Formatting
	"io"      // Output
	"strconv" // Year labels
	"time"    // Generation date

	"esg_portal/internal/domain" // Domain models

	"github.com/go-pdf/fpdf" // PDF rendering
)

// Page layout in millimetres
const (
	pageMargin  = 15.0
	labelWidth  = 110.0
	valueWidth  = 70.0
	rowHeight   = 7.0
	chartWidth  = 180.0
	headerColor = 230
)

// RenderPDF writes an A4 report for user covering the given years of records.
// Years missing from records are skipped; ErrNoData when none remain.
func RenderPDF(w io.Writer, user domain.User, records map[int]domain.YearlyResponse, years []int, now time.Time) error {
	selected := make(map[int]domain.YearlyResponse, len(years))
	for _, y := range years {
		if r, ok := records[y]; ok {
			selected[y] = r
		}
	}
	if len(selected) == 0 {
		return ErrNoData
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle("ESG report", true)
	pdf.SetCreator("esg_portal", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("") // UTF-8 to cp1252 for core fonts

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "ESG Report", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Prepared for %s (%s)", user.Name, user.Email)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Generated on "+now.Format("2 January 2006"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	for _, y := range SortedYears(selected) {
		writeYearTable(pdf, tr, selected[y])
	}

	for _, m := range Metrics {
		points := Series(selected, m)
		if len(points) == 0 {
			continue
		}
		var buf bytes.Buffer
		if err := RenderMetricChart(&buf, m, points); err != nil {
			return fmt.Errorf("render %s chart: %w", m.Key, err)
		}
		name := "chart-" + m.Key
		opts := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
		pdf.RegisterImageOptionsReader(name, opts, &buf)
		pdf.ImageOptions(name, pageMargin, pdf.GetY(), chartWidth, 0, true, opts, 0, "")
		pdf.Ln(4)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("build pdf: %w", err)
	}
	return pdf.Output(w)
}

// writeYearTable prints the raw answers and derived metrics of one year
func writeYearTable(pdf *fpdf.Fpdf, tr func(string) string, r domain.YearlyResponse) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 9, "Financial year "+strconv.Itoa(r.Year), "", 1, "L", false, 0, "")

	header := func(title string) {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(headerColor, headerColor, headerColor)
		pdf.CellFormat(labelWidth+valueWidth, rowHeight, title, "1", 1, "L", true, 0, "")
		pdf.SetFont("Helvetica", "", 10)
	}
	row := func(label, value string) {
		pdf.CellFormat(labelWidth, rowHeight, tr(label), "1", 0, "L", false, 0, "")
		pdf.CellFormat(valueWidth, rowHeight, tr(value), "1", 1, "R", false, 0, "")
	}

	header("Questionnaire answers")
	for _, f := range rawFields {
		row(f.label, FormatValue(f.value(r.RawInputs), f.unit))
	}
	row("Data privacy policy in place", formatBool(r.HasDataPrivacyPolicy))

	header("Calculated metrics")
	for _, m := range Metrics {
		row(m.Label, FormatValue(m.Value(r.DerivedMetrics), m.Unit))
	}
	pdf.Ln(6)
}
