package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"
)

// ExportSchemaVersion is written into every export document so later
// shape changes stay detectable by consumers.
const ExportSchemaVersion = 1

type ExportDateRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ExportDocument is the flat, downloadable rendition of a report.
type ExportDocument struct {
	SchemaVersion int                        `json:"schemaVersion"`
	GeneratedAt   string                     `json:"generatedAt"`
	DateRange     ExportDateRange            `json:"dateRange"`
	Location      string                     `json:"location"`
	Performance   *PerformanceReport         `json:"performance,omitempty"`
	Analytics     *RestaurantAnalyticsReport `json:"analytics,omitempty"`
}

func NewExport(location string, start, end time.Time) *ExportDocument {
	return &ExportDocument{
		SchemaVersion: ExportSchemaVersion,
		GeneratedAt:   time.Now().UTC().Format(time.RFC3339),
		DateRange: ExportDateRange{
			From: start.Format("2006-01-02"),
			To:   end.Format("2006-01-02"),
		},
		Location: location,
	}
}

// RenderPDF renders the export as a one-page summary for download.
func RenderPDF(doc *ExportDocument) (*bytes.Buffer, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	title := "Restaurant Performance Report"
	if doc.Analytics != nil {
		title = "Restaurant Analytics Report"
	}
	pdf.CellFormat(0, 8, title, "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	if doc.Location != "" {
		pdf.CellFormat(0, 5, doc.Location, "", 1, "C", false, 0, "")
	}
	pdf.CellFormat(0, 5, fmt.Sprintf("%s to %s", doc.DateRange.From, doc.DateRange.To), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Generated %s", doc.GeneratedAt), "", 1, "C", false, 0, "")

	if doc.Performance != nil {
		renderPerformancePDF(pdf, doc.Performance)
	}
	if doc.Analytics != nil {
		renderAnalyticsPDF(pdf, doc.Analytics)
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

func renderPerformancePDF(pdf *gofpdf.Fpdf, report *PerformanceReport) {
	pdf.Ln(3)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 6, "Summary", "B", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 5, fmt.Sprintf("Net Sales: $%.2f", report.NetSales), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Covers: %d", report.CoverCount), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Per-Person Average: $%.2f", report.PPA), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Sales Per Hour: $%.2f", report.SalesPerHour), "", 1, "L", false, 0, "")
	if report.TotalShifts > 0 {
		pdf.CellFormat(0, 5, fmt.Sprintf("Hours Worked: %.1f over %d shifts", report.TotalHours, report.TotalShifts), "", 1, "L", false, 0, "")
	}
	if report.Truncated {
		pdf.CellFormat(0, 5, "Note: order history was truncated at the fetch cap; totals undercount.", "", 1, "L", false, 0, "")
	}

	if len(report.TopItems) > 0 {
		pdf.Ln(2)
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 6, "Top Items", "B", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		for _, item := range report.TopItems {
			pdf.CellFormat(0, 5, fmt.Sprintf("%dx %s - $%.2f", item.Quantity, item.Name, item.Revenue), "", 1, "L", false, 0, "")
		}
	}

	if len(report.TeamMemberSales) > 0 {
		pdf.Ln(2)
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 6, "Team Member Sales", "B", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		for _, member := range report.TeamMemberSales {
			pdf.CellFormat(0, 5, fmt.Sprintf("%s - $%.2f", member.Name, member.Sales), "", 1, "L", false, 0, "")
		}
	}

	if len(report.DailyPerformance) > 0 {
		pdf.Ln(2)
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 6, "Daily Performance", "B", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		for _, day := range report.DailyPerformance {
			pdf.CellFormat(0, 5, fmt.Sprintf("%s - $%.2f across %d covers", day.Date, day.Sales, day.Covers), "", 1, "L", false, 0, "")
		}
	}
}

func renderAnalyticsPDF(pdf *gofpdf.Fpdf, report *RestaurantAnalyticsReport) {
	pdf.Ln(3)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 6, "Overall", "B", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 5, fmt.Sprintf("Net Sales: $%.2f", report.NetSales), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Covers: %d", report.TotalCovers), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Average Order Value: $%.2f", report.AverageOrderValue), "", 1, "L", false, 0, "")

	pdf.Ln(2)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 6, "Service Periods", "B", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 5, fmt.Sprintf("Lunch: $%.2f / %d covers", report.LunchSales, report.LunchCovers), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Happy Hour: $%.2f / %d covers", report.HappyHourSales, report.HappyHourCovers), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Dinner: $%.2f / %d covers", report.DinnerSales, report.DinnerCovers), "", 1, "L", false, 0, "")

	pdf.Ln(2)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 6, "Category Sales", "B", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	categories := []struct {
		label string
		value float64
	}{
		{"Kickstarters", report.CategorySales.Kickstarters},
		{"Beer", report.CategorySales.Beer},
		{"Drinks", report.CategorySales.Drinks},
		{"Merch", report.CategorySales.Merch},
		{"Desserts", report.CategorySales.Desserts},
		{"Spirits", report.CategorySales.Spirits},
	}
	for _, category := range categories {
		if category.value == 0 {
			continue
		}
		pdf.CellFormat(0, 5, fmt.Sprintf("%s: $%.2f", category.label, category.value), "", 1, "L", false, 0, "")
	}

	pdf.Ln(2)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 6, "Channel Sales", "B", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 5, fmt.Sprintf("Square Online: $%.2f", report.ChannelSales.SquareOnline), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Delivery Apps: $%.2f", report.ChannelSales.DoorDash), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("In Store: $%.2f", report.ChannelSales.InStore), "", 1, "L", false, 0, "")
}
