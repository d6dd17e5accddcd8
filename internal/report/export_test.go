package report

import (
	"bytes"
	"testing"
	"time"
)

func TestNewExport(t *testing.T) {
	start := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC)

	doc := NewExport("Main Street", start, end)
	if doc.SchemaVersion != ExportSchemaVersion {
		t.Fatalf("expected schema version %d, got %d", ExportSchemaVersion, doc.SchemaVersion)
	}
	if doc.Location != "Main Street" {
		t.Fatalf("unexpected location %q", doc.Location)
	}
	if doc.DateRange.From != "2024-01-15" || doc.DateRange.To != "2024-01-17" {
		t.Fatalf("unexpected date range %+v", doc.DateRange)
	}
	if _, err := time.Parse(time.RFC3339, doc.GeneratedAt); err != nil {
		t.Fatalf("generatedAt is not RFC3339: %q", doc.GeneratedAt)
	}
}

func TestRenderPDF(t *testing.T) {
	start := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC)

	doc := NewExport("Main Street", start, end)
	doc.Performance = &PerformanceReport{
		NetSales:   110,
		CoverCount: 3,
		PPA:        36.67,
		TopItems: []TopItem{
			{Name: "Ribeye Steak", Quantity: 1, Revenue: 40.5},
		},
		TeamMemberSales: []TeamMemberSales{
			{TeamMemberID: "tm-1", Name: "John Smith", Sales: 80},
		},
		DailyPerformance: []DailyPerformance{
			{Date: "2024-01-15", Sales: 54.5, Covers: 2},
		},
	}

	out, err := RenderPDF(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Len() == 0 {
		t.Fatalf("expected non-empty PDF output")
	}
	if !bytes.HasPrefix(out.Bytes(), []byte("%PDF")) {
		t.Fatalf("output does not look like a PDF")
	}
}

func TestRenderPDFAnalytics(t *testing.T) {
	start := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC)

	doc := NewExport("", start, end)
	doc.Analytics = &RestaurantAnalyticsReport{
		NetSales:    110,
		TotalCovers: 3,
		LunchSales:  80,
		LunchCovers: 2,
		CategorySales: CategorySales{
			Beer:     14,
			Desserts: 2.5,
		},
		ChannelSales: ChannelSales{InStore: 110},
	}

	out, err := RenderPDF(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(out.Bytes(), []byte("%PDF")) {
		t.Fatalf("output does not look like a PDF")
	}
}
