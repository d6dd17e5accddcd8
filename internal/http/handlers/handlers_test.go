package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"restaurant-insights-service/internal/report"
	"restaurant-insights-service/internal/square"
)

type stubUpstream struct {
	orders []square.Order
	err    error
}

func (s *stubUpstream) SearchOrders(_ context.Context, _, _ time.Time) ([]square.Order, bool, error) {
	return s.orders, false, s.err
}

func (s *stubUpstream) SearchTeamMembers(_ context.Context) ([]square.TeamMember, error) {
	return nil, nil
}

func (s *stubUpstream) ListPayments(_ context.Context, _, _ time.Time) ([]square.Payment, error) {
	return nil, nil
}

func (s *stubUpstream) SearchTimecards(_ context.Context, _, _ time.Time, _ string) ([]square.Timecard, error) {
	return nil, nil
}

func newTestHandler(upstream report.Upstream) *Handler {
	return &Handler{
		Reports:  report.NewService(upstream, report.NewKeywordClassifier(), time.UTC, zap.NewNop()),
		Location: time.UTC,
		Logger:   zap.NewNop(),
	}
}

func TestParseDateRangeDefaults(t *testing.T) {
	h := newTestHandler(&stubUpstream{})
	req := httptest.NewRequest(http.MethodGet, "/api/reports/performance", nil)

	start, end, err := h.parseDateRange(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := end.Sub(start); got != 7*24*time.Hour {
		t.Fatalf("expected a trailing week, got %v", got)
	}
	if time.Since(end) > time.Minute {
		t.Fatalf("default end should be about now, got %v", end)
	}
}

func TestParseDateRangePlainDates(t *testing.T) {
	h := newTestHandler(&stubUpstream{})
	h.Location = time.FixedZone("UTC-7", -7*3600)
	req := httptest.NewRequest(http.MethodGet, "/x?startDate=2024-01-15&endDate=2024-01-17", nil)

	start, end, err := h.parseDateRange(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Plain dates are midnight in the report timezone.
	if start.Hour() != 0 || start.Location() != h.Location {
		t.Fatalf("start not interpreted in report timezone: %v", start)
	}
	if got := end.Sub(start); got != 48*time.Hour {
		t.Fatalf("expected 48h range, got %v", got)
	}
}

func TestParseDateRangeRFC3339(t *testing.T) {
	h := newTestHandler(&stubUpstream{})
	req := httptest.NewRequest(http.MethodGet, "/x?startDate=2024-01-15T08:30:00Z&endDate=2024-01-15T22:00:00Z", nil)

	start, end, err := h.parseDateRange(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.Hour() != 8 || start.Minute() != 30 || end.Hour() != 22 {
		t.Fatalf("unexpected range: %v .. %v", start, end)
	}
}

func TestParseDateRangeRejectsGarbage(t *testing.T) {
	h := newTestHandler(&stubUpstream{})
	req := httptest.NewRequest(http.MethodGet, "/x?startDate=yesterday", nil)

	if _, _, err := h.parseDateRange(req); err == nil {
		t.Fatalf("expected a parse error")
	}
}

func TestPerformanceHandler(t *testing.T) {
	order := square.Order{
		ID:         "o1",
		CreatedAt:  "2024-01-15T12:30:00Z",
		TotalMoney: &square.Money{Amount: 2450, Currency: "USD"},
	}
	h := newTestHandler(&stubUpstream{orders: []square.Order{order}})

	req := httptest.NewRequest(http.MethodGet, "/x?startDate=2024-01-15&endDate=2024-01-17", nil)
	rec := httptest.NewRecorder()
	h.Performance(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Success   bool              `json:"success"`
		Data      json.RawMessage   `json:"data"`
		DateRange map[string]string `json:"dateRange"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !envelope.Success {
		t.Fatalf("expected success envelope")
	}
	if envelope.DateRange["start"] == "" || envelope.DateRange["end"] == "" {
		t.Fatalf("missing date range echo: %v", envelope.DateRange)
	}

	var metrics report.PerformanceReport
	if err := json.Unmarshal(envelope.Data, &metrics); err != nil {
		t.Fatalf("decoding report: %v", err)
	}
	if metrics.NetSales != 24.5 || metrics.CoverCount != 1 {
		t.Fatalf("unexpected report: %+v", metrics)
	}
}

func TestPerformanceHandlerUpstreamFailure(t *testing.T) {
	h := newTestHandler(&stubUpstream{
		err: &square.Error{Code: square.ErrUpstream, Message: "square api request failed", Status: 503},
	})

	req := httptest.NewRequest(http.MethodGet, "/x?startDate=2024-01-15&endDate=2024-01-17", nil)
	rec := httptest.NewRecorder()
	h.Performance(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}

	var envelope struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if envelope.Success {
		t.Fatalf("failure must not claim success")
	}
	if envelope.Error != string(square.ErrUpstream) {
		t.Fatalf("unexpected error code %q", envelope.Error)
	}
}

func TestWriteUpstreamError(t *testing.T) {
	h := newTestHandler(&stubUpstream{})

	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "missing credentials",
			err:        &square.Error{Code: square.ErrCredentialsMissing, Message: "not configured"},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "upstream failure",
			err:        &square.Error{Code: square.ErrUpstream, Message: "boom", Status: 500},
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "unknown error",
			err:        errors.New("plain failure"),
			wantStatus: http.StatusInternalServerError,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.writeUpstreamError(rec, tc.err)
			if rec.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, rec.Code)
			}
		})
	}
}

func TestMemberRole(t *testing.T) {
	cases := []struct {
		name   string
		member square.TeamMember
		want   string
	}{
		{
			name: "first assigned title",
			member: square.TeamMember{AssignedLocations: []square.AssignedLocation{
				{LocationID: "loc-1", JobTitle: "Server"},
				{LocationID: "loc-2", JobTitle: "Bartender"},
			}},
			want: "Server",
		},
		{
			name: "skips blank titles",
			member: square.TeamMember{AssignedLocations: []square.AssignedLocation{
				{LocationID: "loc-1", JobTitle: "  "},
				{LocationID: "loc-2", JobTitle: "Host"},
			}},
			want: "Host",
		},
		{name: "no assignments", member: square.TeamMember{}, want: "Team Member"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := memberRole(tc.member); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestFormatAddress(t *testing.T) {
	full := &square.Address{
		AddressLine1:                 "123 Main St",
		Locality:                     "Portland",
		AdministrativeDistrictLevel1: "OR",
		PostalCode:                   "97201",
	}
	if got := formatAddress(full); got != "123 Main St, Portland, OR, 97201" {
		t.Fatalf("unexpected address %q", got)
	}

	partial := &square.Address{Locality: "Portland"}
	if got := formatAddress(partial); got != "Portland" {
		t.Fatalf("unexpected address %q", got)
	}

	if got := formatAddress(nil); got != "" {
		t.Fatalf("expected empty address, got %q", got)
	}
}
