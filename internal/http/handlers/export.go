package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"restaurant-insights-service/internal/report"
	"restaurant-insights-service/pkg/response"

	"go.uber.org/zap"
)

type exportRequest struct {
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	TeamMemberID string `json:"teamMemberId"`
	Report       string `json:"report"`
	Format       string `json:"format"`
}

// Export renders a report as a downloadable document. JSON exports
// are uploaded to the object store when one is configured; PDF
// exports stream back directly.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid JSON in request body")
		return
	}
	if req.StartDate == "" || req.EndDate == "" {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "startDate and endDate are required")
		return
	}

	startDate, err := h.parseDateParam(req.StartDate)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "startDate must be RFC3339 or YYYY-MM-DD")
		return
	}
	endDate, err := h.parseDateParam(req.EndDate)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "endDate must be RFC3339 or YYYY-MM-DD")
		return
	}

	kind := req.Report
	if kind == "" {
		kind = "analytics"
	}

	doc := report.NewExport(h.locationName(r), startDate, endDate)
	switch kind {
	case "performance":
		metrics, err := h.Reports.ComputeMetrics(ctx, startDate, endDate, req.TeamMemberID)
		if err != nil {
			h.Logger.Error("performance export failed", zap.Error(err))
			h.writeUpstreamError(w, err)
			return
		}
		doc.Performance = metrics
	case "analytics":
		analytics, err := h.Reports.ComputeAnalytics(ctx, startDate, endDate)
		if err != nil {
			h.Logger.Error("analytics export failed", zap.Error(err))
			h.writeUpstreamError(w, err)
			return
		}
		doc.Analytics = analytics
	default:
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "report must be performance or analytics")
		return
	}

	if req.Format == "pdf" {
		rendered, err := report.RenderPDF(doc)
		if err != nil {
			h.Logger.Error("pdf rendering failed", zap.Error(err))
			response.Error(w, http.StatusInternalServerError, "EXPORT_FAILED", "Failed to render PDF")
			return
		}
		filename := fmt.Sprintf("restaurant-%s-%s.pdf", kind, time.Now().Format("2006-01-02"))
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(rendered.Bytes())
		return
	}

	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "EXPORT_FAILED", "Failed to serialize export")
		return
	}

	result := map[string]any{"document": doc}
	if h.Store != nil {
		key := fmt.Sprintf("exports/%s/%s-%d.json", time.Now().Format("2006-01-02"), kind, time.Now().UnixNano())
		url, err := h.Store.PutObject(ctx, key, payload, "application/json", "no-cache")
		if err != nil {
			h.Logger.Error("export upload failed", zap.Error(err))
			response.Error(w, http.StatusBadGateway, "EXPORT_UPLOAD_FAILED", "Failed to upload export")
			return
		}
		result["url"] = url
	}

	response.Success(w, result)
}

// locationName is decoration on the export header; a lookup failure
// degrades to an empty name rather than failing the export.
func (h *Handler) locationName(r *http.Request) string {
	locations, err := h.Square.ListLocations(r.Context())
	if err != nil {
		h.Logger.Warn("location name lookup failed", zap.Error(err))
		return ""
	}
	for _, location := range locations {
		if location.ID == h.Config.SquareLocationID {
			return location.Name
		}
	}
	return ""
}
