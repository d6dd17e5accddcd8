package handlers

import (
	"net/http"

	"restaurant-insights-service/pkg/response"

	"go.uber.org/zap"
)

func (h *Handler) Performance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	startDate, endDate, err := h.parseDateRange(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	teamMemberID := r.URL.Query().Get("teamMemberId")

	metrics, err := h.Reports.ComputeMetrics(ctx, startDate, endDate, teamMemberID)
	if err != nil {
		h.Logger.Error("performance report failed", zap.Error(err))
		h.writeUpstreamError(w, err)
		return
	}

	response.SuccessWithRange(w, metrics, startDate, endDate)
}

func (h *Handler) Analytics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	startDate, endDate, err := h.parseDateRange(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	analytics, err := h.Reports.ComputeAnalytics(ctx, startDate, endDate)
	if err != nil {
		h.Logger.Error("analytics report failed", zap.Error(err))
		h.writeUpstreamError(w, err)
		return
	}

	response.SuccessWithRange(w, analytics, startDate, endDate)
}
