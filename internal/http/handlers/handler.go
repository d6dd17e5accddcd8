package handlers

import (
	"errors"
	"net/http"
	"time"

	"restaurant-insights-service/internal/config"
	"restaurant-insights-service/internal/report"
	"restaurant-insights-service/internal/square"
	"restaurant-insights-service/internal/storage"
	"restaurant-insights-service/pkg/response"

	"go.uber.org/zap"
)

type Handler struct {
	Square   *square.Client
	Reports  *report.Service
	Store    *storage.ObjectStore
	Location *time.Location
	Logger   *zap.Logger
	Config   config.Config
}

const defaultRangeDays = 7

// parseDateRange reads startDate/endDate query parameters, accepting
// RFC3339 timestamps or plain dates (interpreted in the report
// timezone). Defaults to the trailing week. An inverted range is not
// rejected here: the pipeline answers it with the all-zero report.
func (h *Handler) parseDateRange(r *http.Request) (time.Time, time.Time, error) {
	query := r.URL.Query()

	endDate := time.Now()
	if value := query.Get("endDate"); value != "" {
		parsed, err := h.parseDateParam(value)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		endDate = parsed
	}

	startDate := endDate.Add(-defaultRangeDays * 24 * time.Hour)
	if value := query.Get("startDate"); value != "" {
		parsed, err := h.parseDateParam(value)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		startDate = parsed
	}

	return startDate, endDate, nil
}

func (h *Handler) parseDateParam(value string) (time.Time, error) {
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	loc := h.Location
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation("2006-01-02", value, loc)
}

// writeUpstreamError maps pipeline failures onto the response
// envelope: missing credentials are a server configuration problem,
// anything else from upstream is a bad gateway. The caller always
// gets an explicit failure, never a zeroed report.
func (h *Handler) writeUpstreamError(w http.ResponseWriter, err error) {
	var squareErr *square.Error
	if errors.As(err, &squareErr) {
		switch squareErr.Code {
		case square.ErrCredentialsMissing:
			response.Error(w, http.StatusInternalServerError, string(squareErr.Code), squareErr.Message)
		default:
			response.Error(w, http.StatusBadGateway, string(squareErr.Code), squareErr.Message)
		}
		return
	}
	response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute report")
}
