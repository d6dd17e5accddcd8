// Package response writes the JSON envelope the dashboard client
// expects: {success, data} on success, {success, error, message} on
// failure.
package response

import (
	"encoding/json"
	"net/http"
	"time"
)

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func Success(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    data,
	})
}

// SuccessWithRange echoes the resolved reporting window alongside the
// payload so the dashboard can label charts without re-deriving the
// defaulted dates.
func SuccessWithRange(w http.ResponseWriter, data any, start, end time.Time) {
	JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    data,
		"dateRange": map[string]string{
			"start": start.Format(time.RFC3339),
			"end":   end.Format(time.RFC3339),
		},
	})
}

func Error(w http.ResponseWriter, status int, code string, message string) {
	JSON(w, status, map[string]any{
		"success": false,
		"error":   code,
		"message": message,
	})
}
