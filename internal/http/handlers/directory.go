package handlers

import (
	"net/http"
	"strings"

	"restaurant-insights-service/internal/report"
	"restaurant-insights-service/internal/square"
	"restaurant-insights-service/pkg/response"

	"go.uber.org/zap"
)

type apiLocation struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Status  string `json:"status"`
	Address string `json:"address"`
}

type apiTeamMember struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

func (h *Handler) Locations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.Square.ListLocations(r.Context())
	if err != nil {
		h.Logger.Error("location listing failed", zap.Error(err))
		h.writeUpstreamError(w, err)
		return
	}

	out := make([]apiLocation, 0, len(locations))
	for _, location := range locations {
		out = append(out, apiLocation{
			ID:      location.ID,
			Name:    location.Name,
			Status:  location.Status,
			Address: formatAddress(location.Address),
		})
	}
	response.Success(w, map[string]any{"locations": out})
}

func (h *Handler) TeamMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.Square.SearchTeamMembers(r.Context())
	if err != nil {
		h.Logger.Error("team member listing failed", zap.Error(err))
		h.writeUpstreamError(w, err)
		return
	}

	out := make([]apiTeamMember, 0, len(members))
	for _, member := range members {
		out = append(out, apiTeamMember{
			ID:     member.ID,
			Name:   report.DisplayName(member),
			Role:   memberRole(member),
			Status: member.Status,
		})
	}
	response.Success(w, map[string]any{"teamMembers": out})
}

func memberRole(member square.TeamMember) string {
	for _, assigned := range member.AssignedLocations {
		if title := strings.TrimSpace(assigned.JobTitle); title != "" {
			return title
		}
	}
	return "Team Member"
}

func formatAddress(address *square.Address) string {
	if address == nil {
		return ""
	}
	parts := make([]string, 0, 4)
	for _, part := range []string{
		address.AddressLine1,
		address.Locality,
		address.AdministrativeDistrictLevel1,
		address.PostalCode,
	} {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, ", ")
}
