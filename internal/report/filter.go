package report

import "restaurant-insights-service/internal/square"

// AllTeamMembers is the sentinel that disables team-member filtering.
const AllTeamMembers = "all"

// FilterByTeamMember retains orders attributable to teamMemberID
// through any fulfillment entry. Empty or "all" passes the input
// through untouched. The filter is stable: surviving orders keep
// their original relative order, and orders without fulfillment data
// are dropped when a specific member is requested.
func FilterByTeamMember(orders []square.Order, teamMemberID string) []square.Order {
	if teamMemberID == "" || teamMemberID == AllTeamMembers {
		return orders
	}

	filtered := make([]square.Order, 0, len(orders))
	for _, order := range orders {
		if orderHandledBy(order, teamMemberID) {
			filtered = append(filtered, order)
		}
	}
	return filtered
}

func orderHandledBy(order square.Order, teamMemberID string) bool {
	for _, fulfillment := range order.Fulfillments {
		for _, entry := range fulfillment.Entries {
			if entry.TeamMemberID == teamMemberID {
				return true
			}
		}
	}
	return false
}

// hasFulfillmentEntries reports whether any order in the set carries
// attribution data at all. When none do, the payments fallback is the
// only route to a team-member view.
func hasFulfillmentEntries(orders []square.Order) bool {
	for _, order := range orders {
		for _, fulfillment := range order.Fulfillments {
			if len(fulfillment.Entries) > 0 {
				return true
			}
		}
	}
	return false
}

// filterByPaymentAttribution retains orders referenced by a payment
// carrying the target team-member id. Stable, like the fulfillment
// filter.
func filterByPaymentAttribution(orders []square.Order, payments []square.Payment, teamMemberID string) []square.Order {
	attributed := make(map[string]struct{}, len(payments))
	for _, payment := range payments {
		if payment.TeamMemberID == teamMemberID && payment.OrderID != "" {
			attributed[payment.OrderID] = struct{}{}
		}
	}

	filtered := make([]square.Order, 0, len(orders))
	for _, order := range orders {
		if _, ok := attributed[order.ID]; ok {
			filtered = append(filtered, order)
		}
	}
	return filtered
}
