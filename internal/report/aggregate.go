package report

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"restaurant-insights-service/internal/square"
)

// aggregate holds every accumulator the single pass over the order
// set fills. Money stays in int64 cents until assembly.
type aggregate struct {
	netCents int64
	covers   int

	daily   map[string]*dailyAcc
	items   map[string]*itemAcc
	members map[string]*memberAcc

	categoryCents map[Category]int64
	categoryUnits map[Category]int
	channelCents  map[Channel]int64

	periodCents  map[ServicePeriod]int64
	periodCovers map[ServicePeriod]int

	// unclassifiedItems counts line items matching no category
	// keyword list. Not an error; surfaced for data-quality
	// monitoring.
	unclassifiedItems int
}

type dailyAcc struct {
	cents  int64
	covers int
}

type itemAcc struct {
	quantity int
	cents    int64
	seen     int
}

type memberAcc struct {
	cents int64
	seen  int
}

// aggregateOrders walks the filtered order set once and fills every
// accumulator simultaneously. Orders with an unparsable timestamp
// still count toward totals but cannot be placed on a calendar day or
// service period.
func aggregateOrders(orders []square.Order, loc *time.Location, classifier Classifier) *aggregate {
	agg := &aggregate{
		daily:         make(map[string]*dailyAcc),
		items:         make(map[string]*itemAcc),
		members:       make(map[string]*memberAcc),
		categoryCents: make(map[Category]int64),
		categoryUnits: make(map[Category]int),
		channelCents:  make(map[Channel]int64),
		periodCents:   make(map[ServicePeriod]int64),
		periodCovers:  make(map[ServicePeriod]int),
	}

	for _, order := range orders {
		totalCents := orderCents(order)
		agg.netCents += totalCents
		agg.covers++

		if createdAt, ok := parseTimestamp(order.CreatedAt); ok {
			day := agg.daily[dateKey(createdAt, loc)]
			if day == nil {
				day = &dailyAcc{}
				agg.daily[dateKey(createdAt, loc)] = day
			}
			day.cents += totalCents
			day.covers++

			period := periodOf(createdAt, loc)
			agg.periodCents[period] += totalCents
			agg.periodCovers[period]++
		}

		source := ""
		if order.Source != nil {
			source = order.Source.Name
		}
		agg.channelCents[classifier.Channel(source)] += totalCents

		for memberID := range orderTeamMembers(order) {
			member := agg.members[memberID]
			if member == nil {
				member = &memberAcc{seen: len(agg.members)}
				agg.members[memberID] = member
			}
			member.cents += totalCents
		}

		for _, line := range order.LineItems {
			quantity := parseQuantity(line.Quantity)
			lineCents := int64(0)
			if line.TotalMoney != nil {
				lineCents = line.TotalMoney.Amount
			}

			item := agg.items[line.Name]
			if item == nil {
				item = &itemAcc{seen: len(agg.items)}
				agg.items[line.Name] = item
			}
			item.quantity += quantity
			item.cents += lineCents

			if category, ok := classifier.Item(line.Name); ok {
				agg.categoryCents[category] += lineCents
				agg.categoryUnits[category] += quantity
			} else {
				agg.unclassifiedItems++
			}
		}
	}

	return agg
}

func orderCents(order square.Order) int64 {
	if order.TotalMoney == nil {
		return 0
	}
	return order.TotalMoney.Amount
}

// orderTeamMembers collects the distinct member ids across all
// fulfillment entries so an order shared by two entries for the same
// member is credited once.
func orderTeamMembers(order square.Order) map[string]struct{} {
	var members map[string]struct{}
	for _, fulfillment := range order.Fulfillments {
		for _, entry := range fulfillment.Entries {
			if entry.TeamMemberID == "" {
				continue
			}
			if members == nil {
				members = make(map[string]struct{})
			}
			members[entry.TeamMemberID] = struct{}{}
		}
	}
	return members
}

// parseQuantity parses the string-encoded quantity defensively:
// absent or malformed values count as a single unit.
func parseQuantity(value string) int {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 1
	}
	parsed, err := strconv.Atoi(trimmed)
	if err != nil || parsed < 0 {
		return 1
	}
	return parsed
}

func (a *aggregate) dailyPerformance() []DailyPerformance {
	out := make([]DailyPerformance, 0, len(a.daily))
	for date, day := range a.daily {
		out = append(out, DailyPerformance{
			Date:   date,
			Sales:  centsToDollars(day.cents),
			Covers: day.covers,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

const topItemLimit = 10

// topItems flattens the item accumulators, sorts by revenue
// descending with ties broken by first-seen order, and keeps the top
// ten.
func (a *aggregate) topItems() []TopItem {
	type ranked struct {
		item TopItem
		seen int
	}
	flat := make([]ranked, 0, len(a.items))
	for name, item := range a.items {
		flat = append(flat, ranked{
			item: TopItem{Name: name, Quantity: item.quantity, Revenue: centsToDollars(item.cents)},
			seen: item.seen,
		})
	}
	sort.Slice(flat, func(i, j int) bool {
		if flat[i].item.Revenue != flat[j].item.Revenue {
			return flat[i].item.Revenue > flat[j].item.Revenue
		}
		return flat[i].seen < flat[j].seen
	})

	if len(flat) > topItemLimit {
		flat = flat[:topItemLimit]
	}
	out := make([]TopItem, 0, len(flat))
	for _, entry := range flat {
		out = append(out, entry.item)
	}
	return out
}

// teamMemberSales drops zero-sales entries and sorts descending by
// sales, ties broken by first-seen order. Display names are joined in
// from the roster; unknown ids fall back to the id itself.
func (a *aggregate) teamMemberSales(names map[string]string) []TeamMemberSales {
	type ranked struct {
		entry TeamMemberSales
		seen  int
	}
	flat := make([]ranked, 0, len(a.members))
	for id, member := range a.members {
		if member.cents == 0 {
			continue
		}
		name := names[id]
		if name == "" {
			name = id
		}
		flat = append(flat, ranked{
			entry: TeamMemberSales{TeamMemberID: id, Name: name, Sales: centsToDollars(member.cents)},
			seen:  member.seen,
		})
	}
	sort.Slice(flat, func(i, j int) bool {
		if flat[i].entry.Sales != flat[j].entry.Sales {
			return flat[i].entry.Sales > flat[j].entry.Sales
		}
		return flat[i].seen < flat[j].seen
	})

	out := make([]TeamMemberSales, 0, len(flat))
	for _, entry := range flat {
		out = append(out, entry.entry)
	}
	return out
}
