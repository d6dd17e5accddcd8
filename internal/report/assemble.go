package report

import (
	"restaurant-insights-service/internal/square"
)

// assemblePerformance packages the aggregator output into the
// dashboard's performance shape. Pure renaming and defaulting; every
// number was already computed during the pass.
func assemblePerformance(agg *aggregate, hours float64, shifts int, periodHours float64, names map[string]string, truncated bool) *PerformanceReport {
	perCover := ratio(agg.netCents, float64(agg.covers))

	salesPerHour := ratio(agg.netCents, hours)
	if hours <= 0 {
		salesPerHour = ratio(agg.netCents, periodHours)
	}

	return &PerformanceReport{
		NetSales:          centsToDollars(agg.netCents),
		CoverCount:        agg.covers,
		PPA:               perCover,
		SalesPerHour:      salesPerHour,
		TotalHours:        hours,
		TotalShifts:       shifts,
		DailyPerformance:  agg.dailyPerformance(),
		TopItems:          agg.topItems(),
		TeamMemberSales:   agg.teamMemberSales(names),
		DessertsSold:      agg.categoryUnits[CategoryDesserts],
		BeerSold:          agg.categoryUnits[CategoryBeer],
		CocktailsSold:     agg.categoryUnits[CategorySpirits],
		AverageOrderValue: perCover,
		Truncated:         truncated,
	}
}

func assembleAnalytics(agg *aggregate, truncated bool) *RestaurantAnalyticsReport {
	return &RestaurantAnalyticsReport{
		NetSales:          centsToDollars(agg.netCents),
		TotalCovers:       agg.covers,
		AverageOrderValue: ratio(agg.netCents, float64(agg.covers)),
		TotalTransactions: agg.covers,

		LunchCovers:     agg.periodCovers[PeriodLunch],
		LunchSales:      centsToDollars(agg.periodCents[PeriodLunch]),
		HappyHourCovers: agg.periodCovers[PeriodHappyHour],
		HappyHourSales:  centsToDollars(agg.periodCents[PeriodHappyHour]),
		DinnerCovers:    agg.periodCovers[PeriodDinner],
		DinnerSales:     centsToDollars(agg.periodCents[PeriodDinner]),

		CategorySales: CategorySales{
			Kickstarters: centsToDollars(agg.categoryCents[CategoryKickstarters]),
			Beer:         centsToDollars(agg.categoryCents[CategoryBeer]),
			Drinks:       centsToDollars(agg.categoryCents[CategoryDrinks]),
			Merch:        centsToDollars(agg.categoryCents[CategoryMerch]),
			Desserts:     centsToDollars(agg.categoryCents[CategoryDesserts]),
			Spirits:      centsToDollars(agg.categoryCents[CategorySpirits]),
		},
		ChannelSales: ChannelSales{
			SquareOnline: centsToDollars(agg.channelCents[ChannelSquareOnline]),
			DoorDash:     centsToDollars(agg.channelCents[ChannelDoorDash]),
			InStore:      centsToDollars(agg.channelCents[ChannelInStore]),
		},

		Truncated: truncated,
	}
}

func emptyPerformanceReport() *PerformanceReport {
	return &PerformanceReport{
		DailyPerformance: make([]DailyPerformance, 0),
		TopItems:         make([]TopItem, 0),
		TeamMemberSales:  make([]TeamMemberSales, 0),
	}
}

func emptyAnalyticsReport() *RestaurantAnalyticsReport {
	return &RestaurantAnalyticsReport{}
}

// timecardHours sums worked hours across shifts, skipping open or
// malformed entries.
func timecardHours(timecards []square.Timecard) (float64, int) {
	hours := 0.0
	shifts := 0
	for _, card := range timecards {
		start, okStart := parseTimestamp(card.StartAt)
		end, okEnd := parseTimestamp(card.EndAt)
		if !okStart || !okEnd || !end.After(start) {
			continue
		}
		hours += end.Sub(start).Hours()
		shifts++
	}
	return hours, shifts
}
