package report

import (
	"fmt"
	"math"
	"testing"
	"time"

	"restaurant-insights-service/internal/square"
)

func money(cents int64) *square.Money {
	return &square.Money{Amount: cents, Currency: "USD"}
}

func testOrder(id, createdAt string, totalCents int64, items ...square.LineItem) square.Order {
	return square.Order{
		ID:         id,
		CreatedAt:  createdAt,
		TotalMoney: money(totalCents),
		LineItems:  items,
	}
}

func TestAggregateEmptySet(t *testing.T) {
	agg := aggregateOrders(nil, time.UTC, NewKeywordClassifier())
	report := assemblePerformance(agg, 0, 0, 0, nil, false)

	if report.NetSales != 0 || report.CoverCount != 0 || report.PPA != 0 ||
		report.SalesPerHour != 0 || report.AverageOrderValue != 0 {
		t.Fatalf("expected all-zero scalars, got %+v", report)
	}
	if report.DailyPerformance == nil || len(report.DailyPerformance) != 0 {
		t.Fatalf("expected empty non-nil dailyPerformance")
	}
	if report.TopItems == nil || len(report.TopItems) != 0 {
		t.Fatalf("expected empty non-nil topItems")
	}
	if report.TeamMemberSales == nil || len(report.TeamMemberSales) != 0 {
		t.Fatalf("expected empty non-nil teamMemberSales")
	}

	analytics := assembleAnalytics(agg, false)
	if analytics.NetSales != 0 || analytics.TotalCovers != 0 || analytics.LunchCovers != 0 {
		t.Fatalf("expected all-zero analytics, got %+v", analytics)
	}
}

func TestDailyPerformanceSumsToNetSales(t *testing.T) {
	orders := []square.Order{
		testOrder("o1", "2024-01-15T12:30:00Z", 2450),
		testOrder("o2", "2024-01-15T19:00:00Z", 3075),
		testOrder("o3", "2024-01-16T13:15:00Z", 1800),
		testOrder("o4", "2024-01-18T20:45:00Z", 5625),
	}

	agg := aggregateOrders(orders, time.UTC, NewKeywordClassifier())
	report := assemblePerformance(agg, 0, 0, 96, nil, false)

	sum := 0.0
	for _, day := range report.DailyPerformance {
		sum += day.Sales
	}
	if math.Abs(sum-report.NetSales) > 1e-9 {
		t.Fatalf("daily sales sum %v does not match netSales %v", sum, report.NetSales)
	}

	if len(report.DailyPerformance) != 3 {
		t.Fatalf("expected 3 distinct days, got %d", len(report.DailyPerformance))
	}
	for i := 1; i < len(report.DailyPerformance); i++ {
		if report.DailyPerformance[i-1].Date >= report.DailyPerformance[i].Date {
			t.Fatalf("dailyPerformance not ascending: %s before %s",
				report.DailyPerformance[i-1].Date, report.DailyPerformance[i].Date)
		}
	}
}

func TestTopItemsCapAndOrdering(t *testing.T) {
	var orders []square.Order
	// Twelve distinct items with descending revenue, plus two sharing
	// a revenue value to exercise the first-seen tie break.
	var items []square.LineItem
	for i := 0; i < 12; i++ {
		items = append(items, square.LineItem{
			Name:       fmt.Sprintf("Item %02d", i),
			Quantity:   "1",
			TotalMoney: money(int64(1200 - i*100)),
		})
	}
	items = append(items,
		square.LineItem{Name: "Tied First", Quantity: "1", TotalMoney: money(5000)},
		square.LineItem{Name: "Tied Second", Quantity: "1", TotalMoney: money(5000)},
	)
	orders = append(orders, testOrder("o1", "2024-01-15T12:00:00Z", 20000, items...))

	agg := aggregateOrders(orders, time.UTC, NewKeywordClassifier())
	top := agg.topItems()

	if len(top) != topItemLimit {
		t.Fatalf("expected %d items, got %d", topItemLimit, len(top))
	}
	for i := 1; i < len(top); i++ {
		if top[i-1].Revenue < top[i].Revenue {
			t.Fatalf("topItems not non-increasing at %d: %v then %v", i, top[i-1].Revenue, top[i].Revenue)
		}
	}
	if top[0].Name != "Tied First" || top[1].Name != "Tied Second" {
		t.Fatalf("tie break should preserve first-seen order, got %s then %s", top[0].Name, top[1].Name)
	}
}

func TestTopItemsAccumulateAcrossOrders(t *testing.T) {
	orders := []square.Order{
		testOrder("o1", "2024-01-15T12:00:00Z", 1600,
			square.LineItem{Name: "Chicken Caesar Salad", Quantity: "2", TotalMoney: money(1600)}),
		testOrder("o2", "2024-01-16T12:00:00Z", 800,
			square.LineItem{Name: "Chicken Caesar Salad", Quantity: "1", TotalMoney: money(800)}),
	}

	agg := aggregateOrders(orders, time.UTC, NewKeywordClassifier())
	top := agg.topItems()

	if len(top) != 1 {
		t.Fatalf("expected 1 item, got %d", len(top))
	}
	if top[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", top[0].Quantity)
	}
	if top[0].Revenue != 24 {
		t.Fatalf("expected revenue 24, got %v", top[0].Revenue)
	}
}

func TestTeamMemberSalesExcludesZeroAndSorts(t *testing.T) {
	big := fulfilledOrder("o1", "tm-1")
	big.CreatedAt = "2024-01-15T12:00:00Z"
	big.TotalMoney = money(10000)

	small := fulfilledOrder("o2", "tm-2")
	small.CreatedAt = "2024-01-15T13:00:00Z"
	small.TotalMoney = money(2500)

	comped := fulfilledOrder("o3", "tm-3")
	comped.CreatedAt = "2024-01-15T14:00:00Z"
	comped.TotalMoney = money(0)

	agg := aggregateOrders([]square.Order{small, big, comped}, time.UTC, NewKeywordClassifier())
	sales := agg.teamMemberSales(map[string]string{"tm-1": "John Smith", "tm-2": "Sarah Johnson"})

	if len(sales) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(sales))
	}
	if sales[0].TeamMemberID != "tm-1" || sales[0].Sales != 100 {
		t.Fatalf("expected tm-1 first with 100, got %+v", sales[0])
	}
	if sales[0].Name != "John Smith" {
		t.Fatalf("expected resolved name, got %s", sales[0].Name)
	}
	if sales[1].TeamMemberID != "tm-2" {
		t.Fatalf("expected tm-2 second, got %s", sales[1].TeamMemberID)
	}
	for _, entry := range sales {
		if entry.Sales == 0 {
			t.Fatalf("zero-sales entry should be excluded: %+v", entry)
		}
	}
}

func TestCategoryAndChannelAccumulators(t *testing.T) {
	online := testOrder("o1", "2024-01-15T12:30:00Z", 2100,
		square.LineItem{Name: "Draft IPA", Quantity: "2", TotalMoney: money(1400)},
		square.LineItem{Name: "Chocolate Cake", Quantity: "1", TotalMoney: money(700)},
	)
	online.Source = &square.OrderSource{Name: "Square Online"}

	walkIn := testOrder("o2", "2024-01-15T16:30:00Z", 1500,
		square.LineItem{Name: "Water", Quantity: "1", TotalMoney: money(0)},
		square.LineItem{Name: "Margarita", Quantity: "1", TotalMoney: money(1500)},
	)

	agg := aggregateOrders([]square.Order{online, walkIn}, time.UTC, NewKeywordClassifier())
	analytics := assembleAnalytics(agg, false)

	if analytics.CategorySales.Beer != 14 {
		t.Fatalf("expected beer sales 14, got %v", analytics.CategorySales.Beer)
	}
	if analytics.CategorySales.Desserts != 7 {
		t.Fatalf("expected dessert sales 7, got %v", analytics.CategorySales.Desserts)
	}
	if analytics.CategorySales.Spirits != 15 {
		t.Fatalf("expected spirits sales 15, got %v", analytics.CategorySales.Spirits)
	}
	if analytics.ChannelSales.SquareOnline != 21 {
		t.Fatalf("expected online sales 21, got %v", analytics.ChannelSales.SquareOnline)
	}
	if analytics.ChannelSales.InStore != 15 {
		t.Fatalf("expected in-store sales 15, got %v", analytics.ChannelSales.InStore)
	}

	// Water matched no category but still counts toward net sales.
	if agg.unclassifiedItems != 1 {
		t.Fatalf("expected 1 unclassified item, got %d", agg.unclassifiedItems)
	}
	if analytics.NetSales != 36 {
		t.Fatalf("expected netSales 36, got %v", analytics.NetSales)
	}

	// Lunch and happy hour buckets each got one order.
	if analytics.LunchCovers != 1 || analytics.LunchSales != 21 {
		t.Fatalf("expected lunch 1 cover / 21, got %d / %v", analytics.LunchCovers, analytics.LunchSales)
	}
	if analytics.HappyHourCovers != 1 || analytics.HappyHourSales != 15 {
		t.Fatalf("expected happy hour 1 cover / 15, got %d / %v", analytics.HappyHourCovers, analytics.HappyHourSales)
	}
	if analytics.DinnerCovers != 0 {
		t.Fatalf("expected no dinner covers, got %d", analytics.DinnerCovers)
	}
}

func TestCategoryUnitCounters(t *testing.T) {
	order := testOrder("o1", "2024-01-15T19:00:00Z", 6000,
		square.LineItem{Name: "Chocolate Cake", Quantity: "2", TotalMoney: money(1400)},
		square.LineItem{Name: "House Lager", Quantity: "3", TotalMoney: money(2100)},
		square.LineItem{Name: "Espresso Martini Cocktail", Quantity: "1", TotalMoney: money(1600)},
	)

	agg := aggregateOrders([]square.Order{order}, time.UTC, NewKeywordClassifier())
	report := assemblePerformance(agg, 0, 0, 24, nil, false)

	if report.DessertsSold != 2 {
		t.Fatalf("expected 2 desserts sold, got %d", report.DessertsSold)
	}
	if report.BeerSold != 3 {
		t.Fatalf("expected 3 beers sold, got %d", report.BeerSold)
	}
	// "Espresso Martini Cocktail" contains an earlier drinks keyword,
	// so it lands there, not in spirits.
	if report.CocktailsSold != 0 {
		t.Fatalf("expected 0 cocktails sold, got %d", report.CocktailsSold)
	}
}

func TestParseQuantity(t *testing.T) {
	cases := []struct {
		value    string
		expected int
	}{
		{value: "3", expected: 3},
		{value: " 2 ", expected: 2},
		{value: "", expected: 1},
		{value: "abc", expected: 1},
		{value: "-4", expected: 1},
		{value: "0", expected: 0},
	}

	for _, tc := range cases {
		if got := parseQuantity(tc.value); got != tc.expected {
			t.Fatalf("quantity %q: expected %d, got %d", tc.value, tc.expected, got)
		}
	}
}

func TestOrdersWithoutTimestampStillCount(t *testing.T) {
	orders := []square.Order{
		testOrder("o1", "", 2000),
		testOrder("o2", "2024-01-15T12:00:00Z", 3000),
	}

	agg := aggregateOrders(orders, time.UTC, NewKeywordClassifier())
	report := assemblePerformance(agg, 0, 0, 24, nil, false)

	if report.NetSales != 50 {
		t.Fatalf("expected netSales 50, got %v", report.NetSales)
	}
	if report.CoverCount != 2 {
		t.Fatalf("expected 2 covers, got %d", report.CoverCount)
	}
	if len(report.DailyPerformance) != 1 {
		t.Fatalf("expected 1 daily entry, got %d", len(report.DailyPerformance))
	}
}
