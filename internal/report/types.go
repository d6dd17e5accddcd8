package report

// Report shapes consumed by the dashboard. Every field defaults to
// 0 or an empty slice; the JSON output never contains null for a
// sequence.

type PerformanceReport struct {
	NetSales          float64            `json:"netSales"`
	CoverCount        int                `json:"coverCount"`
	PPA               float64            `json:"ppa"`
	SalesPerHour      float64            `json:"salesPerHour"`
	TotalHours        float64            `json:"totalHours"`
	TotalShifts       int                `json:"totalShifts"`
	DailyPerformance  []DailyPerformance `json:"dailyPerformance"`
	TopItems          []TopItem          `json:"topItems"`
	TeamMemberSales   []TeamMemberSales  `json:"teamMemberSales"`
	DessertsSold      int                `json:"dessertsSold"`
	BeerSold          int                `json:"beerSold"`
	CocktailsSold     int                `json:"cocktailsSold"`
	AverageOrderValue float64            `json:"averageOrderValue"`
	Truncated         bool               `json:"truncated"`
}

type DailyPerformance struct {
	Date   string  `json:"date"`
	Sales  float64 `json:"sales"`
	Covers int     `json:"covers"`
}

type TopItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

type TeamMemberSales struct {
	TeamMemberID string  `json:"teamMemberId"`
	Name         string  `json:"name"`
	Sales        float64 `json:"sales"`
}

type RestaurantAnalyticsReport struct {
	NetSales          float64 `json:"netSales"`
	TotalCovers       int     `json:"totalCovers"`
	AverageOrderValue float64 `json:"averageOrderValue"`
	TotalTransactions int     `json:"totalTransactions"`

	LunchCovers     int     `json:"lunchCovers"`
	LunchSales      float64 `json:"lunchSales"`
	HappyHourCovers int     `json:"happyHourCovers"`
	HappyHourSales  float64 `json:"happyHourSales"`
	DinnerCovers    int     `json:"dinnerCovers"`
	DinnerSales     float64 `json:"dinnerSales"`

	CategorySales CategorySales `json:"categorySales"`
	ChannelSales  ChannelSales  `json:"channelSales"`

	Truncated bool `json:"truncated"`
}

type CategorySales struct {
	Kickstarters float64 `json:"kickstarters"`
	Beer         float64 `json:"beer"`
	Drinks       float64 `json:"drinks"`
	Merch        float64 `json:"merch"`
	Desserts     float64 `json:"desserts"`
	Spirits      float64 `json:"spirits"`
}

type ChannelSales struct {
	SquareOnline float64 `json:"squareOnline"`
	DoorDash     float64 `json:"doorDash"`
	InStore      float64 `json:"inStore"`
}
