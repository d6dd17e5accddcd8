package report

import (
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ServicePeriod is the time-of-day bucket an order lands in based on
// its local hour: lunch [11,15), happy hour [15,18), dinner otherwise
// (wrapping midnight).
type ServicePeriod string

const (
	PeriodLunch     ServicePeriod = "lunch"
	PeriodHappyHour ServicePeriod = "happyHour"
	PeriodDinner    ServicePeriod = "dinner"
)

var oneHundred = decimal.NewFromInt(100)

// centsToDollars converts an integer minor-unit amount to major
// units. Sums stay in int64 cents until this point so intermediate
// arithmetic is exact.
func centsToDollars(cents int64) float64 {
	return decimal.NewFromInt(cents).Div(oneHundred).InexactFloat64()
}

// ratio divides a cent amount by a denominator and rounds to cents.
// A non-positive denominator yields 0.
func ratio(cents int64, denominator float64) float64 {
	if denominator <= 0 {
		return 0
	}
	return decimal.NewFromInt(cents).
		Div(oneHundred).
		Div(decimal.NewFromFloat(denominator)).
		Round(2).
		InexactFloat64()
}

// parseTimestamp parses an upstream ISO-8601 timestamp. The bool is
// false when the value is absent or malformed; such orders still
// count toward totals but cannot be placed on a day or period.
func parseTimestamp(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// dateKey returns the calendar date of t in loc, formatted so keys
// sort lexically in chronological order.
func dateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

func periodOf(t time.Time, loc *time.Location) ServicePeriod {
	hour := t.In(loc).Hour()
	switch {
	case hour >= 11 && hour < 15:
		return PeriodLunch
	case hour >= 15 && hour < 18:
		return PeriodHappyHour
	default:
		return PeriodDinner
	}
}

// LoadLocation resolves the configured report timezone, falling back
// to UTC when the zone name cannot be loaded.
func LoadLocation(name string, log *zap.Logger) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		if log != nil {
			log.Warn("report timezone not found; using UTC", zap.String("timezone", name))
		}
		return time.UTC
	}
	return loc
}
