package report

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"restaurant-insights-service/internal/square"
)

// Upstream is the slice of the commerce API the pipeline needs. The
// concrete square.Client satisfies it; tests substitute a local
// double.
type Upstream interface {
	SearchOrders(ctx context.Context, from, to time.Time) ([]square.Order, bool, error)
	SearchTeamMembers(ctx context.Context) ([]square.TeamMember, error)
	ListPayments(ctx context.Context, from, to time.Time) ([]square.Payment, error)
	SearchTimecards(ctx context.Context, from, to time.Time, teamMemberID string) ([]square.Timecard, error)
}

// Service runs the fetch -> filter -> aggregate -> assemble pipeline.
// Every report is computed from a fresh upstream snapshot; nothing is
// cached between calls.
type Service struct {
	upstream   Upstream
	classifier Classifier
	loc        *time.Location
	log        *zap.Logger
}

func NewService(upstream Upstream, classifier Classifier, loc *time.Location, log *zap.Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{upstream: upstream, classifier: classifier, loc: loc, log: log}
}

type timecardResult struct {
	cards []square.Timecard
	err   error
}

// ComputeMetrics produces the team performance report for the period,
// optionally narrowed to one team member. An inverted or zero-length
// range yields the all-zero report without touching the upstream.
func (s *Service) ComputeMetrics(ctx context.Context, start, end time.Time, teamMemberID string) (*PerformanceReport, error) {
	if !start.Before(end) {
		s.log.Warn("performance report requested for empty date range",
			zap.Time("start", start),
			zap.Time("end", end),
		)
		return emptyPerformanceReport(), nil
	}

	// Timecards are independent of the order search, so fetch them
	// alongside it. The channel is buffered: the goroutine never
	// blocks even if the order fetch fails first.
	timecardCh := make(chan timecardResult, 1)
	go func() {
		cards, err := s.upstream.SearchTimecards(ctx, start, end, teamMemberID)
		timecardCh <- timecardResult{cards: cards, err: err}
	}()

	orders, truncated, err := s.upstream.SearchOrders(ctx, start, end)
	if err != nil {
		return nil, err
	}

	filtered := FilterByTeamMember(orders, teamMemberID)
	if teamMemberID != "" && teamMemberID != AllTeamMembers && !hasFulfillmentEntries(orders) {
		// No fulfillment data anywhere in the set: attribute through
		// payments instead.
		payments, err := s.upstream.ListPayments(ctx, start, end)
		if err != nil {
			return nil, err
		}
		filtered = filterByPaymentAttribution(orders, payments, teamMemberID)
	}

	agg := aggregateOrders(filtered, s.loc, s.classifier)
	if agg.unclassifiedItems > 0 {
		s.log.Info("line items matched no category keywords",
			zap.Int("unclassifiedItems", agg.unclassifiedItems),
		)
	}

	names := map[string]string{}
	if len(agg.members) > 0 {
		roster, err := s.upstream.SearchTeamMembers(ctx)
		if err != nil {
			return nil, err
		}
		names = rosterNames(roster)
	}

	tc := <-timecardCh
	if tc.err != nil {
		// Worked-hours data is an enrichment; fall back to the
		// period-length estimate rather than failing the report.
		s.log.Warn("timecard fetch failed; using period hours for sales-per-hour", zap.Error(tc.err))
		tc.cards = nil
	}
	hours, shifts := timecardHours(tc.cards)

	periodHours := end.Sub(start).Hours()
	return assemblePerformance(agg, hours, shifts, periodHours, names, truncated), nil
}

// ComputeAnalytics produces the restaurant-wide analytics report for
// the period.
func (s *Service) ComputeAnalytics(ctx context.Context, start, end time.Time) (*RestaurantAnalyticsReport, error) {
	if !start.Before(end) {
		s.log.Warn("analytics report requested for empty date range",
			zap.Time("start", start),
			zap.Time("end", end),
		)
		return emptyAnalyticsReport(), nil
	}

	orders, truncated, err := s.upstream.SearchOrders(ctx, start, end)
	if err != nil {
		return nil, err
	}

	agg := aggregateOrders(orders, s.loc, s.classifier)
	if agg.unclassifiedItems > 0 {
		s.log.Info("line items matched no category keywords",
			zap.Int("unclassifiedItems", agg.unclassifiedItems),
		)
	}

	return assembleAnalytics(agg, truncated), nil
}

func rosterNames(roster []square.TeamMember) map[string]string {
	names := make(map[string]string, len(roster))
	for _, member := range roster {
		names[member.ID] = DisplayName(member)
	}
	return names
}

// DisplayName joins the given and family names, trimming either being
// absent.
func DisplayName(member square.TeamMember) string {
	return strings.TrimSpace(strings.TrimSpace(member.GivenName) + " " + strings.TrimSpace(member.FamilyName))
}
