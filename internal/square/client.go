package square

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	apiVersion = "2023-10-18"

	productionBaseURL = "https://connect.squareup.com/v2"
	sandboxBaseURL    = "https://connect.squareupsandbox.com/v2"

	orderPageSize    = 500
	paymentPageSize  = 100
	timecardPageSize = 200
)

type Config struct {
	AccessToken string
	LocationID  string
	Environment string
	Timeout     time.Duration
	// MaxPages bounds every cursor loop. A period with more than
	// MaxPages x page-size records is silently undercounted; the
	// client logs a warning and reports truncation to the caller.
	MaxPages int
	// BaseURL overrides the environment-derived endpoint. Used by
	// tests; leave empty otherwise.
	BaseURL string
}

// Client is an explicit value handed to the pipeline rather than a
// package-level singleton, so tests can point it at a local double.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
	locationID  string
	maxPages    int
	log         *zap.Logger
}

func New(cfg Config, log *zap.Logger) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		if cfg.Environment == "production" {
			baseURL = productionBaseURL
		} else {
			baseURL = sandboxBaseURL
		}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	maxPages := cfg.MaxPages
	if maxPages <= 0 {
		maxPages = 20
	}

	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		baseURL:     baseURL,
		accessToken: strings.TrimSpace(cfg.AccessToken),
		locationID:  strings.TrimSpace(cfg.LocationID),
		maxPages:    maxPages,
		log:         log,
	}
}

type searchOrdersRequest struct {
	LocationIDs []string    `json:"location_ids"`
	Query       ordersQuery `json:"query"`
	Limit       int         `json:"limit"`
	Cursor      string      `json:"cursor,omitempty"`
}

type ordersQuery struct {
	Filter ordersFilter `json:"filter"`
}

type ordersFilter struct {
	DateTimeFilter dateTimeFilter `json:"date_time_filter"`
	StateFilter    stateFilter    `json:"state_filter"`
}

type dateTimeFilter struct {
	CreatedAt timeRange `json:"created_at"`
}

type timeRange struct {
	StartAt string `json:"start_at"`
	EndAt   string `json:"end_at"`
}

type stateFilter struct {
	States []string `json:"states"`
}

type searchOrdersResponse struct {
	Orders []Order `json:"orders"`
	Cursor string  `json:"cursor"`
}

// SearchOrders returns every completed order created in [from, to),
// following the upstream cursor up to the configured page cap. The
// second return value reports whether the cap cut the result short.
func (c *Client) SearchOrders(ctx context.Context, from, to time.Time) ([]Order, bool, error) {
	body := searchOrdersRequest{
		LocationIDs: []string{c.locationID},
		Query: ordersQuery{
			Filter: ordersFilter{
				DateTimeFilter: dateTimeFilter{
					CreatedAt: timeRange{
						StartAt: from.Format(time.RFC3339),
						EndAt:   to.Format(time.RFC3339),
					},
				},
				StateFilter: stateFilter{States: []string{"COMPLETED"}},
			},
		},
		Limit: orderPageSize,
	}

	var all []Order
	truncated := false
	for page := 0; ; page++ {
		if page >= c.maxPages {
			truncated = true
			break
		}

		var resp searchOrdersResponse
		if err := c.do(ctx, http.MethodPost, "/orders/search", body, &resp); err != nil {
			// Pages already accumulated are discarded: a partial set
			// would produce misleadingly-low aggregates.
			return nil, false, err
		}
		all = append(all, resp.Orders...)

		body.Cursor = resp.Cursor
		if body.Cursor == "" {
			break
		}
	}

	if truncated {
		c.log.Warn("order search hit page cap; aggregates will undercount",
			zap.Int("maxPages", c.maxPages),
			zap.Int("ordersFetched", len(all)),
		)
	}

	return all, truncated, nil
}

type teamMemberSearchRequest struct {
	Query  teamMemberQuery `json:"query"`
	Limit  int             `json:"limit"`
	Cursor string          `json:"cursor,omitempty"`
}

type teamMemberQuery struct {
	Filter teamMemberFilter `json:"filter"`
}

type teamMemberFilter struct {
	LocationIDs []string `json:"location_ids"`
	Status      string   `json:"status"`
}

type teamMemberSearchResponse struct {
	TeamMembers []TeamMember `json:"team_members"`
	Cursor      string       `json:"cursor"`
}

// SearchTeamMembers lists active team members at the configured
// location.
func (c *Client) SearchTeamMembers(ctx context.Context) ([]TeamMember, error) {
	body := teamMemberSearchRequest{
		Query: teamMemberQuery{
			Filter: teamMemberFilter{
				LocationIDs: []string{c.locationID},
				Status:      "ACTIVE",
			},
		},
		Limit: timecardPageSize,
	}

	var all []TeamMember
	for page := 0; page < c.maxPages; page++ {
		var resp teamMemberSearchResponse
		if err := c.do(ctx, http.MethodPost, "/team-members/search", body, &resp); err != nil {
			return nil, err
		}
		all = append(all, resp.TeamMembers...)

		body.Cursor = resp.Cursor
		if body.Cursor == "" {
			break
		}
	}

	return all, nil
}

type listLocationsResponse struct {
	Locations []Location `json:"locations"`
}

func (c *Client) ListLocations(ctx context.Context) ([]Location, error) {
	var resp listLocationsResponse
	if err := c.do(ctx, http.MethodGet, "/locations", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Locations, nil
}

type listPaymentsResponse struct {
	Payments []Payment `json:"payments"`
	Cursor   string    `json:"cursor"`
}

// ListPayments returns payments created in [from, to) at the
// configured location.
func (c *Client) ListPayments(ctx context.Context, from, to time.Time) ([]Payment, error) {
	query := url.Values{}
	query.Set("begin_time", from.Format(time.RFC3339))
	query.Set("end_time", to.Format(time.RFC3339))
	query.Set("location_id", c.locationID)
	query.Set("limit", "100")

	var all []Payment
	for page := 0; page < c.maxPages; page++ {
		var resp listPaymentsResponse
		if err := c.do(ctx, http.MethodGet, "/payments?"+query.Encode(), nil, &resp); err != nil {
			return nil, err
		}
		all = append(all, resp.Payments...)

		if resp.Cursor == "" {
			break
		}
		query.Set("cursor", resp.Cursor)
	}

	return all, nil
}

type timecardSearchRequest struct {
	Query  timecardQuery `json:"query"`
	Limit  int           `json:"limit"`
	Cursor string        `json:"cursor,omitempty"`
}

type timecardQuery struct {
	Filter timecardFilter `json:"filter"`
}

type timecardFilter struct {
	LocationIDs   []string  `json:"location_ids"`
	Start         timeRange `json:"start"`
	TeamMemberIDs []string  `json:"team_member_ids,omitempty"`
}

type timecardSearchResponse struct {
	Shifts []Timecard `json:"shifts"`
	Cursor string     `json:"cursor"`
}

// SearchTimecards returns worked shifts starting in [from, to),
// optionally narrowed to one team member. Absence of timecard data is
// not an error; callers fall back to a period-length estimate.
func (c *Client) SearchTimecards(ctx context.Context, from, to time.Time, teamMemberID string) ([]Timecard, error) {
	filter := timecardFilter{
		LocationIDs: []string{c.locationID},
		Start: timeRange{
			StartAt: from.Format(time.RFC3339),
			EndAt:   to.Format(time.RFC3339),
		},
	}
	if teamMemberID != "" && teamMemberID != "all" {
		filter.TeamMemberIDs = []string{teamMemberID}
	}

	body := timecardSearchRequest{
		Query: timecardQuery{Filter: filter},
		Limit: timecardPageSize,
	}

	var all []Timecard
	for page := 0; page < c.maxPages; page++ {
		var resp timecardSearchResponse
		if err := c.do(ctx, http.MethodPost, "/labor/shifts/search", body, &resp); err != nil {
			return nil, err
		}
		all = append(all, resp.Shifts...)

		body.Cursor = resp.Cursor
		if body.Cursor == "" {
			break
		}
	}

	return all, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	if c.accessToken == "" || c.locationID == "" {
		return configError("SQUARE_ACCESS_TOKEN and SQUARE_LOCATION_ID must be configured")
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Square-Version", apiVersion)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		// Timeouts and transport failures abort the report the same
		// way a non-2xx response does.
		return &Error{Code: ErrUpstream, Message: err.Error()}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return upstreamError(res.StatusCode, string(detail))
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}
