package square

// Wire types for the Square Connect v2 API. Only the fields the
// reporting pipeline reads are modeled; everything else in the
// upstream payloads is ignored on decode.

type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type Order struct {
	ID           string        `json:"id"`
	LocationID   string        `json:"location_id"`
	CreatedAt    string        `json:"created_at"`
	TotalMoney   *Money        `json:"total_money"`
	LineItems    []LineItem    `json:"line_items"`
	Fulfillments []Fulfillment `json:"fulfillments"`
	Source       *OrderSource  `json:"source"`
}

type LineItem struct {
	Name string `json:"name"`
	// Quantity is string-encoded upstream and may be absent or
	// non-numeric; consumers must parse it defensively.
	Quantity   string `json:"quantity"`
	TotalMoney *Money `json:"total_money"`
}

type Fulfillment struct {
	Type    string             `json:"type"`
	State   string             `json:"state"`
	Entries []FulfillmentEntry `json:"fulfillment_entries"`
}

type FulfillmentEntry struct {
	TeamMemberID string `json:"team_member_id"`
}

type OrderSource struct {
	Name string `json:"name"`
}

type TeamMember struct {
	ID                string             `json:"id"`
	GivenName         string             `json:"given_name"`
	FamilyName        string             `json:"family_name"`
	Status            string             `json:"status"`
	AssignedLocations []AssignedLocation `json:"assigned_locations"`
}

type AssignedLocation struct {
	LocationID string `json:"location_id"`
	JobTitle   string `json:"job_title"`
}

type Location struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Status  string   `json:"status"`
	Address *Address `json:"address"`
}

type Address struct {
	AddressLine1                 string `json:"address_line_1"`
	Locality                     string `json:"locality"`
	AdministrativeDistrictLevel1 string `json:"administrative_district_level_1"`
	PostalCode                   string `json:"postal_code"`
}

// Payment is the alternate attribution route: when orders carry no
// fulfillment entries, a payment's team_member_id links the order to
// whoever rang it up.
type Payment struct {
	ID           string `json:"id"`
	OrderID      string `json:"order_id"`
	TeamMemberID string `json:"team_member_id"`
	CreatedAt    string `json:"created_at"`
}

// Timecard is one worked shift from the labor API.
type Timecard struct {
	ID           string `json:"id"`
	TeamMemberID string `json:"team_member_id"`
	StartAt      string `json:"start_at"`
	EndAt        string `json:"end_at"`
}
