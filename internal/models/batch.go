package models

import "time"

// TimestampLayout is the ISO-8601 form used for every timestamp written by the service.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// FormatTimestamp renders t in UTC with millisecond precision.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp accepts any RFC3339 timestamp, with or without fractional seconds.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// Batch is a registered unit of product with an append-only event history.
type Batch struct {
	ID            string  `json:"id"`
	ProductName   string  `json:"productName"`
	SKU           string  `json:"sku,omitempty"`
	Origin        string  `json:"origin"`
	CreatedAt     string  `json:"createdAt"`
	BaselineImage string  `json:"baselineImage"`
	Events        []Event `json:"events"`
}

// Event is a single touchpoint in a batch's journey. Hash and LedgerRef are
// assigned once, when the event is created.
type Event struct {
	ID        string `json:"id"`
	Actor     string `json:"actor"`
	Role      string `json:"role"`
	Timestamp string `json:"timestamp"`
	Note      string `json:"note"`
	Image     string `json:"image,omitempty"`
	Hash      string `json:"hash"`
	LedgerRef string `json:"ledgerRef"`
}

// Roles lists the roles an event actor may hold.
var Roles = []string{
	"Manufacturer",
	"3PL",
	"Warehouse",
	"Distributor",
	"Retailer",
	"Other",
}

// IsRole reports whether r is one of Roles. Matching is exact.
func IsRole(r string) bool {
	for _, v := range Roles {
		if v == r {
			return true
		}
	}
	return false
}

// Clone returns a copy of b whose event slice does not alias b's.
func (b Batch) Clone() Batch {
	out := b
	if b.Events != nil {
		out.Events = make([]Event, len(b.Events))
		copy(out.Events, b.Events)
	}
	return out
}

// LatestEventTime returns the latest parseable event timestamp, or the zero time.
func (b Batch) LatestEventTime() time.Time {
	var latest time.Time
	for _, e := range b.Events {
		t, err := ParseTimestamp(e.Timestamp)
		if err != nil {
			continue
		}
		if t.After(latest) {
			latest = t
		}
	}
	return latest
}

// HasEvent reports whether an event with the given id exists in the batch.
func (b Batch) HasEvent(id string) bool {
	for _, e := range b.Events {
		if e.ID == id {
			return true
		}
	}
	return false
}
