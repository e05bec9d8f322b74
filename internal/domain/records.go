package domain

import (
	"time"
)

// Settings is the singleton application configuration persisted alongside the
// business data. ProfitMargin is the global default markup percentage used by
// the sales statistics.
type Settings struct {
	ProfitMargin    float64 `json:"profitMargin"`
	MonthlyExpenses float64 `json:"monthlyExpenses"`
}

// DefaultSettings returns the settings used when none have been saved yet, or
// when the stored snapshot cannot be read.
func DefaultSettings() Settings {
	return Settings{ProfitMargin: 35, MonthlyExpenses: 160000}
}

// SalesEntry is the recorded figure for a single calendar day.
type SalesEntry struct {
	Sales float64 `json:"sales"`
}

// SalesLedger maps a calendar date (yyyy-MM-dd) to that day's sales figure.
// One entry per date; later writes overwrite.
type SalesLedger map[string]SalesEntry

// EventMap maps a calendar date (yyyy-MM-dd) to a free-text event title.
// Absence of a key means no event on that day.
type EventMap map[string]string

// Access log entry types.
const (
	AccessTypeLogin  = "LOGIN"
	AccessTypeLogout = "LOGOUT"
	AccessTypeAccess = "ACCESS"
)

// AccessLogEntry is one row of the append-only audit trail. Entries are kept
// newest-first. Timestamp is an ISO-8601 string, matching the persisted form.
type AccessLogEntry struct {
	Type      string `json:"type"`
	User      string `json:"user"`
	Timestamp string `json:"timestamp"`
	Details   string `json:"details"`
}

// Bill statuses.
const (
	BillStatusPending = "Pending"
	BillStatusPaid    = "Paid"
)

// Bill is an expense bill from a supplier store.
type Bill struct {
	ID        string    `json:"id"`
	StoreName string    `json:"storeName"`
	Date      string    `json:"date"`
	Amount    float64   `json:"amount"`
	Image     string    `json:"image,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// BillPatch is a partial bill record, applied the same way as ProductPatch.
type BillPatch struct {
	StoreName *string  `json:"storeName,omitempty"`
	Date      *string  `json:"date,omitempty"`
	Amount    *float64 `json:"amount,omitempty"`
	Image     *string  `json:"image,omitempty"`
	Status    *string  `json:"status,omitempty"`
}

// Apply merges the patch into the bill field by field.
func (b *Bill) Apply(patch BillPatch) {
	if patch.StoreName != nil {
		b.StoreName = *patch.StoreName
	}
	if patch.Date != nil {
		b.Date = *patch.Date
	}
	if patch.Amount != nil {
		b.Amount = *patch.Amount
	}
	if patch.Image != nil {
		b.Image = *patch.Image
	}
	if patch.Status != nil {
		b.Status = *patch.Status
	}
}
