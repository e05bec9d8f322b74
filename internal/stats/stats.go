// Package stats derives sales statistics from an in-memory sales ledger.
// Both queries are pure: they never touch durable storage.
package stats

import (
	"time"

	"github.com/Saiganesh18787/catalog-management-system/internal/domain"
)

// MonthlyStats summarizes one calendar month of the sales ledger. Profit is
// derived from the global profit-margin setting; expenses are the flat
// monthly figure from settings.
type MonthlyStats struct {
	TotalSales float64 `json:"totalSales"`
	Profit     float64 `json:"profit"`
	Expenses   float64 `json:"expenses"`
	NetProfit  float64 `json:"netProfit"`
}

// AllTimeStats summarizes the whole ledger, unfiltered by date.
type AllTimeStats struct {
	TotalSales float64 `json:"totalSales"`
	Profit     float64 `json:"profit"`
}

// Monthly sums the ledger entries whose date falls in the given month and
// year. Month is a native time.Month (1-indexed). Entries with unparseable
// date keys are ignored.
func Monthly(ledger domain.SalesLedger, settings domain.Settings, month time.Month, year int) MonthlyStats {
	var total float64
	for key, entry := range ledger {
		day, err := time.Parse(domain.DateFormat, key)
		if err != nil {
			continue
		}
		if day.Month() == month && day.Year() == year {
			total += entry.Sales
		}
	}

	profit := total * settings.ProfitMargin / 100
	return MonthlyStats{
		TotalSales: total,
		Profit:     profit,
		Expenses:   settings.MonthlyExpenses,
		NetProfit:  profit - settings.MonthlyExpenses,
	}
}

// AllTime sums every ledger entry.
func AllTime(ledger domain.SalesLedger, settings domain.Settings) AllTimeStats {
	var total float64
	for _, entry := range ledger {
		total += entry.Sales
	}
	return AllTimeStats{
		TotalSales: total,
		Profit:     total * settings.ProfitMargin / 100,
	}
}
