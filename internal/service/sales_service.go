package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Saiganesh18787/catalog-management-system/internal/domain"
	"github.com/Saiganesh18787/catalog-management-system/internal/stats"
	"github.com/Saiganesh18787/catalog-management-system/internal/store"

	"go.uber.org/zap"
)

var ErrInvalidDate = errors.New("date must be in yyyy-MM-dd format")

// SalesService owns the daily sales ledger, the settings singleton and the
// calendar events map. One mutex guards all three; each collection is still
// persisted as its own snapshot.
type SalesService struct {
	store  *store.Store
	logger *zap.Logger

	mu       sync.Mutex
	sales    domain.SalesLedger
	settings domain.Settings
	events   domain.EventMap
}

// NewSalesService loads the sales, settings and events snapshots.
func NewSalesService(ctx context.Context, st *store.Store, logger *zap.Logger) *SalesService {
	return &SalesService{
		store:    st,
		logger:   logger,
		sales:    st.Sales(ctx),
		settings: st.Settings(ctx),
		events:   st.Events(ctx),
	}
}

// Ledger returns a copy of the sales ledger.
func (s *SalesService) Ledger() domain.SalesLedger {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(domain.SalesLedger, len(s.sales))
	for date, entry := range s.sales {
		out[date] = entry
	}
	return out
}

// UpdateDailySales records the sales figure for one calendar day,
// overwriting any previous figure for that day.
func (s *SalesService) UpdateDailySales(ctx context.Context, date string, amount float64) error {
	if _, err := time.Parse(domain.DateFormat, date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sales[date] = domain.SalesEntry{Sales: amount}
	if err := s.store.SaveSales(ctx, s.sales); err != nil {
		s.logger.Error("Failed to persist sales ledger", zap.Error(err))
	}
	return nil
}

// Settings returns the current application settings.
func (s *SalesService) Settings() domain.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// UpdateSettings replaces the settings singleton.
func (s *SalesService) UpdateSettings(ctx context.Context, settings domain.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = settings
	if err := s.store.SaveSettings(ctx, s.settings); err != nil {
		s.logger.Error("Failed to persist settings", zap.Error(err))
	}
}

// Events returns a copy of the calendar events.
func (s *SalesService) Events() domain.EventMap {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(domain.EventMap, len(s.events))
	for date, title := range s.events {
		out[date] = title
	}
	return out
}

// AddEvent sets the event title for a day. An empty title removes the event,
// matching the calendar UI contract.
func (s *SalesService) AddEvent(ctx context.Context, date, title string) error {
	if _, err := time.Parse(domain.DateFormat, date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	if title == "" {
		return s.RemoveEvent(ctx, date)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.events[date] = title
	s.persistEvents(ctx)
	return nil
}

// RemoveEvent clears the event for a day; removing an absent event is a
// no-op.
func (s *SalesService) RemoveEvent(ctx context.Context, date string) error {
	if _, err := time.Parse(domain.DateFormat, date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.events, date)
	s.persistEvents(ctx)
	return nil
}

// MonthlyStats summarizes one calendar month of the ledger under the current
// settings.
func (s *SalesService) MonthlyStats(month time.Month, year int) stats.MonthlyStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return stats.Monthly(s.sales, s.settings, month, year)
}

// AllTimeStats summarizes the whole ledger under the current settings.
func (s *SalesService) AllTimeStats() stats.AllTimeStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return stats.AllTime(s.sales, s.settings)
}

func (s *SalesService) persistEvents(ctx context.Context) {
	if err := s.store.SaveEvents(ctx, s.events); err != nil {
		s.logger.Error("Failed to persist calendar events", zap.Error(err))
	}
}
